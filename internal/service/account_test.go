package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/data"
	"github.com/campushub/campushub/internal/data/cryptoutil"
	domainauth "github.com/campushub/campushub/internal/domain/auth"
	apperrors "github.com/campushub/campushub/internal/errors"
	mockauth "github.com/campushub/campushub/internal/mocks/auth"
	"github.com/campushub/campushub/internal/observability/statsd"
)

type accountFixture struct {
	svc      *AccountService
	users    *mockauth.MemoryUserRepo
	sessions *mockauth.MemorySessionRepo
	clock    *data.FixedTimeProvider
	metrics  *statsd.Recorder
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	clock := data.NewFixedTimeProvider(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	users := mockauth.NewMemoryUserRepo()
	sessions := mockauth.NewMemorySessionRepo()
	sessions.Now = clock.Now
	metrics := statsd.NewRecorder()

	sessionSvc, err := NewSessionService(SessionServiceOptions{
		Sessions: sessions,
		Users:    users,
		Time:     clock,
		Metrics:  metrics,
	})
	require.NoError(t, err)

	svc, err := NewAccountService(AccountServiceOptions{
		Users:      users,
		Sessions:   sessionSvc,
		BcryptCost: cryptoutil.MinPasswordCost,
		Metrics:    metrics,
	})
	require.NoError(t, err)

	return &accountFixture{
		svc:      svc,
		users:    users,
		sessions: sessions,
		clock:    clock,
		metrics:  metrics,
	}
}

func (f *accountFixture) register(t *testing.T, email, password string) string {
	t.Helper()
	res, err := f.svc.Register(context.Background(), RegisterInput{
		Name:            "Test User",
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)
	return res.User.ID
}

func TestNewAccountService_RequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewAccountService(AccountServiceOptions{Users: mockauth.NewMemoryUserRepo()})
	assert.Error(t, err)
}

func TestAccountService_Register(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)

	sid := " s1234567 "
	res, err := f.svc.Register(context.Background(), RegisterInput{
		Name:            "  Alice Example  ",
		Email:           "  Alice@Example.COM ",
		StudentID:       &sid,
		Password:        "hunter22-strong",
		ConfirmPassword: "hunter22-strong",
	})
	require.NoError(t, err)

	user := res.User
	assert.Equal(t, "Alice Example", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	require.NotNil(t, user.StudentID)
	assert.Equal(t, "s1234567", *user.StudentID)
	assert.Equal(t, domainauth.RoleUser, user.Role)

	// Stored hash verifies the plaintext and is not the plaintext.
	assert.NotEqual(t, "hunter22-strong", user.PasswordHash)
	assert.NoError(t, cryptoutil.CheckPassword(user.PasswordHash, "hunter22-strong"))

	// Registration signs the account in.
	assert.NotEmpty(t, res.Session.Token)
	assert.Equal(t, user.ID, res.Session.UserID)
	assert.Equal(t, 1, f.sessions.Count())

	assert.Equal(t, int64(1), f.metrics.CountTotal("account.registered"))
	assert.Equal(t, int64(1), f.metrics.CountTotal("session.issued"))
}

func TestAccountService_Register_PasswordMismatch(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Name:            "Alice",
		Email:           "alice@example.com",
		Password:        "hunter22-strong",
		ConfirmPassword: "different-password",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "confirmPassword", apperrors.GetField(err))
}

func TestAccountService_Register_WeakPassword(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Name:            "Alice",
		Email:           "alice@example.com",
		Password:        "short",
		ConfirmPassword: "short",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "password", apperrors.GetField(err))
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)

	f.register(t, "alice@example.com", "hunter22-strong")

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Name:            "Impostor",
		Email:           "ALICE@example.com",
		Password:        "hunter22-strong",
		ConfirmPassword: "hunter22-strong",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "email", apperrors.GetField(err))
}

func TestAccountService_Login(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)
	ctx := context.Background()

	userID := f.register(t, "alice@example.com", "hunter22-strong")

	result, err := f.svc.Login(ctx, LoginInput{
		Identifier: "alice@example.com",
		Password:   "hunter22-strong",
	})
	require.NoError(t, err)

	assert.Equal(t, userID, result.User.ID)
	assert.Equal(t, userID, result.Session.UserID)
	assert.Equal(t, domainauth.RoleUser, result.Session.Role)
	assert.NotEmpty(t, result.Session.Token)
	assert.Equal(t, int64(1), f.metrics.CountTotal("login.success"))
}

func TestAccountService_Login_ByStudentID(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)

	sid := "s1234567"
	_, err := f.svc.Register(context.Background(), RegisterInput{
		Name:            "Alice",
		Email:           "alice@example.com",
		StudentID:       &sid,
		Password:        "hunter22-strong",
		ConfirmPassword: "hunter22-strong",
	})
	require.NoError(t, err)

	result, err := f.svc.Login(context.Background(), LoginInput{
		Identifier: "s1234567",
		Password:   "hunter22-strong",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", result.User.Email)
}

func TestAccountService_Login_AliasFieldsNameTheAccount(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)
	ctx := context.Background()

	sid := "s1234567"
	_, err := f.svc.Register(ctx, RegisterInput{
		Name:            "Alice",
		Email:           "alice@example.com",
		StudentID:       &sid,
		Password:        "hunter22-strong",
		ConfirmPassword: "hunter22-strong",
	})
	require.NoError(t, err)

	byEmail, err := f.svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "hunter22-strong"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byEmail.User.Email)

	byStudentID, err := f.svc.Login(ctx, LoginInput{StudentID: "s1234567", Password: "hunter22-strong"})
	require.NoError(t, err)
	assert.Equal(t, byEmail.User.ID, byStudentID.User.ID)

	// Identifier wins when several fields are set.
	mixed, err := f.svc.Login(ctx, LoginInput{
		Identifier: "alice@example.com",
		Email:      "someone-else@example.com",
		Password:   "hunter22-strong",
	})
	require.NoError(t, err)
	assert.Equal(t, byEmail.User.ID, mixed.User.ID)
}

func TestAccountService_Login_DisplacesPreviousSession(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)
	ctx := context.Background()

	f.register(t, "alice@example.com", "hunter22-strong")
	in := LoginInput{Identifier: "alice@example.com", Password: "hunter22-strong"}

	first, err := f.svc.Login(ctx, in)
	require.NoError(t, err)
	second, err := f.svc.Login(ctx, in)
	require.NoError(t, err)

	assert.NotEqual(t, first.Session.Token, second.Session.Token)
	assert.Equal(t, 1, f.sessions.Count())
}

func TestAccountService_Login_FailureModesAreUniform(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)
	ctx := context.Background()

	f.register(t, "alice@example.com", "hunter22-strong")

	tests := []struct {
		name string
		in   LoginInput
	}{
		{"unknown identifier", LoginInput{Identifier: "nobody@example.com", Password: "hunter22-strong"}},
		{"wrong password", LoginInput{Identifier: "alice@example.com", Password: "wrong-password"}},
		{"empty identifier", LoginInput{Identifier: "  ", Password: "hunter22-strong"}},
		{"empty password", LoginInput{Identifier: "alice@example.com", Password: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Login(ctx, tt.in)
			require.Error(t, err)
			assert.True(t, apperrors.IsUnauthorized(err))

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "Invalid credentials", appErr.Message)
		})
	}

	// Only the session issued at registration; the failed logins minted none.
	assert.Equal(t, 1, f.sessions.Count())
}

func TestAccountService_AdminLogin(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)
	ctx := context.Background()

	admin, err := f.svc.CreateAdmin(ctx, "Site Admin", "admin@example.com", "admin-password-1")
	require.NoError(t, err)
	require.Equal(t, domainauth.RoleAdmin, admin.Role)

	result, err := f.svc.AdminLogin(ctx, LoginInput{
		Identifier: "admin@example.com",
		Password:   "admin-password-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, result.Session.Role)
}

func TestAccountService_AdminLogin_RejectsNonAdmin(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)
	ctx := context.Background()

	f.register(t, "alice@example.com", "hunter22-strong")

	_, err := f.svc.AdminLogin(ctx, LoginInput{
		Identifier: "alice@example.com",
		Password:   "hunter22-strong",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	// Only the session issued at registration survives the rejected login.
	assert.Equal(t, 1, f.sessions.Count())
}

func TestAccountService_AdminLogin_BadCredentialsStayUniform(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)

	_, err := f.svc.AdminLogin(context.Background(), LoginInput{
		Identifier: "nobody@example.com",
		Password:   "whatever-password",
	})
	require.Error(t, err)
	// Credential failure, not a role failure: no account enumeration.
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAccountService_Logout(t *testing.T) {
	t.Parallel()
	f := newAccountFixture(t)
	ctx := context.Background()

	f.register(t, "alice@example.com", "hunter22-strong")
	result, err := f.svc.Login(ctx, LoginInput{Identifier: "alice@example.com", Password: "hunter22-strong"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, result.Session.Token))
	assert.Zero(t, f.sessions.Count())

	// Idempotent.
	assert.NoError(t, f.svc.Logout(ctx, result.Session.Token))
}

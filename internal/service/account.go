package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/campushub/campushub/internal/data"
	"github.com/campushub/campushub/internal/data/cryptoutil"
	domainauth "github.com/campushub/campushub/internal/domain/auth"
	"github.com/campushub/campushub/internal/domain/model"
	apperrors "github.com/campushub/campushub/internal/errors"
	"github.com/campushub/campushub/internal/observability/statsd"
	"github.com/campushub/campushub/internal/ports"
)

// invalidCredentialsMessage is returned for every authentication failure so
// callers cannot tell an unknown identifier from a wrong password.
const invalidCredentialsMessage = "Invalid credentials"

// dummyPasswordHash is compared against when the identifier resolves to no
// account, keeping the failure path's timing close to the real one.
// bcrypt cost 12 digest of an unguessable throwaway value.
const dummyPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	Users      ports.UserRepository // Required: credential store
	Sessions   *SessionService      // Required: session issuance on login
	BcryptCost int                  // Password hash cost; defaults applied by cryptoutil
	Logger     *slog.Logger         // Optional: structured logger
	Metrics    statsd.Sink          // Optional: metrics sink (StatsD-compatible)
}

// AccountService implements registration and credential-based login over the
// user repository.
type AccountService struct {
	users    ports.UserRepository
	sessions *SessionService
	cost     int
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) (*AccountService, error) {
	if opts.Users == nil {
		return nil, errors.New("UserRepository is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("SessionService is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		users:    opts.Users,
		sessions: opts.Sessions,
		cost:     opts.BcryptCost,
		logger:   logger.With("component", "account_service"),
		metrics:  opts.Metrics,
	}, nil
}

// RegisterInput groups parameters for account registration.
type RegisterInput struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	StudentID       *string `json:"studentId"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirmPassword"`
}

// Register creates a new account with the "user" role and signs it in,
// returning the fresh session alongside the user. The password is hashed
// before it ever reaches the repository; the plaintext is never stored or
// logged.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*LoginResult, error) {
	if err := model.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperrors.ValidationField("confirmPassword", "Passwords do not match")
	}

	hash, err := cryptoutil.HashPassword(in.Password, s.cost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}

	params := model.CreateUserParams{
		Name:         strings.TrimSpace(in.Name),
		Email:        data.NormalizeEmail(in.Email),
		StudentID:    normalizeStudentID(in.StudentID),
		PasswordHash: hash,
		Role:         domainauth.RoleUser,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	s.count("account.registered", 1)
	s.logger.Info("account registered", "user_id", user.ID)

	sess, err := s.sessions.Issue(ctx, user.ID, user.Role, nil)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Session: sess}, nil
}

// LoginInput groups parameters for credential login. Clients may name the
// lookup key email or studentId per the public API, or send the generic
// identifier field; all three resolve to the same email-or-student-id lookup.
type LoginInput struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	StudentID  string `json:"studentId"`
	Password   string `json:"password"`
}

// lookupKey returns the first non-blank of identifier, email, studentId.
func (in LoginInput) lookupKey() string {
	for _, v := range []string{in.Identifier, in.Email, in.StudentID} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// LoginResult contains the authenticated user and the issued session.
type LoginResult struct {
	User    *model.User
	Session domainauth.Session
}

// Login verifies credentials and issues a session, displacing any session
// the user already holds. All failure modes return the same unauthorized
// error.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.verifyCredentials(ctx, in)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Issue(ctx, user.ID, user.Role, nil)
	if err != nil {
		return nil, err
	}
	s.count("login.success", 1)
	return &LoginResult{User: user, Session: sess}, nil
}

// AdminLogin is the layered administrative login: the caller has already
// passed the shared-secret gate, and the credentials must additionally
// belong to an admin account.
func (s *AccountService) AdminLogin(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.verifyCredentials(ctx, in)
	if err != nil {
		return nil, err
	}
	if !user.Role.AtLeast(domainauth.RoleAdmin) {
		s.count("login.failure", 1)
		return nil, apperrors.Forbidden("Admin role required")
	}

	sess, err := s.sessions.Issue(ctx, user.ID, user.Role, nil)
	if err != nil {
		return nil, err
	}
	s.count("login.success", 1)
	return &LoginResult{User: user, Session: sess}, nil
}

// CreateAdmin provisions an account with the admin role. It is reached only
// from operator tooling and dev seeding, never from the public surface.
func (s *AccountService) CreateAdmin(ctx context.Context, name, email, password string) (*model.User, error) {
	if err := model.ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := cryptoutil.HashPassword(password, s.cost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}
	params := model.CreateUserParams{
		Name:         strings.TrimSpace(name),
		Email:        data.NormalizeEmail(email),
		PasswordHash: hash,
		Role:         domainauth.RoleAdmin,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.users.Create(ctx, params)
}

// Logout destroys the session behind the given token.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

func (s *AccountService) verifyCredentials(ctx context.Context, in LoginInput) (*model.User, error) {
	identifier := in.lookupKey()
	if identifier == "" || in.Password == "" {
		return nil, apperrors.Unauthorized(invalidCredentialsMessage)
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// Burn a comparison so absent accounts cost the same as
			// wrong passwords.
			_ = cryptoutil.CheckPassword(dummyPasswordHash, in.Password)
			s.count("login.failure", 1)
			return nil, apperrors.Unauthorized(invalidCredentialsMessage)
		}
		return nil, err
	}

	if err := cryptoutil.CheckPassword(user.PasswordHash, in.Password); err != nil {
		if errors.Is(err, cryptoutil.ErrPasswordMismatch) {
			s.count("login.failure", 1)
			return nil, apperrors.Unauthorized(invalidCredentialsMessage)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "verify password")
	}
	return user, nil
}

func (s *AccountService) count(name string, value int64) {
	if s.metrics != nil {
		s.metrics.Count(name, value, nil)
	}
}

func normalizeStudentID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

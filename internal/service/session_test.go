package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/data"
	domainauth "github.com/campushub/campushub/internal/domain/auth"
	"github.com/campushub/campushub/internal/domain/model"
	apperrors "github.com/campushub/campushub/internal/errors"
	mockauth "github.com/campushub/campushub/internal/mocks/auth"
	"github.com/campushub/campushub/internal/observability/statsd"
)

type sessionFixture struct {
	svc      *SessionService
	users    *mockauth.MemoryUserRepo
	sessions *mockauth.MemorySessionRepo
	cache    *mockauth.MemorySessionCache
	clock    *data.FixedTimeProvider
	metrics  *statsd.Recorder
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	clock := data.NewFixedTimeProvider(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	users := mockauth.NewMemoryUserRepo()
	sessions := mockauth.NewMemorySessionRepo()
	sessions.Now = clock.Now
	cache := mockauth.NewMemorySessionCache()
	metrics := statsd.NewRecorder()

	svc, err := NewSessionService(SessionServiceOptions{
		Sessions: sessions,
		Users:    users,
		Cache:    cache,
		TTL:      24 * time.Hour,
		Time:     clock,
		Logger:   slog.Default(),
		Metrics:  metrics,
	})
	require.NoError(t, err)

	return &sessionFixture{
		svc:      svc,
		users:    users,
		sessions: sessions,
		cache:    cache,
		clock:    clock,
		metrics:  metrics,
	}
}

func TestNewSessionService_RequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewSessionService(SessionServiceOptions{Users: mockauth.NewMemoryUserRepo()})
	assert.Error(t, err)

	_, err = NewSessionService(SessionServiceOptions{Sessions: mockauth.NewMemorySessionRepo()})
	assert.Error(t, err)
}

func TestSessionService_Issue(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	sess, err := f.svc.Issue(ctx, "u-1", domainauth.RoleUser, json.RawMessage(`{"theme":"dark"}`))
	require.NoError(t, err)

	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "u-1", sess.UserID)
	assert.Equal(t, domainauth.RoleUser, sess.Role)
	assert.Equal(t, f.clock.Now().Add(24*time.Hour), sess.ExpiresAt)
	assert.Equal(t, 1, f.cache.Puts)
	assert.Equal(t, int64(1), f.metrics.CountTotal("session.issued"))
}

func TestSessionService_Issue_DisplacesPreviousSession(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	first, err := f.svc.Issue(ctx, "u-1", domainauth.RoleUser, nil)
	require.NoError(t, err)
	second, err := f.svc.Issue(ctx, "u-1", domainauth.RoleUser, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, 1, f.sessions.Count())

	_, err = f.sessions.Get(ctx, first.Token)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSessionService_Issue_RevokesDisplacedCacheEntry(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	first, err := f.svc.Issue(ctx, "u-1", domainauth.RoleUser, nil)
	require.NoError(t, err)

	// Warm the cache with the first session, as any request would.
	_, err = f.svc.Get(ctx, first.Token)
	require.NoError(t, err)

	second, err := f.svc.Issue(ctx, "u-1", domainauth.RoleUser, nil)
	require.NoError(t, err)

	// The displaced token must stop resolving immediately, not after the
	// cache entry ages out.
	_, err = f.svc.Get(ctx, first.Token)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))

	got, err := f.svc.Get(ctx, second.Token)
	require.NoError(t, err)
	assert.Equal(t, second.Token, got.Token)
}

func TestSessionService_IssueForUser(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	user, err := f.users.Create(ctx, model.CreateUserParams{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$12$hash",
		Role:         domainauth.RoleAdmin,
	})
	require.NoError(t, err)

	sess, err := f.svc.IssueForUser(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, domainauth.RoleAdmin, sess.Role)

	_, err = f.svc.IssueForUser(ctx, "no-such-user", nil)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSessionService_Get_EmptyToken(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	_, err := f.svc.Get(context.Background(), "")
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestSessionService_Get_UnknownToken(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	_, err := f.svc.Get(context.Background(), "no-such-token")
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestSessionService_Get_CacheHitSkipsRepository(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	issued, err := f.svc.Issue(ctx, "u-1", domainauth.RoleUser, nil)
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, issued.Token, got.Token)
	assert.Equal(t, 1, f.cache.Hits)
}

func TestSessionService_Get_CacheMissFallsThroughAndRefills(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	issued, err := f.svc.Issue(ctx, "u-1", domainauth.RoleUser, nil)
	require.NoError(t, err)
	f.cache.Invalidate(ctx, issued.Token)

	got, err := f.svc.Get(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, issued.Token, got.Token)
	assert.Equal(t, 1, f.cache.Misses)
	// Issue put once, Get refilled once.
	assert.Equal(t, 2, f.cache.Puts)
}

func TestSessionService_Get_ExpiredCacheEntryIsNotTrusted(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	issued, err := f.svc.Issue(ctx, "u-1", domainauth.RoleUser, nil)
	require.NoError(t, err)

	f.clock.AddTime(25 * time.Hour)

	_, err = f.svc.Get(ctx, issued.Token)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestSessionService_Get_ExpiryBoundary(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	issued, err := f.svc.Issue(ctx, "u-1", domainauth.RoleUser, nil)
	require.NoError(t, err)

	f.clock.SetTime(issued.ExpiresAt.Add(-time.Second))
	_, err = f.svc.Get(ctx, issued.Token)
	assert.NoError(t, err)

	// At exactly ExpiresAt the session is expired.
	f.clock.SetTime(issued.ExpiresAt)
	_, err = f.svc.Get(ctx, issued.Token)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestSessionService_Update(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	issued, err := f.svc.Issue(ctx, "u-1", domainauth.RoleUser, nil)
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, issued.Token, json.RawMessage(`{"cart":["CS101"]}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cart":["CS101"]}`, string(updated.Payload))
	// Expiry stays absolute; updates never slide it.
	assert.Equal(t, issued.ExpiresAt, updated.ExpiresAt)

	_, err = f.svc.Update(ctx, "no-such-token", nil)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestSessionService_Destroy(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	issued, err := f.svc.Issue(ctx, "u-1", domainauth.RoleUser, nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Destroy(ctx, issued.Token))
	_, err = f.svc.Get(ctx, issued.Token)
	assert.True(t, apperrors.IsUnauthorized(err))

	// Destroying an absent or empty token is not an error.
	assert.NoError(t, f.svc.Destroy(ctx, issued.Token))
	assert.NoError(t, f.svc.Destroy(ctx, ""))
}

func TestSessionService_CleanupExpired(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.Issue(ctx, "u-1", domainauth.RoleUser, nil)
	require.NoError(t, err)
	_, err = f.svc.Issue(ctx, "u-2", domainauth.RoleUser, nil)
	require.NoError(t, err)

	n, err := f.svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.clock.AddTime(25 * time.Hour)

	n, err = f.svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Zero(t, f.sessions.Count())
	assert.Equal(t, int64(2), f.metrics.CountTotal("session.swept"))
}

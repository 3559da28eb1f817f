package httpx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/campushub/campushub/internal/domain/auth"
	apperrors "github.com/campushub/campushub/internal/errors"
)

// mockSessionResolver is a hand-rolled SessionResolver with a func field so
// each test can script its behavior inline.
type mockSessionResolver struct {
	getFunc func(ctx context.Context, token string) (domainauth.Session, error)
}

func (m *mockSessionResolver) Get(ctx context.Context, token string) (domainauth.Session, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, token)
	}
	return domainauth.Session{}, apperrors.Unauthorized("Invalid or expired session")
}

func resolverFor(sessions map[string]domainauth.Session) *mockSessionResolver {
	return &mockSessionResolver{
		getFunc: func(_ context.Context, token string) (domainauth.Session, error) {
			if sess, ok := sessions[token]; ok {
				return sess, nil
			}
			return domainauth.Session{}, apperrors.Unauthorized("Invalid or expired session")
		},
	}
}

func liveSession(token, userID string, role domainauth.Role) domainauth.Session {
	return domainauth.Session{
		Token:     token,
		UserID:    userID,
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// okHandler records whether it was reached and echoes any session principal.
func okHandler(reached *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		if sess, ok := GetSessionFromContext(r.Context()); ok {
			w.Header().Set("X-Test-User", sess.UserID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func decodeFailure(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	opts := AuthMiddlewareOptions{
		Sessions: resolverFor(map[string]domainauth.Session{
			"good-token": liveSession("good-token", "u-1", domainauth.RoleUser),
		}),
	}

	t.Run("no token", func(t *testing.T) {
		t.Parallel()
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)

		RequireSession(opts)(okHandler(&reached)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Session required", decodeFailure(t, rec))
		assert.False(t, reached)
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(HeaderSessionToken, "bad-token")

		RequireSession(opts)(okHandler(&reached)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("valid token via header", func(t *testing.T) {
		t.Parallel()
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(HeaderSessionToken, "good-token")

		RequireSession(opts)(okHandler(&reached)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
		assert.Equal(t, "u-1", rec.Header().Get("X-Test-User"))
	})

	t.Run("valid token via cookie", func(t *testing.T) {
		t.Parallel()
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: DefaultSessionCookieName, Value: "good-token"})

		RequireSession(opts)(okHandler(&reached)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
	})
}

func TestTokenFromRequest_CookieWinsOverHeader(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sessionId", Value: "cookie-token"})
	req.Header.Set(HeaderSessionToken, "header-token")

	assert.Equal(t, "cookie-token", TokenFromRequest(req, "sessionId"))
}

func TestTokenFromRequest_CustomCookieName(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "campushub_session", Value: "custom-token"})

	assert.Equal(t, "custom-token", TokenFromRequest(req, "campushub_session"))
	assert.Empty(t, TokenFromRequest(req, "sessionId"))
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	opts := AuthMiddlewareOptions{
		Sessions: resolverFor(map[string]domainauth.Session{
			"user-token":  liveSession("user-token", "u-1", domainauth.RoleUser),
			"admin-token": liveSession("admin-token", "u-2", domainauth.RoleAdmin),
		}),
	}

	t.Run("insufficient role", func(t *testing.T) {
		t.Parallel()
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(HeaderSessionToken, "user-token")

		RequireRole(opts, domainauth.RoleAdmin)(okHandler(&reached)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, reached)
	})

	t.Run("sufficient role", func(t *testing.T) {
		t.Parallel()
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(HeaderSessionToken, "admin-token")

		RequireRole(opts, domainauth.RoleAdmin)(okHandler(&reached)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	opts := AuthMiddlewareOptions{
		AdminSecret: "top-secret",
		Sessions: resolverFor(map[string]domainauth.Session{
			"user-token":  liveSession("user-token", "u-1", domainauth.RoleUser),
			"admin-token": liveSession("admin-token", "u-2", domainauth.RoleAdmin),
		}),
	}

	run := func(t *testing.T, mutate func(*http.Request)) (*httptest.ResponseRecorder, bool) {
		t.Helper()
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin-op", nil)
		mutate(req)
		RequireAdmin(opts)(okHandler(&reached)).ServeHTTP(rec, req)
		return rec, reached
	}

	t.Run("valid secret alone passes", func(t *testing.T) {
		t.Parallel()
		rec, reached := run(t, func(r *http.Request) {
			r.Header.Set(HeaderAdminSecret, "top-secret")
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
	})

	t.Run("valid secret via query param passes", func(t *testing.T) {
		t.Parallel()
		rec, reached := run(t, func(r *http.Request) {
			q := r.URL.Query()
			q.Set("adminSecret", "top-secret")
			r.URL.RawQuery = q.Encode()
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
	})

	t.Run("admin session alone passes", func(t *testing.T) {
		t.Parallel()
		rec, reached := run(t, func(r *http.Request) {
			r.Header.Set(HeaderSessionToken, "admin-token")
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
		assert.Equal(t, "u-2", rec.Header().Get("X-Test-User"))
	})

	t.Run("user session is forbidden", func(t *testing.T) {
		t.Parallel()
		rec, reached := run(t, func(r *http.Request) {
			r.Header.Set(HeaderSessionToken, "user-token")
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, reached)
	})

	t.Run("nothing presented is unauthorized", func(t *testing.T) {
		t.Parallel()
		rec, reached := run(t, func(*http.Request) {})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("wrong secret fails closed even with admin session", func(t *testing.T) {
		t.Parallel()
		rec, reached := run(t, func(r *http.Request) {
			r.Header.Set(HeaderAdminSecret, "wrong-secret")
			r.Header.Set(HeaderSessionToken, "admin-token")
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, reached)
	})

	t.Run("valid secret with session attributes the principal", func(t *testing.T) {
		t.Parallel()
		rec, reached := run(t, func(r *http.Request) {
			r.Header.Set(HeaderAdminSecret, "top-secret")
			r.Header.Set(HeaderSessionToken, "user-token")
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
		assert.Equal(t, "u-1", rec.Header().Get("X-Test-User"))
	})

	t.Run("valid secret in the request body passes", func(t *testing.T) {
		t.Parallel()
		var reached bool
		var downstreamBody []byte
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			var err error
			downstreamBody, err = io.ReadAll(r.Body)
			require.NoError(t, err)
			w.WriteHeader(http.StatusOK)
		})

		body := `{"adminSecret":"top-secret","identifier":"admin@example.com"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin-op", strings.NewReader(body))
		RequireAdmin(opts)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
		// The gate's peek leaves the body intact for the handler.
		assert.JSONEq(t, body, string(downstreamBody))
	})

	t.Run("wrong secret in the request body is forbidden", func(t *testing.T) {
		t.Parallel()
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin-op",
			strings.NewReader(`{"adminSecret":"wrong-secret"}`))
		req.Header.Set(HeaderSessionToken, "admin-token")
		RequireAdmin(opts)(okHandler(&reached)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, reached)
	})

	t.Run("unset secret never matches", func(t *testing.T) {
		t.Parallel()
		noSecret := opts
		noSecret.AdminSecret = ""
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin-op", nil)
		req.Header.Set(HeaderAdminSecret, "")
		RequireAdmin(noSecret)(okHandler(&reached)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, reached)
	})
}

func TestRequireAdminSecret(t *testing.T) {
	t.Parallel()

	opts := AuthMiddlewareOptions{AdminSecret: "top-secret"}

	t.Run("correct secret passes", func(t *testing.T) {
		t.Parallel()
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin-login", nil)
		req.Header.Set(HeaderAdminSecret, "top-secret")

		RequireAdminSecret(opts)(okHandler(&reached)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
	})

	t.Run("wrong secret is forbidden", func(t *testing.T) {
		t.Parallel()
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin-login", nil)
		req.Header.Set(HeaderAdminSecret, "wrong")

		RequireAdminSecret(opts)(okHandler(&reached)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, reached)
	})

	t.Run("missing secret is forbidden", func(t *testing.T) {
		t.Parallel()
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin-login", nil)

		RequireAdminSecret(opts)(okHandler(&reached)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, reached)
	})
}

func TestOptionalSession(t *testing.T) {
	t.Parallel()

	opts := AuthMiddlewareOptions{
		Sessions: resolverFor(map[string]domainauth.Session{
			"good-token": liveSession("good-token", "u-1", domainauth.RoleUser),
		}),
	}

	t.Run("without token continues anonymously", func(t *testing.T) {
		t.Parallel()
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/public", nil)

		OptionalSession(opts)(okHandler(&reached)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
		assert.Empty(t, rec.Header().Get("X-Test-User"))
	})

	t.Run("with token resolves the session", func(t *testing.T) {
		t.Parallel()
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set(HeaderSessionToken, "good-token")

		OptionalSession(opts)(okHandler(&reached)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u-1", rec.Header().Get("X-Test-User"))
	})
}

func TestRecover(t *testing.T) {
	t.Parallel()

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	Recover(discardLogger())(panicking).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeFailure(t, rec))
}

func TestBrowserDetection(t *testing.T) {
	t.Parallel()

	var sawBrowser bool
	inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		sawBrowser = IsBrowserRequest(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	BrowserDetection()(inner).ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, sawBrowser)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")
	BrowserDetection()(inner).ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, sawBrowser)
}

func TestUnauthorizedResponse_HTMLForBrowsers(t *testing.T) {
	t.Parallel()

	opts := AuthMiddlewareOptions{Sessions: resolverFor(nil)}

	var reached bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Accept", "text/html")

	RequireSession(opts)(okHandler(&reached)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Session required")
}

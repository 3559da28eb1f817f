package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/campushub/campushub/internal/domain/auth"
)

// SessionResolver resolves a bearer token to a live session. The concrete
// implementation is service.SessionService; the interface keeps middleware
// testable with fakes.
type SessionResolver interface {
	Get(ctx context.Context, token string) (domainauth.Session, error)
}

// AuthMiddlewareOptions groups the dependencies of the session gates.
type AuthMiddlewareOptions struct {
	Sessions    SessionResolver
	CookieName  string
	AdminSecret domainauth.AdminSecret
}

func (o AuthMiddlewareOptions) cookieName() string {
	if o.CookieName == "" {
		return DefaultSessionCookieName
	}
	return o.CookieName
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					WriteFailure(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession returns a middleware that rejects requests without a live
// session. The verified session is stored in the request context.
func RequireSession(opts AuthMiddlewareOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromRequest(r, opts)
			if session == nil {
				WriteAppErrorUnauthorized(w, r)
				return
			}
			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware that requires a live session carrying at
// least the given role.
func RequireRole(opts AuthMiddlewareOptions, required domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromRequest(r, opts)
			if session == nil {
				WriteAppErrorUnauthorized(w, r)
				return
			}
			if !session.Role.AtLeast(required) {
				writeForbidden(w, r)
				return
			}
			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin is the unified administrative gate: the request passes when it
// carries the shared admin secret, or when its session principal holds the
// admin role. A request presenting a wrong secret is rejected outright even
// if it also carries an admin session.
func RequireAdmin(opts AuthMiddlewareOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret, present := adminSecretFromRequest(r); present {
				if !opts.AdminSecret.Matches(secret) {
					writeForbidden(w, r)
					return
				}
				// Secret holders may also carry a session; resolve it
				// so handlers can attribute actions when one exists.
				if session := getSessionFromRequest(r, opts); session != nil {
					r = r.WithContext(SetSessionInContext(r.Context(), session))
				}
				next.ServeHTTP(w, r)
				return
			}

			session := getSessionFromRequest(r, opts)
			if session == nil {
				WriteAppErrorUnauthorized(w, r)
				return
			}
			if !session.Role.AtLeast(domainauth.RoleAdmin) {
				writeForbidden(w, r)
				return
			}
			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdminSecret returns a middleware that only the shared secret passes.
// It fronts the admin-login endpoint, whose handler then additionally
// verifies admin credentials.
func RequireAdminSecret(opts AuthMiddlewareOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret, present := adminSecretFromRequest(r)
			if !present || !opts.AdminSecret.Matches(secret) {
				writeForbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// OptionalSession resolves a session when one is presented and continues
// either way.
func OptionalSession(opts AuthMiddlewareOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session := getSessionFromRequest(r, opts); session != nil {
				r = r.WithContext(SetSessionInContext(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// getSessionFromRequest extracts the token (cookie first, then header) and
// resolves it to a live session. Any failure yields nil; the caller decides
// whether that is fatal.
func getSessionFromRequest(r *http.Request, opts AuthMiddlewareOptions) *domainauth.Session {
	token := TokenFromRequest(r, opts.cookieName())
	if token == "" || opts.Sessions == nil {
		return nil
	}
	session, err := opts.Sessions.Get(r.Context(), token)
	if err != nil {
		return nil
	}
	return &session
}

// TokenFromRequest returns the presented session token: the session cookie
// when present, otherwise the x-session-id header.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return strings.TrimSpace(r.Header.Get(HeaderSessionToken))
}

// adminSecretFromRequest reports the presented secret and whether one was
// presented at all, checking the header, the query string, and a JSON body
// field in that order. Presence matters: a wrong secret must fail closed,
// not fall through to the session path.
func adminSecretFromRequest(r *http.Request) (string, bool) {
	if values, ok := r.Header[http.CanonicalHeaderKey(HeaderAdminSecret)]; ok && len(values) > 0 {
		return values[0], true
	}
	if r.URL.Query().Has("adminSecret") {
		return r.URL.Query().Get("adminSecret"), true
	}
	return adminSecretFromBody(r)
}

// maxSecretPeekBytes bounds how much of a request body the admin gates will
// buffer while looking for a body-borne secret.
const maxSecretPeekBytes = 1 << 20

// adminSecretFromBody peeks a JSON body for an adminSecret field. The body is
// restored afterwards so the handler can decode it normally.
func adminSecretFromBody(r *http.Request) (string, bool) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", false
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSecretPeekBytes))
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	var fields struct {
		AdminSecret *string `json:"adminSecret"`
	}
	if json.Unmarshal(body, &fields) != nil || fields.AdminSecret == nil {
		return "", false
	}
	return *fields.AdminSecret, true
}

// WriteAppErrorUnauthorized writes the uniform 401 response for missing,
// invalid, or expired sessions.
func WriteAppErrorUnauthorized(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		writeErrorPage(w, http.StatusUnauthorized, "Session required")
		return
	}
	WriteFailure(w, http.StatusUnauthorized, "Session required")
}

func writeForbidden(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		writeErrorPage(w, http.StatusForbidden, "Forbidden")
		return
	}
	WriteFailure(w, http.StatusForbidden, "Forbidden")
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection returns a middleware that detects browser requests vs API
// requests so error responses can pick HTML or JSON.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isBrowser := isBrowserRequest(r)
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if val := r.Context().Value(browserRequestKey{}); val != nil {
		if isBrowser, ok := val.(bool); ok {
			return isBrowser
		}
	}
	// Fallback to direct detection if middleware wasn't used
	return isBrowserRequest(r)
}

// isBrowserRequest reports whether the Accept header negotiates HTML.
func isBrowserRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}

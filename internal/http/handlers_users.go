// Package httpx provides the HTTP surface of the campushub API.
package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/campushub/campushub/internal/domain/auth"
	"github.com/campushub/campushub/internal/service"
)

// AccountServiceInterface defines the account operations the handlers need.
type AccountServiceInterface interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.LoginResult, error)
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
	AdminLogin(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

// UserHandlers provides HTTP handlers for registration and login.
type UserHandlers struct {
	Svc          AccountServiceInterface
	CookieName   string
	CookieDomain string
	IsDev        bool
	Logger       *slog.Logger
}

func (h *UserHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UserHandlers) cookieName() string {
	if h.CookieName == "" {
		return DefaultSessionCookieName
	}
	return h.CookieName
}

// Register handles POST /api/users/register. A new account is signed in
// immediately: the response carries a fresh session cookie like login does.
func (h *UserHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !DecodeJSON(w, r, &in) {
		return
	}

	result, err := h.Svc.Register(r.Context(), in)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.logger().Info("user registered", "user_id", result.User.ID)
	h.setSessionCookie(w, result.Session)
	WriteSuccess(w, http.StatusCreated, loginResponse(result))
}

// Login handles POST /api/users/login. A successful login sets the session
// cookie and returns the token so header-based clients can use it too.
func (h *UserHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !DecodeJSON(w, r, &in) {
		return
	}

	result, err := h.Svc.Login(r.Context(), in)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.setSessionCookie(w, result.Session)
	WriteSuccess(w, http.StatusOK, loginResponse(result))
}

// AdminLogin handles POST /api/users/admin-login. The route is fronted by the
// shared-secret gate; the handler additionally requires admin credentials, so
// neither factor alone grants an admin session.
func (h *UserHandlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !DecodeJSON(w, r, &in) {
		return
	}

	result, err := h.Svc.AdminLogin(r.Context(), in)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.setSessionCookie(w, result.Session)
	WriteSuccess(w, http.StatusOK, loginResponse(result))
}

// Logout handles POST /api/users/logout. Destroys the presented session and
// clears the cookie; absent sessions are not an error.
func (h *UserHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	token := TokenFromRequest(r, h.cookieName())
	if err := h.Svc.Logout(r.Context(), token); err != nil {
		WriteAppError(w, r, err)
		return
	}
	h.clearSessionCookie(w)
	WriteSuccess(w, http.StatusOK, map[string]bool{"loggedOut": true})
}

// Me handles GET /api/users/me, returning the acting principal's identity.
func (h *UserHandlers) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteAppErrorUnauthorized(w, r)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]any{
		"userId":    session.UserID,
		"role":      session.Role,
		"expiresAt": session.ExpiresAt,
	})
}

func loginResponse(result *service.LoginResult) map[string]any {
	return map[string]any{
		"user":      result.User.Public(),
		"sessionId": result.Session.Token,
		"expiresAt": result.Session.ExpiresAt,
	}
}

func (h *UserHandlers) setSessionCookie(w http.ResponseWriter, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName(),
		Value:    s.Token,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   !h.IsDev,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

func (h *UserHandlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName(),
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   !h.IsDev,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}

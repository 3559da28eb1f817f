package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	domainauth "github.com/campushub/campushub/internal/domain/auth"
)

// SessionServiceInterface defines the session operations the handlers need.
type SessionServiceInterface interface {
	IssueForUser(ctx context.Context, userID string, payload json.RawMessage) (domainauth.Session, error)
	Get(ctx context.Context, token string) (domainauth.Session, error)
	Update(ctx context.Context, token string, payload json.RawMessage) (domainauth.Session, error)
	Destroy(ctx context.Context, token string) error
	CleanupExpired(ctx context.Context) (int64, error)
}

// SessionHandlers provides HTTP handlers for direct session manipulation.
// Create and Cleanup sit behind the admin gate; the rest operate on the
// caller's own presented token.
type SessionHandlers struct {
	Svc          SessionServiceInterface
	CookieName   string
	CookieDomain string
	IsDev        bool
}

func (h *SessionHandlers) cookieName() string {
	if h.CookieName == "" {
		return DefaultSessionCookieName
	}
	return h.CookieName
}

// Create handles POST /api/session/create: admin-driven issuance of a
// session for the identified user, displacing any session they hold.
func (h *SessionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string          `json:"userId"`
		Payload json.RawMessage `json:"payload"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		WriteFailure(w, http.StatusBadRequest, "userId is required")
		return
	}

	sess, err := h.Svc.IssueForUser(r.Context(), req.UserID, req.Payload)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusCreated, sess)
}

// Get handles GET /api/session/get: resolves the caller's presented token.
func (h *SessionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	token := TokenFromRequest(r, h.cookieName())
	sess, err := h.Svc.Get(r.Context(), token)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, sess)
}

// Update handles PUT /api/session/update: replaces the payload of the
// caller's live session.
func (h *SessionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Payload json.RawMessage `json:"payload"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	token := TokenFromRequest(r, h.cookieName())
	sess, err := h.Svc.Update(r.Context(), token, req.Payload)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, sess)
}

// Destroy handles DELETE /api/session/destroy. Destroying an absent session
// succeeds; the end state is the same either way. Browser callers also get
// their session cookie cleared so the dead token is not re-presented.
func (h *SessionHandlers) Destroy(w http.ResponseWriter, r *http.Request) {
	token := TokenFromRequest(r, h.cookieName())
	if err := h.Svc.Destroy(r.Context(), token); err != nil {
		WriteAppError(w, r, err)
		return
	}
	if _, err := r.Cookie(h.cookieName()); err == nil {
		h.clearSessionCookie(w)
	}
	WriteSuccess(w, http.StatusOK, map[string]bool{"destroyed": true})
}

func (h *SessionHandlers) clearSessionCookie(w http.ResponseWriter) {
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

// Cleanup handles POST /api/session/cleanup: admin-gated bulk removal of
// expired sessions.
func (h *SessionHandlers) Cleanup(w http.ResponseWriter, r *http.Request) {
	n, err := h.Svc.CleanupExpired(r.Context())
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]int64{"removed": n})
}

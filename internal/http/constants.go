package httpx

const (
	// HeaderSessionToken carries the session token for non-browser clients.
	HeaderSessionToken = "x-session-id"
	// HeaderAdminSecret carries the shared administrative bypass secret.
	HeaderAdminSecret = "x-admin-secret"

	// DefaultSessionCookieName is the cookie browsers use for the token.
	DefaultSessionCookieName = "sessionId"

	defaultListLimit = 25
	maxListLimit     = 100
)

package config

import (
	"time"

	"github.com/campushub/campushub/internal/data/cryptoutil"
)

// AuthConfig groups authentication, session, and password hashing settings.
type AuthConfig struct {
	// AdminSecret is the shared administrative bypass credential. It is
	// injected into the authorization gate at construction; the process
	// refuses to start without it.
	AdminSecret string `env:"ADMIN_SECRET,required"`

	// SessionTTL is the absolute lifetime of an issued session. Expiry is
	// fixed at issuance; sessions never renew on use.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// BcryptCost is the bcrypt cost factor for password hashing.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`

	// SessionCookieName is the cookie under which the session token rides.
	SessionCookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sessionId"`
}

// Sanitize applies guardrails to authentication configuration.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 24 * time.Hour
	}
	if a.BcryptCost < cryptoutil.MinPasswordCost {
		a.BcryptCost = cryptoutil.DefaultPasswordCost
	}
	if a.SessionCookieName == "" {
		a.SessionCookieName = "sessionId"
	}
}

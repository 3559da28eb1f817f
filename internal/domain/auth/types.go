package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"crypto/subtle"
	"encoding/json"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the defined values.
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleUser }

// level orders the roles for AtLeast; unknown roles rank below every
// defined role.
func (r Role) level() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	default:
		return 0
	}
}

// AtLeast reports whether this role satisfies the required role.
// Hierarchy: user < admin.
func (r Role) AtLeast(required Role) bool {
	have, want := r.level(), required.level()
	return have > 0 && want > 0 && have >= want
}

// Principal is the resolved acting identity for a request. The authorization
// gate resolves it once per request from a verified session token and
// handlers consult it for ownership and role decisions.
type Principal struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// Session is the server-side record persisted for an authenticated user.
// Token is an opaque, high-entropy identifier; the session is a bearer
// capability bounded by ExpiresAt (absolute, never sliding).
type Session struct {
	Token     string          `json:"token"`
	UserID    string          `json:"user_id"`
	Role      Role            `json:"role"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Expired reports whether the session is past its absolute expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Principal returns the acting identity this session represents.
func (s Session) Principal() Principal {
	return Principal{UserID: s.UserID, Role: s.Role}
}

// AdminSecret is the process-wide shared administrative bypass credential.
// It is injected at construction time from configuration, never read from
// ambient global state, so gates are testable with fake secrets.
type AdminSecret string

// Matches compares a candidate against the secret in constant time.
// An empty configured secret never matches.
func (s AdminSecret) Matches(candidate string) bool {
	if s == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s), []byte(candidate)) == 1
}

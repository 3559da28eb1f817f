package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/data and internal/adapters; orchestration
// in internal/service.

import (
	"context"

	domainauth "github.com/campushub/campushub/internal/domain/auth"
	"github.com/campushub/campushub/internal/domain/model"
)

// UserRepository persists and retrieves user accounts (the credential store).
type UserRepository interface {
	Create(ctx context.Context, p model.CreateUserParams) (*model.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) (bool, error)
}

// SessionRepository is the authoritative store for server-side sessions.
type SessionRepository interface {
	// Replace atomically installs sess as the single active session for
	// its user. It returns the token of the session it displaced, or ""
	// when the user had none, so callers can revoke derived state such as
	// cache entries.
	Replace(ctx context.Context, sess domainauth.Session) (displaced string, err error)
	// Get returns the live (non-expired) session for token.
	Get(ctx context.Context, token string) (domainauth.Session, error)
	// UpdatePayload overwrites the stored payload iff the session is live.
	UpdatePayload(ctx context.Context, token string, payload []byte) (domainauth.Session, error)
	// Delete removes the session unconditionally (idempotent).
	Delete(ctx context.Context, token string) error
	// DeleteExpired bulk-removes sessions past expiry.
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionCache is an optional read-through cache in front of the
// SessionRepository. Implementations must treat failures as misses; the
// repository remains the source of truth.
type SessionCache interface {
	Get(ctx context.Context, token string) (domainauth.Session, bool)
	Put(ctx context.Context, sess domainauth.Session)
	Invalidate(ctx context.Context, token string)
}

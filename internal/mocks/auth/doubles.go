package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/campushub/campushub/internal/domain/auth"
	"github.com/campushub/campushub/internal/domain/model"
	apperrors "github.com/campushub/campushub/internal/errors"
	"github.com/campushub/campushub/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.UserRepository    = (*MemoryUserRepo)(nil)
	_ ports.SessionRepository = (*MemorySessionRepo)(nil)
	_ ports.SessionCache      = (*MemorySessionCache)(nil)
)

// MemoryUserRepo is an in-memory ports.UserRepository.
type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by ID
}

// NewMemoryUserRepo creates an empty in-memory user repository.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: map[string]*model.User{}}
}

// Create stores a new user, enforcing the email and student-id uniqueness
// the real schema guarantees.
func (r *MemoryUserRepo) Create(_ context.Context, p model.CreateUserParams) (*model.User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == p.Email {
			return nil, apperrors.ConflictField("email", "Email already registered")
		}
		if u.StudentID != nil && p.StudentID != nil && *u.StudentID == *p.StudentID {
			return nil, apperrors.ConflictField("student_id", "Student id already registered")
		}
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Name:         p.Name,
		Email:        p.Email,
		StudentID:    p.StudentID,
		PasswordHash: p.PasswordHash,
		Role:         p.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[user.ID] = user
	copied := *user
	return &copied, nil
}

// FindByIdentifier matches email or student id.
func (r *MemoryUserRepo) FindByIdentifier(_ context.Context, identifier string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == identifier || (u.StudentID != nil && *u.StudentID == identifier) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("User not found")
}

// GetByID returns the user with the given id.
func (r *MemoryUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.NotFound("User not found")
}

// UpdatePassword replaces the stored hash.
func (r *MemoryUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.NotFound("User not found")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes the user.
func (r *MemoryUserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

// SetRole mutates a stored user's role directly; useful for testing role
// propagation.
func (r *MemoryUserRepo) SetRole(id string, role domainauth.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.Role = role
	}
}

// MemorySessionRepo is an in-memory ports.SessionRepository implementing the
// same single-session-per-user semantics as the Postgres store.
type MemorySessionRepo struct {
	mu       sync.Mutex
	byToken  map[string]domainauth.Session
	tokenFor map[string]string // user id -> active token
	Now      func() time.Time  // Optional clock override
}

// NewMemorySessionRepo creates an empty in-memory session repository.
func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{
		byToken:  map[string]domainauth.Session{},
		tokenFor: map[string]string{},
	}
}

func (r *MemorySessionRepo) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

// Replace installs sess as the user's only session, displacing any previous
// one and reporting its token.
func (r *MemorySessionRepo) Replace(_ context.Context, sess domainauth.Session) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var displaced string
	if prev, ok := r.tokenFor[sess.UserID]; ok && prev != sess.Token {
		delete(r.byToken, prev)
		displaced = prev
	}
	r.byToken[sess.Token] = sess
	r.tokenFor[sess.UserID] = sess.Token
	return displaced, nil
}

// Get returns the live session for token.
func (r *MemorySessionRepo) Get(_ context.Context, token string) (domainauth.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.byToken[token]
	if !ok || sess.Expired(r.now()) {
		return domainauth.Session{}, apperrors.NotFound("Session not found")
	}
	return sess, nil
}

// UpdatePayload overwrites the payload of a live session.
func (r *MemorySessionRepo) UpdatePayload(_ context.Context, token string, payload []byte) (domainauth.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.byToken[token]
	if !ok || sess.Expired(r.now()) {
		return domainauth.Session{}, apperrors.NotFound("Session not found")
	}
	sess.Payload = payload
	sess.UpdatedAt = r.now()
	r.byToken[token] = sess
	return sess, nil
}

// Delete removes the session unconditionally.
func (r *MemorySessionRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.byToken[token]; ok {
		delete(r.byToken, token)
		if r.tokenFor[sess.UserID] == token {
			delete(r.tokenFor, sess.UserID)
		}
	}
	return nil
}

// DeleteExpired removes sessions past expiry.
func (r *MemorySessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	var n int64
	for token, sess := range r.byToken {
		if sess.Expired(now) {
			delete(r.byToken, token)
			if r.tokenFor[sess.UserID] == token {
				delete(r.tokenFor, sess.UserID)
			}
			n++
		}
	}
	return n, nil
}

// Count reports how many sessions are stored, expired or not.
func (r *MemorySessionRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byToken)
}

// MemorySessionCache is an in-memory ports.SessionCache with hit/miss
// counters for assertions.
type MemorySessionCache struct {
	mu      sync.Mutex
	entries map[string]domainauth.Session

	Hits   int
	Misses int
	Puts   int
}

// NewMemorySessionCache creates an empty cache.
func NewMemorySessionCache() *MemorySessionCache {
	return &MemorySessionCache{entries: map[string]domainauth.Session{}}
}

// Get returns the cached session for token.
func (c *MemorySessionCache) Get(_ context.Context, token string) (domainauth.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sess, ok := c.entries[token]
	if ok {
		c.Hits++
	} else {
		c.Misses++
	}
	return sess, ok
}

// Put stores a session.
func (c *MemorySessionCache) Put(_ context.Context, sess domainauth.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Puts++
	c.entries[sess.Token] = sess
}

// Invalidate drops the entry for token.
func (c *MemorySessionCache) Invalidate(_ context.Context, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, token)
}

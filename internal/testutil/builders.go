package testutil

import (
	"time"

	"github.com/campushub/campushub/internal/data/cryptoutil"
	domainauth "github.com/campushub/campushub/internal/domain/auth"
	"github.com/campushub/campushub/internal/domain/model"
)

// UserParamsBuilder provides a fluent interface for building CreateUserParams for testing.
type UserParamsBuilder struct {
	params model.CreateUserParams
}

// NewUserParams creates a new UserParamsBuilder with sensible defaults.
// The password hash corresponds to "test-password-1" at the minimum cost.
func NewUserParams() *UserParamsBuilder {
	hash, err := cryptoutil.HashPassword("test-password-1", cryptoutil.MinPasswordCost)
	if err != nil {
		panic(err)
	}
	return &UserParamsBuilder{
		params: model.CreateUserParams{
			Name:         "Test User",
			Email:        "test.user@example.com",
			PasswordHash: hash,
			Role:         domainauth.RoleUser,
		},
	}
}

// WithName sets the display name.
func (b *UserParamsBuilder) WithName(name string) *UserParamsBuilder {
	b.params.Name = name
	return b
}

// WithEmail sets the email address.
func (b *UserParamsBuilder) WithEmail(email string) *UserParamsBuilder {
	b.params.Email = email
	return b
}

// WithStudentID sets the student identifier.
func (b *UserParamsBuilder) WithStudentID(id string) *UserParamsBuilder {
	b.params.StudentID = &id
	return b
}

// WithPassword sets the password, hashing it at the minimum cost.
func (b *UserParamsBuilder) WithPassword(password string) *UserParamsBuilder {
	hash, err := cryptoutil.HashPassword(password, cryptoutil.MinPasswordCost)
	if err != nil {
		panic(err)
	}
	b.params.PasswordHash = hash
	return b
}

// WithRole sets the role.
func (b *UserParamsBuilder) WithRole(role domainauth.Role) *UserParamsBuilder {
	b.params.Role = role
	return b
}

// Build returns the constructed CreateUserParams.
func (b *UserParamsBuilder) Build() model.CreateUserParams {
	return b.params
}

// SessionBuilder provides a fluent interface for building sessions for testing.
type SessionBuilder struct {
	sess domainauth.Session
}

// NewSession creates a new SessionBuilder with sensible defaults.
func NewSession() *SessionBuilder {
	token, err := cryptoutil.NewSessionToken()
	if err != nil {
		panic(err)
	}
	now := time.Now().UTC()
	return &SessionBuilder{
		sess: domainauth.Session{
			Token:     token,
			UserID:    "00000000-0000-0000-0000-000000000001",
			Role:      domainauth.RoleUser,
			CreatedAt: now,
			UpdatedAt: now,
			ExpiresAt: now.Add(24 * time.Hour),
		},
	}
}

// WithToken sets the token.
func (b *SessionBuilder) WithToken(token string) *SessionBuilder {
	b.sess.Token = token
	return b
}

// WithUserID sets the owning user.
func (b *SessionBuilder) WithUserID(id string) *SessionBuilder {
	b.sess.UserID = id
	return b
}

// WithRole sets the role.
func (b *SessionBuilder) WithRole(role domainauth.Role) *SessionBuilder {
	b.sess.Role = role
	return b
}

// WithExpiresAt sets the absolute expiry.
func (b *SessionBuilder) WithExpiresAt(t time.Time) *SessionBuilder {
	b.sess.ExpiresAt = t
	return b
}

// Expired backdates the expiry relative to now.
func (b *SessionBuilder) Expired() *SessionBuilder {
	b.sess.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	return b
}

// Build returns the constructed session.
func (b *SessionBuilder) Build() domainauth.Session {
	return b.sess
}

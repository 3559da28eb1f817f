//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/mail"
	"strings"
	"time"

	apperrors "github.com/campushub/campushub/internal/errors"
	domainauth "github.com/campushub/campushub/internal/domain/auth"
)

const (
	maxNameLen     = 255
	maxEmailLen    = 320
	minPasswordLen = 8
)

// User represents an account record in the users table. PasswordHash is the
// bcrypt digest and is never serialized to callers.
type User struct {
	ID           string          `json:"id"         db:"id"`
	Name         string          `json:"name"       db:"name"`
	Email        string          `json:"email"      db:"email"`
	StudentID    *string         `json:"studentId"  db:"student_id"`
	PasswordHash string          `json:"-"          db:"password_hash"`
	Role         domainauth.Role `json:"role"       db:"role"`
	CreatedAt    time.Time       `json:"createdAt"  db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt"  db:"updated_at"`
}

// PublicView is the caller-facing shape of a user record.
type PublicView struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	StudentID *string         `json:"studentId,omitempty"`
	Role      domainauth.Role `json:"role"`
}

// Public returns the view of the user safe to return to callers.
func (u *User) Public() PublicView {
	return PublicView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		StudentID: u.StudentID,
		Role:      u.Role,
	}
}

// CreateUserParams carries the persistence-ready fields for a new user.
// The password has already been hashed by the caller.
type CreateUserParams struct {
	Name         string
	Email        string
	StudentID    *string
	PasswordHash string
	Role         domainauth.Role
}

// Validate checks persistence invariants for a new user row.
func (p *CreateUserParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.ValidationField("name", "Name is required")
	}
	if utf8Len(p.Name) > maxNameLen {
		return apperrors.ValidationField("name", "Name is too long")
	}
	if err := ValidateEmail(p.Email); err != nil {
		return err
	}
	if p.StudentID != nil && strings.TrimSpace(*p.StudentID) == "" {
		return apperrors.ValidationField("studentId", "Student id must not be blank")
	}
	if p.PasswordHash == "" {
		return apperrors.ValidationField("password", "Password hash is required")
	}
	if !p.Role.Valid() {
		return apperrors.ValidationField("role", "Role must be user or admin")
	}
	return nil
}

// ValidateEmail checks that the address is present and parseable.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.ValidationField("email", "Email is required")
	}
	if len(email) > maxEmailLen {
		return apperrors.ValidationField("email", "Email is too long")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.ValidationField("email", "Email is not a valid address")
	}
	return nil
}

// ValidatePassword enforces the minimum password policy for registration
// and password changes.
func ValidatePassword(password string) error {
	if password == "" {
		return apperrors.ValidationField("password", "Password is required")
	}
	if len(password) < minPasswordLen {
		return apperrors.ValidationField("password", "Password must be at least 8 characters")
	}
	return nil
}

func utf8Len(s string) int { return len([]rune(s)) }

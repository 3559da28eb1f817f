package model

import (
	"strings"
	"time"

	apperrors "github.com/campushub/campushub/internal/errors"
)

const (
	maxModuleCodeLen  = 32
	maxModuleTitleLen = 255
)

// CourseModule represents a taught module in the course catalogue.
type CourseModule struct {
	ID          string    `json:"id"          db:"id"`
	Code        string    `json:"code"        db:"code"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	Lecturer    string    `json:"lecturer"    db:"lecturer"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

// CreateCourseModuleRequest carries the fields to create a module.
type CreateCourseModuleRequest struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Lecturer    string `json:"lecturer"`
}

// Validate checks required fields and length limits.
func (r *CreateCourseModuleRequest) Validate() error {
	code := strings.TrimSpace(r.Code)
	if code == "" {
		return apperrors.ValidationField("code", "Module code is required")
	}
	if len(code) > maxModuleCodeLen {
		return apperrors.ValidationField("code", "Module code is too long")
	}
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.ValidationField("title", "Title is required")
	}
	if len([]rune(r.Title)) > maxModuleTitleLen {
		return apperrors.ValidationField("title", "Title is too long")
	}
	return nil
}

// UpdateCourseModuleRequest carries the optional fields of a module update.
// Nil fields are left unchanged.
type UpdateCourseModuleRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Lecturer    *string `json:"lecturer"`
}

// Validate rejects blank overwrites of required fields.
func (r *UpdateCourseModuleRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return apperrors.ValidationField("title", "Title must not be blank")
	}
	if r.Title != nil && len([]rune(*r.Title)) > maxModuleTitleLen {
		return apperrors.ValidationField("title", "Title is too long")
	}
	return nil
}

package model

import (
	"strings"
	"time"

	apperrors "github.com/campushub/campushub/internal/errors"
)

const maxPostTitleLen = 255

// BlogPost represents a student blog/portfolio entry. AuthorID ties the post
// to the user whose principal may edit it.
type BlogPost struct {
	ID        string    `json:"id"        db:"id"`
	AuthorID  string    `json:"authorId"  db:"author_id"`
	Title     string    `json:"title"     db:"title"`
	Body      string    `json:"body"      db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateBlogPostRequest carries the fields to create a post. The author is
// taken from the resolved principal, never from the request body.
type CreateBlogPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Validate checks required fields and length limits.
func (r *CreateBlogPostRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.ValidationField("title", "Title is required")
	}
	if len([]rune(r.Title)) > maxPostTitleLen {
		return apperrors.ValidationField("title", "Title is too long")
	}
	if strings.TrimSpace(r.Body) == "" {
		return apperrors.ValidationField("body", "Body is required")
	}
	return nil
}

// UpdateBlogPostRequest carries the optional fields of a post update.
type UpdateBlogPostRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// Validate rejects blank overwrites.
func (r *UpdateBlogPostRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return apperrors.ValidationField("title", "Title must not be blank")
	}
	if r.Body != nil && strings.TrimSpace(*r.Body) == "" {
		return apperrors.ValidationField("body", "Body must not be blank")
	}
	return nil
}

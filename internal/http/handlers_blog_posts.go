package httpx

import (
	"net/http"

	"github.com/campushub/campushub/internal/domain/model"
	"github.com/campushub/campushub/internal/service"
)

// BlogPostHandlers provides HTTP handlers for authored posts. Reads are
// public; create requires a session, and update/delete go through the
// service's author-or-admin check.
type BlogPostHandlers struct {
	Svc *service.BlogPostService
}

// Create handles POST /api/blog-posts. The author is the acting principal.
func (h *BlogPostHandlers) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		WriteAppErrorUnauthorized(w, r)
		return
	}

	var req model.CreateBlogPostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.Svc.Create(r.Context(), actor, &req)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusCreated, post)
}

// List handles GET /api/blog-posts with pagination and an optional
// authorId filter.
func (h *BlogPostHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	authorID := r.URL.Query().Get("authorId")

	posts, err := h.Svc.List(r.Context(), authorID, limit, offset)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]any{
		"blogPosts": posts,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetByID handles GET /api/blog-posts/{id}.
func (h *BlogPostHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteFailure(w, http.StatusBadRequest, "Blog post id is required")
		return
	}

	post, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, post)
}

// Update handles PUT /api/blog-posts/{id}.
func (h *BlogPostHandlers) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		WriteAppErrorUnauthorized(w, r)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteFailure(w, http.StatusBadRequest, "Blog post id is required")
		return
	}

	var req model.UpdateBlogPostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.Svc.Update(r.Context(), actor, id, req)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, post)
}

// Delete handles DELETE /api/blog-posts/{id}.
func (h *BlogPostHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		WriteAppErrorUnauthorized(w, r)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteFailure(w, http.StatusBadRequest, "Blog post id is required")
		return
	}

	ok, err := h.Svc.Delete(r.Context(), actor, id)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	if !ok {
		WriteFailure(w, http.StatusNotFound, "Blog post not found")
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}

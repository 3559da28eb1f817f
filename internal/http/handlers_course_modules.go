package httpx

import (
	"net/http"

	"github.com/campushub/campushub/internal/domain/model"
	"github.com/campushub/campushub/internal/service"
)

// CourseModuleHandlers provides HTTP handlers for the course catalogue.
// Reads are public; the router puts writes behind the admin gate.
type CourseModuleHandlers struct {
	Svc *service.CourseModuleService
}

// Create handles POST /api/course-modules.
func (h *CourseModuleHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCourseModuleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	mod, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusCreated, mod)
}

// List handles GET /api/course-modules with pagination.
func (h *CourseModuleHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)

	modules, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]any{
		"courseModules": modules,
		"limit":         limit,
		"offset":        offset,
	})
}

// GetByID handles GET /api/course-modules/{id}.
func (h *CourseModuleHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteFailure(w, http.StatusBadRequest, "Course module id is required")
		return
	}

	mod, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, mod)
}

// Update handles PUT /api/course-modules/{id}.
func (h *CourseModuleHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteFailure(w, http.StatusBadRequest, "Course module id is required")
		return
	}

	var req model.UpdateCourseModuleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	mod, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, mod)
}

// Delete handles DELETE /api/course-modules/{id}.
func (h *CourseModuleHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteFailure(w, http.StatusBadRequest, "Course module id is required")
		return
	}

	ok, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	if !ok {
		WriteFailure(w, http.StatusNotFound, "Course module not found")
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}

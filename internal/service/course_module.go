package service

import (
	"context"
	"errors"

	"github.com/campushub/campushub/internal/domain/model"
	"github.com/campushub/campushub/internal/ports"
)

// CourseModuleServiceOptions groups dependencies for CourseModuleService.
type CourseModuleServiceOptions struct {
	Modules ports.CourseModuleRepository
}

// CourseModuleService orchestrates catalogue CRUD. Reads are public; writes
// are reached only through the admin gate, so the service itself carries no
// role checks.
type CourseModuleService struct {
	modules ports.CourseModuleRepository
}

// NewCourseModuleService constructs a new CourseModuleService.
func NewCourseModuleService(opts CourseModuleServiceOptions) (*CourseModuleService, error) {
	if opts.Modules == nil {
		return nil, errors.New("CourseModuleRepository is required")
	}
	return &CourseModuleService{modules: opts.Modules}, nil
}

// Create adds a module to the catalogue.
func (s *CourseModuleService) Create(ctx context.Context, req *model.CreateCourseModuleRequest) (*model.CourseModule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.modules.Create(ctx, req)
}

// GetByID retrieves a module by ID.
func (s *CourseModuleService) GetByID(ctx context.Context, id string) (*model.CourseModule, error) {
	return s.modules.GetByID(ctx, id)
}

// List returns a page of modules.
func (s *CourseModuleService) List(ctx context.Context, limit, offset int) ([]*model.CourseModule, error) {
	return s.modules.List(ctx, limit, offset)
}

// Update applies a partial update to a module.
func (s *CourseModuleService) Update(ctx context.Context, id string, req model.UpdateCourseModuleRequest) (*model.CourseModule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.modules.Update(ctx, id, req)
}

// Delete removes a module.
func (s *CourseModuleService) Delete(ctx context.Context, id string) (bool, error) {
	return s.modules.Delete(ctx, id)
}

package ports

import (
	"context"

	"github.com/campushub/campushub/internal/domain/model"
)

// CourseModuleRepository persists the course catalogue.
type CourseModuleRepository interface {
	Create(ctx context.Context, req *model.CreateCourseModuleRequest) (*model.CourseModule, error)
	GetByID(ctx context.Context, id string) (*model.CourseModule, error)
	List(ctx context.Context, limit, offset int) ([]*model.CourseModule, error)
	Update(ctx context.Context, id string, req model.UpdateCourseModuleRequest) (*model.CourseModule, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// BlogPostRepository persists authored posts. Authorship is fixed at create
// time and never taken from request bodies.
type BlogPostRepository interface {
	Create(ctx context.Context, authorID string, req *model.CreateBlogPostRequest) (*model.BlogPost, error)
	GetByID(ctx context.Context, id string) (*model.BlogPost, error)
	List(ctx context.Context, authorID string, limit, offset int) ([]*model.BlogPost, error)
	Update(ctx context.Context, id string, req model.UpdateBlogPostRequest) (*model.BlogPost, error)
	Delete(ctx context.Context, id string) (bool, error)
}

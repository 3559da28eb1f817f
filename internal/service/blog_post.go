package service

import (
	"context"
	"errors"

	domainauth "github.com/campushub/campushub/internal/domain/auth"
	"github.com/campushub/campushub/internal/domain/model"
	apperrors "github.com/campushub/campushub/internal/errors"
	"github.com/campushub/campushub/internal/ports"
)

// BlogPostServiceOptions groups dependencies for BlogPostService.
type BlogPostServiceOptions struct {
	Posts ports.BlogPostRepository
}

// BlogPostService orchestrates post CRUD with ownership enforcement: a post
// may be modified by its author or by an admin, never by anyone else.
type BlogPostService struct {
	posts ports.BlogPostRepository
}

// NewBlogPostService constructs a new BlogPostService.
func NewBlogPostService(opts BlogPostServiceOptions) (*BlogPostService, error) {
	if opts.Posts == nil {
		return nil, errors.New("BlogPostRepository is required")
	}
	return &BlogPostService{posts: opts.Posts}, nil
}

// Create publishes a post authored by the acting principal. Authorship comes
// from the verified session, never from the request body.
func (s *BlogPostService) Create(ctx context.Context, actor domainauth.Principal, req *model.CreateBlogPostRequest) (*model.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.posts.Create(ctx, actor.UserID, req)
}

// GetByID retrieves a post by ID.
func (s *BlogPostService) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	return s.posts.GetByID(ctx, id)
}

// List returns a page of posts, optionally filtered by author.
func (s *BlogPostService) List(ctx context.Context, authorID string, limit, offset int) ([]*model.BlogPost, error) {
	return s.posts.List(ctx, authorID, limit, offset)
}

// Update applies a partial update after the ownership check.
func (s *BlogPostService) Update(ctx context.Context, actor domainauth.Principal, id string, req model.UpdateBlogPostRequest) (*model.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.posts.Update(ctx, id, req)
}

// Delete removes a post after the ownership check.
func (s *BlogPostService) Delete(ctx context.Context, actor domainauth.Principal, id string) (bool, error) {
	if err := s.authorize(ctx, actor, id); err != nil {
		return false, err
	}
	return s.posts.Delete(ctx, id)
}

func (s *BlogPostService) authorize(ctx context.Context, actor domainauth.Principal, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if actor.IsAdmin() || post.AuthorID == actor.UserID {
		return nil
	}
	return apperrors.Forbidden("Not the author of this post")
}

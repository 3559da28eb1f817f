package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/campushub/campushub/internal/data/pgxutil"
	"github.com/campushub/campushub/internal/domain/model"
	apperrors "github.com/campushub/campushub/internal/errors"
)

// BlogPostRepo provides database operations for blog posts.
type BlogPostRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBlogPostRepo creates a new BlogPostRepo.
func NewBlogPostRepo(db *sql.DB) *BlogPostRepo {
	return &BlogPostRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const blogPostColumns = `id, author_id, title, body, created_at, updated_at`

// Create inserts a new post owned by authorID.
func (r *BlogPostRepo) Create(ctx context.Context, authorID string, req *model.CreateBlogPostRequest) (*model.BlogPost, error) {
	if req == nil {
		return nil, errors.New("create blog post request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.BlogPost
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO blog_posts (author_id, title, body, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			RETURNING `+blogPostColumns,
			authorID,
			strings.TrimSpace(req.Title),
			req.Body,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a post by ID.
func (r *BlogPostRepo) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	var out model.BlogPost
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+blogPostColumns+`
			FROM blog_posts
			WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Blog post not found")
		}
		return nil, fmt.Errorf("get blog post: %w", err)
	}
	return &out, nil
}

// List retrieves posts newest-first, optionally filtered by author.
func (r *BlogPostRepo) List(ctx context.Context, authorID string, limit, offset int) ([]*model.BlogPost, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + blogPostColumns + `
		FROM blog_posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	args := []any{limit, offset}
	if authorID != "" {
		query = `
			SELECT ` + blogPostColumns + `
			FROM blog_posts
			WHERE author_id = $3
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`
		args = append(args, authorID)
	}

	var rowsOut []model.BlogPost
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}

	res := make([]*model.BlogPost, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates the mutable fields of a post. Ownership is checked by the
// service layer against the resolved principal before this is called.
func (r *BlogPostRepo) Update(ctx context.Context, id string, req model.UpdateBlogPostRequest) (*model.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 3)
	args := make([]any, 0, 4)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Body != nil {
		setParts = append(setParts, fmt.Sprintf("body = $%d", nextIdx()))
		args = append(args, *req.Body)
	}
	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	args = append(args, id)

	query := "UPDATE blog_posts SET " + strings.Join(setParts, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", len(args)) + blogPostColumns

	var out model.BlogPost
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Blog post not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes a post by ID.
func (r *BlogPostRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete blog post: %w", err)
	}
	return affected > 0, nil
}

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

// CourseModuleRepo provides database operations for the course catalogue.
type CourseModuleRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewCourseModuleRepo creates a new CourseModuleRepo.
func NewCourseModuleRepo(db *sql.DB) *CourseModuleRepo {
	return &CourseModuleRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const courseModuleColumns = `id, code, title, description, lecturer, created_at, updated_at`

// Create inserts a new course module. The code is stored upper-cased.
func (r *CourseModuleRepo) Create(ctx context.Context, req *model.CreateCourseModuleRequest) (*model.CourseModule, error) {
	if req == nil {
		return nil, errors.New("create course module request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.CourseModule
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO course_modules (code, title, description, lecturer, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+courseModuleColumns,
			strings.ToUpper(strings.TrimSpace(req.Code)),
			strings.TrimSpace(req.Title),
			req.Description,
			strings.TrimSpace(req.Lecturer),
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CourseModule])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a course module by ID.
func (r *CourseModuleRepo) GetByID(ctx context.Context, id string) (*model.CourseModule, error) {
	var out model.CourseModule
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+courseModuleColumns+`
			FROM course_modules
			WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CourseModule])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Course module not found")
		}
		return nil, fmt.Errorf("get course module: %w", err)
	}
	return &out, nil
}

// List retrieves course modules ordered by code with pagination.
func (r *CourseModuleRepo) List(ctx context.Context, limit, offset int) ([]*model.CourseModule, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.CourseModule
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+courseModuleColumns+`
			FROM course_modules
			ORDER BY code
			LIMIT $1 OFFSET $2`, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CourseModule])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list course modules: %w", err)
	}

	res := make([]*model.CourseModule, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates the mutable fields of a module.
func (r *CourseModuleRepo) Update(ctx context.Context, id string, req model.UpdateCourseModuleRequest) (*model.CourseModule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 4)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}
	if req.Lecturer != nil {
		setParts = append(setParts, fmt.Sprintf("lecturer = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Lecturer))
	}
	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	args = append(args, id)

	query := "UPDATE course_modules SET " + strings.Join(setParts, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", len(args)) + courseModuleColumns

	var out model.CourseModule
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CourseModule])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Course module not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes a course module by ID.
func (r *CourseModuleRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM course_modules WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete course module: %w", err)
	}
	return affected > 0, nil
}

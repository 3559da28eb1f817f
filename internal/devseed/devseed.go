// Package devseed populates a development database with a known admin
// account and a small course catalogue. It is reached only from the admin
// CLI; the server never seeds on its own.
package devseed

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/campushub/campushub/config"
	"github.com/campushub/campushub/internal/data"
	"github.com/campushub/campushub/internal/domain/model"
	apperrors "github.com/campushub/campushub/internal/errors"
	"github.com/campushub/campushub/internal/service"
)

const (
	// Known development credentials. Never use outside local development.
	AdminEmail    = "admin@campushub.local"
	AdminPassword = "admin-dev-password"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB       *sql.DB
	accounts *service.AccountService
	modules  *service.CourseModuleService
}

// NewServices constructs the services required for seeding from the
// provided DB.
func NewServices(db *sql.DB, cfg config.AuthConfig, logger *slog.Logger) (Services, error) {
	userRepo := data.NewUserRepo(db)
	sessionRepo := data.NewSessionRepo(db)

	sessions, err := service.NewSessionService(service.SessionServiceOptions{
		Sessions: sessionRepo,
		Users:    userRepo,
		TTL:      cfg.SessionTTL,
		Logger:   logger,
	})
	if err != nil {
		return Services{}, err
	}
	accounts, err := service.NewAccountService(service.AccountServiceOptions{
		Users:      userRepo,
		Sessions:   sessions,
		BcryptCost: cfg.BcryptCost,
		Logger:     logger,
	})
	if err != nil {
		return Services{}, err
	}
	modules, err := service.NewCourseModuleService(service.CourseModuleServiceOptions{
		Modules: data.NewCourseModuleRepo(db),
	})
	if err != nil {
		return Services{}, err
	}

	return Services{DB: db, accounts: accounts, modules: modules}, nil
}

// Run executes the development seeding workflow. Seeding is idempotent:
// records that already exist are skipped, not errors.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := svcs.accounts.CreateAdmin(ctx, "Dev Admin", AdminEmail, AdminPassword); err != nil {
		if !apperrors.IsConflict(err) {
			return err
		}
		logger.InfoContext(ctx, "dev admin already exists", "email", AdminEmail)
	} else {
		logger.InfoContext(ctx, "dev admin created", "email", AdminEmail)
	}

	seedCourseModules(ctx, svcs.modules, logger)
	return nil
}

func seedCourseModules(ctx context.Context, modules *service.CourseModuleService, logger *slog.Logger) {
	seeds := []model.CreateCourseModuleRequest{
		{Code: "CS101", Title: "Introduction to Programming", Description: "Variables, control flow, and first programs.", Lecturer: "Dr. Ada Byron"},
		{Code: "CS205", Title: "Databases", Description: "Relational modelling, SQL, and transactions.", Lecturer: "Prof. Edgar Hall"},
		{Code: "CS301", Title: "Distributed Systems", Description: "Consistency, replication, and failure handling.", Lecturer: "Dr. Leslie North"},
	}

	for i := range seeds {
		if _, err := modules.Create(ctx, &seeds[i]); err != nil {
			if apperrors.IsConflict(err) {
				continue
			}
			logger.WarnContext(ctx, "seed course module failed", "code", seeds[i].Code, "error", err)
			continue
		}
		logger.InfoContext(ctx, "seeded course module", "code", seeds[i].Code)
	}
}

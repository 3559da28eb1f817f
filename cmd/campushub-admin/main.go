// Command campushub-admin provides operator tooling: migrations, admin
// account provisioning, session cleanup, and development seeding.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/campushub/campushub/config"
	"github.com/campushub/campushub/internal/bootstrap"
	"github.com/campushub/campushub/internal/data"
	"github.com/campushub/campushub/internal/devseed"
	"github.com/campushub/campushub/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultCommandTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrate,
		},
		"create-admin": {
			name:        "create-admin",
			description: "Provision an account with the admin role",
			run:         runCreateAdmin,
		},
		"cleanup-sessions": {
			name:        "cleanup-sessions",
			description: "Delete expired sessions from the database",
			run:         runCleanupSessions,
		},
		"seed": {
			name:        "seed",
			description: "Run migrations and seed development data",
			run:         runSeed,
		},
	}
}

func printUsage() {
	fmt.Fprintf(os.Stdout, "Usage: campushub-admin <command> [flags]\n\n")
	fmt.Fprintf(os.Stdout, "Available commands:\n")
	for _, c := range commands() {
		fmt.Fprintf(os.Stdout, "  %-18s %s\n", c.name, c.description)
	}
}

func connect(ctx *commandContext) (*sql.DB, error) {
	return bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig:    ctx.Config.Postgres,
		RedisConfig: ctx.Config.Redis,
		Logger:      ctx.Logger,
	})
}

func withDB(ctx *commandContext, fn func(runCtx context.Context, db *sql.DB) error) error {
	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			ctx.Logger.Error("close database failed", "error", cerr)
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx.Ctx, defaultCommandTimeout)
	defer cancel()
	return fn(runCtx, db)
}

func runMigrate(ctx *commandContext, _ []string) error {
	return withDB(ctx, func(runCtx context.Context, db *sql.DB) error {
		return bootstrap.RunMigrations(runCtx, db, ctx.Logger)
	})
}

func runCreateAdmin(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	name := fs.String("name", "", "display name for the admin account")
	email := fs.String("email", "", "email address for the admin account")
	password := fs.String("password", "", "password for the admin account")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" || *password == "" {
		return errors.New("create-admin requires -name, -email, and -password")
	}

	return withDB(ctx, func(runCtx context.Context, db *sql.DB) error {
		accounts, err := buildAccounts(ctx, db)
		if err != nil {
			return err
		}
		user, err := accounts.CreateAdmin(runCtx, *name, *email, *password)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		ctx.Logger.InfoContext(runCtx, "admin account created", "user_id", user.ID, "email", user.Email)
		return nil
	})
}

func runCleanupSessions(ctx *commandContext, _ []string) error {
	return withDB(ctx, func(runCtx context.Context, db *sql.DB) error {
		n, err := data.NewSessionRepo(db).DeleteExpired(runCtx)
		if err != nil {
			return fmt.Errorf("cleanup sessions: %w", err)
		}
		ctx.Logger.InfoContext(runCtx, "expired sessions deleted", "count", n)
		return nil
	})
}

func runSeed(ctx *commandContext, _ []string) error {
	if !ctx.Config.IsDev {
		return errors.New("seed is only available in development mode (set DEV=true)")
	}
	return withDB(ctx, func(runCtx context.Context, db *sql.DB) error {
		if err := bootstrap.RunMigrations(runCtx, db, ctx.Logger); err != nil {
			return err
		}
		svcs, err := devseed.NewServices(db, ctx.Config.Auth, ctx.Logger)
		if err != nil {
			return err
		}
		return devseed.Run(runCtx, svcs, ctx.Logger)
	})
}

func buildAccounts(ctx *commandContext, db *sql.DB) (*service.AccountService, error) {
	userRepo := data.NewUserRepo(db)
	sessions, err := service.NewSessionService(service.SessionServiceOptions{
		Sessions: data.NewSessionRepo(db),
		Users:    userRepo,
		TTL:      ctx.Config.Auth.SessionTTL,
		Logger:   ctx.Logger,
	})
	if err != nil {
		return nil, err
	}
	return service.NewAccountService(service.AccountServiceOptions{
		Users:      userRepo,
		Sessions:   sessions,
		BcryptCost: ctx.Config.Auth.BcryptCost,
		Logger:     ctx.Logger,
	})
}

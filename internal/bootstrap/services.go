package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/campushub/campushub/config"
	domainauth "github.com/campushub/campushub/internal/domain/auth"
	rediscache "github.com/campushub/campushub/internal/adapters/redis"
	"github.com/campushub/campushub/internal/data"
	"github.com/campushub/campushub/internal/observability/statsd"
	"github.com/campushub/campushub/internal/ports"
	"github.com/campushub/campushub/internal/service"
)

const shutdownWaitTimeout = 10 * time.Second

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Accounts      *service.AccountService
	Sessions      *service.SessionService
	CourseModules *service.CourseModuleService
	BlogPosts     *service.BlogPostService
	Sweeper       *service.SweeperService
	Metrics       *statsd.Client
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildServices constructs all repositories and services from their
// dependencies.
func BuildServices(deps ServiceDeps) (*ServiceContainer, error) {
	if deps.Config == nil {
		return nil, errors.New("config is required")
	}
	if deps.DB == nil {
		return nil, errors.New("database is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metricsSink, err := statsd.NewClient(statsd.Config{
		Enabled: deps.Config.Observability.StatsdEnabled,
		Address: deps.Config.Observability.StatsdAddress,
		Prefix:  deps.Config.Observability.StatsdPrefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create statsd client: %w", err)
	}

	userRepo := data.NewUserRepo(deps.DB)
	sessionRepo := data.NewSessionRepo(deps.DB)
	moduleRepo := data.NewCourseModuleRepo(deps.DB)
	postRepo := data.NewBlogPostRepo(deps.DB)

	var cache ports.SessionCache
	if deps.RedisClient != nil {
		cache = rediscache.NewSessionCache(rediscache.SessionCacheOptions{
			Client: deps.RedisClient,
			MaxTTL: deps.Config.Redis.SessionCacheTTLMax,
			Logger: logger,
		})
	}

	sessions, err := service.NewSessionService(service.SessionServiceOptions{
		Sessions: sessionRepo,
		Users:    userRepo,
		Cache:    cache,
		TTL:      deps.Config.Auth.SessionTTL,
		Logger:   logger,
		Metrics:  metricsSink,
	})
	if err != nil {
		return nil, fmt.Errorf("create session service: %w", err)
	}

	accounts, err := service.NewAccountService(service.AccountServiceOptions{
		Users:      userRepo,
		Sessions:   sessions,
		BcryptCost: deps.Config.Auth.BcryptCost,
		Logger:     logger,
		Metrics:    metricsSink,
	})
	if err != nil {
		return nil, fmt.Errorf("create account service: %w", err)
	}

	modules, err := service.NewCourseModuleService(service.CourseModuleServiceOptions{Modules: moduleRepo})
	if err != nil {
		return nil, fmt.Errorf("create course module service: %w", err)
	}

	posts, err := service.NewBlogPostService(service.BlogPostServiceOptions{Posts: postRepo})
	if err != nil {
		return nil, fmt.Errorf("create blog post service: %w", err)
	}

	sweeper, err := service.NewSweeperService(service.SweeperServiceOptions{
		Sessions: sessions,
		Config:   deps.Config.Sweeper,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create sweeper service: %w", err)
	}

	return &ServiceContainer{
		Accounts:      accounts,
		Sessions:      sessions,
		CourseModules: modules,
		BlogPosts:     posts,
		Sweeper:       sweeper,
		Metrics:       metricsSink,
	}, nil
}

// ServiceOrchestrationConfig groups everything RunServicesWithShutdown needs.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and background sweeper and
// blocks until a shutdown signal arrives or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil || cfg.Services == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	group, groupCtx := errgroup.WithContext(serviceCtx)
	group.Go(func() error {
		return cfg.Services.Sweeper.Run(groupCtx)
	})

	err := waitForShutdown(shutdownDeps{
		ctx:      serviceCtx,
		groupCtx: groupCtx,
		cancel:   cancel,
		server:   server,
		logger:   logger,
	})

	if waitErr := group.Wait(); waitErr != nil && !errors.Is(waitErr, context.Canceled) {
		err = errors.Join(err, waitErr)
	}
	if closeErr := cfg.Services.Metrics.Close(); closeErr != nil {
		logger.Warn("close metrics client", "error", closeErr)
	}
	return err
}

type shutdownDeps struct {
	ctx      context.Context
	groupCtx context.Context
	cancel   context.CancelFunc
	server   *http.Server
	logger   *slog.Logger
}

// waitForShutdown waits for a signal or a background-service failure, then
// stops the HTTP server gracefully.
func waitForShutdown(deps shutdownDeps) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		deps.logger.Info("shutting down services...")
	case <-deps.groupCtx.Done():
		deps.logger.Error("background service failed")
	}
	deps.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancel()
	return ShutdownHTTPServer(ShutdownConfig{
		Context: shutdownCtx,
		Server:  deps.server,
		Logger:  deps.logger,
	})
}

// AdminSecret exposes the configured shared secret as its domain type.
func AdminSecret(cfg *config.AppConfig) domainauth.AdminSecret {
	if cfg == nil {
		return ""
	}
	return domainauth.AdminSecret(cfg.Auth.AdminSecret)
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/campushub/campushub/config"
)

// SweeperServiceOptions groups dependencies for SweeperService.
type SweeperServiceOptions struct {
	Sessions *SessionService      // Required: session service to sweep through
	Config   config.SweeperConfig // Required: sweep interval
	Logger   *slog.Logger         // Optional: structured logger
}

// SweeperService periodically removes expired sessions so authoritative
// storage does not accumulate dead rows. Expiry enforcement never depends on
// it; reads already exclude expired sessions.
type SweeperService struct {
	sessions *SessionService
	config   config.SweeperConfig
	logger   *slog.Logger
}

// NewSweeperService constructs a new SweeperService.
func NewSweeperService(opts SweeperServiceOptions) (*SweeperService, error) {
	if opts.Sessions == nil {
		return nil, errors.New("SessionService is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SweeperService{
		sessions: opts.Sessions,
		config:   opts.Config,
		logger:   logger.With("component", "session_sweeper"),
	}, nil
}

// Run starts the sweep loop and runs until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *SweeperService) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "starting session sweeper", "interval", s.config.Interval)

	// Jitter the first sweep to prevent thundering herd across instances.
	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "session sweeper stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SweeperService) sweep(ctx context.Context) {
	if _, err := s.sessions.CleanupExpired(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		// Keep running despite errors; the next tick retries.
		s.logger.ErrorContext(ctx, "session sweep failed", "error", err)
	}
}

func (s *SweeperService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.config.JitterMax)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// If crypto/rand fails, skip jitter rather than failing startup.
		s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return
	}

	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
		// Graceful shutdown during jitter
	}
}

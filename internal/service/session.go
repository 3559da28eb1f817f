package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campushub/campushub/internal/data"
	"github.com/campushub/campushub/internal/data/cryptoutil"
	domainauth "github.com/campushub/campushub/internal/domain/auth"
	apperrors "github.com/campushub/campushub/internal/errors"
	"github.com/campushub/campushub/internal/observability/statsd"
	"github.com/campushub/campushub/internal/ports"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Sessions ports.SessionRepository // Required: authoritative session store
	Users    ports.UserRepository    // Required: user lookup for admin-driven issuance
	Cache    ports.SessionCache      // Optional: read-through cache
	TTL      time.Duration           // Absolute session lifetime; defaults to 24h
	Time     data.TimeProvider       // Optional: clock, defaults to real time
	Logger   *slog.Logger            // Optional: structured logger
	Metrics  statsd.Sink             // Optional: metrics sink (StatsD-compatible)
}

// SessionService issues, resolves, and retires server-side sessions.
//
// Invariants it maintains:
// - One active session per user: issuing displaces any previous session.
// - Expiry is absolute, fixed at issuance; sessions never slide.
// - The repository is authoritative; the cache is best-effort.
type SessionService struct {
	sessions ports.SessionRepository
	users    ports.UserRepository
	cache    ports.SessionCache
	ttl      time.Duration
	time     data.TimeProvider
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) (*SessionService, error) {
	if opts.Sessions == nil {
		return nil, errors.New("SessionRepository is required")
	}
	if opts.Users == nil {
		return nil, errors.New("UserRepository is required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	tp := opts.Time
	if tp == nil {
		tp = &data.RealTimeProvider{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		sessions: opts.Sessions,
		users:    opts.Users,
		cache:    opts.Cache,
		ttl:      ttl,
		time:     tp,
		logger:   logger.With("component", "session_service"),
		metrics:  opts.Metrics,
	}, nil
}

// Issue creates a new session for the given user and atomically replaces any
// session the user already holds. Payload may be nil.
func (s *SessionService) Issue(ctx context.Context, userID string, role domainauth.Role, payload json.RawMessage) (domainauth.Session, error) {
	token, err := cryptoutil.NewSessionToken()
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("issue session: %w", err)
	}

	now := s.time.Now().UTC()
	sess := domainauth.Session{
		Token:     token,
		UserID:    userID,
		Role:      role,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	displaced, err := s.sessions.Replace(ctx, sess)
	if err != nil {
		return domainauth.Session{}, err
	}
	if displaced != "" && s.cache != nil {
		s.cache.Invalidate(ctx, displaced)
	}
	s.putCache(ctx, sess)
	s.count("session.issued", 1)
	return sess, nil
}

// IssueForUser creates a session on behalf of the identified user. It is the
// admin-driven issuance path; the user's current role is read from the
// credential store at issuance time.
func (s *SessionService) IssueForUser(ctx context.Context, userID string, payload json.RawMessage) (domainauth.Session, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domainauth.Session{}, err
	}
	return s.Issue(ctx, user.ID, user.Role, payload)
}

// Get resolves a token to its live session. Unknown tokens and expired
// sessions are both reported as an unauthorized error so callers cannot
// distinguish the two cases.
func (s *SessionService) Get(ctx context.Context, token string) (domainauth.Session, error) {
	if token == "" {
		return domainauth.Session{}, apperrors.Unauthorized("Session required")
	}

	if s.cache != nil {
		if sess, ok := s.cache.Get(ctx, token); ok {
			if !sess.Expired(s.time.Now()) {
				return sess, nil
			}
			s.cache.Invalidate(ctx, token)
		}
	}

	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return domainauth.Session{}, apperrors.Unauthorized("Invalid or expired session")
		}
		return domainauth.Session{}, err
	}
	s.putCache(ctx, sess)
	return sess, nil
}

// Update replaces the payload of a live session and returns the updated
// record. Expired and unknown sessions are unauthorized.
func (s *SessionService) Update(ctx context.Context, token string, payload json.RawMessage) (domainauth.Session, error) {
	sess, err := s.sessions.UpdatePayload(ctx, token, payload)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return domainauth.Session{}, apperrors.Unauthorized("Invalid or expired session")
		}
		return domainauth.Session{}, err
	}
	s.putCache(ctx, sess)
	return sess, nil
}

// Destroy removes a session. Destroying an absent session is not an error.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, token)
	}
	return nil
}

// CleanupExpired bulk-removes sessions past their expiry and reports how
// many rows were swept.
func (s *SessionService) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("expired sessions swept", "count", n)
	}
	s.count("session.swept", n)
	return n, nil
}

func (s *SessionService) putCache(ctx context.Context, sess domainauth.Session) {
	if s.cache != nil {
		s.cache.Put(ctx, sess)
	}
}

func (s *SessionService) count(name string, value int64) {
	if s.metrics != nil {
		s.metrics.Count(name, value, nil)
	}
}

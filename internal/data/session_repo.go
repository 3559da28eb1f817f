package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campushub/campushub/internal/data/pgxutil"
	domainauth "github.com/campushub/campushub/internal/domain/auth"
	apperrors "github.com/campushub/campushub/internal/errors"
)

// errSessionNotFound is returned when a token matches no live session.
// Missing and expired sessions are indistinguishable to callers.
func errSessionNotFound() error {
	return apperrors.NotFound("Session not found")
}

// SessionRepo persists server-side sessions in the user_sessions table.
// The role is not stored on the row; reads join users so role changes take
// effect on the next request.
type SessionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSessionRepo creates a new SessionRepo with real time provider.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewSessionRepoWithTimeProvider creates a SessionRepo with a custom time provider.
func NewSessionRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *SessionRepo {
	return &SessionRepo{DB: db, timeProvider: tp}
}

// Replace installs sess as the single active session for its user. The
// upsert keyed on user_id replaces any previous session in one atomic
// statement, closing the delete-then-insert race between concurrent logins.
// The CTE reads the pre-statement snapshot, so it yields the token being
// displaced; callers use it to revoke cache entries for the old session.
func (r *SessionRepo) Replace(ctx context.Context, sess domainauth.Session) (string, error) {
	if sess.Token == "" {
		return "", errors.New("session token is required")
	}
	if sess.UserID == "" {
		return "", errors.New("session user id is required")
	}

	payload := sess.Payload
	if len(payload) == 0 {
		payload = []byte(`{}`)
	}

	var displaced *string
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		row := conn.QueryRow(ctx, `
			WITH previous AS (
				SELECT token FROM user_sessions WHERE user_id = $2
			)
			INSERT INTO user_sessions (token, user_id, payload, created_at, updated_at, expires_at)
			VALUES ($1, $2, $3, $4, $4, $5)
			ON CONFLICT (user_id) DO UPDATE SET
				token      = EXCLUDED.token,
				payload    = EXCLUDED.payload,
				created_at = EXCLUDED.created_at,
				updated_at = EXCLUDED.updated_at,
				expires_at = EXCLUDED.expires_at
			RETURNING (SELECT token FROM previous)`,
			sess.Token, sess.UserID, payload, sess.CreatedAt.UTC(), sess.ExpiresAt.UTC())
		return row.Scan(&displaced)
	})
	if err != nil {
		return "", apperrors.MapDBError(err)
	}
	if displaced == nil || *displaced == sess.Token {
		return "", nil
	}
	return *displaced, nil
}

// Get returns the live session for token. The expiry check happens in SQL at
// read time (expires_at > now); there is no implicit renewal.
func (r *SessionRepo) Get(ctx context.Context, token string) (domainauth.Session, error) {
	if token == "" {
		return domainauth.Session{}, errSessionNotFound()
	}

	var sess domainauth.Session
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		row := conn.QueryRow(ctx, `
			SELECT s.token, s.user_id, u.role, s.payload, s.created_at, s.updated_at, s.expires_at
			FROM user_sessions s
			JOIN users u ON u.id = s.user_id
			WHERE s.token = $1 AND s.expires_at > $2`,
			token, r.timeProvider.Now().UTC())
		return scanSession(row, &sess)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainauth.Session{}, errSessionNotFound()
		}
		return domainauth.Session{}, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// UpdatePayload overwrites the stored payload iff the session is still live,
// returning the updated session. Expired and unknown tokens both report
// NotFound.
func (r *SessionRepo) UpdatePayload(ctx context.Context, token string, payload []byte) (domainauth.Session, error) {
	if token == "" {
		return domainauth.Session{}, errSessionNotFound()
	}
	if len(payload) == 0 {
		payload = []byte(`{}`)
	}

	now := r.timeProvider.Now().UTC()
	var sess domainauth.Session
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		row := conn.QueryRow(ctx, `
			UPDATE user_sessions s
			SET payload = $2, updated_at = $3
			FROM users u
			WHERE s.token = $1 AND u.id = s.user_id AND s.expires_at > $3
			RETURNING s.token, s.user_id, u.role, s.payload, s.created_at, s.updated_at, s.expires_at`,
			token, payload, now)
		return scanSession(row, &sess)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainauth.Session{}, errSessionNotFound()
		}
		return domainauth.Session{}, fmt.Errorf("update session payload: %w", err)
	}
	return sess, nil
}

// Delete removes the session row unconditionally. Deleting an unknown token
// is not an error, making logout idempotent.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `DELETE FROM user_sessions WHERE token = $1`, token)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired bulk-removes all sessions past their expiry and reports how
// many were swept.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	var removed int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM user_sessions WHERE expires_at <= $1`,
			r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		removed = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return removed, nil
}

func scanSession(row pgx.Row, sess *domainauth.Session) error {
	return row.Scan(
		&sess.Token,
		&sess.UserID,
		&sess.Role,
		&sess.Payload,
		&sess.CreatedAt,
		&sess.UpdatedAt,
		&sess.ExpiresAt,
	)
}

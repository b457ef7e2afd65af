package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/trace"
)

// TerminalUser is an SSH chat user, identified by public-key fingerprint.
// Users are registered on first connect; there is no allowlist.
type TerminalUser struct {
	ID          int64
	Username    string
	KeyType     string
	Fingerprint string
	SessionID   string
	LastSeenAt  time.Time
	CreatedAt   time.Time
}

type TerminalUserRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewTerminalUserRepository(pool PgxPool, tracer trace.Tracer) *TerminalUserRepository {
	return &TerminalUserRepository{pool: pool, tracer: tracer}
}

func (r *TerminalUserRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "terminal-user-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS terminal_users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			key_type TEXT NOT NULL,
			fingerprint TEXT NOT NULL UNIQUE,
			session_id TEXT NOT NULL,
			last_seen_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

// RecordLogin upserts the connecting user and refreshes last_seen_at. The
// session id doubles as the conversation key so a returning key resumes
// its history.
func (r *TerminalUserRepository) RecordLogin(ctx context.Context, username, keyType, fingerprint, sessionID string) error {
	if r == nil || r.pool == nil {
		return nil
	}
	_, span := r.tracer.Start(ctx, "terminal-user-repo.record-login")
	defer span.End()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO terminal_users (username, key_type, fingerprint, session_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (fingerprint) DO UPDATE SET
		     username = EXCLUDED.username,
		     last_seen_at = NOW()`,
		username, keyType, fingerprint, sessionID,
	)
	return err
}

// FindByFingerprint returns nil without error when the user is unknown.
func (r *TerminalUserRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*TerminalUser, error) {
	if r == nil || r.pool == nil {
		return nil, nil
	}
	_, span := r.tracer.Start(ctx, "terminal-user-repo.find-by-fingerprint")
	defer span.End()

	row := r.pool.QueryRow(ctx,
		`SELECT id, username, key_type, fingerprint, session_id, last_seen_at, created_at
		 FROM terminal_users
		 WHERE fingerprint = $1`,
		fingerprint,
	)

	var u TerminalUser
	err := row.Scan(&u.ID, &u.Username, &u.KeyType, &u.Fingerprint, &u.SessionID, &u.LastSeenAt, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

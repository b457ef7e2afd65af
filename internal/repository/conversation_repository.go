package repository

import (
	"context"
	"time"

	"naomi/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

// PgxPool is the subset of pgxpool.Pool the repositories need.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ConversationRepository persists chat turns per session. All methods are
// no-ops on a nil pool so the service runs without Postgres.
type ConversationRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewConversationRepository(pool PgxPool, tracer trace.Tracer) *ConversationRepository {
	return &ConversationRepository{pool: pool, tracer: tracer}
}

func (r *ConversationRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "conversation-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS conversation_turns (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			intent TEXT NOT NULL DEFAULT '',
			symbol TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_conversation_turns_session
			ON conversation_turns (session_id, created_at DESC);
	`)
	return err
}

func (r *ConversationRepository) AppendTurn(ctx context.Context, sessionID string, turn domain.ConversationTurn) error {
	if r == nil || r.pool == nil {
		return nil
	}
	_, span := r.tracer.Start(ctx, "conversation-repo.append-turn")
	defer span.End()

	createdAt := turn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO conversation_turns (session_id, role, content, intent, symbol, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		sessionID, turn.Role, turn.Content, string(turn.Intent), turn.Symbol, createdAt,
	)
	return err
}

// RecentTurns returns up to limit turns for the session, oldest first.
func (r *ConversationRepository) RecentTurns(ctx context.Context, sessionID string, limit int) ([]domain.ConversationTurn, error) {
	if r == nil || r.pool == nil {
		return nil, nil
	}
	_, span := r.tracer.Start(ctx, "conversation-repo.recent-turns")
	defer span.End()

	if limit <= 0 {
		limit = domain.ContextWindow
	}
	rows, err := r.pool.Query(ctx,
		`SELECT role, content, intent, symbol, created_at
		 FROM conversation_turns
		 WHERE session_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []domain.ConversationTurn
	for rows.Next() {
		var t domain.ConversationTurn
		var intent string
		if err := rows.Scan(&t.Role, &t.Content, &intent, &t.Symbol, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Intent = domain.Intent(intent)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query is newest-first; callers want chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// DeleteSession removes all persisted turns for the session.
func (r *ConversationRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if r == nil || r.pool == nil {
		return nil
	}
	_, span := r.tracer.Start(ctx, "conversation-repo.delete-session")
	defer span.End()

	_, err := r.pool.Exec(ctx,
		`DELETE FROM conversation_turns WHERE session_id = $1`, sessionID)
	return err
}

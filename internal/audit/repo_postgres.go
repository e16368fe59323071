package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresRepo appends events to the session_events table (see internal/migrations).
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const insertEventSQL = `
INSERT INTO session_events (id, type, actor_user_id, actor_email, ip_address, landing, created_at)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)`

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.ID, string(e.Type), e.ActorUserID, e.ActorEmail, e.IPAddress, e.Landing, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("audit: insert event: %w", err)
	}
	return nil
}

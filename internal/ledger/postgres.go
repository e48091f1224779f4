package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
	"github.com/sumitscript/ViralWhisper/internal/core/ports"
)

// PostgresLedger is the database-backed alternative to the CSV file,
// selected when DATABASE_URL is set. Rows are insert-only.
type PostgresLedger struct {
	Pool *pgxpool.Pool
}

func NewPostgresLedger(ctx context.Context, connStr string) (*PostgresLedger, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	l := &PostgresLedger{Pool: pool}
	if err := l.initSchema(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

var _ ports.Ledger = (*PostgresLedger)(nil)

func (l *PostgresLedger) initSchema(ctx context.Context) error {
	_, err := l.Pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS interactions (
		id SERIAL PRIMARY KEY,
		ts TIMESTAMP NOT NULL,
		post_id TEXT NOT NULL,
		post_title TEXT NOT NULL,
		subreddit TEXT NOT NULL,
		reply TEXT NOT NULL,
		promo TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

func (l *PostgresLedger) Append(ctx context.Context, entry domain.LedgerEntry) error {
	_, err := l.Pool.Exec(ctx,
		"INSERT INTO interactions (ts, post_id, post_title, subreddit, reply, promo) VALUES ($1, $2, $3, $4, $5, $6)",
		entry.Timestamp, entry.PostID, entry.PostTitle, entry.Subreddit, entry.Reply, entry.Promo)
	return err
}

func (l *PostgresLedger) Close() {
	l.Pool.Close()
}

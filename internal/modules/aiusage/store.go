// README: ai_usage persistence in PostgreSQL (monthly generation counters).
package aiusage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles ai_usage persistence.
type Store struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db, now: time.Now}
}

// UseToken atomically checks the monthly quota and deducts one generation.
// The counter restarts at allowance when last_reset_month is behind the current month.
// Returns ErrInsufficientTokens when no row was updated (quota exhausted or client absent).
func (s *Store) UseToken(ctx context.Context, uid string, allowance int) error {
	month := s.now().Format(monthKey)

	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
	`, month, allowance, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// EnsureUser inserts a row for uid with the full allowance; existing rows are left alone.
func (s *Store) EnsureUser(ctx context.Context, uid string, allowance int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (uid, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, allowance, s.now().Format(monthKey))
	return err
}

// Remaining returns how many generations uid has left this month.
// Unknown clients and counters from a past month report the full allowance.
func (s *Store) Remaining(ctx context.Context, uid string, allowance int) (int, error) {
	var remaining int
	var month string
	err := s.db.QueryRow(ctx,
		`SELECT tokens_remaining, last_reset_month FROM ai_usage WHERE uid = $1`, uid,
	).Scan(&remaining, &month)
	if errors.Is(err, pgx.ErrNoRows) {
		return allowance, nil
	}
	if err != nil {
		return 0, err
	}
	if month != s.now().Format(monthKey) {
		return allowance, nil
	}
	return remaining, nil
}

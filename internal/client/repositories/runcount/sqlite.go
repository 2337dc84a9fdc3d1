package runcount

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/glidepath/internal/dbx"
)

// SQLiteRepository keeps the guest run counter in a single-row table in the
// client database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var runs int
	err := r.db.QueryRowContext(ctx, `SELECT runs FROM run_counter WHERE id = 1`).Scan(&runs)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read run counter: %w", err)
	}
	return runs, nil
}

// Increment reads and advances the counter in one transaction so concurrent
// increments cannot lose updates.
func (r *SQLiteRepository) Increment(ctx context.Context) (int, error) {
	var runs int
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		err := tx.QueryRowContext(ctx, `SELECT runs FROM run_counter WHERE id = 1`).Scan(&runs)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to read run counter: %w", err)
		}
		runs++
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_counter (id, runs) VALUES (1, ?)
			ON CONFLICT(id) DO UPDATE SET runs = excluded.runs
		`, runs)
		if err != nil {
			return fmt.Errorf("failed to write run counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return runs, nil
}

func (r *SQLiteRepository) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM run_counter WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("failed to reset run counter: %w", err)
	}
	return nil
}

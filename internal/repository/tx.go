package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// withTx runs fn inside a transaction, rolling back when fn fails.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// replaceSet deletes every junction row of an owner and inserts rows in its place.
// insertQuery is a named query executed once per row.
func replaceSet[T any](ctx context.Context, tx *sqlx.Tx, deleteQuery string, ownerID string, insertQuery string, rows []T) error {
	if _, err := tx.ExecContext(ctx, deleteQuery, ownerID); err != nil {
		return TranslatePQError(err)
	}
	for i := range rows {
		if _, err := tx.NamedExecContext(ctx, insertQuery, rows[i]); err != nil {
			return TranslatePQError(err)
		}
	}
	return nil
}

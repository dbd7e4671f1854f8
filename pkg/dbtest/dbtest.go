// Package dbtest prepares a real PostgreSQL database for integration tests.
package dbtest

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Truncate wipes the given tables and resets their identities.
func Truncate(ctx context.Context, db *sqlx.DB, tables ...string) error {
	for _, table := range tables {
		if _, err := db.ExecContext(ctx, "TRUNCATE "+table+" RESTART IDENTITY CASCADE"); err != nil {
			return fmt.Errorf("db.ExecContext(truncate %s): %w", table, err)
		}
	}

	return nil
}

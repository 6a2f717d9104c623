package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS wallets (
		id BIGSERIAL PRIMARY KEY,
		address TEXT NOT NULL,
		expected_quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
		currency TEXT NOT NULL,
		CONSTRAINT wallets_address_key UNIQUE (address)
	)`,
}

// EnsureSchema creates the wallets table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range createStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// DropSchema removes the wallets table and all its rows.
func DropSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, `DROP TABLE IF EXISTS wallets`); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}

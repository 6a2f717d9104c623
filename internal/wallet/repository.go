package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// Repository persists wallet records.
type Repository interface {
	Create(ctx context.Context, wallet Wallet) (Wallet, error)
	Get(ctx context.Context, id int64) (Wallet, error)
	GetByAddress(ctx context.Context, address string) (Wallet, error)
	List(ctx context.Context) ([]Wallet, error)
	UpdateQuantity(ctx context.Context, id int64, quantity float64) (Wallet, error)
	Delete(ctx context.Context, id int64) (Wallet, error)
}

// PostgresRepository stores wallets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a wallet record and returns it with the generated id. A
// duplicate address is rejected by the unique constraint and reported as
// ErrAddressExists.
func (r *PostgresRepository) Create(ctx context.Context, wallet Wallet) (Wallet, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO wallets (address, expected_quantity, currency)
        VALUES ($1, $2, $3)
        RETURNING id, address, expected_quantity, currency`, wallet.Address, wallet.ExpectedQuantity, wallet.Currency)
	created, err := scanWallet(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Wallet{}, ErrAddressExists
		}
		return Wallet{}, fmt.Errorf("insert wallet: %w", err)
	}
	return created, nil
}

// Get fetches a wallet by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (Wallet, error) {
	row := r.db.QueryRow(ctx, `SELECT id, address, expected_quantity, currency
        FROM wallets WHERE id = $1`, id)
	return scanOne(row, "get wallet")
}

// GetByAddress fetches a wallet by its unique address.
func (r *PostgresRepository) GetByAddress(ctx context.Context, address string) (Wallet, error) {
	row := r.db.QueryRow(ctx, `SELECT id, address, expected_quantity, currency
        FROM wallets WHERE address = $1`, address)
	return scanOne(row, "get wallet by address")
}

// List returns every wallet in insertion order.
func (r *PostgresRepository) List(ctx context.Context) ([]Wallet, error) {
	rows, err := r.db.Query(ctx, `SELECT id, address, expected_quantity, currency
        FROM wallets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	wallets := make([]Wallet, 0)
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallets: %w", err)
	}
	return wallets, nil
}

// UpdateQuantity sets the expected quantity and returns the updated record.
func (r *PostgresRepository) UpdateQuantity(ctx context.Context, id int64, quantity float64) (Wallet, error) {
	row := r.db.QueryRow(ctx, `UPDATE wallets SET expected_quantity = $1 WHERE id = $2
        RETURNING id, address, expected_quantity, currency`, quantity, id)
	return scanOne(row, "update wallet")
}

// Delete removes a wallet and returns the row as it was before deletion.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (Wallet, error) {
	row := r.db.QueryRow(ctx, `DELETE FROM wallets WHERE id = $1
        RETURNING id, address, expected_quantity, currency`, id)
	return scanOne(row, "delete wallet")
}

func scanOne(row pgx.Row, op string) (Wallet, error) {
	w, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, fmt.Errorf("%s: %w", op, err)
	}
	return w, nil
}

func scanWallet(row pgx.Row) (Wallet, error) {
	var w Wallet
	if err := row.Scan(&w.ID, &w.Address, &w.ExpectedQuantity, &w.Currency); err != nil {
		return Wallet{}, err
	}
	return w, nil
}

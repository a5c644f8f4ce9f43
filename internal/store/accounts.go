package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/domain"
)

// ListAccounts returns all accounts ordered by name, plus the total balance
// across them.
func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, decimal.Decimal, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, balance::text, type, color, created_at, updated_at
		FROM accounts
		ORDER BY name ASC`)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	total := decimal.Zero
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("list accounts: %w", err)
		}
		total = total.Add(a.Balance)
		accounts = append(accounts, a)
	}
	return accounts, total, rows.Err()
}

// GetAccount returns one account by ID, or ErrNotFound.
func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, balance::text, type, color, created_at, updated_at
		FROM accounts
		WHERE id = $1`, id)

	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Account{}, ErrNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// CreateAccount inserts an account and returns the stored record.
func (s *Store) CreateAccount(ctx context.Context, in domain.NewAccount) (domain.Account, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO accounts (name, balance, type, color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, balance::text, type, color, created_at, updated_at`,
		in.Name, in.Balance.StringFixed(2), string(in.Type), in.Color)

	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}
	return a, nil
}

func scanAccount(row pgx.Row) (domain.Account, error) {
	var (
		a       domain.Account
		balance string
		typ     string
	)
	if err := row.Scan(&a.ID, &a.Name, &balance, &typ, &a.Color, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return domain.Account{}, err
	}
	a.Balance = mustDecimal(balance)
	a.Type = domain.AccountType(typ)
	return a, nil
}

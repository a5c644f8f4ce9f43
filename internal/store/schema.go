package store

import (
	"context"
	"fmt"
)

// schemaStatements bootstrap the relational schema on startup. Statements
// are idempotent so restarting against an initialized database is safe.
// Proper migration tooling is intentionally out of scope.
var schemaStatements = []string{
	`DO $$ BEGIN
		CREATE TYPE account_type AS ENUM ('checking', 'savings', 'credit', 'investment');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		CREATE TYPE transaction_type AS ENUM ('income', 'expense');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		CREATE TYPE budget_period AS ENUM ('monthly', 'yearly');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) NOT NULL UNIQUE,
		color VARCHAR(7) NOT NULL,
		icon VARCHAR(50),
		created_at TIMESTAMP NOT NULL DEFAULT now(),
		updated_at TIMESTAMP NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) NOT NULL,
		balance NUMERIC(15,2) NOT NULL,
		type account_type NOT NULL,
		color VARCHAR(7) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT now(),
		updated_at TIMESTAMP NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS budgets (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		amount NUMERIC(15,2) NOT NULL,
		spent NUMERIC(15,2) NOT NULL DEFAULT 0,
		period budget_period NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT now(),
		updated_at TIMESTAMP NOT NULL DEFAULT now(),
		CONSTRAINT budgets_category_id_period_idx UNIQUE (category_id, period)
	)`,

	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		date TIMESTAMP NOT NULL,
		description TEXT NOT NULL,
		amount NUMERIC(15,2) NOT NULL,
		type transaction_type NOT NULL,
		category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
		account_id UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL DEFAULT now(),
		updated_at TIMESTAMP NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS transactions_date_idx ON transactions (date)`,
	`CREATE INDEX IF NOT EXISTS transactions_category_id_idx ON transactions (category_id)`,
	`CREATE INDEX IF NOT EXISTS transactions_account_id_idx ON transactions (account_id)`,
}

// EnsureSchema creates enums, tables and indexes if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

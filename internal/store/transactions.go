package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pennywise-app/pennywise/internal/domain"
)

// TransactionFilter narrows a transaction listing. Zero values mean "no
// filter"; Limit <= 0 means unlimited.
type TransactionFilter struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
}

const transactionColumns = `
	t.id, t.date, t.description, t.amount::text, t.type,
	t.category_id, t.account_id, t.created_at, t.updated_at,
	c.name, c.color, a.name, a.color`

const transactionJoins = `
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id
	JOIN accounts a ON a.id = t.account_id`

// ListTransactions returns transactions matching the filter with category
// and account display fields joined in, newest first.
func (s *Store) ListTransactions(ctx context.Context, f TransactionFilter) ([]domain.Transaction, error) {
	wb := NewWhereBuilder()
	if f.AccountID != nil {
		wb.Add("t.account_id =", *f.AccountID)
	}
	if f.CategoryID != nil {
		wb.Add("t.category_id =", *f.CategoryID)
	}
	if f.StartDate != nil {
		wb.Add("t.date >=", *f.StartDate)
	}
	if f.EndDate != nil {
		wb.Add("t.date <=", *f.EndDate)
	}
	where, args := wb.Build()

	query := "SELECT" + transactionColumns + transactionJoins + where + " ORDER BY t.date DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", wb.NextArg())
		args = append(args, f.Limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// GetTransaction returns one transaction by ID with joined display fields,
// or ErrNotFound.
func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	row := s.db.QueryRow(ctx,
		"SELECT"+transactionColumns+transactionJoins+" WHERE t.id = $1", id)

	tx, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Transaction{}, ErrNotFound
	}
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// CreateTransaction inserts one transaction. The type is derived from the
// amount sign and the amount is rounded to two decimal places.
func (s *Store) CreateTransaction(ctx context.Context, in domain.NewTransaction) (domain.Transaction, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx, `
		INSERT INTO transactions (date, description, amount, type, category_id, account_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		in.Date, in.Description, in.Amount.StringFixed(2), string(in.DeriveType()),
		pgFromUUIDPtr(in.CategoryID), in.AccountID).Scan(&id)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return s.GetTransaction(ctx, id)
}

// UpdateTransaction applies a partial update and returns the fresh record
// with joined display fields. Changing the amount re-derives the type.
func (s *Store) UpdateTransaction(ctx context.Context, id uuid.UUID, upd domain.TransactionUpdate) (domain.Transaction, error) {
	sets := []string{}
	args := []any{}
	arg := 1

	set := func(col string, val any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, arg))
		args = append(args, val)
		arg++
	}

	if upd.Date != nil {
		set("date", *upd.Date)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.Amount != nil {
		set("amount", upd.Amount.StringFixed(2))
		typ := domain.TypeIncome
		if upd.Amount.IsNegative() {
			typ = domain.TypeExpense
		}
		set("type", string(typ))
	}
	if upd.SetCategoryNull {
		sets = append(sets, "category_id = NULL")
	} else if upd.CategoryID != nil {
		set("category_id", *upd.CategoryID)
	}
	if upd.AccountID != nil {
		set("account_id", *upd.AccountID)
	}

	if len(sets) == 0 {
		return s.GetTransaction(ctx, id)
	}
	sets = append(sets, "updated_at = now()")

	query := fmt.Sprintf("UPDATE transactions SET %s WHERE id = $%d",
		strings.Join(sets, ", "), arg)
	args = append(args, id)

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Transaction{}, ErrNotFound
	}
	return s.GetTransaction(ctx, id)
}

// DeleteTransaction removes one transaction, or returns ErrNotFound.
func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var (
		tx         domain.Transaction
		amount     string
		typ        string
		categoryID pgtype.UUID
		catName    pgtype.Text
		catColor   pgtype.Text
	)
	err := row.Scan(&tx.ID, &tx.Date, &tx.Description, &amount, &typ,
		&categoryID, &tx.AccountID, &tx.CreatedAt, &tx.UpdatedAt,
		&catName, &catColor, &tx.AccountName, &tx.AccountColor)
	if err != nil {
		return domain.Transaction{}, err
	}
	tx.Amount = mustDecimal(amount)
	tx.Type = domain.TransactionType(typ)
	tx.CategoryID = uuidFromPg(categoryID)
	tx.CategoryName = textOrEmpty(catName)
	tx.CategoryColor = textOrEmpty(catColor)
	return tx, nil
}

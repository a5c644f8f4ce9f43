package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pennywise-app/pennywise/internal/domain"
)

// ListBudgets returns all budgets for a period with their category joined.
func (s *Store) ListBudgets(ctx context.Context, period domain.BudgetPeriod) ([]domain.Budget, error) {
	rows, err := s.db.Query(ctx, `
		SELECT b.id, b.category_id, b.amount::text, b.spent::text, b.period,
		       b.created_at, b.updated_at, c.name, c.color
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.period = $1
		ORDER BY c.name ASC`, string(period))
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("list budgets: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// UpsertBudget creates a budget or replaces the amount for an existing
// (category, period) pair.
func (s *Store) UpsertBudget(ctx context.Context, in domain.NewBudget) (domain.Budget, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO budgets (category_id, amount, period)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT budgets_category_id_period_idx
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()
		RETURNING id, category_id, amount::text, spent::text, period, created_at, updated_at,
		          (SELECT name FROM categories WHERE id = $1),
		          (SELECT color FROM categories WHERE id = $1)`,
		in.CategoryID, in.Amount.StringFixed(2), string(in.Period))

	b, err := scanBudget(row)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("upsert budget: %w", err)
	}
	return b, nil
}

// RefreshBudgetSpent recomputes every budget's spent column from the expense
// transactions in the current period (calendar month for monthly budgets,
// calendar year for yearly ones). Expense amounts are stored negative, so
// the sum is negated.
func (s *Store) RefreshBudgetSpent(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		UPDATE budgets b
		SET spent = COALESCE((
			SELECT -SUM(t.amount)
			FROM transactions t
			WHERE t.category_id = b.category_id
			  AND t.type = 'expense'
			  AND t.date >= CASE b.period
				WHEN 'monthly' THEN date_trunc('month', now())
				ELSE date_trunc('year', now())
			  END
		), 0),
		updated_at = now()`)
	if err != nil {
		return fmt.Errorf("refresh budget spent: %w", err)
	}
	return nil
}

func scanBudget(row pgx.Row) (domain.Budget, error) {
	var (
		b      domain.Budget
		amount string
		spent  string
		period string
	)
	err := row.Scan(&b.ID, &b.CategoryID, &amount, &spent, &period,
		&b.CreatedAt, &b.UpdatedAt, &b.CategoryName, &b.CategoryColor)
	if err != nil {
		return domain.Budget{}, err
	}
	b.Amount = mustDecimal(amount)
	b.Spent = mustDecimal(spent)
	b.Period = domain.BudgetPeriod(period)
	return b, nil
}

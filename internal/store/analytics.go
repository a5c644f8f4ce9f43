package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pennywise-app/pennywise/internal/domain"
)

// CategorySpending sums expense amounts per category over [start, end].
// Expense amounts are stored negative, so totals come back negative; the
// API layers decide how to present the sign.
func (s *Store) CategorySpending(ctx context.Context, start, end time.Time) ([]domain.CategorySpending, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c.name, SUM(t.amount)::text
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.type = 'expense' AND t.date >= $1 AND t.date <= $2
		GROUP BY c.name
		ORDER BY c.name ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("category spending: %w", err)
	}
	defer rows.Close()

	var result []domain.CategorySpending
	for rows.Next() {
		var (
			cs    domain.CategorySpending
			total string
		)
		if err := rows.Scan(&cs.Category, &total); err != nil {
			return nil, fmt.Errorf("category spending: %w", err)
		}
		cs.Total = mustDecimal(total)
		result = append(result, cs)
	}
	return result, rows.Err()
}

// IncomeVsExpense sums amounts per month and transaction type over
// [start, end], months formatted "YYYY-MM" in ascending order.
func (s *Store) IncomeVsExpense(ctx context.Context, start, end time.Time) ([]domain.MonthlyFlow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT to_char(t.date, 'YYYY-MM') AS month, t.type, SUM(t.amount)::text
		FROM transactions t
		WHERE t.date >= $1 AND t.date <= $2
		GROUP BY to_char(t.date, 'YYYY-MM'), t.type
		ORDER BY to_char(t.date, 'YYYY-MM') ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("income vs expense: %w", err)
	}
	defer rows.Close()

	var result []domain.MonthlyFlow
	for rows.Next() {
		var (
			mf    domain.MonthlyFlow
			typ   string
			total string
		)
		if err := rows.Scan(&mf.Month, &typ, &total); err != nil {
			return nil, fmt.Errorf("income vs expense: %w", err)
		}
		mf.Type = domain.TransactionType(typ)
		mf.Total = mustDecimal(total)
		result = append(result, mf)
	}
	return result, rows.Err()
}

// MonthlySpending sums expense amounts per month over [start, end].
func (s *Store) MonthlySpending(ctx context.Context, start, end time.Time) ([]domain.MonthlySpending, error) {
	rows, err := s.db.Query(ctx, `
		SELECT to_char(t.date, 'YYYY-MM') AS month, SUM(t.amount)::text
		FROM transactions t
		WHERE t.type = 'expense' AND t.date >= $1 AND t.date <= $2
		GROUP BY to_char(t.date, 'YYYY-MM')
		ORDER BY to_char(t.date, 'YYYY-MM') ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("monthly spending: %w", err)
	}
	defer rows.Close()

	var result []domain.MonthlySpending
	for rows.Next() {
		var (
			ms    domain.MonthlySpending
			total string
		)
		if err := rows.Scan(&ms.Month, &total); err != nil {
			return nil, fmt.Errorf("monthly spending: %w", err)
		}
		ms.Total = mustDecimal(total)
		result = append(result, ms)
	}
	return result, rows.Err()
}

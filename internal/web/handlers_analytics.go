package web

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/domain"
)

// Spending charts default to a five year window; the income/expense chart
// defaults to the last six months.
func spendingDefaultStart(now time.Time) time.Time {
	return time.Date(now.Year()-5, now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func flowDefaultStart(now time.Time) time.Time {
	return now.AddDate(0, -6, 0)
}

func (s *Server) handleCategorySpending(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r, spendingDefaultStart(time.Now()))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	spending, err := s.store.CategorySpending(r.Context(), start, end)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	// Expense sums come back negative; present them as positive magnitudes.
	out := make([]domain.CategorySpending, 0, len(spending))
	for _, cs := range spending {
		cs.Total = cs.Total.Abs()
		out = append(out, cs)
	}
	respondData(w, out)
}

// monthFlow is one month with income and expense side by side, expense as a
// positive magnitude.
type monthFlow struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// mergeFlows folds per-(month, type) rows into one entry per month. The rows
// arrive in ascending month order and that order is preserved.
func mergeFlows(flows []domain.MonthlyFlow) []monthFlow {
	merged := make([]monthFlow, 0, len(flows))
	index := make(map[string]int)
	for _, f := range flows {
		i, ok := index[f.Month]
		if !ok {
			i = len(merged)
			index[f.Month] = i
			merged = append(merged, monthFlow{Month: f.Month})
		}
		if f.Type == domain.TypeIncome {
			merged[i].Income = merged[i].Income.Add(f.Total)
		} else {
			merged[i].Expense = merged[i].Expense.Add(f.Total.Abs())
		}
	}
	return merged
}

func (s *Server) handleIncomeVsExpense(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r, flowDefaultStart(time.Now()))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	flows, err := s.store.IncomeVsExpense(r.Context(), start, end)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondData(w, mergeFlows(flows))
}

func (s *Server) handleMonthlySpending(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r, spendingDefaultStart(time.Now()))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	spending, err := s.store.MonthlySpending(r.Context(), start, end)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	out := make([]domain.MonthlySpending, 0, len(spending))
	for _, ms := range spending {
		ms.Total = ms.Total.Abs()
		out = append(out, ms)
	}
	respondData(w, out)
}

package web

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/domain"
)

// handleListBudgets refreshes spent totals for the current period before
// listing, so progress bars reflect the latest transactions.
func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	period := domain.PeriodMonthly
	if raw := r.URL.Query().Get("period"); raw != "" {
		if !domain.ValidBudgetPeriod(raw) {
			s.respondError(w, r, fmt.Errorf("invalid budget period %q", raw), http.StatusBadRequest)
			return
		}
		period = domain.BudgetPeriod(raw)
	}

	if err := s.store.RefreshBudgetSpent(r.Context()); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	budgets, err := s.store.ListBudgets(r.Context(), period)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if budgets == nil {
		budgets = []domain.Budget{}
	}
	respondData(w, budgets)
}

func (s *Server) handleUpsertBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CategoryID uuid.UUID       `json:"categoryId"`
		Amount     decimal.Decimal `json:"amount"`
		Period     string          `json:"period"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if req.CategoryID == uuid.Nil {
		s.respondError(w, r, fmt.Errorf("categoryId is required"), http.StatusBadRequest)
		return
	}
	if !domain.ValidBudgetPeriod(req.Period) {
		s.respondError(w, r, fmt.Errorf("invalid budget period %q", req.Period), http.StatusBadRequest)
		return
	}
	if req.Amount.IsNegative() {
		s.respondError(w, r, fmt.Errorf("amount must not be negative"), http.StatusBadRequest)
		return
	}

	budget, err := s.store.UpsertBudget(r.Context(), domain.NewBudget{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     domain.BudgetPeriod(req.Period),
	})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	respondData(w, budget)
}

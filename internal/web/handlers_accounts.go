package web

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/domain"
)

// handleListAccounts returns all accounts plus their combined balance.
func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, total, err := s.store.ListAccounts(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	respondData(w, map[string]any{
		"accounts": accounts,
		"total":    total.StringFixed(2),
	})
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	account, err := s.store.GetAccount(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	respondData(w, account)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string          `json:"name"`
		Balance decimal.Decimal `json:"balance"`
		Type    string          `json:"type"`
		Color   string          `json:"color"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		s.respondError(w, r, fmt.Errorf("name is required"), http.StatusBadRequest)
		return
	}
	if !domain.ValidAccountType(req.Type) {
		s.respondError(w, r, fmt.Errorf("invalid account type %q", req.Type), http.StatusBadRequest)
		return
	}

	account, err := s.store.CreateAccount(r.Context(), domain.NewAccount{
		Name:    req.Name,
		Balance: req.Balance,
		Type:    domain.AccountType(req.Type),
		Color:   req.Color,
	})
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    account,
	})
}

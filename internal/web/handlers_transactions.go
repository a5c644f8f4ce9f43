package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/domain"
	"github.com/pennywise-app/pennywise/internal/importer"
	"github.com/pennywise-app/pennywise/internal/logging"
	"github.com/pennywise-app/pennywise/internal/store"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	var filter store.TransactionFilter
	var err error

	if filter.AccountID, err = queryUUID(r, "accountId"); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if filter.CategoryID, err = queryUUID(r, "categoryId"); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if filter.StartDate, err = queryTime(r, "startDate"); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if filter.EndDate, err = queryTime(r, "endDate"); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			s.respondError(w, r, fmt.Errorf("invalid limit %q", raw), http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	txs, err := s.store.ListTransactions(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	respondData(w, txs)
}

// handleUploadTransactions inserts a batch of already-normalized records one
// at a time, in order. The first failure stops the batch; earlier inserts are
// kept. The response reports how many rows made it in and which row failed.
func (s *Server) handleUploadTransactions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transactions []importer.NormalizedTransaction `json:"transactions"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if len(req.Transactions) == 0 {
		s.respondError(w, r, fmt.Errorf("no transactions to upload"), http.StatusBadRequest)
		return
	}

	log := logging.WithFields(r.Context(), "rows", len(req.Transactions))
	log.Info("transaction upload started")

	created := make([]domain.Transaction, 0, len(req.Transactions))
	for i, nt := range req.Transactions {
		tx, err := s.store.CreateNormalized(r.Context(), nt)
		if err != nil {
			log.Error("transaction upload failed",
				"inserted", len(created), "failed_row", i+1, "error", err.Error())
			msg := MapError(err)
			respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"success":   false,
				"count":     len(created),
				"failedRow": i + 1,
				"error":     fmt.Sprintf("%d succeeded, row %d failed: %s", len(created), i+1, msg.Message),
				"code":      msg.Code,
			})
			return
		}
		created = append(created, tx)
	}

	log.Info("transaction upload finished", "inserted", len(created))
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"count":   len(created),
		"data":    created,
	})
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	tx, err := s.store.GetTransaction(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	respondData(w, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	// CategoryID is a RawMessage so an explicit null (clear the category)
	// can be told apart from an absent field (leave it alone).
	var req struct {
		Date        *string          `json:"date"`
		Description *string          `json:"description"`
		Amount      *decimal.Decimal `json:"amount"`
		CategoryID  json.RawMessage  `json:"categoryId"`
		AccountID   *uuid.UUID       `json:"accountId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	upd := domain.TransactionUpdate{
		Description: req.Description,
		Amount:      req.Amount,
		AccountID:   req.AccountID,
	}
	if req.Date != nil {
		date, ok := parseDate(*req.Date)
		if !ok {
			s.respondError(w, r, fmt.Errorf("invalid date %q", *req.Date), http.StatusBadRequest)
			return
		}
		upd.Date = &date
	}
	if len(req.CategoryID) > 0 {
		if string(req.CategoryID) == "null" {
			upd.SetCategoryNull = true
		} else {
			var catID uuid.UUID
			if err := json.Unmarshal(req.CategoryID, &catID); err != nil {
				s.respondError(w, r, fmt.Errorf("invalid categoryId: %w", err), http.StatusBadRequest)
				return
			}
			upd.CategoryID = &catID
		}
	}

	tx, err := s.store.UpdateTransaction(r.Context(), id, upd)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	respondData(w, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	respondData(w, map[string]any{"id": id})
}

// parseDate accepts RFC3339 timestamps or bare dates.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

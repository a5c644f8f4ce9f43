// Package rpc exposes a single-endpoint method dispatcher as an alternative
// to the REST routes. A request names a method and carries a params object;
// the response uses the same success envelope as the REST API.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pennywise-app/pennywise/internal/logging"
	"github.com/pennywise-app/pennywise/internal/store"
)

// Handler dispatches RPC calls against the store.
type Handler struct {
	store   *store.Store
	methods map[string]method
}

type method func(ctx context.Context, params json.RawMessage) (any, error)

type request struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// NewHandler builds the dispatcher with every supported method registered.
func NewHandler(st *store.Store) *Handler {
	h := &Handler{store: st}
	h.methods = map[string]method{
		"accounts.list":              h.accountsList,
		"categories.list":            h.categoriesList,
		"transactions.list":          h.transactionsList,
		"transactions.upload":        h.transactionsUpload,
		"transactions.update":        h.transactionsUpdate,
		"analytics.categorySpending": h.categorySpending,
		"analytics.incomeVsExpense":  h.incomeVsExpense,
		"analytics.monthlySpending":  h.monthlySpending,
	}
	return h
}

// ServeHTTP accepts POST requests with a JSON body naming the method.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	fn, ok := h.methods[req.Method]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown method %q", req.Method))
		return
	}

	result, err := fn(r.Context(), req.Params)
	if err != nil {
		logging.FromContext(r.Context()).Error("rpc call failed",
			"rpc_method", req.Method, "error", err.Error())
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result,
	})
}

func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}

// decode unmarshals params into v; absent params leave v at its zero value.
func decode(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", s)
	}
	return &id, nil
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", s)
}

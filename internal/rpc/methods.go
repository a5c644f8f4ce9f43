package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/domain"
	"github.com/pennywise-app/pennywise/internal/importer"
	"github.com/pennywise-app/pennywise/internal/store"
)

func (h *Handler) accountsList(ctx context.Context, _ json.RawMessage) (any, error) {
	accounts, total, err := h.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"accounts": accounts,
		"total":    total.StringFixed(2),
	}, nil
}

func (h *Handler) categoriesList(ctx context.Context, _ json.RawMessage) (any, error) {
	return h.store.ListCategories(ctx)
}

func (h *Handler) transactionsList(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		AccountID  string `json:"accountId"`
		CategoryID string `json:"categoryId"`
		StartDate  string `json:"startDate"`
		EndDate    string `json:"endDate"`
		Limit      int    `json:"limit"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}

	var (
		filter store.TransactionFilter
		err    error
	)
	if filter.AccountID, err = parseOptionalUUID(p.AccountID); err != nil {
		return nil, err
	}
	if filter.CategoryID, err = parseOptionalUUID(p.CategoryID); err != nil {
		return nil, err
	}
	if filter.StartDate, err = parseOptionalTime(p.StartDate); err != nil {
		return nil, err
	}
	if filter.EndDate, err = parseOptionalTime(p.EndDate); err != nil {
		return nil, err
	}
	filter.Limit = p.Limit

	txs, err := h.store.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return txs, nil
}

// transactionsUpload inserts records one at a time and stops at the first
// failure, keeping what was already inserted.
func (h *Handler) transactionsUpload(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		Transactions []importer.NormalizedTransaction `json:"transactions"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if len(p.Transactions) == 0 {
		return nil, fmt.Errorf("no transactions to upload")
	}

	created := make([]domain.Transaction, 0, len(p.Transactions))
	for i, nt := range p.Transactions {
		tx, err := h.store.CreateNormalized(ctx, nt)
		if err != nil {
			return nil, fmt.Errorf("%d succeeded, row %d failed: %w", len(created), i+1, err)
		}
		created = append(created, tx)
	}
	return map[string]any{
		"count":        len(created),
		"transactions": created,
	}, nil
}

func (h *Handler) transactionsUpdate(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		ID          uuid.UUID        `json:"id"`
		Date        *string          `json:"date"`
		Description *string          `json:"description"`
		Amount      *decimal.Decimal `json:"amount"`
		CategoryID  json.RawMessage  `json:"categoryId"`
		AccountID   *uuid.UUID       `json:"accountId"`
	}
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		return nil, fmt.Errorf("id is required")
	}

	upd := domain.TransactionUpdate{
		Description: p.Description,
		Amount:      p.Amount,
		AccountID:   p.AccountID,
	}
	if p.Date != nil {
		t, err := parseOptionalTime(*p.Date)
		if err != nil {
			return nil, err
		}
		upd.Date = t
	}
	if len(p.CategoryID) > 0 {
		if string(p.CategoryID) == "null" {
			upd.SetCategoryNull = true
		} else {
			var catID uuid.UUID
			if err := json.Unmarshal(p.CategoryID, &catID); err != nil {
				return nil, fmt.Errorf("invalid categoryId: %w", err)
			}
			upd.CategoryID = &catID
		}
	}

	return h.store.UpdateTransaction(ctx, p.ID, upd)
}

type rangeParams struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (p rangeParams) resolve(defaultStart time.Time) (time.Time, time.Time, error) {
	start, err := parseOptionalTime(p.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseOptionalTime(p.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start == nil {
		start = &defaultStart
	}
	if end == nil {
		now := time.Now()
		end = &now
	}
	return *start, *end, nil
}

// categorySpending returns each category's share of total spending as a
// positive amount plus a whole-number percentage of the grand total.
func (h *Handler) categorySpending(ctx context.Context, params json.RawMessage) (any, error) {
	var p rangeParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	now := time.Now()
	start, end, err := p.resolve(time.Date(now.Year()-5, now.Month(), 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}

	spending, err := h.store.CategorySpending(ctx, start, end)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, cs := range spending {
		total = total.Add(cs.Total.Abs())
	}

	type slice struct {
		Category   string          `json:"category"`
		Amount     decimal.Decimal `json:"amount"`
		Percentage int             `json:"percentage"`
	}
	out := make([]slice, 0, len(spending))
	for _, cs := range spending {
		amount := cs.Total.Abs()
		pct := 0
		if !total.IsZero() {
			pct = int(amount.Div(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		}
		out = append(out, slice{Category: cs.Category, Amount: amount, Percentage: pct})
	}
	return out, nil
}

func (h *Handler) incomeVsExpense(ctx context.Context, params json.RawMessage) (any, error) {
	var p rangeParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	start, end, err := p.resolve(time.Now().AddDate(0, -6, 0))
	if err != nil {
		return nil, err
	}

	flows, err := h.store.IncomeVsExpense(ctx, start, end)
	if err != nil {
		return nil, err
	}

	type monthFlow struct {
		Month   string          `json:"month"`
		Income  decimal.Decimal `json:"income"`
		Expense decimal.Decimal `json:"expense"`
	}
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
	return merged, nil
}

func (h *Handler) monthlySpending(ctx context.Context, params json.RawMessage) (any, error) {
	var p rangeParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	now := time.Now()
	start, end, err := p.resolve(time.Date(now.Year()-5, now.Month(), 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}

	spending, err := h.store.MonthlySpending(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]domain.MonthlySpending, 0, len(spending))
	for _, ms := range spending {
		ms.Total = ms.Total.Abs()
		out = append(out, ms)
	}
	return out, nil
}

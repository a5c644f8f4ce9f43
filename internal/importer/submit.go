package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/pennywise-app/pennywise/internal/domain"
)

// ErrNotReady is returned when Submit is called before the validator passes.
// The persistence layer is never contacted in that case.
var ErrNotReady = errors.New("import is not ready to submit")

// ErrSubmitInFlight is returned when a submission is already running for the
// session. Rows are submitted sequentially by a single flow so that a
// mid-batch failure has a well-defined "N succeeded, row K failed" boundary.
var ErrSubmitInFlight = errors.New("submission already in progress")

// NormalizedTransaction is the canonical record shape handed to persistence,
// independent of the source CSV's column layout. Date is ISO-8601 when the
// source value was parseable, verbatim otherwise; Amount stays a decimal
// string for the persistence layer to interpret.
type NormalizedTransaction struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	AccountID   string `json:"accountId"`
	CategoryID  string `json:"categoryId,omitempty"`
}

// TransactionCreator is the persistence collaborator for the submitter.
// Implementations create exactly one record per call.
type TransactionCreator interface {
	CreateNormalized(ctx context.Context, tx NormalizedTransaction) (domain.Transaction, error)
}

// SubmitResult reports the outcome of a submission.
type SubmitResult struct {
	// Created holds the persisted records, in submission order.
	Created []domain.Transaction `json:"transactions"`
	// Count is len(Created): how many rows made it in before any failure.
	Count int `json:"count"`
	// FailedRow is the original row index of the first failure, nil on
	// full success.
	FailedRow *int `json:"failedRow,omitempty"`
	// Err is the underlying cause of the failure, nil on full success.
	Err error `json:"-"`
}

// Normalize converts one parsed row into the canonical record shape under
// the session's current mapping. Exposed so previews can show the exact
// records a submission would produce.
func (s *Session) Normalize(row Row) NormalizedTransaction {
	tx := NormalizedTransaction{AccountID: s.accountID}

	if h, ok := s.mapping.headerFor(FieldDate, s.headers); ok {
		tx.Date = NormalizeDate(row[h])
	}
	if h, ok := s.mapping.headerFor(FieldDescription, s.headers); ok {
		tx.Description = row[h]
	}
	if h, ok := s.mapping.headerFor(FieldAmount, s.headers); ok {
		tx.Amount = row[h]
	}
	if h, ok := s.mapping.headerFor(FieldCategory, s.headers); ok {
		tx.CategoryID = row[h]
	}
	return tx
}

// Submit converts every selected row into a normalized transaction and hands
// them to creator one at a time, in ascending original row index order.
//
// Submission stops at the first failure: the result then reports how many
// records were created before it and which original row failed. Records
// already created are not rolled back; no compensating transaction exists.
// Submit refuses locally (ErrNotReady) when the validator does not pass.
func (s *Session) Submit(ctx context.Context, creator TransactionCreator) SubmitResult {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return SubmitResult{Err: ErrSubmitInFlight}
	}
	if !CanSubmit(s.mapping, len(s.rows), len(s.selected), s.accountID) {
		s.mu.Unlock()
		return SubmitResult{Err: ErrNotReady}
	}

	s.state = StateSubmitting
	order := s.selectionLocked()
	batch := make([]NormalizedTransaction, len(order))
	for i, idx := range order {
		batch[i] = s.Normalize(s.rows[idx])
	}
	s.mu.Unlock()

	result := SubmitResult{}
	for i, tx := range batch {
		created, err := creator.CreateNormalized(ctx, tx)
		if err != nil {
			failed := order[i]
			result.FailedRow = &failed
			result.Err = fmt.Errorf("row %d: %w", failed, err)
			s.setState(StateFailed)
			return result
		}
		result.Created = append(result.Created, created)
		result.Count++
	}

	s.setState(StateSucceeded)
	return result
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

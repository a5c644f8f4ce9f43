package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/domain"
	"github.com/pennywise-app/pennywise/internal/importer"
)

// CreateNormalized implements importer.TransactionCreator: it turns one
// normalized CSV record into a persisted transaction. Each field is parsed
// strictly; a record that fails here fails the import at that row, which is
// exactly the submitter's stop-at-first-failure contract.
func (s *Store) CreateNormalized(ctx context.Context, tx importer.NormalizedTransaction) (domain.Transaction, error) {
	date, ok := importer.ParseISODate(tx.Date)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("invalid date %q", tx.Date)
	}

	amount, err := decimal.NewFromString(tx.Amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid number %q", tx.Amount)
	}

	accountID, err := uuid.Parse(tx.AccountID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid account id %q", tx.AccountID)
	}

	var categoryID *uuid.UUID
	if tx.CategoryID != "" {
		id, err := uuid.Parse(tx.CategoryID)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("invalid category id %q", tx.CategoryID)
		}
		categoryID = &id
	}

	return s.CreateTransaction(ctx, domain.NewTransaction{
		Date:        date,
		Description: tx.Description,
		Amount:      amount,
		CategoryID:  categoryID,
		AccountID:   accountID,
	})
}

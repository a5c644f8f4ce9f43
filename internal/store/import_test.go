package store

import (
	"context"
	"strings"
	"testing"

	"github.com/pennywise-app/pennywise/internal/importer"
)

// Field validation happens before any database work, so these cases run
// against a store with no connection behind it.
func TestCreateNormalizedRejectsBadFields(t *testing.T) {
	s := New(nil)

	valid := importer.NormalizedTransaction{
		Date:        "2024-01-05T00:00:00.000Z",
		Description: "Coffee",
		Amount:      "-42.50",
		AccountID:   "0d9eb232-4c87-4af4-a522-49ae0b600001",
	}

	tests := []struct {
		name    string
		mutate  func(*importer.NormalizedTransaction)
		wantMsg string
	}{
		{
			"unparseable date",
			func(tx *importer.NormalizedTransaction) { tx.Date = "not-a-date" },
			"invalid date",
		},
		{
			"empty date",
			func(tx *importer.NormalizedTransaction) { tx.Date = "" },
			"invalid date",
		},
		{
			"bad amount",
			func(tx *importer.NormalizedTransaction) { tx.Amount = "12,50" },
			"invalid number",
		},
		{
			"empty amount",
			func(tx *importer.NormalizedTransaction) { tx.Amount = "" },
			"invalid number",
		},
		{
			"bad account id",
			func(tx *importer.NormalizedTransaction) { tx.AccountID = "checking" },
			"invalid account id",
		},
		{
			"bad category id",
			func(tx *importer.NormalizedTransaction) { tx.CategoryID = "Groceries" },
			"invalid category id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)

			_, err := s.CreateNormalized(context.Background(), tx)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

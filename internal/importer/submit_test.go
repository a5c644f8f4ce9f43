package importer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/domain"
)

// fakeCreator records every normalized transaction it receives and fails on
// a chosen call, mimicking a non-transactional persistence collaborator.
type fakeCreator struct {
	received []NormalizedTransaction
	failOn   int // 1-based call number to fail on, 0 = never
}

func (f *fakeCreator) CreateNormalized(_ context.Context, tx NormalizedTransaction) (domain.Transaction, error) {
	f.received = append(f.received, tx)
	if f.failOn > 0 && len(f.received) == f.failOn {
		return domain.Transaction{}, errors.New("insert rejected")
	}
	amt, _ := decimal.NewFromString(tx.Amount)
	return domain.Transaction{
		ID:          uuid.New(),
		Description: tx.Description,
		Amount:      amt,
		CreatedAt:   time.Now(),
	}, nil
}

func readySession(t *testing.T) *Session {
	t.Helper()
	s := loadedSession(t)
	s.SetMapping("Date", FieldDate)
	s.SetMapping("Amount", FieldAmount)
	s.SetMapping("Memo", FieldDescription)
	s.SetAccount("acct-1")
	s.SelectAll()
	return s
}

func TestSubmit_NormalizesSelectedRows(t *testing.T) {
	s := loadedSession(t)
	s.SetMapping("Date", FieldDate)
	s.SetMapping("Amount", FieldAmount)
	s.SetMapping("Memo", FieldDescription)
	s.SetAccount("acct-1")
	s.Toggle(0)
	s.Toggle(1)

	creator := &fakeCreator{}
	result := s.Submit(context.Background(), creator)
	if result.Err != nil {
		t.Fatalf("Submit() error = %v", result.Err)
	}
	if result.Count != 2 {
		t.Fatalf("Count = %d, want 2", result.Count)
	}

	want := []NormalizedTransaction{
		{Date: "2024-01-05T00:00:00.000Z", Description: "Coffee", Amount: "-42.50", AccountID: "acct-1"},
		{Date: "2024-01-06T00:00:00.000Z", Description: "Paycheck", Amount: "1000.00", AccountID: "acct-1"},
	}
	for i, w := range want {
		if creator.received[i] != w {
			t.Errorf("received[%d] = %+v, want %+v", i, creator.received[i], w)
		}
	}
	if s.State() != StateSucceeded {
		t.Errorf("State() = %q, want %q", s.State(), StateSucceeded)
	}
}

func TestSubmit_StopsAtFirstFailure(t *testing.T) {
	s := readySession(t) // rows 0, 1, 2 selected

	creator := &fakeCreator{failOn: 2}
	result := s.Submit(context.Background(), creator)

	if result.Err == nil {
		t.Fatal("Submit() error = nil, want failure")
	}
	if result.Count != 1 {
		t.Errorf("Count = %d, want 1 (only row 0 succeeded)", result.Count)
	}
	if result.FailedRow == nil || *result.FailedRow != 1 {
		t.Errorf("FailedRow = %v, want 1", result.FailedRow)
	}
	// Row 2 must never be submitted.
	if len(creator.received) != 2 {
		t.Errorf("creator received %d records, want 2", len(creator.received))
	}
	if s.State() != StateFailed {
		t.Errorf("State() = %q, want %q", s.State(), StateFailed)
	}
}

func TestSubmit_AscendingOrder(t *testing.T) {
	s := readySession(t)
	// Re-select in a scrambled order; submission must still go 0, 1, 2.
	s.SelectNone()
	s.Toggle(2)
	s.Toggle(0)
	s.Toggle(1)

	creator := &fakeCreator{}
	if result := s.Submit(context.Background(), creator); result.Err != nil {
		t.Fatalf("Submit() error = %v", result.Err)
	}

	wantDescriptions := []string{"Coffee", "Paycheck", "Bus"}
	for i, w := range wantDescriptions {
		if creator.received[i].Description != w {
			t.Errorf("received[%d].Description = %q, want %q", i, creator.received[i].Description, w)
		}
	}
}

func TestSubmit_RefusedWhenNotReady(t *testing.T) {
	s := loadedSession(t)
	s.SetMapping("Date", FieldDate) // amount and description unmapped
	s.SelectAll()
	s.SetAccount("acct-1")

	creator := &fakeCreator{}
	result := s.Submit(context.Background(), creator)
	if !errors.Is(result.Err, ErrNotReady) {
		t.Fatalf("Submit() error = %v, want ErrNotReady", result.Err)
	}
	// Refused locally: the collaborator is never contacted.
	if len(creator.received) != 0 {
		t.Errorf("creator received %d records, want 0", len(creator.received))
	}
}

func TestSubmit_CategoryOmittedWhenUnresolved(t *testing.T) {
	text := "Date,Amount,Memo,Cat\n2024-01-05,-42.50,Coffee,\n2024-01-06,1000.00,Paycheck,cat-9"
	s := NewSession()
	if err := s.LoadText(text); err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	s.SetMapping("Date", FieldDate)
	s.SetMapping("Amount", FieldAmount)
	s.SetMapping("Memo", FieldDescription)
	s.SetMapping("Cat", FieldCategory)
	s.SetAccount("acct-1")
	s.SelectAll()

	creator := &fakeCreator{}
	if result := s.Submit(context.Background(), creator); result.Err != nil {
		t.Fatalf("Submit() error = %v", result.Err)
	}
	if creator.received[0].CategoryID != "" {
		t.Errorf("CategoryID = %q, want empty for blank cell", creator.received[0].CategoryID)
	}
	if creator.received[1].CategoryID != "cat-9" {
		t.Errorf("CategoryID = %q, want %q", creator.received[1].CategoryID, "cat-9")
	}
}

func TestSubmit_UnparseableDatePassesThrough(t *testing.T) {
	text := "Date,Amount,Memo\nsometime,-1.00,Mystery"
	s := NewSession()
	if err := s.LoadText(text); err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	s.SetMapping("Date", FieldDate)
	s.SetMapping("Amount", FieldAmount)
	s.SetMapping("Memo", FieldDescription)
	s.SetAccount("acct-1")
	s.SelectAll()

	creator := &fakeCreator{}
	if result := s.Submit(context.Background(), creator); result.Err != nil {
		t.Fatalf("Submit() error = %v", result.Err)
	}
	if creator.received[0].Date != "sometime" {
		t.Errorf("Date = %q, want verbatim %q", creator.received[0].Date, "sometime")
	}
}

// Package domain defines the core entities of the finance tracker:
// accounts, categories, transactions and budgets. These structs mirror the
// relational schema and carry no persistence or transport concerns.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
)

// ValidAccountType reports whether s is a known account type.
func ValidAccountType(s string) bool {
	switch AccountType(s) {
	case AccountChecking, AccountSavings, AccountCredit, AccountInvestment:
		return true
	}
	return false
}

// TransactionType marks a transaction as money in or money out.
// The type is derived from the sign of the amount at creation time:
// negative amounts are expenses, everything else is income.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// BudgetPeriod is the time window a budget applies to.
type BudgetPeriod string

const (
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// ValidBudgetPeriod reports whether s is a known budget period.
func ValidBudgetPeriod(s string) bool {
	return BudgetPeriod(s) == PeriodMonthly || BudgetPeriod(s) == PeriodYearly
}

// Account is a destination for transactions (bank account, card, ...).
type Account struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Type      AccountType     `json:"type"`
	Color     string          `json:"color"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewAccount holds the fields required to create an account.
type NewAccount struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Type    AccountType     `json:"type"`
	Color   string          `json:"color"`
}

// Category groups transactions for budgeting and analytics.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCategory holds the fields required to create a category.
type NewCategory struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// Transaction is a single dated financial movement tied to an account and
// optionally a category.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	CategoryID  *uuid.UUID      `json:"categoryId"`
	AccountID   uuid.UUID       `json:"accountId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Joined display fields, populated by list queries.
	CategoryName  string `json:"categoryName,omitempty"`
	CategoryColor string `json:"categoryColor,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	AccountColor  string `json:"accountColor,omitempty"`
}

// NewTransaction holds the fields required to create a transaction.
// Type is not included: it is derived from the sign of Amount.
type NewTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID
	AccountID   uuid.UUID
}

// DeriveType returns the transaction type implied by the amount sign.
func (t NewTransaction) DeriveType() TransactionType {
	if t.Amount.IsNegative() {
		return TypeExpense
	}
	return TypeIncome
}

// TransactionUpdate carries a partial update. Nil fields are left untouched.
// SetCategoryNull distinguishes "clear the category" from "don't change it".
type TransactionUpdate struct {
	Date            *time.Time
	Description     *string
	Amount          *decimal.Decimal
	CategoryID      *uuid.UUID
	SetCategoryNull bool
	AccountID       *uuid.UUID
}

// Budget is a spending target for a category over a period.
type Budget struct {
	ID         uuid.UUID       `json:"id"`
	CategoryID uuid.UUID       `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
	Period     BudgetPeriod    `json:"period"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`

	CategoryName  string `json:"categoryName,omitempty"`
	CategoryColor string `json:"categoryColor,omitempty"`
}

// NewBudget holds the fields required to create or replace a budget.
// (category, period) is unique: upserting the same pair overwrites the amount.
type NewBudget struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Period     BudgetPeriod    `json:"period"`
}

// PercentUsed returns how much of the budget has been spent, 0-100+.
func (b Budget) PercentUsed() int {
	if b.Amount.IsZero() {
		return 0
	}
	pct := b.Spent.Div(b.Amount).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// CategorySpending is one slice of the spending-by-category aggregate.
type CategorySpending struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyFlow is one month of income/expense totals, month as "YYYY-MM".
type MonthlyFlow struct {
	Month string          `json:"month"`
	Type  TransactionType `json:"type"`
	Total decimal.Decimal `json:"total"`
}

// MonthlySpending is one month of expense totals, month as "YYYY-MM".
type MonthlySpending struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

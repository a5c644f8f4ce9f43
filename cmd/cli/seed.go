package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/domain"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with sample data",
		Long: `seed creates a handful of categories, accounts, budgets and recent
transactions so the app has something to show on first run. Running it twice
creates duplicates; use it against a fresh database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, pool, _, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			categories := map[string]uuid.UUID{}
			for _, c := range seedCategories {
				created, err := st.CreateCategory(ctx, c)
				if err != nil {
					return fmt.Errorf("seed category %s: %w", c.Name, err)
				}
				categories[c.Name] = created.ID
			}

			accounts := map[string]uuid.UUID{}
			for _, a := range seedAccounts {
				created, err := st.CreateAccount(ctx, a)
				if err != nil {
					return fmt.Errorf("seed account %s: %w", a.Name, err)
				}
				accounts[a.Name] = created.ID
			}

			checking := accounts["Main Checking"]
			now := time.Now()
			for _, t := range seedTransactions {
				catID := categories[t.category]
				_, err := st.CreateTransaction(ctx, domain.NewTransaction{
					Date:        now.AddDate(0, 0, -t.daysAgo),
					Description: t.description,
					Amount:      decimal.RequireFromString(t.amount),
					CategoryID:  &catID,
					AccountID:   checking,
				})
				if err != nil {
					return fmt.Errorf("seed transaction %s: %w", t.description, err)
				}
			}

			for category, amount := range seedBudgets {
				_, err := st.UpsertBudget(ctx, domain.NewBudget{
					CategoryID: categories[category],
					Amount:     decimal.RequireFromString(amount),
					Period:     domain.PeriodMonthly,
				})
				if err != nil {
					return fmt.Errorf("seed budget %s: %w", category, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"seeded %d categories, %d accounts, %d transactions, %d budgets\n",
				len(seedCategories), len(seedAccounts), len(seedTransactions), len(seedBudgets))
			return nil
		},
	}
}

var seedCategories = []domain.NewCategory{
	{Name: "Groceries", Color: "#22c55e", Icon: "shopping-cart"},
	{Name: "Dining Out", Color: "#f97316", Icon: "utensils"},
	{Name: "Transport", Color: "#3b82f6", Icon: "car"},
	{Name: "Entertainment", Color: "#a855f7", Icon: "film"},
	{Name: "Utilities", Color: "#eab308", Icon: "zap"},
	{Name: "Rent", Color: "#ef4444", Icon: "home"},
	{Name: "Salary", Color: "#14b8a6", Icon: "banknote"},
}

var seedAccounts = []domain.NewAccount{
	{Name: "Main Checking", Balance: decimal.RequireFromString("2500.00"), Type: domain.AccountChecking, Color: "#3b82f6"},
	{Name: "Savings", Balance: decimal.RequireFromString("10000.00"), Type: domain.AccountSavings, Color: "#22c55e"},
	{Name: "Credit Card", Balance: decimal.RequireFromString("-450.00"), Type: domain.AccountCredit, Color: "#ef4444"},
}

var seedTransactions = []struct {
	daysAgo     int
	description string
	amount      string
	category    string
}{
	{1, "Weekly groceries", "-82.45", "Groceries"},
	{2, "Coffee with Sam", "-7.80", "Dining Out"},
	{3, "Monthly metro pass", "-95.00", "Transport"},
	{4, "Streaming subscription", "-12.99", "Entertainment"},
	{5, "Electricity bill", "-64.30", "Utilities"},
	{6, "Dinner downtown", "-48.60", "Dining Out"},
	{10, "Rent", "-1400.00", "Rent"},
	{12, "Weekly groceries", "-91.10", "Groceries"},
	{15, "Salary", "3200.00", "Salary"},
	{20, "Concert tickets", "-120.00", "Entertainment"},
	{25, "Gas", "-52.75", "Transport"},
	{28, "Weekly groceries", "-77.20", "Groceries"},
}

var seedBudgets = map[string]string{
	"Groceries":     "400.00",
	"Dining Out":    "150.00",
	"Transport":     "200.00",
	"Entertainment": "100.00",
	"Utilities":     "180.00",
}

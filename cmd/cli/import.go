package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/importer"
)

func newImportCmd() *cobra.Command {
	var (
		accountID string
		mappings  []string
		listOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a CSV of transactions",
		Long: `import parses a CSV export, maps its columns onto transaction fields and
inserts every row into the given account. Rows are inserted one at a time in
file order; the import stops at the first row that fails and reports how far
it got. Rows inserted before the failure are kept.

Each --map flag assigns one CSV header to a field:

  pennywise import export.csv \
    --account 6f1e... \
    --map "Date=date" --map "Amount=amount" --map "Memo=description"

Fields: date, amount, description, category, skip. Date, amount and
description must all be mapped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			st, pool, cfg, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			sess := importer.NewSession()
			if err := sess.Load(file, cfg.Import.MaxFileSize); err != nil {
				return err
			}

			if listOnly {
				fmt.Fprintf(cmd.OutOrStdout(), "headers: %s\n", strings.Join(sess.Headers(), ", "))
				fmt.Fprintf(cmd.OutOrStdout(), "rows: %d\n", sess.RowCount())
				return nil
			}

			if _, err := uuid.Parse(accountID); err != nil {
				return fmt.Errorf("invalid --account %q", accountID)
			}
			sess.SetAccount(accountID)

			for _, m := range mappings {
				header, field, ok := strings.Cut(m, "=")
				if !ok {
					return fmt.Errorf("invalid --map %q, want header=field", m)
				}
				if err := sess.SetMapping(header, importer.Field(field)); err != nil {
					return err
				}
			}

			sess.SelectAll()
			if !sess.CanSubmit() {
				missing := make([]string, 0, 3)
				for _, f := range sess.MissingFields() {
					missing = append(missing, string(f))
				}
				return fmt.Errorf("not ready to import: missing mappings for %s",
					strings.Join(missing, ", "))
			}

			result := sess.Submit(ctx, st)
			if result.Err != nil {
				if result.FailedRow != nil {
					cause := result.Err
					if inner := errors.Unwrap(cause); inner != nil {
						cause = inner
					}
					return fmt.Errorf("%d succeeded, row %d failed: %w",
						result.Count, *result.FailedRow, cause)
				}
				return result.Err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d transactions\n", result.Count)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "destination account ID")
	cmd.Flags().StringArrayVar(&mappings, "map", nil, "header=field column mapping (repeatable)")
	cmd.Flags().BoolVar(&listOnly, "list", false, "only print headers and row count, import nothing")

	return cmd
}

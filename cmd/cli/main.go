// Command cli is the pennywise command line: database seeding and headless
// CSV imports without going through the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/config"
	"github.com/pennywise-app/pennywise/internal/logging"
	"github.com/pennywise-app/pennywise/internal/store"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "pennywise",
		Short: "Personal finance tracker utilities",
		Long: `pennywise manages the finance tracker database from the command line:
seed it with sample data or import bank CSV exports directly.`,
		SilenceUsage: true,
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newImportCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "pennywise", version)
		},
	}
}

// openStore loads configuration, connects to the database and makes sure the
// schema exists. The caller must Close the returned pool.
func openStore(ctx context.Context) (*store.Store, *pgxpool.Pool, *config.Config, error) {
	_ = godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("ping: %w", err)
	}

	st := store.NewWithPool(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	return st, pool, cfg, nil
}

// Package main applies, rolls back or reports the embedded database migrations.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate status
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jobprep-backend/internal/shared/config"
	"jobprep-backend/internal/shared/storage/db"
)

var databaseURL string

var rootCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Manage the job prep database schema",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres DSN (defaults to DATABASE_URL)")
	rootCmd.AddCommand(
		migrationCommand("up", "Apply all pending migrations", db.RunMigrations),
		migrationCommand("down", "Roll back the most recent migration", db.RollbackMigration),
		migrationCommand("status", "Print the state of every migration", db.MigrationStatus),
	)
}

func migrationCommand(use, short string, run func(context.Context, *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), run)
		},
	}
}

func withDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	if flag := strings.TrimSpace(databaseURL); flag != "" {
		if err := os.Setenv("DATABASE_URL", flag); err != nil {
			return err
		}
	}
	dsn, pool, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	sqlDB, err := db.Open(ctx, dsn, db.OptionsFor(db.ProfileMigrate, pool))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer sqlDB.Close()
	return fn(ctx, sqlDB)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

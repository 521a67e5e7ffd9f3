package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/delve/internal/storage/postgres"
)

var (
	migrateDirection string
	migrateSteps     int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the PostgreSQL save schema",
	Long: `migrate runs the embedded schema migrations against the database in
storage.postgres. The play command applies pending migrations on its own;
use this to roll back or to prepare a database ahead of time.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDirection, "direction", "up", "migration direction: up or down")
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 0, "number of steps (0 = all)")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := postgres.Migrate(cfg.Storage.Postgres, postgres.Direction(migrateDirection), migrateSteps)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	elapsed := time.Since(start)
	if res.NoChange {
		fmt.Fprintf(cmd.OutOrStdout(), "no changes (version=%d dirty=%v) [%s]\n", res.Version, res.Dirty, elapsed)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "migrated %s to version=%d dirty=%v [%s]\n", migrateDirection, res.Version, res.Dirty, elapsed)
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/house-services-backend/internal/config"
	"github.com/cmlabs-hris/house-services-backend/migrations"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|version]",
	Short: "Apply or roll back the embedded schema migrations",
	Example: `  # Apply every pending migration
  housectl migrate up

  # Roll back a single step
  housectl migrate down --steps 1`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down", "version"},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().Int("steps", 0, "Number of migrations to roll back with down (0 rolls back all)")
}

func newMigrator(dsn string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	steps, _ := cmd.Flags().GetInt("steps")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	m, err := newMigrator(cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer m.Close()

	action := args[0]
	switch action {
	case "up":
		err = m.Up()
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "version":
		current, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(cmd.OutOrStdout(), "no migration applied")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", current, dirty)
		return nil
	default:
		return fmt.Errorf("unsupported action %q", action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", action, err)
	}

	slog.Info("migration completed", "action", action)
	return nil
}

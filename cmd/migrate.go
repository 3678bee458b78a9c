package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/project-console/internal/session/sqlite"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "Apply the session store migrations",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "roll back the latest session store migration")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	db, err := sqlite.OpenDB(cfg.Session.Path)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if migrateRollback {
		if err := sqlite.Rollback(ctx, db); err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Rolled back latest session store migration")
		return nil
	}
	if err := sqlite.Migrate(ctx, db); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Session store is up to date")
	return nil
}

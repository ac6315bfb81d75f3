package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clockit/clockit-idm/pkg/store"
)

// NewMigrateCmd creates the migrate subcommand and its up, down and status children.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}
	cmd.AddCommand(
		migrateCmd("up", "Apply all pending migrations", store.Migrate),
		migrateCmd("down", "Roll back the most recent migration", store.Rollback),
		migrateCmd("status", "Print the applied state of each migration", store.MigrationStatus),
	)
	return cmd
}

func migrateCmd(use, short string, run func(ctx context.Context, databaseURL string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := run(cmd.Context(), cfg.DatabaseConfig.ToDatabaseURL()); err != nil {
				return fmt.Errorf("migrate %s: %w", use, err)
			}
			cmd.Printf("migrate %s completed\n", use)
			return nil
		},
	}
}

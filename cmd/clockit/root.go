package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var envFile string

// NewRootCmd creates the root command for the ClockIt identity service.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clockit",
		Short: "ClockIt identity service",
		Long: `ClockIt identity service: employee registration, login with lockout,
password reset by email and the notification inbox.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogger()
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file loaded before reading the environment")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewUnlockCmd())
	cmd.AddCommand(NewAdminCmd())

	return cmd
}

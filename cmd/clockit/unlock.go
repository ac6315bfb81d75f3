package main

import (
	"github.com/spf13/cobra"

	"github.com/clockit/clockit-idm/pkg/auth"
)

// NewUnlockCmd creates the unlock subcommand.
func NewUnlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <email>",
		Short: "Clear the failed login counter and lock of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			pool, err := openPool(cmd.Context(), cfg.DatabaseConfig)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc, err := newServices(cfg, pool)
			if err != nil {
				return err
			}
			if err := svc.auth.UnlockAccount(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Println(auth.UnlockMessage)
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clockit/clockit-idm/pkg/account"
	"github.com/clockit/clockit-idm/pkg/profile"
	"github.com/clockit/clockit-idm/pkg/store"
)

// NewAdminCmd creates the admin subcommand, which grants or revokes the
// admin flag on an employee.
func NewAdminCmd() *cobra.Command {
	var revoke bool
	cmd := &cobra.Command{
		Use:   "admin <email>",
		Short: "Grant (or revoke) admin rights for an employee",
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

			email, err := setAdmin(cmd.Context(), store.NewPostgresStore(pool).Repos().Profiles, args[0], !revoke)
			if err != nil {
				return err
			}
			if revoke {
				cmd.Printf("Admin rights revoked for %s\n", email)
			} else {
				cmd.Printf("Admin rights granted to %s\n", email)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "remove the admin flag instead of setting it")
	return cmd
}

// setAdmin returns the normalized email it matched.
func setAdmin(ctx context.Context, profiles profile.Repository, email string, isAdmin bool) (string, error) {
	email = account.NormalizeEmail(email)
	found, err := profiles.SetAdminByEmail(ctx, email, isAdmin)
	if err != nil {
		return email, err
	}
	if !found {
		return email, fmt.Errorf("no employee with email %s", email)
	}
	return email, nil
}

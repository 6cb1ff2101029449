package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/printpro/internal/db"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newUserCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(newUserEnsureCmd(flags), newUserPasswdCmd(flags))
	return cmd
}

func newUserEnsureCmd(flags *globalFlags) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "ensure",
		Short: "Create the admin account if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gdb, cfg, err := openDB(flags)
			if err != nil {
				return err
			}
			defer closeDB(gdb)

			if strings.TrimSpace(username) == "" {
				username = cfg.AdminUsername
			}
			if strings.TrimSpace(password) == "" {
				password = cfg.AdminPassword
			}
			if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
				return errors.New("username and password are required (flags or ADMIN_USERNAME/ADMIN_PASSWORD)")
			}

			created, err := db.EnsureUser(gdb, username, password)
			if err != nil {
				return fmt.Errorf("ensure user: %w", err)
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "created admin user %q\n", strings.TrimSpace(username))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "admin user %q already exists\n", strings.TrimSpace(username))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	return cmd
}

func newUserPasswdCmd(flags *globalFlags) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Reset an admin password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(username) == "" {
				return errors.New("--username is required")
			}

			gdb, _, err := openDB(flags)
			if err != nil {
				return err
			}
			defer closeDB(gdb)

			if err := db.SetPassword(gdb, username, password); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("user %q not found", username)
				}
				return fmt.Errorf("set password: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %q\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password")
	return cmd
}

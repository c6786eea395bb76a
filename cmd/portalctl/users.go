package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
)

const (
	adminPasswordEnv   = "PORTAL_ADMIN_PASSWORD"
	studentPasswordEnv = "PORTAL_STUDENT_PASSWORD"
	minPasswordLength  = 6
)

func passwordFrom(flag, envKey string) (string, error) {
	password := flag
	if password == "" {
		password = os.Getenv(envKey)
	}
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters (flag --password or %s)", minPasswordLength, envKey)
	}
	return password, nil
}

func newAdminCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "admin", Short: "Manage staff accounts"}

	var username, fullName, password string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a staff account or reset its password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username = strings.TrimSpace(username)
			if username == "" {
				return errors.New("--username is required")
			}
			pw, err := passwordFrom(password, adminPasswordEnv)
			if err != nil {
				return err
			}
			cfg, log, err := e.load()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			hash, err := service.HashPassword(pw, cfg.Auth.BcryptCost)
			if err != nil {
				return err
			}
			admins, release, err := e.openAdmins(cfg)
			if err != nil {
				return err
			}
			defer release()

			if fullName == "" {
				fullName = username
			}
			admin := &models.AdminUser{Username: username, FullName: fullName, PasswordHash: hash}
			if err := admins.Upsert(cmd.Context(), admin); err != nil {
				return err
			}
			log.Sugar().Infow("admin account saved", "username", username)
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s saved\n", username)
			return nil
		},
	}
	create.Flags().StringVar(&username, "username", "", "login name")
	create.Flags().StringVar(&fullName, "name", "", "display name")
	create.Flags().StringVar(&password, "password", "", "password (defaults to $"+adminPasswordEnv+")")
	cmd.AddCommand(create)
	return cmd
}

func newStudentCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "student", Short: "Manage student credentials"}

	var password string
	setPassword := &cobra.Command{
		Use:   "set-password STUDENT_ID",
		Short: "Set the portal password of an enrolled student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID := service.NormalizeStudentID(args[0])
			pw, err := passwordFrom(password, studentPasswordEnv)
			if err != nil {
				return err
			}
			cfg, log, err := e.load()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			hash, err := service.HashPassword(pw, cfg.Auth.BcryptCost)
			if err != nil {
				return err
			}
			store, release, err := e.openPasswords(cfg)
			if err != nil {
				return err
			}
			defer release()

			if err := store.UpdatePassword(cmd.Context(), studentID, hash); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("student %s not found", studentID)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", studentID)
			return nil
		},
	}
	setPassword.Flags().StringVar(&password, "password", "", "password (defaults to $"+studentPasswordEnv+")")
	cmd.AddCommand(setPassword)
	return cmd
}

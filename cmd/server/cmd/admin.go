package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/innerventory/server/internal/auth"
)

var (
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an Admin account",
	Long: `Create an Admin account unless one with the same email already exists.

Flags fall back to ADMIN_EMAIL and ADMIN_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		email, password := adminEmail, adminPassword
		if email == "" {
			email = cfg.Admin.Email
		}
		if password == "" {
			password = cfg.Admin.Password
		}
		if email == "" || password == "" {
			return errors.New("--email and --password (or ADMIN_EMAIL/ADMIN_PASSWORD) are required")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		repo, err := openRepository(ctx, cfg.DatabaseURL, cfg.AutoMigrate)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer repo.Close()

		user, created, err := auth.EnsureAdmin(ctx, repo.Users(), email, password)
		if err != nil {
			return err
		}
		if !created {
			logger.Warn().Str("email", user.Email).Str("role", string(user.Role)).Msg("user already exists; nothing to do")
			return nil
		}
		logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("admin user created")
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email address")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
}

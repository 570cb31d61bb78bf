package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/portfolio/internal/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	adminUsername string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		username := strings.TrimSpace(adminUsername)
		password := strings.TrimSpace(adminPassword)
		if username == "" {
			username = cfg.AdminUserName
		}
		if password == "" {
			password = cfg.AdminPassword
		}
		if username == "" || password == "" {
			return errors.New("username and password are required (flags or ADMIN_USER_NAME/ADMIN_PASSWORD)")
		}

		if err := db.Init(cfg.DatabasePath); err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		created, err := db.EnsureUser(db.DB, username, password)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		if !created {
			logger.Info("admin user already exists", zap.String("username", username))
			return nil
		}
		logger.Info("admin user created", zap.String("username", username))
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "admin username")
	createAdminCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "admin password")
}

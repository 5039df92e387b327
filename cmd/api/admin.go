package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-admin/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-admin/internal/db"
	"github.com/BruksfildServices01/clinic-admin/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-admin/internal/logging"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logging.Must(cfg.IsProduction())
			defer func() { _ = log.Sync() }()

			db, err := dbpkg.NewDB(cfg, log)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}
			log.Info("schema migrated")
			return nil
		},
	}
}

func seedAdminCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the admin account or reset its password",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if username == "" {
				username = cfg.AdminUsername
			}
			if password == "" {
				password = cfg.AdminPassword
			}

			log := logging.Must(cfg.IsProduction())
			defer func() { _ = log.Sync() }()

			db, err := dbpkg.NewDB(cfg, log)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			admin, err := dbpkg.SeedAdmin(context.Background(), db, username, password)
			if err != nil {
				return err
			}
			log.Info("admin ready", zap.Uint("id", admin.ID), zap.String("username", admin.Username))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "admin username (default ADMIN_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (default ADMIN_PASSWORD)")
	return cmd
}

func clearSessionsCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear-sessions",
		Short: "Delete every billing session and its line items",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete sessions without --yes")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logging.Must(cfg.IsProduction())
			defer func() { _ = log.Sync() }()

			db, err := dbpkg.NewDB(cfg, log)
			if err != nil {
				return err
			}

			n, err := repository.NewSessionGormRepository(db).ClearSessions(context.Background())
			if err != nil {
				return err
			}
			log.Info("sessions cleared", zap.Int64("deleted", n))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

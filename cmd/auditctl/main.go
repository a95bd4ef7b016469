// Command auditctl runs schema migrations and loads seed data.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/noah-isme/audit-mgmt-api/internal/seed"
	"github.com/noah-isme/audit-mgmt-api/pkg/config"
	"github.com/noah-isme/audit-mgmt-api/pkg/database"
	"github.com/noah-isme/audit-mgmt-api/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "auditctl",
		Short:        "Operate the audit management database",
		SilenceUsage: true,
	}

	migrateCmd := &cobra.Command{
		Use:       "migrate <up|down|version>",
		Short:     "Apply, roll back or inspect schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{database.MigrateUp, database.MigrateDown, "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(_ *config.Config, db *sqlx.DB) error {
				return runMigrate(cmd.OutOrStdout(), db, args[0])
			})
		},
	}

	var seedOpts seed.Options
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load permissions, default roles, the administrator and demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				return runSeed(cmd.Context(), cmd.OutOrStdout(), cfg, db, seedOpts)
			})
		},
	}
	seedCmd.Flags().StringVar(&seedOpts.AdminEmail, "admin-email", "", "Administrator email (default SEED_ADMIN_EMAIL or "+seed.DefaultAdminEmail+")")
	seedCmd.Flags().StringVar(&seedOpts.AdminPassword, "admin-password", "", "Administrator password (default SEED_ADMIN_PASSWORD)")

	root.AddCommand(migrateCmd, seedCmd)
	return root
}

func withDB(ctx context.Context, fn func(cfg *config.Config, db *sqlx.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(cfg, db)
}

func runMigrate(out io.Writer, db *sqlx.DB, direction string) error {
	if direction == "version" {
		version, dirty, err := database.MigrationVersion(db.DB)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "version %d (dirty=%t)\n", version, dirty)
		return nil
	}
	if err := database.RunMigrations(db.DB, direction); err != nil {
		return err
	}
	fmt.Fprintf(out, "migrate %s: ok\n", direction)
	return nil
}

func runSeed(ctx context.Context, out io.Writer, cfg *config.Config, db *sqlx.DB, opts seed.Options) error {
	if opts.AdminEmail == "" {
		opts.AdminEmail = cfg.Seed.AdminEmail
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = cfg.Seed.AdminPassword
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := seed.New(db, logr).Run(ctx, opts); err != nil {
		return err
	}
	fmt.Fprintln(out, "seed: ok")
	return nil
}

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"noteboard/pkg/db/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Migrate applies every pending SQL migration to the notes database and exits.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, log, err := setup(ctx)
		if err != nil {
			return err
		}

		log.Info(ctx, LogApplyingMigrations, zap.String("path", cfg.Postgres.MigrationsDir))
		return postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), cfg.Postgres.MigrationsDir)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

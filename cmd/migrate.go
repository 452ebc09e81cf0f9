package cmd

import (
	"context"
	"fmt"

	"tracking/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand(loadConfig configLoader) *cobra.Command {
	var skipSeed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the schema and seed the branch directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			return migrate(cmd.Context(), config, !skipSeed)
		},
	}
	cmd.Flags().BoolVar(&skipSeed, "skip-seed", false, "do not insert the default branches")
	return cmd
}

func migrate(ctx context.Context, config Config, seed bool) error {
	logger := config.Log.NewLogger()

	gormDB, err := OpenDatabase(ctx, config.DB)
	if err != nil {
		return err
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	logger.Info("Running database migrations")
	if err = postgres.Migrate(ctx, gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if seed {
		if err = postgres.SeedBranches(ctx, gormDB); err != nil {
			return fmt.Errorf("seed branches: %w", err)
		}
		logger.Info("Default branches seeded")
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

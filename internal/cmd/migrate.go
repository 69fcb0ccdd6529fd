package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	mongostore "github.com/law-manager/lawauth/internal/infrastructure/db/mongo"
	"github.com/law-manager/lawauth/internal/infrastructure/db/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL migrations and MongoDB indexes, then exit",
		Long: `migrate prepares every configured backend:

  DIRECTORY_DRIVER=postgres   apply pending SQL migrations to DATABASE_URL
  STORE_DRIVER=mongo or
  DIRECTORY_DRIVER=mongo      create unique email and username indexes

Drivers set to memory need nothing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context())
		},
	}
}

func runMigrate(ctx context.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	if cfg.DirectoryDriver == "postgres" {
		if err := postgres.RunMigrations(cfg.Postgres.URL); err != nil {
			return err
		}
		log.Info().Msg("postgres migrations applied")
	}

	if cfg.UsesMongo() {
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return fmt.Errorf("mongo indexes: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo indexes ensured")
	}
	return nil
}

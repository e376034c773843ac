package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rana718/synthgen/internal/config"
	"github.com/Rana718/synthgen/internal/database"
	"github.com/Rana718/synthgen/internal/database/mongodb"
	"github.com/Rana718/synthgen/internal/types"
	"github.com/Rana718/synthgen/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedFlags         generationFlags
	seedTruncate      bool
	seedNoTransaction bool
	seedNoCreate      bool
	seedYes           bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a dataset and insert it into the configured database",
	Long: `
Generate the schema's tables and insert them parent-first into the database
named by database.url_env. SQL providers write inside one transaction.

Examples:
  synthgen seed
  synthgen seed --rows 500 --truncate
  synthgen seed --seed 7 --no-create`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &seedFlags)
		if err != nil {
			return err
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		input := &utils.InputUtils{}
		if seedTruncate && !input.AskConfirmation("This deletes existing rows in every generated table. Continue?", seedYes) {
			color.Yellow("⚠️  Seeding cancelled")
			return nil
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		ds, advisories, err := generateDataset(cfg, log)
		if err != nil {
			return err
		}
		printSummary(ds)

		color.Cyan("🌱 Seeding %s database...", cfg.Database.Provider)
		ctx := context.Background()
		if strings.EqualFold(cfg.Database.Provider, "mongodb") {
			err = seedMongo(ctx, cfg, dbURL, ds, log)
		} else {
			err = seedSQL(ctx, cfg, dbURL, ds, log)
		}
		if err != nil {
			return err
		}

		printAdvisories(advisories)
		color.Green("\n✅ Database seeding completed successfully!")
		return nil
	},
}

func seedSQL(ctx context.Context, cfg *config.Config, dbURL string, ds *types.Dataset, log *zap.SugaredLogger) error {
	adapter := database.NewAdapter(cfg.Database.Provider)
	if err := adapter.Connect(ctx, dbURL); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer adapter.Close()

	if err := adapter.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	opts := database.Options{
		CreateTables:  cfg.Database.CreateTables && !seedNoCreate,
		Truncate:      seedTruncate,
		NoTransaction: seedNoTransaction,
		Batch:         cfg.Database.Batch,
	}
	return database.NewSeeder(adapter, log).Seed(ctx, ds, opts)
}

func seedMongo(ctx context.Context, cfg *config.Config, dbURL string, ds *types.Dataset, log *zap.SugaredLogger) error {
	sink := mongodb.New(log)
	if err := sink.Connect(ctx, dbURL); err != nil {
		return err
	}
	defer sink.Close()

	return sink.Load(ctx, ds, cfg.Database.Batch, seedTruncate)
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedFlags.register(seedCmd)
	seedCmd.Flags().BoolVar(&seedTruncate, "truncate", false, "Delete existing rows first (drops MongoDB collections)")
	seedCmd.Flags().BoolVar(&seedNoTransaction, "no-transaction", false, "Insert without a wrapping transaction")
	seedCmd.Flags().BoolVar(&seedNoCreate, "no-create", false, "Do not create missing tables")
	seedCmd.Flags().BoolVarP(&seedYes, "yes", "y", false, "Skip confirmations")
}

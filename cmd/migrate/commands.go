package main

import (
	experiencesrepo "bookit/internal/experiences/repository"
	experiencesvalidator "bookit/internal/experiences/validator"
	mongoMigration "bookit/internal/migrations/mongo"
	reconciliationrepo "bookit/internal/reconciliation/repository"
	"bookit/pkg/config"
	"bookit/pkg/orderid"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const jobTimeout = 120 * time.Second

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "BookIt database and catalog administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newUpCmd(), newSeedCmd(), newOrphansCmd(), newOrderIDCmd())
	return cmd
}

func withMongo(run func(ctx context.Context, cfg *config.Config) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), jobTimeout)
		defer cancel()

		cfg := config.Load(JobName)
		cfg.SetMongo()
		defer cfg.GracefulShutdown()

		return run(ctx, cfg)
	}
}

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create collections, schema validators and indexes",
		RunE: withMongo(func(ctx context.Context, cfg *config.Config) error {
			cfg.Log.Info("Starting Mongo migration job")
			db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
			if err := mongoMigration.RunMigration(ctx, db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("Migration completed successfully.")
			return nil
		}),
	}
}

func newSeedCmd() *cobra.Command {
	var daysAhead int

	c := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo experience catalog into an empty database",
		RunE: withMongo(func(ctx context.Context, cfg *config.Config) error {
			base := time.Now().In(cfg.Location()).AddDate(0, 0, daysAhead)
			_, err := mongoMigration.Seed(ctx,
				experiencesrepo.NewMongoExperienceRepository(cfg),
				experiencesvalidator.NewExperienceValidator(cfg.Log),
				mongoMigration.DemoExperiences(base),
			)
			return err
		}),
	}

	c.Flags().IntVar(&daysAhead, "days-ahead", 0, "shift every demo slot this many days further into the future")
	return c
}

func newOrphansCmd() *cobra.Command {
	var limit int64

	c := &cobra.Command{
		Use:   "orphans",
		Short: "List seats consumed by orders that have no booking record",
		RunE: withMongo(func(ctx context.Context, cfg *config.Config) error {
			repo := reconciliationrepo.NewMongoOrphanedCapacityRepository(cfg)
			orphans, err := repo.FindUnresolved(ctx, limit)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(orphans)
		}),
	}

	c.Flags().Int64Var(&limit, "limit", 50, "maximum number of records to print")
	return c
}

func newOrderIDCmd() *cobra.Command {
	var prefix string

	c := &cobra.Command{
		Use:   "order-id",
		Short: "Print a new order id in PREFIX-YYYYMMDD-XXXXX form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := orderid.Generate(prefix, time.Now())
			if !orderid.Valid(id) {
				return fmt.Errorf("prefix %q must be 2-10 letters", prefix)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	c.Flags().StringVar(&prefix, "prefix", orderid.DefaultPrefix, "order id prefix (2-10 upper-case letters)")
	return c
}

package main

import (
	reconciliationhandler "bookit/internal/reconciliation/handler"
	reconciliationrepo "bookit/internal/reconciliation/repository"
	"bookit/pkg/app"
	"bookit/pkg/config"
	"bookit/pkg/kafka"
	kafka_config "bookit/pkg/kafka/config"
	kafka_middleware "bookit/pkg/kafka/middleware"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

const ServiceName = "reconciler"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	handler := reconciliationhandler.NewOrphanedCapacityHandler(
		reconciliationrepo.NewMongoOrphanedCapacityRepository(cfg),
		cfg.Log,
	)
	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.ReconciliationTopic, cfg.ReconciliationGroupID, handler.Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.HealthHandler(cfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return consumer.Start(ctx)
	})

	g.Go(func() error {
		cfg.Log.Info("Starting health server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		cfg.Log.Info("Shutting down reconciler")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			cfg.Log.Error("Health server shutdown failed", "error", err)
		}
		return consumer.Close()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Reconciler stopped with error", "error", err)
		cfg.GracefulShutdown()
		os.Exit(1)
	}
	cfg.Log.Info("Reconciler stopped")
}

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"bottega/internal/amqp"
	"bottega/internal/cli"
	"bottega/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the report worker")
		os.Exit(1)
	}

	logger.Info("Starting bottega-worker")

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reports := worker.New()

	logger.Info("Consuming ledger changes", "queue", cfg.AMQPQueue)
	if err := client.Consume(ctx, reports.HandleChange); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Shutting down worker")
	logger.Info("Daily sales report", "summary", reports.Summary())
}

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-leave/internal/config"
	"go-leave/internal/messaging/kafka/producer"
	"go-leave/internal/shared/connection"
	"go-leave/internal/sweep"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to kafka and, when enabled, runs the
// anniversary sweep on its schedule.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	gormDB, err := ConnectDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDB(gormDB, log)

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("kafka.broker is required")
	}
	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var modules *Modules
	if cfg.Sweep.Enabled {
		rdb, err := ConnectRedis(cfg)
		if err != nil {
			return err
		}
		defer rdb.Close()

		modules, err = NewModules(cfg, gormDB, rdb, logger)
		if err != nil {
			return err
		}
		scheduler := sweep.NewScheduler(modules.Sweeper, rdb, modules.Clock, sweep.SchedulerConfig{
			Interval: cfg.Sweep.Interval,
			LockTTL:  cfg.Sweep.LockTTL,
		}, logger)
		go scheduler.Start(ctx)
	} else {
		modules, err = NewModules(cfg, gormDB, nil, logger)
		if err != nil {
			return err
		}
		log.Info("anniversary sweep disabled")
	}

	go producer.ProcessOutboxEvents(
		ctx,
		modules.Outbox,
		kafkaWriter,
		logger,
		cfg.Outbox.PollInterval,
		cfg.Outbox.BatchSize,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("worker shutting down")
	cancel()

	return nil
}

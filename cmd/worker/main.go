package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/khoahotran/profile-studio/adapters/event"
	"github.com/khoahotran/profile-studio/adapters/persistence"
	activityUC "github.com/khoahotran/profile-studio/internal/application/usecase/activity"
	"github.com/khoahotran/profile-studio/internal/config"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

var errNoBrokers = errors.New("KAFKA_BROKERS is not set")

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Profile Studio activity worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("Cannot start worker", errNoBrokers)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Repositories
	activityRepo := persistence.NewPostgresActivityRepo(dbPool, appLogger)

	// Worker Use Case
	recordEventUC := activityUC.NewRecordEventUseCase(activityRepo, appLogger)

	// Kafka Consumer
	reader := event.NewKafkaReader(cfg)
	defer reader.Close()

	consumer := event.NewProfileEventConsumer(reader, recordEventUC.Execute, appLogger)
	appLogger.Info("Worker listening", zap.String("topic", reader.Config().Topic), zap.String("group_id", cfg.Kafka.GroupID))

	if err := consumer.Run(ctx); err != nil {
		appLogger.Error("Worker stopped with error", err)
	}
	appLogger.Info("Worker exited")
}

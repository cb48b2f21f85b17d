package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"bookpay/internal/config"
	"bookpay/internal/kafka"
	"bookpay/internal/ports"
	"bookpay/internal/service"
	"bookpay/internal/storage/pg"
	"bookpay/internal/storage/redis"
	"bookpay/internal/vnpay"
	"bookpay/pkg/logger"

	"github.com/IBM/sarama"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

type Components struct {
	HttpServer    *ports.Server
	Postgres      *pg.Postgres
	Redis         *redis.Redis
	KafkaConsumer *kafka.KafkaConsumer
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {

	redis, err := redis.NewRedis(&cfg.Redis, logger)
	if err != nil {
		logger.Error("redis error", "error", err.Error())
		return nil, fmt.Errorf("components.init.InitComponents.redis failed: %v", err)
	}

	postgres, err := pg.NewPostgres(ctx, logger, cfg.Postgres.PostgresURL)
	if err != nil {
		logger.Error("postgres error", "error", err.Error())
		return nil, fmt.Errorf("components.init.InitComponents.postgres failed: %w", err)
	}

	gateway := vnpay.NewClient(vnpay.Config{
		TmnCode:    cfg.VNPay.TmnCode,
		HashSecret: cfg.VNPay.HashSecret,
		ReturnURL:  cfg.VNPay.ReturnURL,
		Production: cfg.VNPay.Production,
	})

	orderService := service.NewService(logger, postgres, redis, gateway)

	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumer(cfg.Kafka.BrokerList, saramaConfig)
	if err != nil {
		logger.Error("components.init.InitComponents.consumer: failed to create consumer client", "error", err.Error())
		return nil, fmt.Errorf("components.init.InitComponent: consumer client failed to init: %w", err)
	}
	kafkaConsumer, err := kafka.NewKafkaConsumer(ctx, *cfg, logger, saramaConfig, consumer, orderService)
	if err != nil {
		logger.Error("failed to start", "error", err.Error())
		return nil, fmt.Errorf("components.init.InitComponents.kafkaConsumer failed: %v", err)
	}

	httpServer := ports.NewServer(ctx, cfg, logger, orderService)

	return &Components{
		Postgres:      postgres,
		Redis:         redis,
		KafkaConsumer: kafkaConsumer,
		HttpServer:    httpServer,
	}, nil
}

func (c *Components) Shutdown() error {
	var errs []error
	c.Postgres.CloseConnection()
	if err := c.Redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
	}
	if err := c.KafkaConsumer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close kafka client: %w", err))
	}

	if err := c.HttpServer.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close Http Server: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	return nil
}

func SetupLogger(cfg config.Config) *slog.Logger {
	log := &slog.Logger{}

	switch cfg.Env {
	case envLocal:
		log = logger.SetupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

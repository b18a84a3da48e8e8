package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/go-verify-api/internal/application/verification"
	"github.com/go-verify-api/internal/config"
	"github.com/go-verify-api/internal/infrastructure/awsconfig"
	"github.com/go-verify-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-verify-api/internal/infrastructure/jwt"
	kafkainfra "github.com/go-verify-api/internal/infrastructure/kafka"
	"github.com/go-verify-api/internal/infrastructure/logbus"
	redisinfra "github.com/go-verify-api/internal/infrastructure/redis"
	snsinfra "github.com/go-verify-api/internal/infrastructure/sns"
	"github.com/go-verify-api/internal/logging"
	"github.com/go-verify-api/internal/metrics"
	transporthttp "github.com/go-verify-api/internal/transport/http"
	"github.com/go-verify-api/internal/transport/http/handler"
	transportkafka "github.com/go-verify-api/internal/transport/kafka"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found, reading from environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	awsCfg, err := awsconfig.Load(ctx, cfg)
	if err != nil {
		return err
	}
	dynamoClient := dynamo.NewClient(awsCfg, cfg.AWSEndpointURL)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables, logger)
	users := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)

	checks := map[string]handler.HealthCheck{}

	var store verification.CredentialStore
	switch cfg.CredentialStore {
	case config.StoreDynamo:
		store = dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.UserVerifications)
	default:
		rdb, err := redisinfra.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = redisinfra.NewCredentialStore(rdb)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	var bus verification.NotificationBus
	switch cfg.NotificationBus {
	case config.BusKafka:
		client, err := kafkainfra.NewClient(cfg.KafkaBrokers)
		if err != nil {
			return err
		}
		producer := kafkainfra.NewProducer(client, logger, m)
		defer producer.Close(10 * time.Second)
		bus = producer
		checks["kafka"] = client.Ping
	case config.BusSNS:
		bus = snsinfra.NewPublisher(snsinfra.NewClient(awsCfg, cfg.AWSEndpointURL), cfg.SNSTopicARNs)
	default:
		logger.Warn("notification bus is log-only, no email or SMS will be sent")
		bus = logbus.New(logger)
	}

	jwtProvider, err := jwtinfra.NewProvider(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, cfg.JWTExpiry)
	if err != nil {
		return err
	}

	svc := verification.NewService(verification.ServiceDeps{
		Identities: users,
		Store:      store,
		Bus:        bus,
		Config: verification.Config{
			OTPLength:   cfg.OTPLength,
			EmailTTL:    cfg.EmailTTL(),
			MobileTTL:   cfg.MobileTTL(),
			LinkBaseURL: cfg.VerifyLinkBaseURL,
			EmailTopic:  cfg.EmailTopic,
			MobileTopic: cfg.MobileTopic,
		},
		Logger:  logger,
		Metrics: m,
	})

	if cfg.NotificationBus == config.BusKafka {
		consumer, err := transportkafka.NewConsumerClient(cfg.KafkaBrokers, cfg.KafkaConsumerGroup)
		if err != nil {
			return err
		}
		go transportkafka.NewListener(consumer, svc, logger).Run(ctx)
	}

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		Verifications: svc,
		TokenVerifier: jwtProvider,
		Gatherer:      reg,
		HealthChecks:  checks,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.AppEnv,
			"store", cfg.CredentialStore, "bus", cfg.NotificationBus)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

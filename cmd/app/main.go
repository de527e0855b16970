package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"orderflow/cmd"
	"orderflow/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := postgres.Open(postgres.ConnectionConfig{
		Host:       configs.DBHost,
		Port:       configs.DBPort,
		User:       configs.DBUser,
		Password:   configs.DBPassword,
		DBName:     configs.DBName,
		SSLMode:    configs.DBSslMode,
		RetryCount: 10,
		RetryDelay: 3 * time.Second,
	}, logger)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Publisher().Connect(ctx); err != nil {
		log.Fatalf("Error connecting to broker: %v", err)
	}
	defer app.Publisher().Close()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	rpcServer := app.CreateRPCServer()
	go func() {
		if err := rpcServer.Start(); err != nil {
			logger.Error("rpc server stopped", "error", err)
			stop()
		}
	}()
	defer rpcServer.Stop()

	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)
	go func() {
		err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func getConfigs() cmd.Config {
	// A missing .env file is fine in containerized deployments where the
	// environment is set by the orchestrator.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort: envOrDefault("HTTP_PORT", "8080"),
		RPCPort:  envOrDefault("RPC_PORT", "9090"),

		DBHost:     envOrDefault("DB_HOST", "localhost"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     mustEnv("DB_USER"),
		DBPassword: mustEnv("DB_PASSWORD"),
		DBName:     mustEnv("DB_NAME"),
		DBSslMode:  envOrDefault("DB_SSLMODE", "disable"),

		AmqpURL:              mustEnv("AMQP_URL"),
		BrokerRetryCount:     intEnvOrDefault("BROKER_RETRY_COUNT", 10),
		BrokerRetryDelaySec:  intEnvOrDefault("BROKER_RETRY_DELAY_SECONDS", 5),
		OutboxBackoffBaseSec: intEnvOrDefault("OUTBOX_BACKOFF_BASE_SECONDS", 5),

		EmailAPIURL: envOrDefault("EMAIL_API_URL", ""),
		EmailAPIKey: envOrDefault("EMAIL_API_KEY", ""),
		EmailFrom:   envOrDefault("EMAIL_FROM", "orders@example.com"),
	}
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Missing required environment variable %s", key)
	}
	return value
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnvOrDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer: %v", key, err)
	}
	return parsed
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/gigmetric/earnmap/internal/pkg/config"
	"github.com/gigmetric/earnmap/internal/pkg/database"
	"github.com/gigmetric/earnmap/internal/pkg/logger"
	natspkg "github.com/gigmetric/earnmap/internal/pkg/nats"
	"github.com/gigmetric/earnmap/internal/pkg/retry"
	"github.com/gigmetric/earnmap/internal/pkg/server"
	"github.com/gigmetric/earnmap/services/earnings"
	"github.com/gigmetric/earnmap/services/earnings/gateway"
	"github.com/gigmetric/earnmap/services/earnings/handler"
	httpHandler "github.com/gigmetric/earnmap/services/earnings/handler/http"
	"github.com/gigmetric/earnmap/services/earnings/repository"
	"github.com/gigmetric/earnmap/services/earnings/usecase"
)

func main() {
	configPath := flag.String("config", "", "path to a .env config file")
	serve := flag.Bool("serve", false, "keep serving the computed heatmap over HTTP after the run")
	flag.Parse()

	configs := config.InitConfig(*configPath)

	appLogger, err := logger.NewAppLogger(configs.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Close()
	logger.SetGlobalLogger(appLogger)

	logger.Info("starting earnmap", logrus.Fields{
		"environment": configs.App.Environment,
		"version":     configs.App.Version,
		"mode":        configs.Analysis.Mode,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var postgresClient *database.PostgresClient
	err = retry.Do(ctx, "postgres connect", retry.DefaultConfig(), func(context.Context) error {
		var connErr error
		postgresClient, connErr = database.NewPostgresClient(configs.Database)
		return connErr
	})
	if err != nil {
		appLogger.WithError(err).Fatal("failed to connect to PostgreSQL")
	}
	defer postgresClient.Close()

	earningsRepo := repository.NewEarningsRepo(configs, postgresClient.GetDB())

	// Redis export and NATS events are optional sinks.
	var exporter *repository.EstimateExporter
	if configs.Redis.Host != "" {
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			appLogger.WithError(err).Fatal("failed to connect to Redis")
		}
		defer redisClient.Close()
		exporter = repository.NewEstimateExporter(configs, redisClient)
	}

	var runGW *gateway.RunGW
	if configs.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(configs.NATS.URL)
		if err != nil {
			appLogger.WithError(err).Fatal("failed to connect to NATS")
		}
		defer natsClient.Close()
		runGW = gateway.NewRunGW(natsClient)
	}

	// The usecase skips nil sinks; assigning a typed nil pointer into the
	// interface directly would defeat that check.
	var exporterSink earnings.EstimateExporter
	if exporter != nil {
		exporterSink = exporter
	}
	var gwSink earnings.RunGW
	if runGW != nil {
		gwSink = runGW
	}

	earningsUC := usecase.NewEarningsUC(configs, earningsRepo, exporterSink, gwSink)

	result, err := earningsUC.Run(ctx)
	if err != nil {
		appLogger.WithError(err).Fatal("analysis run failed")
	}

	report := result.Report
	logger.Info("analysis run completed", logrus.Fields{
		"run_id":     report.RunID,
		"estimates":  report.Estimates,
		"suppressed": report.Suppressed,
		"elapsed":    report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond).String(),
	})

	if !*serve {
		return
	}

	e := echo.New()
	e.HideBanner = true
	heatmapHandler := httpHandler.NewHeatmapHandler(earningsUC)
	handler.NewHandler(heatmapHandler).RegisterRoutes(e)

	srv := server.NewGracefulServer(e, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Start(); err != nil {
		appLogger.WithError(err).Fatal("server exited with error")
	}
}

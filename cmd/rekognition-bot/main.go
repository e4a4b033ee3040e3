package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/spacesedan/rekognition-bot/config"
	"github.com/spacesedan/rekognition-bot/internal/bot"
	"github.com/spacesedan/rekognition-bot/internal/clients"
	"github.com/spacesedan/rekognition-bot/internal/logging"
	"github.com/spacesedan/rekognition-bot/internal/metrics"
	"github.com/spacesedan/rekognition-bot/internal/staging"
	"github.com/spacesedan/rekognition-bot/internal/vision"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger(os.Getenv("LOG_LEVEL"))

	cfg, err := config.FromEnv()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := clients.NewAWSConfig(ctx, cfg)
	if err != nil {
		slog.Error("[Main] Failed to load AWS config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	rekognitionClient := clients.NewRekognitionClient(awsCfg, cfg.AWSEndpoint)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.NewMetrics(registry)
	if err != nil {
		slog.Error("[Main] Failed to register metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, registry); err != nil {
				slog.Warn("[Main] Metrics endpoint stopped", slog.String("error", err.Error()))
			}
		}()
	}

	stager, err := staging.NewStager(cfg.StagingDir, clients.NewHTTPClient(clients.DOWNLOAD_TIMEOUT))
	if err != nil {
		slog.Error("[Main] Failed to prepare staging directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	orchestrator := bot.NewOrchestrator(stager, staging.FileLoader{}, vision.NewAdapter(rekognitionClient, m), m)

	session, err := clients.NewDiscordSession(cfg.DiscordToken)
	if err != nil {
		slog.Error("[Main] Failed to create Discord session", slog.String("error", err.Error()))
		os.Exit(1)
	}

	b := bot.New(session, orchestrator, cfg.GuildID, cfg.InvocationTimeout)
	if err := b.Open(ctx); err != nil {
		slog.Error("[Main] Failed to start bot", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[Main] Bot running",
		slog.String("region", cfg.AWSRegion),
		slog.String("staging_dir", cfg.StagingDir))

	<-ctx.Done()
	slog.Info("[Main] Shutting down")
	if err := b.Close(); err != nil {
		slog.Error("[Main] Failed to close bot", slog.String("error", err.Error()))
	}
}

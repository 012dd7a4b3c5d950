package main

import (
	"fmt"
	"os"

	"github.com/TecMrDocs/whispertrend/internal/delivery"
	"github.com/TecMrDocs/whispertrend/internal/infrastructure"
	"github.com/TecMrDocs/whispertrend/internal/usecase"
	"github.com/TecMrDocs/whispertrend/pkg/config"
	"github.com/TecMrDocs/whispertrend/pkg/logger"
	"github.com/TecMrDocs/whispertrend/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info("Starting WhisperTrend analysis service")

	m := metrics.New()

	trendsClient := infrastructure.NewHTTPTrendsClient(
		cfg.External.TrendsAPIURL,
		cfg.Analysis.RequestTimeout,
		cfg.Analysis.MaxRetries,
		cfg.Analysis.RetryBackoff,
		cfg.Analysis.RateLimitPerSecond,
		log,
		m,
	)
	repository := infrastructure.NewAnalysisRepository(log)

	instagram := usecase.NewInstagramCalculator(log, m)
	reddit := usecase.NewRedditCalculator(log, m)
	x := usecase.NewXCalculator(log, m)

	analysisService := usecase.NewAnalysisService(trendsClient, instagram, reddit, x, log, m)
	consolidationService := usecase.NewConsolidationService(log, m)

	handlers := delivery.NewHTTPHandlers(analysisService, consolidationService, repository, log, m)
	router := delivery.NewHTTPRouter(handlers, log, m)

	engine := router.SetupRoutes()
	log.WithField("port", cfg.Server.Port).Info("HTTP server listening")
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

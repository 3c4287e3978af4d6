package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"futureself/internal/adapter/repo"
	"futureself/internal/card"
	"futureself/internal/domain"
	"futureself/internal/http/handlers"
	httpapi "futureself/internal/http/httpapi"
	"futureself/internal/infra"
	img "futureself/internal/providers/image"
	"futureself/internal/storage"
	"futureself/internal/wizard"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	submissions := repo.NewSubmissionRepo(dbpool, cfg.AdminNumber)

	generator := img.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.AIModel, cfg.VisionModel)

	artifacts, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.StoragePath).Msg("failed to open artifact storage")
	}

	// Drive backup is optional; the flow runs without it.
	var blobs wizard.BlobStore
	if cfg.DriveBackupEnabled() {
		drive, err := storage.NewDriveStore(ctx, cfg.GoogleServiceAccountFile, cfg.GoogleDriveFolderID)
		if err != nil {
			logger.Warn().Err(err).Msg("drive backup disabled")
		} else {
			blobs = drive
			logger.Info().Msg("drive backup enabled")
		}
	}

	// NewCompositor only fails when a background template is configured but
	// unusable, which is a configuration error, not a degrade case.
	compositor, err := card.NewCompositor(cfg.CardFontPath, cfg.CardTemplatePath)
	if err != nil {
		logger.Fatal().Err(err).Str("template", cfg.CardTemplatePath).Msg("failed to load card template")
	}
	cards := card.NewRenderer(compositor)

	controller := wizard.NewController(submissions, generator, blobs, artifacts, cards, logger)

	app, err := handlers.NewApp(logger, controller, artifacts, domain.Careers, cfg.UseWhatsApp)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build handlers")
	}

	router := httpapi.NewRouter(app, logger, cfg.RateLimitPerMin)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/api"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/auth"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/cache"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/config"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/pipeline"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/service"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/session"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/source"
	"github.com/papagugunim/LRKF-stock-dashboard/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	snapshots, err := newSnapshotSource(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to build snapshot source")
	}
	refs := source.NewFileReferenceSource(cfg.Source.RefFile)

	summaryCache, err := cache.NewSummaryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Summary cache unavailable, continuing without it")
		summaryCache = cache.NewNoopSummaryCache()
	}

	sess := session.New(cfg.Stock.MinQuantity, cfg.Stock.PageSize)
	agg := pipeline.NewAggregator(domain.ParseBandScheme(cfg.Stock.BandScheme), cfg.Stock.MinQuantity)
	stockService := service.NewStockService(sess, snapshots, refs, agg, summaryCache)

	// Load the initial snapshot before accepting traffic. A failure is
	// not fatal: the first successful reload fills the dataset.
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if _, err := stockService.Reload(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Initial snapshot load failed, serving empty dataset")
	}
	cancel()

	authenticator := auth.New(cfg.Source.AuthFile, cfg.Auth.APIToken)

	router := api.NewRouter(stockService, authenticator, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func newSnapshotSource(cfg *config.Config) (source.SnapshotSource, error) {
	switch cfg.Source.Kind {
	case "local":
		return source.NewLocalSource(cfg.Source.DataDir), nil
	case "drive":
		credentials, err := os.ReadFile(cfg.Source.DriveCredentialsJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to read drive credentials: %w", err)
		}
		return source.NewDriveSource(context.Background(), string(credentials), cfg.Source.DriveFolderID)
	case "s3":
		return source.NewS3Source(source.S3Config{
			Endpoint:  cfg.Source.S3Endpoint,
			AccessKey: cfg.Source.S3AccessKey,
			SecretKey: cfg.Source.S3SecretKey,
			Bucket:    cfg.Source.S3Bucket,
			Prefix:    cfg.Source.S3Prefix,
			UseSSL:    cfg.Source.S3UseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown source kind: %s", cfg.Source.Kind)
	}
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/nutrition-api/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/nutrition-api/internal/adapter/kafka"
	s3adapter "github.com/couchcryptid/nutrition-api/internal/adapter/s3"
	"github.com/couchcryptid/nutrition-api/internal/adapter/table"
	"github.com/couchcryptid/nutrition-api/internal/config"
	"github.com/couchcryptid/nutrition-api/internal/domain"
	"github.com/couchcryptid/nutrition-api/internal/observability"
	"github.com/couchcryptid/nutrition-api/internal/service"
	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tbl, err := loadTable(ctx, cfg, logger)
	if err != nil {
		if cfg.StrictTableLoad {
			logger.Error("reference table load failed", "error", err)
			os.Exit(1)
		}
		logger.Warn("reference table unavailable, starting in degraded mode", "error", err)
	} else {
		logger.Info("reference table loaded", "rows", tbl.Len(), "duplicate_names", len(tbl.Duplicates()))
	}
	metrics.TableRows.Set(float64(tbl.Len()))
	if tbl.Len() > 0 {
		metrics.TableLoaded.Set(1)
	}

	// Result publishing is feature-flagged via KAFKA_BROKERS.
	var (
		publisher service.ResultPublisher
		writer    *kafkaadapter.Writer
	)
	if cfg.PublishEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("result publishing enabled", "topic", cfg.KafkaResultsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("result publishing disabled")
	}

	svc := service.New(tbl, publisher, metrics, logger, clockwork.NewRealClock())
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// loadTable reads the reference table once from the configured source. The
// returned table is never nil; on error it is empty.
func loadTable(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*domain.Table, error) {
	loader := table.NewLoader(logger)

	var src table.Source
	switch cfg.TableSource {
	case config.SourceS3:
		s3src, err := s3adapter.New(ctx, s3adapter.Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Key:       cfg.S3Key,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			return domain.NewTable(nil), err
		}
		src = s3src
	default:
		path := cfg.TablePath
		if path == "" {
			path = table.DataPath(cfg.BaseDir)
		}
		src = table.FileSource{Path: path}
	}

	return loader.Load(ctx, src)
}

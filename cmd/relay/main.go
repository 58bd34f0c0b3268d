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

	gcsclient "cloud.google.com/go/storage"

	"github.com/couchcryptid/nws-alert-relay/internal/adapter/discord"
	"github.com/couchcryptid/nws-alert-relay/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/nws-alert-relay/internal/adapter/kafka"
	"github.com/couchcryptid/nws-alert-relay/internal/adapter/nws"
	"github.com/couchcryptid/nws-alert-relay/internal/adapter/textfeed"
	"github.com/couchcryptid/nws-alert-relay/internal/config"
	"github.com/couchcryptid/nws-alert-relay/internal/dispatch"
	"github.com/couchcryptid/nws-alert-relay/internal/observability"
	"github.com/couchcryptid/nws-alert-relay/internal/pipeline"
	"github.com/couchcryptid/nws-alert-relay/internal/scheduler"
	"github.com/couchcryptid/nws-alert-relay/internal/storage"
	"github.com/couchcryptid/nws-alert-relay/internal/subscriber"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	kv, cleanup, err := newStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	logger.Info("storage initialized", "backend", cfg.StorageBackend)

	settings := subscriber.NewSettings(kv, logger)

	// Delivery: Discord is the primary sink; Kafka mirrors every bulletin
	// when brokers are configured (KAFKA_BROKERS / KAFKA_ENABLED).
	var sender dispatch.Sender = discord.NewClient(cfg.DiscordToken, logger)
	var mirror *kafkaadapter.Mirror
	if cfg.KafkaEnabled {
		mirror = kafkaadapter.NewMirror(cfg, logger)
		sender = dispatch.NewTee(logger, sender, mirror)
		logger.Info("kafka mirroring enabled", "topic", cfg.KafkaMirrorTopic)
	} else {
		logger.Info("kafka mirroring disabled")
	}

	batcher := dispatch.NewBatcher(sender, logger, metrics)

	nwsClient := nws.NewClient(cfg.NWSBaseURL, cfg.NWSUserAgent, logger)
	points := nws.NewCachedPoints(nwsClient, 128)

	p := pipeline.New(nwsClient, kv, settings, batcher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, httpadapter.Admin{
		Resender:   p,
		Forecaster: points,
		Stats:      nwsClient,
		Settings:   settings,
		StartedAt:  time.Now(),
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	sched := scheduler.New(cfg.PollInterval, logger)
	go func() {
		metrics.RelayRunning.Set(1)
		defer metrics.RelayRunning.Set(0)
		sched.Run(ctx, "alerts", p.Tick)
	}()

	if cfg.TextFeedsEnabled {
		spc := textfeed.NewFeed("SPC", cfg.SPCFeedURL, logger)
		wpc := textfeed.NewFeed("WPC", cfg.WPCFeedURL, logger)
		tp := pipeline.NewTextPipeline(kv, settings, sender, logger, metrics, spc, wpc)
		go sched.Run(ctx, "bulletins", tp.Tick)
		logger.Info("text bulletin feeds enabled")
	} else {
		logger.Info("text bulletin feeds disabled")
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if mirror != nil {
		if err := mirror.Close(); err != nil {
			logger.Error("kafka mirror close error", "error", err)
		}
	}
	if cleanup != nil {
		if err := cleanup(); err != nil {
			logger.Error("storage close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// newStore builds the persistence backend selected by STORAGE_BACKEND. The
// returned cleanup releases backend resources on shutdown; it may be nil.
func newStore(cfg *config.Config, logger *slog.Logger) (storage.KV, func() error, error) {
	switch cfg.StorageBackend {
	case "file":
		kv, err := storage.NewFileStore(cfg.StorageDir, logger)
		return kv, nil, err
	case "redis":
		kv := storage.NewRedisStore(cfg.RedisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := kv.Ping(ctx); err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	case "gcs":
		client, err := gcsclient.NewClient(context.Background())
		if err != nil {
			return nil, nil, err
		}
		return storage.NewGCSStore(client, cfg.GCSBucket, logger), client.Close, nil
	default:
		// config.Load validated the backend already.
		return nil, nil, errors.New("unknown storage backend")
	}
}

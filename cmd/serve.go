package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"agrivision-service/internal/ai/classifier"
	"agrivision-service/internal/ai/gemini"
	"agrivision-service/internal/config"
	"agrivision-service/internal/database/minio"
	"agrivision-service/internal/database/postgres"
	"agrivision-service/internal/database/redis"
	"agrivision-service/internal/event"
	"agrivision-service/internal/handlers"
	"agrivision-service/internal/repository"
	"agrivision-service/internal/services"
	"agrivision-service/internal/worker"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
)

const (
	maxUploadBytes  = 10 * 1024 * 1024
	shutdownTimeout = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

// newClassifier builds the process-wide classifier. The checkpoint is loaded
// right away so a missing model is reported at startup.
func newClassifier(cfg *config.AgriVisionConfig) *classifier.Classifier {
	backend := classifier.NewKServeBackend(cfg.ClassifierCfg.InferenceURL, cfg.ClassifierCfg.InferenceModelName, cfg.HTTPTimeout)
	clf := classifier.NewClassifier(cfg.ClassifierCfg.ModelPath, backend)
	if _, err := clf.Load(); err != nil {
		slog.Error("classifier unavailable, scans will be rejected", "path", cfg.ClassifierCfg.ModelPath, "error", err)
	}
	return clf
}

func runServe() error {
	cfg := config.New()

	logFile, scheduler, err := setupLogging(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logFile.Close()
	defer scheduler.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poolCtx, stopPool := context.WithCancel(context.Background())
	var poolWg sync.WaitGroup
	pool := worker.NewWorkingPool(cfg.WorkerCfg.NumWorkers, cfg.WorkerCfg.QueueSize)
	poolWg.Add(1)
	go pool.Start(poolCtx, &poolWg)

	clf := newClassifier(cfg)

	// ------------------------------------------------------------------
	// optional infrastructure
	// ------------------------------------------------------------------
	var (
		scanMirror     services.ScanMirror
		feedbackMirror services.FeedbackMirror
		objectStore    services.ObjectStore
		weatherCache   services.Cache
		videoCache     services.Cache
		scanPublisher  services.ScanEventPublisher
	)

	if cfg.PostgresCfg.Enabled {
		db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
		if err != nil {
			slog.Error("postgres unavailable, history mirror disabled", "error", err)
		} else {
			defer db.Close()
			scanMirror = repository.NewScanHistoryRepository(db)
			feedbackMirror = repository.NewFeedbackRepository(db)
		}
	}

	if cfg.RedisCfg.Enabled {
		rdb, err := redis.NewRedisClient(cfg.RedisCfg)
		if err != nil {
			slog.Error("redis unavailable, caching disabled", "error", err)
		} else {
			defer rdb.Close()
			weatherCache = repository.NewCacheRepository(rdb.GetClient(), "agrivision:forecast")
			videoCache = repository.NewCacheRepository(rdb.GetClient(), "agrivision:videos")
		}
	}

	if cfg.MinioCfg.Enabled {
		mc, err := minio.NewMinioClient(cfg.MinioCfg)
		if err != nil {
			slog.Error("minio unavailable, image and audio archive disabled", "error", err)
		} else {
			objectStore = mc
		}
	}

	if cfg.RabbitMQCfg.Enabled {
		conn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
		if err != nil {
			slog.Error("rabbitmq unavailable, scan events disabled", "error", err)
		} else {
			defer conn.Close()
			scanPublisher = event.NewScanPublisher(conn.Channel)
		}
	}

	// ------------------------------------------------------------------
	// remote adapters
	// ------------------------------------------------------------------
	var generator services.TextGenerator
	if cfg.AdviceEnabled() {
		clients := gemini.NewGenAIClients(ctx, cfg.GeminiAPICfg.APIKeys, cfg.GeminiAPICfg.ModelName)
		selector := gemini.NewGeminiClientSelector(clients)
		defer selector.Close()
		generator = selector
		slog.Info("advice generator ready", "clients", selector.GetClientCount(), "model", cfg.GeminiAPICfg.ModelName)
	} else {
		slog.Warn("GEMINI_KEY not set, treatment advice disabled")
	}

	var searcher services.VideoSearcher
	if cfg.YouTubeCfg.APIKey != "" {
		yt, err := services.NewYouTubeSearcher(ctx, cfg.YouTubeCfg.APIKey)
		if err != nil {
			slog.Error("video search disabled", "error", err)
		} else {
			searcher = yt
		}
	} else {
		slog.Warn("YOUTUBE_API_KEY not set, video guides disabled")
	}

	// ------------------------------------------------------------------
	// services
	// ------------------------------------------------------------------
	scanOpts := []services.ScanServiceOption{}
	if scanMirror != nil {
		scanOpts = append(scanOpts, services.WithScanMirror(scanMirror))
	}
	if objectStore != nil {
		scanOpts = append(scanOpts, services.WithImageArchive(objectStore))
	}
	if scanPublisher != nil {
		scanOpts = append(scanOpts, services.WithScanPublisher(scanPublisher))
	}

	scanService := services.NewScanService(clf, repository.NewScanLogRepository(cfg.LogFilesCfg.HistoryLogPath), pool, scanOpts...)
	feedbackService := services.NewFeedbackService(repository.NewFeedbackLogRepository(cfg.LogFilesCfg.FeedbackLogPath), feedbackMirror, pool)
	directoryService := services.NewDirectoryService(cfg.ExpertCfg.WhatsAppNumber)
	weatherService := services.NewWeatherService(cfg.WeatherCfg.BaseURL, cfg.HTTPTimeout, weatherCache, cfg.WeatherCfg.CacheTTL)
	consultationService := services.NewConsultationService(
		services.NewAdviceService(generator),
		services.NewSpeechService(cfg.SpeechCfg.BaseURL, cfg.SpeechCfg.TempDir, cfg.HTTPTimeout, objectStore),
		services.NewVideoService(searcher, videoCache),
		directoryService,
	)

	// ------------------------------------------------------------------
	// http
	// ------------------------------------------------------------------
	app := fiber.New(fiber.Config{
		AppName:   "agrivision-service",
		BodyLimit: maxUploadBytes,
	})

	handlers.NewSystemHandler(clf, cfg.AdviceEnabled()).Register(app)
	handlers.NewScanHandler(scanService).Register(app)
	handlers.NewConsultationHandler(consultationService).Register(app)
	handlers.NewFeedbackHandler(feedbackService).Register(app)
	handlers.NewWeatherHandler(weatherService).Register(app)
	handlers.NewDirectoryHandler(directoryService).Register(app)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.Port)
		serverErr <- app.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Port))
	}()

	select {
	case err := <-serverErr:
		stopPool()
		poolWg.Wait()
		return fmt.Errorf("error starting server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	stopPool()
	poolWg.Wait()
	slog.Info("server stopped")
	return nil
}

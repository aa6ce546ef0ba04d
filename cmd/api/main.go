package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lotodata/megasena-backend/api/routes"
	"github.com/lotodata/megasena-backend/internal/config"
	"github.com/lotodata/megasena-backend/internal/handlers"
	"github.com/lotodata/megasena-backend/internal/repositories"
	mongorepo "github.com/lotodata/megasena-backend/internal/repositories/mongodb"
	"github.com/lotodata/megasena-backend/internal/scheduler"
	"github.com/lotodata/megasena-backend/internal/services"
	"github.com/lotodata/megasena-backend/pkg/caixa"
	"github.com/lotodata/megasena-backend/pkg/logger"
	"github.com/lotodata/megasena-backend/pkg/mongodb"
	"github.com/lotodata/megasena-backend/pkg/scraper"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// The store is optional. Without it the API still serves upstream
	// fetches, while store-backed endpoints return 503.
	var (
		resultRepo repositories.ResultRepository
		statusRepo repositories.StatusRepository
	)
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		zlog.Warn("mongodb unavailable, running without persistence", zap.Error(err))
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(ctx); err != nil {
				zlog.Warn("mongodb disconnect failed", zap.Error(err))
			}
		}()
		db := mongoClient.Database(cfg.MongoDB.Database)
		resultRepo = mongorepo.NewResultRepository(db)
		statusRepo = mongorepo.NewStatusRepository(db)
		zlog.Info("connected to mongodb", zap.String("database", cfg.MongoDB.Database))
	}

	caixaClient := caixa.NewClient(cfg.Caixa.BaseURL, cfg.Caixa.UserAgent,
		time.Duration(cfg.Caixa.TimeoutSeconds)*time.Second)
	pageScraper := scraper.New(cfg.Scraper.URL,
		time.Duration(cfg.Scraper.TimeoutSeconds)*time.Second)

	drawService := services.NewDrawService(resultRepo, caixaClient, zlog)
	statsService := services.NewStatisticsService(drawService, resultRepo, zlog, cfg.Stats.DefaultWindow)
	importService := services.NewImportService(drawService, resultRepo, zlog,
		cfg.Import.MaxBatchSize, time.Duration(cfg.Import.DelayMs)*time.Millisecond)
	historyService := services.NewHistoryService(resultRepo, zlog)
	scrapeService := services.NewScrapeService(pageScraper, resultRepo, statusRepo, zlog)

	megasenaHandler := handlers.NewMegasenaHandler(
		drawService, statsService, importService, historyService, scrapeService, zlog)
	authHandler := handlers.NewAuthHandler(cfg, zlog)

	router := routes.SetupRouter(cfg, megasenaHandler, authHandler, zlog)

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(drawService, statusRepo, zlog)
		if err := sched.Start(cfg.Scheduler.Spec); err != nil {
			zlog.Warn("scheduler failed to start", zap.Error(err))
			sched = nil
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}

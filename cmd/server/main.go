package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"kras-kickers/volunteers/internal/api"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/config"
	"kras-kickers/volunteers/internal/db"
	"kras-kickers/volunteers/internal/logging"
	"kras-kickers/volunteers/internal/metrics"
	"kras-kickers/volunteers/internal/routes"
)

// @title Kras Kickers Volunteers API
// @version 1.0
// @description Volunteer opportunities, applications and their review.
// @host localhost:8080
// @BasePath /
func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to an optional TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Volunteers service starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.DB.Driver,
		"session_store", cfg.Session.Store,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to DB with GORM
	orm, err := db.InitORM(cfg.DB)
	if err != nil {
		logging.Fatal("Failed to connect to database (GORM)", "error", err.Error())
	}
	if err := db.Migrate(orm); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	if linked, err := db.BackfillOpportunityLinks(ctx, orm); err != nil {
		logging.Warn("Opportunity link backfill failed", "error", err.Error())
	} else if linked > 0 {
		logging.Info("Linked legacy applications to opportunities", "count", linked)
	}

	// Connect to DB with sqlx
	sqlxDB, err := db.InitSQLX(cfg.DB, orm)
	if err != nil {
		logging.Fatal("Failed to connect to database (sqlx)", "error", err.Error())
	}
	logging.Info("Connected to database (sqlx)")

	sessionStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}

	images, err := common.NewImageStore(ctx, cfg.Images)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	mailer, err := common.NewMailer(cfg.SMTP)
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}

	metricsReg := metrics.NewMetricsRegistry()
	deps, err := api.InitDependencies(cfg, api.Infrastructure{
		ORM:          orm,
		DB:           sqlxDB,
		SessionStore: sessionStore,
		Mailer:       mailer,
		Images:       images,
	}, metricsReg)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           routes.RegisterRoutes(cfg, deps, prometheus.DefaultGatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logging.Error("Graceful shutdown failed", "error", err.Error())
		}
	}()

	logging.Info("Server starting", "addr", cfg.HTTPAddr, "environment", cfg.AppEnv)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	logging.Info("Server stopped")
}

// newSessionStore connects to Redis, or falls back to the in-process cache
// when the memory store is configured.
func newSessionStore(ctx context.Context, cfg *config.Config) (common.SessionStore, error) {
	if cfg.Session.Store == "memory" {
		logging.Warn("Using in-memory session store; sessions are lost on restart")
		return common.NewMemorySessionStore(time.Minute), nil
	}

	client, err := common.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	return common.NewRedisSessionStore(client), nil
}

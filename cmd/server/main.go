package main

import (
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stackpad/backend/internal/api"
	"stackpad/backend/internal/cache"
	"stackpad/backend/internal/config"
	"stackpad/backend/internal/db"
	"stackpad/backend/internal/logging"
	"stackpad/backend/internal/metrics"
	"stackpad/backend/internal/notes"
	"stackpad/backend/internal/routes"
)

func main() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load("")
	if err != nil {
		logging.Fatal("Failed to load configuration", "error", err.Error())
	}

	logging.Info("Stackpad starting up", "environment", appEnv)

	sqlxDB, err := db.Connect(cfg.Postgres)
	if err != nil {
		logging.Fatal("Failed to connect to Postgres (sqlx)", "error", err.Error())
	}
	logging.Info("Connected to Postgres (sqlx)")

	gormDB, err := db.ConnectORM(cfg.Postgres.DSN())
	if err != nil {
		logging.Fatal("Failed to connect to Postgres (GORM)", "error", err.Error())
	}
	if err := gormDB.AutoMigrate(&notes.Note{}); err != nil {
		logging.Fatal("Failed to run migrations", "error", err.Error())
	}
	logging.Info("Connected to Postgres (GORM)")

	// The client is kept even when the ping failed; the cache probe reports
	// the recorded connection flag either way.
	cacheClient := cache.NewClient(cfg.Redis)

	metricsReg := metrics.NewRegistry()
	deps := api.InitDependencies(sqlxDB, gormDB, cacheClient, metricsReg)
	router := routes.RegisterRoutes(cfg, deps, metricsReg)

	// Metrics endpoint lives outside the chi router.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	logging.Info("Server starting", "addr", cfg.Server.Address(), "environment", appEnv)
	if err := http.ListenAndServe(cfg.Server.Address(), mux); err != nil {
		logging.Fatal("Server stopped", "error", err.Error())
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	logrus "github.com/sirupsen/logrus"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"route-plan-service/internal/adapters/export"
	"route-plan-service/internal/adapters/kvstore"
	"route-plan-service/internal/adapters/repositories"
	"route-plan-service/internal/api"
	"route-plan-service/internal/auth"
	"route-plan-service/internal/config"
	"route-plan-service/internal/platform/db"
	"route-plan-service/internal/platform/logging"
	"route-plan-service/internal/ports"
	"route-plan-service/internal/services"
)

// main is the application composition root. It wires concrete adapters
// (document store, export sinks) behind ports and starts the HTTP
// server.
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_PATH", "planner.yaml"))
	if err != nil {
		logrus.Fatal(err)
	}

	log := logging.Setup(cfg.LogLevel, cfg.LogFile)

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	gateway := repositories.NewGateway(store, log)

	// First run against an empty store: load the bundled seed data so
	// the planner starts with the known regions.
	if err := seedIfEmpty(gateway, cfg.SeedDir, log); err != nil {
		log.Fatal(err)
	}

	chromeSink := export.NewChromeSink(cfg.ExportDir)
	exporter := services.NewExporter(chromeSink, export.NewCSVSink(cfg.ExportDir), chromeSink, log)

	authSvc, err := auth.NewService()
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(api.RouterDeps{
		Plans:          gateway,
		Technicians:    gateway,
		Vehicles:       gateway,
		Exporter:       exporter,
		Auth:           authSvc,
		RegionName:     cfg.RegionName,
		HideEmptyWeeks: cfg.MonthlyView.HideEmptyWeeks,
	})

	// Write timeout leaves room for a synchronous report projection on
	// a large plan; exports render in the background.
	log.Infof("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStore picks the document store backend: Postgres when
// DATABASE_URL is set, Redis when REDIS_ADDR is set, the embedded
// SQLite file otherwise.
func openStore(cfg config.Config, log *logrus.Logger) (ports.KeyValueStore, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		sqlDB, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := kvstore.InitSQLSchema(sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		log.Info("using postgres document store")
		return kvstore.NewSQLStore(sqlDB), func() { sqlDB.Close() }, nil

	case cfg.RedisAddr != "":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		log.Infof("using redis document store addr=%s", cfg.RedisAddr)
		return kvstore.NewRedisStore(client), func() { client.Close() }, nil

	default:
		sqlDB, err := db.OpenSqlite(cfg.SqlitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := kvstore.InitSqliteSchema(sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		log.Infof("using sqlite document store path=%s", cfg.SqlitePath)
		return kvstore.NewSqliteStore(sqlDB), func() { sqlDB.Close() }, nil
	}
}

func seedIfEmpty(gateway *repositories.Gateway, seedDir string, log *logrus.Logger) error {
	ctx := context.Background()

	has, err := gateway.HasPlans(ctx)
	if err != nil || has {
		return err
	}
	if _, err := os.Stat(seedDir); os.IsNotExist(err) {
		log.Warnf("empty store and no seed dir %q, starting blank", seedDir)
		return nil
	}

	log.Infof("seeding initial data from %s", seedDir)
	return repositories.SeedFromJSON(ctx, gateway, seedDir)
}

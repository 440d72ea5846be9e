package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	logrus "github.com/sirupsen/logrus"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"route-plan-service/internal/adapters/kvstore"
	"route-plan-service/internal/adapters/repositories"
	"route-plan-service/internal/config"
	"route-plan-service/internal/platform/db"
)

// dbtool maintains the document store outside the server process: seed
// the bundled initial data, or run the plans schema migration and
// persist the result.
func main() {
	seed := flag.Bool("seed", false, "replace stored data with the bundled seed files")
	migrate := flag.Bool("migrate", false, "run the plans migration and re-persist the result")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_PATH", "planner.yaml"))
	if err != nil {
		logrus.Fatal(err)
	}

	gateway, closeStore, err := openGateway(cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	defer closeStore()

	ctx := context.Background()

	if *seed {
		logrus.Infof("Seeding store from %s...", cfg.SeedDir)
		if err := repositories.SeedFromJSON(ctx, gateway, cfg.SeedDir); err != nil {
			logrus.Fatalf("seeding failed: %v", err)
		}
		logrus.Info("Seeding complete.")
	}

	if *migrate {
		logrus.Info("Migrating plans document...")
		plans, err := gateway.LoadPlans(ctx)
		if err != nil {
			logrus.Fatalf("migration failed: %v", err)
		}
		if err := gateway.SavePlans(ctx, plans); err != nil {
			logrus.Fatalf("migration failed: %v", err)
		}
		logrus.Info("Migration complete.")
	}

	if !*seed && !*migrate {
		flag.Usage()
	}
}

func openGateway(cfg config.Config) (*repositories.Gateway, func(), error) {
	log := logrus.StandardLogger()

	if cfg.DatabaseURL != "" {
		sqlDB, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := kvstore.InitSQLSchema(sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return repositories.NewGateway(kvstore.NewSQLStore(sqlDB), log), func() { sqlDB.Close() }, nil
	}

	sqlDB, err := db.OpenSqlite(cfg.SqlitePath)
	if err != nil {
		return nil, nil, err
	}
	if err := kvstore.InitSqliteSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	return repositories.NewGateway(kvstore.NewSqliteStore(sqlDB), log), func() { sqlDB.Close() }, nil
}

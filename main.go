package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"framelens/adapters/memory"
	"framelens/adapters/postgres"
	"framelens/app"
	"framelens/internal/config"
	"framelens/internal/errors"
	"framelens/internal/rng"
	"framelens/ports"
	"framelens/ui"
)

// initDatabase connects to PostgreSQL when a URL is configured
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Report store: PostgreSQL when DATABASE_URL is set, in-memory otherwise
	var reports ports.ReportRepository
	if appConfig.Database.URL != "" {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()

		reports, err = postgres.NewReportRepository(db)
		if err != nil {
			log.Fatalf("Failed to initialize report repository: %v", err)
		}
		log.Println("Using PostgreSQL report store")
	} else {
		reports = memory.NewReportRepository()
		log.Println("No DATABASE_URL configured, using in-memory report store")
	}

	service := app.NewComparisonService(
		rng.New(appConfig.Analysis.Seed),
		reports,
		appConfig.Analysis.BootstrapIterations,
		appConfig.Analysis.ConfidenceLevel,
	)

	server := ui.NewApp(service, reports)
	log.Printf("Starting FrameLens server on port %s", appConfig.Server.Port)
	log.Fatal(server.Serve(ui.Config{Port: appConfig.Server.Port}))
}

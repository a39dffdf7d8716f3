package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/config"
	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/db"
	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/logger"
	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/services"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
	dumpFlag        = flag.String("dump", "", "Print serialized records: user, profile, teacher, course, student or enrollment")
	idFlag          = flag.Uint("id", 0, "Record id for -dump (student id for enrollments)")
	courseIDFlag    = flag.Uint("course-id", 0, "Course id for -dump enrollment")
	configFlag      = flag.String("config", "", "Optional YAML config file")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logger.New(config.Default().App, os.Stderr).Fatalf("Invalid configuration: %v", err)
	}
	log := logger.New(cfg.App, os.Stderr)

	conn, err := db.Open(cfg.Database, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	schema := db.NewSchema()

	if *migrateOnlyFlag {
		if err := db.Migrate(conn, schema); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Info("Migrations completed successfully")
		return
	}

	if *seedOnlyFlag {
		if err := db.Seed(conn, schema, db.DefaultFixtures); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Info("Seeding completed successfully")
		return
	}

	if cfg.App.Migrations {
		if err := db.Migrate(conn, schema); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Info("Migrations completed")
	}
	if cfg.App.Seed {
		if err := db.Seed(conn, schema, db.DefaultFixtures); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Info("Seed data loaded")
	}

	if *dumpFlag == "" {
		return
	}
	out, err := dump(context.Background(), services.New(conn), *dumpFlag, uint(*idFlag), uint(*courseIDFlag))
	if err != nil {
		log.WithField("entity", *dumpFlag).Fatalf("Dump failed: %v", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
}

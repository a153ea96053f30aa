package main

import (
	"context"
	"database/sql"
	"facility-distance-service/internal/adapters/repositories"
	"facility-distance-service/internal/config"
	"facility-distance-service/internal/platform/db"
	"facility-distance-service/internal/platform/obs"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// dbtool creates the facilities table and loads the catalog JSON into it.
func main() {
	config.LoadDotEnv()
	obs.Setup(config.Get("LOG_LEVEL", "info"), os.Stderr)

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}
	driver := config.Get("DB_DRIVER", "pgx")

	conn, err := db.Open(driver, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("CATALOG_PATH", "data/facilities.json")
	if err := initAndSeed(context.Background(), conn, driver, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, driver, seedPath string) error {
	logger := log.WithField("prefix", "dbtool")

	logger.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	logger.WithField("path", seedPath).Info("seeding facilities")
	n, err := repositories.SeedFromJSON(ctx, conn, driver, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	logger.WithField("facilities", n).Info("seeding complete")

	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Routing backends.
const (
	ProviderGoogle = "google"
	ProviderORS    = "ors"
)

// Catalog sources.
const (
	CatalogFile = "file"
	CatalogSQL  = "sql"
)

// Resolution modes.
const (
	ModeSequential = "sequential"
	ModeMatrix     = "matrix"
)

// Config holds everything the resolver needs, read once at startup.
type Config struct {
	Provider       string
	GoogleAPIKey   string
	ORSAPIKey      string
	RoutingBaseURL string
	CatalogSource  string
	CatalogPath    string
	DBDriver       string
	DatabaseURL    string
	Mode           string
	Port           string
	LogLevel       string
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads .env when present. A missing file is not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found (using environment variables)")
	}
}

// FromEnv builds a Config from process environment.
//
// A missing Google API key is accepted here; the routing client reports it
// as a transport failure on first use.
func FromEnv() (Config, error) {
	cfg := Config{
		Provider:       strings.ToLower(Get("ROUTING_PROVIDER", ProviderGoogle)),
		GoogleAPIKey:   os.Getenv("GOOGLE_MAPS_APIKEY"),
		ORSAPIKey:      os.Getenv("ORS_API_KEY"),
		RoutingBaseURL: Get("ROUTING_BASE_URL", ""),
		CatalogSource:  strings.ToLower(Get("CATALOG_SOURCE", CatalogFile)),
		CatalogPath:    Get("CATALOG_PATH", "data/facilities.json"),
		DBDriver:       Get("DB_DRIVER", "pgx"),
		DatabaseURL:    Get("DATABASE_URL", ""),
		Mode:           strings.ToLower(Get("RESOLVE_MODE", ModeSequential)),
		Port:           Get("PORT", "8080"),
		LogLevel:       Get("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings and the settings they require.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGoogle:
	case ProviderORS:
		if strings.TrimSpace(c.ORSAPIKey) == "" {
			return fmt.Errorf("config: ORS_API_KEY is required when ROUTING_PROVIDER=%s", ProviderORS)
		}
	default:
		return fmt.Errorf("config: unknown ROUTING_PROVIDER %q", c.Provider)
	}

	switch c.CatalogSource {
	case CatalogFile:
		if strings.TrimSpace(c.CatalogPath) == "" {
			return fmt.Errorf("config: CATALOG_PATH must not be empty")
		}
	case CatalogSQL:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("config: DATABASE_URL is required when CATALOG_SOURCE=%s", CatalogSQL)
		}
	default:
		return fmt.Errorf("config: unknown CATALOG_SOURCE %q", c.CatalogSource)
	}

	switch c.Mode {
	case ModeSequential, ModeMatrix:
	default:
		return fmt.Errorf("config: unknown RESOLVE_MODE %q", c.Mode)
	}

	return nil
}

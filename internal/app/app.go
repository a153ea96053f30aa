package app

import (
	"facility-distance-service/internal/adapters/distance"
	"facility-distance-service/internal/adapters/repositories"
	"facility-distance-service/internal/config"
	"facility-distance-service/internal/platform/db"
	"facility-distance-service/internal/ports"
	"facility-distance-service/internal/services"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Build is the composition root shared by the server and the CLI.
// It wires the configured catalog source and routing provider behind ports.
// The returned close func releases the catalog database, if one was opened.
func Build(cfg config.Config, opts ...services.ResolverOption) (*services.Resolver, func() error, error) {
	noop := func() error { return nil }

	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, noop, fmt.Errorf("build: %w", err)
	}

	catalog, closeCatalog, err := NewCatalogSource(cfg)
	if err != nil {
		return nil, noop, fmt.Errorf("build: %w", err)
	}

	opts = append([]services.ResolverOption{services.WithMode(services.Mode(cfg.Mode))}, opts...)
	resolver, err := services.NewResolver(catalog, provider, opts...)
	if err != nil {
		_ = closeCatalog()
		return nil, noop, fmt.Errorf("build: %w", err)
	}

	log.WithFields(log.Fields{
		"prefix":   "app",
		"provider": cfg.Provider,
		"catalog":  cfg.CatalogSource,
		"mode":     cfg.Mode,
	}).Debug("resolver ready")

	return resolver, closeCatalog, nil
}

// NewProvider returns the routing adapter selected by cfg.Provider.
func NewProvider(cfg config.Config) (ports.DistanceProvider, error) {
	switch cfg.Provider {
	case config.ProviderGoogle:
		var opts []distance.GoogleOption
		if cfg.RoutingBaseURL != "" {
			opts = append(opts, distance.WithGoogleBaseURL(cfg.RoutingBaseURL))
		}
		return distance.NewGoogleDistanceProvider(cfg.GoogleAPIKey, opts...), nil
	case config.ProviderORS:
		p, err := distance.NewORSDistanceProvider(cfg.ORSAPIKey, cfg.RoutingBaseURL)
		if err != nil {
			return nil, fmt.Errorf("new provider: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("new provider: unknown provider %q", cfg.Provider)
	}
}

// NewCatalogSource returns the catalog source selected by cfg.CatalogSource.
func NewCatalogSource(cfg config.Config) (ports.CatalogSource, func() error, error) {
	switch cfg.CatalogSource {
	case config.CatalogFile:
		return repositories.NewJSONFileCatalog(cfg.CatalogPath), func() error { return nil }, nil
	case config.CatalogSQL:
		conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("new catalog source: %w", err)
		}
		return repositories.NewSQLCatalogRepository(conn), conn.Close, nil
	default:
		return nil, nil, fmt.Errorf("new catalog source: unknown source %q", cfg.CatalogSource)
	}
}

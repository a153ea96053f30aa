package app

import (
	"context"
	"facility-distance-service/internal/adapters/distance"
	"facility-distance-service/internal/adapters/repositories"
	"facility-distance-service/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() config.Config {
	return config.Config{
		Provider:      config.ProviderGoogle,
		CatalogSource: config.CatalogFile,
		CatalogPath:   "../../data/facilities.json",
		DBDriver:      "sqlite",
		Mode:          config.ModeSequential,
	}
}

func TestNewProvider(t *testing.T) {
	cfg := baseConfig()
	p, err := NewProvider(cfg)
	require.NoError(t, err)
	assert.IsType(t, &distance.GoogleDistanceProvider{}, p)

	cfg.Provider = config.ProviderORS
	cfg.ORSAPIKey = "k"
	p, err = NewProvider(cfg)
	require.NoError(t, err)
	assert.IsType(t, &distance.ORSDistanceProvider{}, p)

	cfg.ORSAPIKey = ""
	_, err = NewProvider(cfg)
	assert.Error(t, err)

	cfg.Provider = "osrm"
	_, err = NewProvider(cfg)
	assert.Error(t, err)
}

func TestNewCatalogSourceFile(t *testing.T) {
	src, closeFn, err := NewCatalogSource(baseConfig())
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &repositories.JSONFileCatalog{}, src)
	catalog, err := src.LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 45, catalog.Len())
}

func TestNewCatalogSourceSQL(t *testing.T) {
	cfg := baseConfig()
	cfg.CatalogSource = config.CatalogSQL
	cfg.DatabaseURL = ":memory:"

	src, closeFn, err := NewCatalogSource(cfg)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &repositories.SQLCatalogRepository{}, src)

	cfg.DBDriver = "mysql"
	_, _, err = NewCatalogSource(cfg)
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	resolver, closeFn, err := Build(baseConfig())
	require.NoError(t, err)
	require.NotNil(t, resolver)
	assert.NoError(t, closeFn())

	cfg := baseConfig()
	cfg.Mode = "parallel"
	resolver, closeFn, err = Build(cfg)
	assert.Error(t, err)
	assert.Nil(t, resolver)
	assert.NoError(t, closeFn())
}

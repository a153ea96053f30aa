package ports

import (
	"context"
	"facility-distance-service/internal/domain"
)

// Port: a boundary for loading the facility catalog from static storage.
type CatalogSource interface {
	// Load every category of the catalog. Failures carry domain.FailureCatalogLoad.
	LoadCatalog(ctx context.Context) (domain.Catalog, error)
}

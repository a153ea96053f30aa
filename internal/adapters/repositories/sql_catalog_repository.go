package repositories

import (
	"context"
	"database/sql"
	"errors"
	"facility-distance-service/internal/domain"
	"facility-distance-service/internal/platform/obs"
	"fmt"
)

// SQL-backed implementation of the CatalogSource port.
// Works with the pgx and sqlite drivers; the query takes no parameters.
type SQLCatalogRepository struct{ DB *sql.DB }

func NewSQLCatalogRepository(db *sql.DB) *SQLCatalogRepository {
	return &SQLCatalogRepository{DB: db}
}

// Load every facility row into a catalog. Rows with unknown categories are skipped.
func (s *SQLCatalogRepository) LoadCatalog(ctx context.Context) (_ domain.Catalog, err error) {
	defer obs.Time(ctx, "catalog.sql.Load")(&err)

	if s.DB == nil {
		return nil, &domain.ResolveError{
			Kind: domain.FailureCatalogLoad,
			Err:  errors.New("sql catalog: DB is nil"),
		}
	}

	catalog, err := s.load(ctx)
	if err != nil {
		return nil, &domain.ResolveError{Kind: domain.FailureCatalogLoad, Err: err}
	}
	return catalog, nil
}

func (s *SQLCatalogRepository) load(ctx context.Context) (domain.Catalog, error) {
	query := `
	SELECT
		category,
		name,
		lat,
		lng
	FROM facilities
	ORDER BY category, name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load catalog: query facilities table: %w", err)
	}
	defer rows.Close()

	known := make(map[string]domain.Category, len(domain.Categories))
	for _, c := range domain.Categories {
		known[string(c)] = c
	}

	catalog := make(domain.Catalog, len(domain.Categories))
	for _, c := range domain.Categories {
		catalog[c] = map[string]domain.Coordinates{}
	}

	for rows.Next() {
		var category, name string
		var lat, lng float64
		if err := rows.Scan(&category, &name, &lat, &lng); err != nil {
			return nil, fmt.Errorf("load catalog: scan row: %w", err)
		}

		cat, ok := known[category]
		if !ok {
			continue
		}
		catalog.Add(cat, name, domain.Coordinates{Lat: lat, Lng: lng})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: row iteration: %w", err)
	}

	if catalog.Len() == 0 {
		return nil, errors.New("load catalog: facilities table is empty")
	}

	return catalog, nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"facility-distance-service/internal/domain"
	"fmt"
	"os"
	"sort"
)

// Initialize the catalog schema. The statements are valid for both Postgres and SQLite.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createFacilitiesQuery := `
	CREATE TABLE IF NOT EXISTS facilities (
		category TEXT NOT NULL,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (category, name)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_facilities_category
	ON facilities(category);
	`

	statements := []string{
		createFacilitiesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the facilities table from a catalog JSON file.
// driver selects the placeholder syntax ("pgx" or "sqlite").
func SeedFromJSON(ctx context.Context, db *sql.DB, driver, jsonPath string) (int, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed facilities: read %q: %w", jsonPath, err)
	}

	catalog, err := ParseCatalogJSON(data)
	if err != nil {
		return 0, fmt.Errorf("seed facilities: %w", err)
	}

	return SeedCatalog(ctx, db, driver, catalog)
}

// Upsert every facility of catalog. Returns the number of rows written.
func SeedCatalog(ctx context.Context, db *sql.DB, driver string, catalog domain.Catalog) (int, error) {
	if db == nil {
		return 0, errors.New("seed facilities: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed facilities: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertFacilityQuery(driver))
	if err != nil {
		return 0, fmt.Errorf("seed facilities: prepare insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, cat := range domain.Categories {
		names := make([]string, 0, len(catalog[cat]))
		for name := range catalog[cat] {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			c := catalog[cat][name]
			if _, err := stmt.ExecContext(ctx, string(cat), name, c.Lat, c.Lng); err != nil {
				return 0, fmt.Errorf("seed facilities: insert %s/%q: %w", cat, name, err)
			}
			n++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed facilities: commit tx: %w", err)
	}

	return n, nil
}

// Placeholder syntax follows the driver; the upsert itself is shared.
func upsertFacilityQuery(driver string) string {
	values := "($1, $2, $3, $4)"
	if driver == "sqlite" {
		values = "(?, ?, ?, ?)"
	}

	return fmt.Sprintf(`
	INSERT INTO facilities (
		category,
		name,
		lat,
		lng
	)
	VALUES %s
	ON CONFLICT (category, name) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng;
	`, values)
}

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"facility-distance-service/internal/domain"
	"facility-distance-service/internal/platform/obs"
	"fmt"
	"os"
	"strings"
)

type facilityRecord struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// ParseCatalogJSON decodes a catalog document:
//
//	{"police": {"Name": {"lat": 25.1, "lng": 55.2}, ...}, "fire": {...}, "hospital": {...}}
//
// Every category key must be present. Unknown top-level keys are ignored.
func ParseCatalogJSON(data []byte) (domain.Catalog, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog json: %w", err)
	}

	catalog := make(domain.Catalog, len(domain.Categories))
	for _, cat := range domain.Categories {
		section, ok := raw[string(cat)]
		if !ok {
			return nil, fmt.Errorf("parse catalog json: missing category %q", cat)
		}

		var facilities map[string]facilityRecord
		if err := json.Unmarshal(section, &facilities); err != nil {
			return nil, fmt.Errorf("parse catalog json: category %q: %w", cat, err)
		}

		catalog[cat] = make(map[string]domain.Coordinates, len(facilities))
		for name, rec := range facilities {
			if strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("parse catalog json: empty facility name in %q", cat)
			}
			if rec.Lat == nil || rec.Lng == nil {
				return nil, fmt.Errorf("parse catalog json: %s/%q: lat and lng are required", cat, name)
			}
			catalog.Add(cat, name, domain.Coordinates{Lat: *rec.Lat, Lng: *rec.Lng})
		}
	}

	return catalog, nil
}

// JSONFileCatalog loads the facility catalog from a JSON file on every call.
type JSONFileCatalog struct {
	Path string
}

func NewJSONFileCatalog(path string) *JSONFileCatalog {
	return &JSONFileCatalog{Path: path}
}

func (j *JSONFileCatalog) LoadCatalog(ctx context.Context) (_ domain.Catalog, err error) {
	defer obs.Time(ctx, "catalog.file.Load")(&err)

	if strings.TrimSpace(j.Path) == "" {
		return nil, &domain.ResolveError{
			Kind: domain.FailureCatalogLoad,
			Err:  errors.New("load catalog: path is empty"),
		}
	}

	data, err := os.ReadFile(j.Path)
	if err != nil {
		return nil, &domain.ResolveError{
			Kind: domain.FailureCatalogLoad,
			Err:  fmt.Errorf("load catalog: read %q: %w", j.Path, err),
		}
	}

	catalog, err := ParseCatalogJSON(data)
	if err != nil {
		return nil, &domain.ResolveError{
			Kind: domain.FailureCatalogLoad,
			Err:  fmt.Errorf("load catalog %q: %w", j.Path, err),
		}
	}

	return catalog, nil
}

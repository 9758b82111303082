package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/santeh/storefront/internal/core/domain"
)

// seedProduct mirrors the catalog seed file layout.
type seedProduct struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	OldPrice    float64 `json:"oldPrice,omitempty"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	InStock     bool    `json:"inStock"`
}

// LoadCatalogSeed reads and validates the static product list. The
// seed is the external source of catalog data; the core never mutates
// it after this point.
func LoadCatalogSeed(path string) ([]domain.Product, error) {
	const op = "LoadCatalogSeed"
	log := slog.With("op", op)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var seed []seedProduct
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := validateSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("catalog seed loaded", "path", path, "nProducts", len(ps))
	return ps, nil
}

func validateSeed(seed []seedProduct) ([]domain.Product, error) {
	var errs []error
	seen := make(map[int]struct{}, len(seed))
	ps := make([]domain.Product, 0, len(seed))

	for i, v := range seed {
		if _, ok := seen[v.ID]; ok {
			errs = append(errs, fmt.Errorf("product #%d: duplicate id %d", i, v.ID))
		}
		seen[v.ID] = struct{}{}

		if v.Name == "" {
			errs = append(errs, fmt.Errorf("product #%d: empty name", i))
		}
		if v.Price <= 0 {
			errs = append(errs, fmt.Errorf("product #%d: non-positive price", i))
		}
		if v.OldPrice != 0 && v.OldPrice <= v.Price {
			errs = append(errs,
				fmt.Errorf("product #%d: oldPrice must exceed price", i))
		}

		ps = append(ps, domain.Product{
			ID:          v.ID,
			Name:        v.Name,
			Price:       v.Price,
			OldPrice:    v.OldPrice,
			Image:       v.Image,
			Category:    v.Category,
			Description: v.Description,
			Brand:       v.Brand,
			InStock:     v.InStock,
		})
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return ps, nil
}

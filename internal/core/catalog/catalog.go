package catalog

import (
	"fmt"

	"github.com/santeh/storefront/internal/core/domain"
)

// A Catalog is an ordered, immutable product list. The core never
// mutates it after construction.
type Catalog struct {
	products []domain.Product
	byID     map[int]int
}

func New(ps []domain.Product) Catalog {
	byID := make(map[int]int, len(ps))
	for i, p := range ps {
		byID[p.ID] = i
	}
	return Catalog{products: ps, byID: byID}
}

func (c Catalog) Len() int {
	return len(c.products)
}

// All returns a copy of the product list in catalog order.
func (c Catalog) All() []domain.Product {
	ps := make([]domain.Product, len(c.products))
	copy(ps, c.products)
	return ps
}

// ByID returns the product with the given id.
//
// An unknown id is the one hard failure of the storefront and yields
// [domain.ErrProductNotFound].
func (c Catalog) ByID(id int) (domain.Product, error) {
	const op = "Catalog.ByID"

	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf(
			"%s: id=%d: %w", op, id, domain.ErrProductNotFound,
		)
	}
	return c.products[i], nil
}

// Select returns the products matching the criteria in catalog order.
func (c Catalog) Select(crit Criteria) []domain.Product {
	return Filter(c.products, crit)
}

// Hits returns the first n catalog products for the home page shelf.
func (c Catalog) Hits(n int) []domain.Product {
	if n > len(c.products) {
		n = len(c.products)
	}
	ps := make([]domain.Product, n)
	copy(ps, c.products[:n])
	return ps
}

// Categories returns the distinct product categories in first-seen order.
func (c Catalog) Categories() []string {
	return c.distinct(func(p domain.Product) string { return p.Category })
}

// Brands returns the distinct product brands in first-seen order.
func (c Catalog) Brands() []string {
	return c.distinct(func(p domain.Product) string { return p.Brand })
}

func (c Catalog) distinct(key func(domain.Product) string) []string {
	var vs []string
	seen := make(map[string]struct{})
	for _, p := range c.products {
		k := key(p)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		vs = append(vs, k)
	}
	return vs
}

package catalog

import "github.com/santeh/storefront/internal/core/domain"

// Filter returns the products matching every criterion, preserving the
// catalog order. All predicates are AND-combined.
func Filter(ps []domain.Product, c Criteria) []domain.Product {
	matched := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if match(p, c) {
			matched = append(matched, p)
		}
	}
	return matched
}

func match(p domain.Product, c Criteria) bool {
	if c.Category != "" && p.Category != c.Category {
		return false
	}
	if c.Brand != "" && p.Brand != c.Brand {
		return false
	}
	if p.Price < c.minBound() {
		return false
	}
	if p.Price > c.maxBound() {
		return false
	}
	if c.InStock && !p.InStock {
		return false
	}
	if c.OnSale && !p.OnSale() {
		return false
	}
	return true
}

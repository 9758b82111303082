package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

type (
	// A Product is an immutable catalog record supplied by seed data.
	//
	// OldPrice is zero when the product carries no discount; a non-zero
	// OldPrice is always greater than Price.
	Product struct {
		ID          int
		Name        string
		Price       float64
		OldPrice    float64
		Image       string
		Category    string
		Description string
		Brand       string
		InStock     bool
	}

	// A CartItem is a Product copied into the cart with a quantity.
	CartItem struct {
		Product
		Quantity int
	}
)

// OnSale reports whether the product carries a discount marker.
func (p Product) OnSale() bool {
	return p.OldPrice > 0
}

// A Snapshot is the full persisted state of the shop store.
type Snapshot struct {
	Cart     []CartItem
	Wishlist []Product
}

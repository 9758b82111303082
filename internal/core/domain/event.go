package domain

import "time"

// Shop event types emitted on store mutations.
const (
	EventCartAdd        = "cart_add"
	EventCartRemove     = "cart_remove"
	EventCartQuantity   = "cart_quantity"
	EventCartClear      = "cart_clear"
	EventWishlistToggle = "wishlist_toggle"
	EventWishlistRemove = "wishlist_remove"
	EventWishlistClear  = "wishlist_clear"
	EventWishlistMove   = "wishlist_move"
	EventCheckout       = "checkout"
)

// A ShopEvent describes one store mutation for the analytics stream.
type ShopEvent struct {
	Type      string
	ProductID int
	Quantity  int
	At        time.Time
}

// A ProductTrend is the aggregated add-to-cart counter for one product.
type ProductTrend struct {
	ProductID int
	CartAdds  int64
}

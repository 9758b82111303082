package port

import (
	"context"

	"github.com/santeh/storefront/internal/core/catalog"
	"github.com/santeh/storefront/internal/core/domain"
)

// Outbound ports.

type (
	// SnapshotStorage is the durable key-value area holding the shop
	// state snapshot between sessions.
	SnapshotStorage interface {
		SaveSnapshot(context.Context, domain.Snapshot) error
		LoadSnapshot(context.Context) (domain.Snapshot, error)
	}

	// EventsProducer publishes store mutations to the analytics stream.
	EventsProducer interface {
		ProduceEvent(context.Context, domain.ShopEvent) error
	}

	// TrendingReader serves per-product add-to-cart counters aggregated
	// from the shop-events stream.
	TrendingReader interface {
		Trending(context.Context) ([]domain.ProductTrend, error)
	}
)

// Inbound ports, implemented by the core service for the HTTP adapter.

type CatalogProvider interface {
	BrowseCatalog(context.Context, catalog.Criteria) []domain.Product
	CatalogHits(context.Context) []domain.Product
	CatalogFacets(context.Context) (categories, brands []string)
	GetProduct(ctx context.Context, id int) (domain.Product, error)
	TrendingProducts(context.Context) ([]domain.ProductTrend, error)
}

type CartKeeper interface {
	Cart(context.Context) []domain.CartItem
	CartTotal(context.Context) float64
	CartCount(context.Context) int
	AddToCart(ctx context.Context, productID, quantity int) error
	UpdateQuantity(ctx context.Context, productID, quantity int)
	RemoveFromCart(ctx context.Context, productID int)
	ClearCart(context.Context)
	Checkout(context.Context, domain.CheckoutForm) error
}

type WishlistKeeper interface {
	Wishlist(context.Context) []domain.Product
	ToggleWishlist(ctx context.Context, productID int) error
	RemoveFromWishlist(ctx context.Context, productID int)
	MoveToCartFromWishlist(ctx context.Context, productID int)
	ClearWishlist(context.Context)
}

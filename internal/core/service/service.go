// Package service wires the shop store and the catalog behind the
// inbound ports. Mutations go through here so that the durable
// snapshot write and the analytics event follow every successful
// state transition.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/santeh/storefront/internal/core/catalog"
	"github.com/santeh/storefront/internal/core/domain"
	"github.com/santeh/storefront/internal/core/port"
	"github.com/santeh/storefront/internal/core/shop"
)

var _ port.CatalogProvider = (*Service)(nil)
var _ port.CartKeeper = (*Service)(nil)
var _ port.WishlistKeeper = (*Service)(nil)

type Service struct {
	store    *shop.Store
	catalog  catalog.Catalog
	snapshot port.SnapshotStorage
	events   port.EventsProducer
	trending port.TrendingReader
}

func New(
	cat catalog.Catalog,
	snapshot port.SnapshotStorage,
	events port.EventsProducer,
	trending port.TrendingReader,
) *Service {
	s := &Service{
		store:    shop.New(),
		catalog:  cat,
		snapshot: snapshot,
		events:   events,
		trending: trending,
	}
	s.rehydrate()
	return s
}

// rehydrate loads the persisted snapshot. Absent or undecodable data
// falls back to empty collections, never to a startup failure.
func (s *Service) rehydrate() {
	const op = "Service.rehydrate"
	log := slog.With("op", op)

	snap, err := s.snapshot.LoadSnapshot(context.Background())
	if err != nil {
		log.Warn("starting with empty shop state", "err", err)
		return
	}

	s.store.Hydrate(snap)
	log.Info("shop state restored",
		"cartItems", len(snap.Cart), "wishlistItems", len(snap.Wishlist))
}

// persist writes the full-state snapshot after a mutation. Best-effort:
// on failure the in-memory state stays authoritative for the session.
func (s *Service) persist(ctx context.Context) {
	const op = "Service.persist"

	err := s.snapshot.SaveSnapshot(ctx, s.store.Snapshot())
	if err != nil {
		slog.Error("failed to persist shop state", "op", op, "err", err)
	}
}

// emitEvent publishes a shop event. Fire-and-forget: a broker failure
// never fails the mutation that produced the event.
func (s *Service) emitEvent(ctx context.Context, evtType string, productID, quantity int) {
	const op = "Service.emitEvent"

	evt := domain.ShopEvent{
		Type:      evtType,
		ProductID: productID,
		Quantity:  quantity,
		At:        time.Now().UTC(),
	}
	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		slog.Error("failed to produce shop event",
			"op", op, "type", evtType, "err", err)
	}
}

// Catalog surface.

func (s *Service) BrowseCatalog(
	_ context.Context, c catalog.Criteria,
) []domain.Product {
	return s.catalog.Select(c)
}

func (s *Service) CatalogHits(_ context.Context) []domain.Product {
	const hitsShelfSize = 4
	return s.catalog.Hits(hitsShelfSize)
}

func (s *Service) CatalogFacets(
	_ context.Context,
) (categories, brands []string) {
	return s.catalog.Categories(), s.catalog.Brands()
}

func (s *Service) GetProduct(
	_ context.Context, id int,
) (domain.Product, error) {
	const op = "Service.GetProduct"

	p, err := s.catalog.ByID(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *Service) TrendingProducts(
	ctx context.Context,
) ([]domain.ProductTrend, error) {
	const op = "Service.TrendingProducts"

	ts, err := s.trending.Trending(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ts, nil
}

// Cart surface.

func (s *Service) Cart(_ context.Context) []domain.CartItem {
	return s.store.Cart()
}

func (s *Service) CartTotal(_ context.Context) float64 {
	return s.store.CartTotal()
}

func (s *Service) CartCount(_ context.Context) int {
	return s.store.CartCount()
}

// AddToCart resolves the product in the catalog and merges it into the
// cart. Unknown product ids fail with [domain.ErrProductNotFound].
func (s *Service) AddToCart(ctx context.Context, productID, quantity int) error {
	const op = "Service.AddToCart"

	p, err := s.catalog.ByID(productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.store.AddToCart(p, quantity)
	s.persist(ctx)
	s.emitEvent(ctx, domain.EventCartAdd, productID, quantity)
	return nil
}

func (s *Service) UpdateQuantity(ctx context.Context, productID, quantity int) {
	s.store.UpdateQuantity(productID, quantity)
	s.persist(ctx)
	s.emitEvent(ctx, domain.EventCartQuantity, productID, quantity)
}

func (s *Service) RemoveFromCart(ctx context.Context, productID int) {
	s.store.RemoveFromCart(productID)
	s.persist(ctx)
	s.emitEvent(ctx, domain.EventCartRemove, productID, 0)
}

func (s *Service) ClearCart(ctx context.Context) {
	s.store.ClearCart()
	s.persist(ctx)
	s.emitEvent(ctx, domain.EventCartClear, 0, 0)
}

// Checkout validates the form, requires a non-empty cart and clears it.
// No server-side order processing happens beyond that.
func (s *Service) Checkout(ctx context.Context, form domain.CheckoutForm) error {
	const op = "Service.Checkout"
	log := slog.With("op", op)

	if err := form.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	items := s.store.Cart()
	if len(items) == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrCartEmpty)
	}

	log.Info("order accepted",
		"items", len(items),
		"total", s.store.CartTotal(),
		"delivery", form.DeliveryType,
	)

	s.store.ClearCart()
	s.persist(ctx)
	s.emitEvent(ctx, domain.EventCheckout, 0, len(items))
	return nil
}

// Wishlist surface.

func (s *Service) Wishlist(_ context.Context) []domain.Product {
	return s.store.Wishlist()
}

// ToggleWishlist adds an absent product or removes a present one.
func (s *Service) ToggleWishlist(ctx context.Context, productID int) error {
	const op = "Service.ToggleWishlist"

	p, err := s.catalog.ByID(productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.store.ToggleWishlist(p)
	s.persist(ctx)
	s.emitEvent(ctx, domain.EventWishlistToggle, productID, 0)
	return nil
}

func (s *Service) RemoveFromWishlist(ctx context.Context, productID int) {
	s.store.RemoveFromWishlist(productID)
	s.persist(ctx)
	s.emitEvent(ctx, domain.EventWishlistRemove, productID, 0)
}

func (s *Service) MoveToCartFromWishlist(ctx context.Context, productID int) {
	if !s.store.MoveToCartFromWishlist(productID) {
		return
	}
	s.persist(ctx)
	s.emitEvent(ctx, domain.EventWishlistMove, productID, 1)
}

func (s *Service) ClearWishlist(ctx context.Context) {
	s.store.ClearWishlist()
	s.persist(ctx)
	s.emitEvent(ctx, domain.EventWishlistClear, 0, 0)
}

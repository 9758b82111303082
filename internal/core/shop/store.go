// Package shop holds the storefront state container: the cart and the
// wishlist with their mutation surface.
//
// Every mutation is a total function over the state: unknown ids are
// absorbed as no-ops and out-of-range quantities are clamped, never
// rejected. Persistence and event publishing live behind ports on the
// service layer; the store itself does no I/O.
package shop

import (
	"sync"

	"github.com/santeh/storefront/internal/core/domain"
)

// A Store owns the cart and wishlist collections. Safe for concurrent
// use by the HTTP adapter.
type Store struct {
	mu       sync.Mutex
	cart     []domain.CartItem
	wishlist []domain.Product
}

func New() *Store {
	return &Store{}
}

// Hydrate replaces the state with a previously persisted snapshot.
func (s *Store) Hydrate(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = append([]domain.CartItem(nil), snap.Cart...)
	s.wishlist = append([]domain.Product(nil), snap.Wishlist...)
}

// Snapshot returns a copy of the full state for persistence.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.Snapshot{
		Cart:     append([]domain.CartItem(nil), s.cart...),
		Wishlist: append([]domain.Product(nil), s.wishlist...),
	}
}

// Cart returns a copy of the cart items in insertion order.
func (s *Store) Cart() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartItem(nil), s.cart...)
}

// Wishlist returns a copy of the wishlist entries in insertion order.
func (s *Store) Wishlist() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.wishlist...)
}

// CartTotal returns the cart sum: price times quantity over all items.
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, it := range s.cart {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// CartCount returns the number of units in the cart.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, it := range s.cart {
		n += it.Quantity
	}
	return n
}

// AddToCart merges by product id: an existing entry gets its quantity
// incremented, otherwise a new item is appended at the end. Quantities
// below one count as one.
func (s *Store) AddToCart(p domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ID == p.ID {
			s.cart[i].Quantity += quantity
			return
		}
	}
	s.cart = append(s.cart, domain.CartItem{Product: p, Quantity: quantity})
}

// RemoveFromCart removes the entry with the matching id, no-op when absent.
func (s *Store) RemoveFromCart(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = removeByID(s.cart, id, func(it domain.CartItem) int { return it.ID })
}

// UpdateQuantity sets the entry quantity to max(1, quantity), no-op
// when the id is absent.
func (s *Store) UpdateQuantity(id, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ID == id {
			s.cart[i].Quantity = quantity
			return
		}
	}
}

// ClearCart empties the cart unconditionally.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

// ToggleWishlist removes the product when it is already wishlisted,
// otherwise appends it. It reports whether the product was added.
func (s *Store) ToggleWishlist(p domain.Product) (added bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.wishlist {
		if w.ID == p.ID {
			s.wishlist = removeByID(
				s.wishlist, p.ID, func(v domain.Product) int { return v.ID },
			)
			return false
		}
	}
	s.wishlist = append(s.wishlist, p)
	return true
}

// RemoveFromWishlist removes the matching entry, no-op when absent.
func (s *Store) RemoveFromWishlist(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wishlist = removeByID(
		s.wishlist, id, func(v domain.Product) int { return v.ID },
	)
}

// MoveToCartFromWishlist removes the entry from the wishlist and
// appends a fresh cart item with quantity 1. Unlike AddToCart it never
// merges with an existing cart entry for the same product, so the cart
// may end up holding two entries sharing an id. It reports whether the
// product was present in the wishlist.
func (s *Store) MoveToCartFromWishlist(id int) (moved bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.wishlist {
		if w.ID == id {
			s.wishlist = removeByID(
				s.wishlist, id, func(v domain.Product) int { return v.ID },
			)
			s.cart = append(s.cart, domain.CartItem{Product: w, Quantity: 1})
			return true
		}
	}
	return false
}

// ClearWishlist empties the wishlist unconditionally.
func (s *Store) ClearWishlist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = nil
}

func removeByID[T any](vs []T, id int, idFn func(T) int) []T {
	filtered := vs[:0]
	for _, v := range vs {
		if idFn(v) != id {
			filtered = append(filtered, v)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/santeh/storefront/internal/core/catalog"
	"github.com/santeh/storefront/internal/core/domain"
	"github.com/santeh/storefront/internal/core/port"
)

// GET v1/catalog?category=&brand=&minPrice=&maxPrice=&inStock=&onSale=
// (200 OK; parameters at default values are omitted from the canonical query)

type CatalogHandler struct {
	provider port.CatalogProvider
}

func RegisterCatalog(mux *http.ServeMux, provider port.CatalogProvider) {
	h := CatalogHandler{provider}
	mux.HandleFunc("GET /v1/catalog", h.GetCatalog)
	mux.HandleFunc("GET /v1/catalog/hits", h.GetHits)
	mux.HandleFunc("GET /v1/catalog/trending", h.GetTrending)
	mux.HandleFunc("GET /v1/catalog/facets", h.GetFacets)
	mux.HandleFunc("GET /v1/catalog/products/{id}", h.GetProduct)
}

func (h CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	crit := catalog.ParseQuery(r.URL.Query())
	ps := h.provider.BrowseCatalog(r.Context(), crit)

	writeJSON(w, http.StatusOK, CatalogView{
		Products:      toProducts(ps),
		Total:         len(ps),
		Query:         crit.Encode(),
		ActiveFilters: crit.Active(),
	})
}

func (h CatalogHandler) GetHits(w http.ResponseWriter, r *http.Request) {
	ps := h.provider.CatalogHits(r.Context())
	writeJSON(w, http.StatusOK, toProducts(ps))
}

func (h CatalogHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetTrending"
	log := slog.With("op", op)

	ts, err := h.provider.TrendingProducts(r.Context())
	if err != nil {
		http.Error(w, "trending unavailable", http.StatusServiceUnavailable)
		log.Error("failed to read trending view", "err", err)
		return
	}

	if len(ts) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	vs := make([]TrendingItem, len(ts))
	for i, t := range ts {
		vs[i] = TrendingItem{ProductID: t.ProductID, CartAdds: t.CartAdds}
	}
	writeJSON(w, http.StatusOK, vs)
}

func (h CatalogHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	categories, brands := h.provider.CatalogFacets(r.Context())
	writeJSON(w, http.StatusOK, FacetsView{
		Categories: categories,
		Brands:     brands,
	})
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.provider.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Error("failed to get product", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toProduct(p))
}

// POST v1/cart/items JSON {"product_id" int, "quantity" int}
// (200 OK with the refreshed cart, 400 Bad request, 404 Not found)

type CartHandler struct {
	keeper port.CartKeeper
}

func RegisterCart(mux *http.ServeMux, keeper port.CartKeeper) {
	h := CartHandler{keeper}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PUT /v1/cart/items/{id}", h.PutItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
	mux.HandleFunc("POST /v1/cart/checkout", h.PostCheckout)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, r)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var v AddCartItem
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err := h.keeper.AddToCart(r.Context(), v.ProductID, v.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Error("failed to add to cart", "err", err)
		return
	}

	log.Info("added to cart", "productID", v.ProductID, "quantity", v.Quantity)
	h.writeCart(w, r)
}

func (h CartHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutItem"
	log := slog.With("op", op)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var v UpdateCartItem
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.keeper.UpdateQuantity(r.Context(), id, v.Quantity)
	h.writeCart(w, r)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	h.keeper.RemoveFromCart(r.Context(), id)
	h.writeCart(w, r)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.keeper.ClearCart(r.Context())
	h.writeCart(w, r)
}

func (h CartHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostCheckout"
	log := slog.With("op", op)

	var v CheckoutForm
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	form := domain.CheckoutForm{
		Name:         v.Name,
		Phone:        v.Phone,
		Address:      v.Address,
		Comment:      v.Comment,
		DeliveryType: v.DeliveryType,
	}

	err := h.keeper.Checkout(r.Context(), form)
	if err != nil {
		if errors.Is(err, domain.ErrCartEmpty) {
			http.Error(w, "cart is empty", http.StatusConflict)
			return
		}
		http.Error(w, "invalid checkout form", http.StatusBadRequest)
		log.Warn("checkout rejected", "err", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	if _, err := w.Write([]byte("Accepted")); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func (h CartHandler) writeCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	writeJSON(w, http.StatusOK, CartView{
		Items: toCartItems(h.keeper.Cart(ctx)),
		Total: h.keeper.CartTotal(ctx),
		Count: h.keeper.CartCount(ctx),
	})
}

// POST v1/wishlist/toggle JSON {"product_id" int}
// (200 OK with the refreshed wishlist, 404 Not found)

type WishlistHandler struct {
	keeper port.WishlistKeeper
}

func RegisterWishlist(mux *http.ServeMux, keeper port.WishlistKeeper) {
	h := WishlistHandler{keeper}
	mux.HandleFunc("GET /v1/wishlist", h.GetWishlist)
	mux.HandleFunc("POST /v1/wishlist/toggle", h.PostToggle)
	mux.HandleFunc("POST /v1/wishlist/{id}/move", h.PostMove)
	mux.HandleFunc("DELETE /v1/wishlist/{id}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/wishlist", h.DeleteWishlist)
}

func (h WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	h.writeWishlist(w, r)
}

func (h WishlistHandler) PostToggle(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.PostToggle"
	log := slog.With("op", op)

	var v ToggleWishlistItem
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err := h.keeper.ToggleWishlist(r.Context(), v.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Error("failed to toggle wishlist", "err", err)
		return
	}

	h.writeWishlist(w, r)
}

func (h WishlistHandler) PostMove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	h.keeper.MoveToCartFromWishlist(r.Context(), id)
	h.writeWishlist(w, r)
}

func (h WishlistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	h.keeper.RemoveFromWishlist(r.Context(), id)
	h.writeWishlist(w, r)
}

func (h WishlistHandler) DeleteWishlist(w http.ResponseWriter, r *http.Request) {
	h.keeper.ClearWishlist(r.Context())
	h.writeWishlist(w, r)
}

func (h WishlistHandler) writeWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, WishlistView{
		Items: toProducts(h.keeper.Wishlist(r.Context())),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func toProduct(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		OldPrice:    p.OldPrice,
		Image:       p.Image,
		Category:    p.Category,
		Description: p.Description,
		Brand:       p.Brand,
		InStock:     p.InStock,
	}
}

func toProducts(ps []domain.Product) []Product {
	vs := make([]Product, len(ps))
	for i, p := range ps {
		vs[i] = toProduct(p)
	}
	return vs
}

func toCartItems(items []domain.CartItem) []CartItem {
	vs := make([]CartItem, len(items))
	for i, it := range items {
		vs[i] = CartItem{Product: toProduct(it.Product), Quantity: it.Quantity}
	}
	return vs
}

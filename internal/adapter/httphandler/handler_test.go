package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santeh/storefront/internal/adapter/httphandler"
	"github.com/santeh/storefront/internal/core/catalog"
	"github.com/santeh/storefront/internal/core/domain"
	"github.com/santeh/storefront/internal/core/service"
)

type stubStorage struct{}

func (stubStorage) SaveSnapshot(context.Context, domain.Snapshot) error {
	return nil
}

func (stubStorage) LoadSnapshot(context.Context) (domain.Snapshot, error) {
	return domain.Snapshot{}, errors.New("no snapshot")
}

type stubEvents struct{}

func (stubEvents) ProduceEvent(context.Context, domain.ShopEvent) error {
	return nil
}

type stubTrending struct {
	ts  []domain.ProductTrend
	err error
}

func (s stubTrending) Trending(context.Context) ([]domain.ProductTrend, error) {
	return s.ts, s.err
}

func newTestMux(t *testing.T, trending stubTrending) *http.ServeMux {
	t.Helper()

	cat := catalog.New([]domain.Product{
		{ID: 1, Name: "Смеситель Grohe", Price: 5900, Category: "Смесители", Brand: "Grohe", InStock: true},
		{ID: 2, Name: "Ванна Santek", Price: 15900, OldPrice: 19900, Category: "Ванны", Brand: "Santek", InStock: true},
		{ID: 3, Name: "Унитаз Santek", Price: 8900, Category: "Унитазы", Brand: "Santek"},
	})

	s := service.New(cat, stubStorage{}, stubEvents{}, trending)

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, s)
	httphandler.RegisterCart(mux, s)
	httphandler.RegisterWishlist(mux, s)
	httphandler.RegisterContact(mux)
	return mux
}

func doJSON(
	t *testing.T, mux *http.ServeMux, method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) httphandler.CartView {
	t.Helper()
	var v httphandler.CartView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestCatalogHandler(t *testing.T) {
	mux := newTestMux(t, stubTrending{})

	t.Run("Unfiltered", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/catalog", "")
		require.Equal(t, http.StatusOK, w.Code)

		var v httphandler.CatalogView
		require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
		assert.Equal(t, 3, v.Total)
		assert.Equal(t, "", v.Query)
		assert.False(t, v.ActiveFilters)
	})

	t.Run("FilteredByBrand", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/catalog?brand=Santek", "")
		require.Equal(t, http.StatusOK, w.Code)

		var v httphandler.CatalogView
		require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
		require.Equal(t, 2, v.Total)
		assert.Equal(t, "brand=Santek", v.Query)
		assert.True(t, v.ActiveFilters)
		assert.Equal(t, 2, v.Products[0].ID)
		assert.Equal(t, 3, v.Products[1].ID)
	})

	t.Run("Product", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/catalog/products/2", "")
		require.Equal(t, http.StatusOK, w.Code)

		var v httphandler.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
		assert.Equal(t, "Ванна Santek", v.Name)
		assert.InDelta(t, 19900, v.OldPrice, 1e-9)
	})

	t.Run("ProductNotFound", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/catalog/products/99", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ProductInvalidID", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/catalog/products/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Facets", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/catalog/facets", "")
		require.Equal(t, http.StatusOK, w.Code)

		var v httphandler.FacetsView
		require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
		assert.Equal(t, []string{"Смесители", "Ванны", "Унитазы"}, v.Categories)
		assert.Equal(t, []string{"Grohe", "Santek"}, v.Brands)
	})

	t.Run("Hits", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/catalog/hits", "")
		require.Equal(t, http.StatusOK, w.Code)

		var vs []httphandler.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&vs))
		assert.Len(t, vs, 3)
	})

	t.Run("TrendingEmpty", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/catalog/trending", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Trending", func(t *testing.T) {
		trendingMux := newTestMux(t, stubTrending{
			ts: []domain.ProductTrend{{ProductID: 2, CartAdds: 9}},
		})

		w := doJSON(t, trendingMux, http.MethodGet, "/v1/catalog/trending", "")
		require.Equal(t, http.StatusOK, w.Code)

		var vs []httphandler.TrendingItem
		require.NoError(t, json.NewDecoder(w.Body).Decode(&vs))
		require.Len(t, vs, 1)
		assert.Equal(t, int64(9), vs[0].CartAdds)
	})

	t.Run("TrendingUnavailable", func(t *testing.T) {
		failingMux := newTestMux(t, stubTrending{err: errors.New("view down")})

		w := doJSON(t, failingMux, http.MethodGet, "/v1/catalog/trending", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestCartHandler(t *testing.T) {
	t.Run("AddAndMerge", func(t *testing.T) {
		mux := newTestMux(t, stubTrending{})

		w := doJSON(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": 1, "quantity": 1}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": 1, "quantity": 1}`)
		require.Equal(t, http.StatusOK, w.Code)

		v := decodeCart(t, w)
		require.Len(t, v.Items, 1)
		assert.Equal(t, 2, v.Items[0].Quantity)
		assert.Equal(t, 2, v.Count)
		assert.InDelta(t, 11800, v.Total, 1e-9)
	})

	t.Run("AddUnknownProduct", func(t *testing.T) {
		mux := newTestMux(t, stubTrending{})

		w := doJSON(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": 99, "quantity": 1}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("AddInvalidJSON", func(t *testing.T) {
		mux := newTestMux(t, stubTrending{})

		w := doJSON(t, mux, http.MethodPost, "/v1/cart/items", `{"product_id"`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UpdateQuantityClampsToOne", func(t *testing.T) {
		mux := newTestMux(t, stubTrending{})
		doJSON(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": 1, "quantity": 5}`)

		w := doJSON(t, mux, http.MethodPut, "/v1/cart/items/1",
			`{"quantity": -2}`)
		require.Equal(t, http.StatusOK, w.Code)

		v := decodeCart(t, w)
		require.Len(t, v.Items, 1)
		assert.Equal(t, 1, v.Items[0].Quantity)
	})

	t.Run("UpdateUnknownIDIsNoop", func(t *testing.T) {
		mux := newTestMux(t, stubTrending{})
		doJSON(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": 1, "quantity": 5}`)

		w := doJSON(t, mux, http.MethodPut, "/v1/cart/items/42",
			`{"quantity": 1}`)
		require.Equal(t, http.StatusOK, w.Code)

		v := decodeCart(t, w)
		require.Len(t, v.Items, 1)
		assert.Equal(t, 5, v.Items[0].Quantity)
	})

	t.Run("RemoveAndClear", func(t *testing.T) {
		mux := newTestMux(t, stubTrending{})
		doJSON(t, mux, http.MethodPost, "/v1/cart/items", `{"product_id": 1}`)
		doJSON(t, mux, http.MethodPost, "/v1/cart/items", `{"product_id": 2}`)

		w := doJSON(t, mux, http.MethodDelete, "/v1/cart/items/1", "")
		v := decodeCart(t, w)
		require.Len(t, v.Items, 1)
		assert.Equal(t, 2, v.Items[0].ID)

		w = doJSON(t, mux, http.MethodDelete, "/v1/cart", "")
		v = decodeCart(t, w)
		assert.Empty(t, v.Items)
	})

	t.Run("Checkout", func(t *testing.T) {
		mux := newTestMux(t, stubTrending{})
		doJSON(t, mux, http.MethodPost, "/v1/cart/items", `{"product_id": 1}`)

		w := doJSON(t, mux, http.MethodPost, "/v1/cart/checkout",
			`{"name": "Иван", "phone": "+79000000000", "delivery_type": "pickup"}`)
		require.Equal(t, http.StatusAccepted, w.Code)

		w = doJSON(t, mux, http.MethodGet, "/v1/cart", "")
		assert.Empty(t, decodeCart(t, w).Items)
	})

	t.Run("CheckoutEmptyCart", func(t *testing.T) {
		mux := newTestMux(t, stubTrending{})

		w := doJSON(t, mux, http.MethodPost, "/v1/cart/checkout",
			`{"name": "Иван", "phone": "+79000000000", "delivery_type": "pickup"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("CheckoutInvalidForm", func(t *testing.T) {
		mux := newTestMux(t, stubTrending{})
		doJSON(t, mux, http.MethodPost, "/v1/cart/items", `{"product_id": 1}`)

		w := doJSON(t, mux, http.MethodPost, "/v1/cart/checkout",
			`{"name": "", "phone": "", "delivery_type": "pickup"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		// Validation detail stays in the log, the client gets a fixed
		// message.
		assert.Equal(t, "invalid checkout form\n", w.Body.String())
	})
}

func TestWishlistHandler(t *testing.T) {
	t.Run("ToggleTwiceRestoresState", func(t *testing.T) {
		mux := newTestMux(t, stubTrending{})

		w := doJSON(t, mux, http.MethodPost, "/v1/wishlist/toggle",
			`{"product_id": 2}`)
		require.Equal(t, http.StatusOK, w.Code)

		var v httphandler.WishlistView
		require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
		require.Len(t, v.Items, 1)

		w = doJSON(t, mux, http.MethodPost, "/v1/wishlist/toggle",
			`{"product_id": 2}`)
		require.Equal(t, http.StatusOK, w.Code)

		v = httphandler.WishlistView{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
		assert.Empty(t, v.Items)
	})

	t.Run("ToggleUnknownProduct", func(t *testing.T) {
		mux := newTestMux(t, stubTrending{})

		w := doJSON(t, mux, http.MethodPost, "/v1/wishlist/toggle",
			`{"product_id": 99}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MoveToCart", func(t *testing.T) {
		mux := newTestMux(t, stubTrending{})
		doJSON(t, mux, http.MethodPost, "/v1/wishlist/toggle",
			`{"product_id": 2}`)

		w := doJSON(t, mux, http.MethodPost, "/v1/wishlist/2/move", "")
		require.Equal(t, http.StatusOK, w.Code)

		var v httphandler.WishlistView
		require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
		assert.Empty(t, v.Items)

		w = doJSON(t, mux, http.MethodGet, "/v1/cart", "")
		cart := decodeCart(t, w)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 1, cart.Items[0].Quantity)
	})
}

func TestContactHandler(t *testing.T) {
	mux := newTestMux(t, stubTrending{})

	t.Run("MissingFields", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodPost, "/v1/contact",
			`{"name": "", "message": ""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAllowJSON(t *testing.T) {
	mux := newTestMux(t, stubTrending{})
	handler := httphandler.AllowJSON(mux)

	t.Run("RejectsNonJSONBody", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/v1/cart/items",
			strings.NewReader("product_id=1"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("PassesBodylessRequests", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/v1/catalog", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

package httphandler

type (
	Product struct {
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

	CartItem struct {
		Product
		Quantity int `json:"quantity"`
	}
)

// CatalogView carries the filtered product list together with the
// canonical query-string form of the applied criteria, so the client
// can keep its URL in sync without re-deriving the projection.
type CatalogView struct {
	Products      []Product `json:"products"`
	Total         int       `json:"total"`
	Query         string    `json:"query"`
	ActiveFilters bool      `json:"activeFilters"`
}

type FacetsView struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
}

type TrendingItem struct {
	ProductID int   `json:"product_id"`
	CartAdds  int64 `json:"cart_adds"`
}

type CartView struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
	Count int        `json:"count"`
}

type WishlistView struct {
	Items []Product `json:"items"`
}

type AddCartItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type UpdateCartItem struct {
	Quantity int `json:"quantity"`
}

type ToggleWishlistItem struct {
	ProductID int `json:"product_id"`
}

type CheckoutForm struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Comment      string `json:"comment"`
	DeliveryType string `json:"delivery_type"`
}

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

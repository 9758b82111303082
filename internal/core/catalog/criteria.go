package catalog

import (
	"math"
	"net/url"
	"strconv"
)

// Criteria defaults. Default-valued parameters are elided from the
// query-string encoding so an unfiltered catalog URL stays clean.
const (
	DefaultMinPrice = "0"
	DefaultMaxPrice = "100000"
)

// Criteria is the set of active catalog filter parameters.
//
// Price bounds are kept as the raw query strings: a non-numeric bound
// parses to NaN, every comparison with NaN is false and the bound is
// effectively disabled.
type Criteria struct {
	Category string
	Brand    string
	MinPrice string
	MaxPrice string
	InStock  bool
	OnSale   bool
}

// DefaultCriteria returns the criteria with every parameter at its
// default value.
func DefaultCriteria() Criteria {
	return Criteria{MinPrice: DefaultMinPrice, MaxPrice: DefaultMaxPrice}
}

// ParseQuery projects query parameters onto Criteria, substituting
// defaults for absent parameters. It is the inverse of [Criteria.Query]
// over the default-normalized domain.
func ParseQuery(q url.Values) Criteria {
	c := DefaultCriteria()

	if v := q.Get("category"); v != "" {
		c.Category = v
	}
	if v := q.Get("brand"); v != "" {
		c.Brand = v
	}
	if v := q.Get("minPrice"); v != "" {
		c.MinPrice = v
	}
	if v := q.Get("maxPrice"); v != "" {
		c.MaxPrice = v
	}
	c.InStock = q.Get("inStock") == "true"
	c.OnSale = q.Get("onSale") == "true"

	return c
}

// Query projects the criteria onto query parameters, omitting every
// parameter that equals its default.
func (c Criteria) Query() url.Values {
	q := url.Values{}

	if c.Category != "" {
		q.Set("category", c.Category)
	}
	if c.Brand != "" {
		q.Set("brand", c.Brand)
	}
	if c.MinPrice != "" && c.MinPrice != DefaultMinPrice {
		q.Set("minPrice", c.MinPrice)
	}
	if c.MaxPrice != "" && c.MaxPrice != DefaultMaxPrice {
		q.Set("maxPrice", c.MaxPrice)
	}
	if c.InStock {
		q.Set("inStock", "true")
	}
	if c.OnSale {
		q.Set("onSale", "true")
	}

	return q
}

// Encode returns the URL-encoded query-string form of the criteria.
// Default criteria encode to the empty string.
func (c Criteria) Encode() string {
	return c.Query().Encode()
}

// Active reports whether any parameter differs from its default.
// It drives the "reset filters" affordance on the rendering side.
func (c Criteria) Active() bool {
	return c != DefaultCriteria()
}

func (c Criteria) minBound() float64 {
	return parseBound(c.MinPrice)
}

func (c Criteria) maxBound() float64 {
	return parseBound(c.MaxPrice)
}

func parseBound(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

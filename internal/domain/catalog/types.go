// Package catalog holds the product model and the pure filter/sort engine
// behind the shop page.
package catalog

import (
	"errors"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned when no product matches a requested slug.
var ErrProductNotFound = errors.New("product not found")

// Product is one catalog entry as mapped from the commerce platform.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description,omitempty"`
	DisplayPrice string          `json:"displayPrice"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Sizes        []string        `json:"sizes,omitempty"`
}

// SortKey identifies one of the shop page's sort orders.
type SortKey string

const (
	SortRecommended SortKey = "recommended"
	SortNewest      SortKey = "newest"
	SortPriceAsc    SortKey = "price-asc"
	SortPriceDesc   SortKey = "price-desc"
	SortNameAsc     SortKey = "name-asc"
	SortNameDesc    SortKey = "name-desc"
)

// ParseSortKey maps a raw query value to a SortKey.
// Unknown or empty values fall back to SortRecommended (input order).
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return SortKey(s)
	default:
		return SortRecommended
	}
}

// Bounds describes the observed shape of a catalog: the price range and the
// union of available sizes. The shop page uses it to initialize the price
// slider and the size checkboxes.
type Bounds struct {
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	Sizes    []string
}

// ComputeBounds derives Bounds from a product list. Zero-priced products are
// excluded from the price range (they are placeholder entries, not sale
// items). Sizes are deduplicated and sorted. An empty catalog yields zero
// bounds.
func ComputeBounds(products []Product) Bounds {
	var b Bounds
	seen := make(map[string]struct{})
	first := true

	for _, p := range products {
		if p.Price.IsPositive() {
			if first || p.Price.LessThan(b.MinPrice) {
				b.MinPrice = p.Price
			}
			if first || p.Price.GreaterThan(b.MaxPrice) {
				b.MaxPrice = p.Price
			}
			first = false
		}
		for _, s := range p.Sizes {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				b.Sizes = append(b.Sizes, s)
			}
		}
	}

	sortSizes(b.Sizes)
	return b
}

// sizeRank orders apparel sizes the way a size rail does, with unknown
// labels after the known ones in lexical order.
var sizeRank = map[string]int{
	"XS": 0, "S": 1, "M": 2, "L": 3, "XL": 4, "XXL": 5, "3XL": 6,
}

func sortSizes(sizes []string) {
	slices.SortFunc(sizes, func(a, b string) int {
		ra, aok := sizeRank[a]
		rb, bok := sizeRank[b]
		switch {
		case aok && bok:
			return ra - rb
		case aok:
			return -1
		case bok:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})
}

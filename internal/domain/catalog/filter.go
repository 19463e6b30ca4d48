package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Selection is the shopper's current filter and sort choice.
// A zero-value size list means "all sizes".
type Selection struct {
	PriceMin decimal.Decimal
	PriceMax decimal.Decimal
	Sizes    []string
	Sort     SortKey
}

// DefaultSelection is the untouched shop page: full price range, no size
// filter, recommended order.
func DefaultSelection(b Bounds) Selection {
	return Selection{
		PriceMin: b.MinPrice,
		PriceMax: b.MaxPrice,
		Sort:     SortRecommended,
	}
}

// hasSize reports whether the selection admits the given size.
func (sel Selection) hasSize(size string) bool {
	for _, s := range sel.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// matches applies the conjunction of the price-range and size filters.
// A product with no size variants passes the size filter only when no
// sizes are selected.
func (sel Selection) matches(p Product) bool {
	if p.Price.LessThan(sel.PriceMin) || p.Price.GreaterThan(sel.PriceMax) {
		return false
	}
	if len(sel.Sizes) == 0 {
		return true
	}
	for _, s := range p.Sizes {
		if sel.hasSize(s) {
			return true
		}
	}
	return false
}

// Apply filters products by the selection and returns them in the selected
// order. The input slice is never mutated; ties keep their input order
// (stable sort). Recommended and newest both preserve input order: the
// platform returns products in its recommended sequence, and the payload
// carries no creation timestamp to reorder by.
func Apply(products []Product, sel Selection) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if sel.matches(p) {
			out = append(out, p)
		}
	}

	switch sel.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.LessThan(out[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.GreaterThan(out[j].Price)
		})
	case SortNameAsc:
		c := nameCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortNameDesc:
		c := nameCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) > 0
		})
	}

	return out
}

// nameCollator builds a locale-aware collator for name sorts. Collators are
// not safe for concurrent use, so Apply builds one per call.
func nameCollator() *collate.Collator {
	return collate.New(language.English)
}

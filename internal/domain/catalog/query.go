package catalog

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Query parameter names shared between the shop page and the products API.
const (
	paramMinPrice = "minPrice"
	paramMaxPrice = "maxPrice"
	paramSizes    = "sizes"
	paramSort     = "sort"
)

// SelectionFromQuery decodes a selection from URL query values. Missing or
// unparseable parameters fall back to their defaults for the given bounds,
// so a hand-edited URL degrades gracefully instead of erroring.
func SelectionFromQuery(q url.Values, b Bounds) Selection {
	sel := DefaultSelection(b)

	if raw := q.Get(paramMinPrice); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			sel.PriceMin = d
		}
	}
	if raw := q.Get(paramMaxPrice); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			sel.PriceMax = d
		}
	}
	if raw := q.Get(paramSizes); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sel.Sizes = append(sel.Sizes, s)
			}
		}
	}
	sel.Sort = ParseSortKey(q.Get(paramSort))

	return sel
}

// Query encodes the selection as URL values. Parameters appear only when
// they differ from the defaults for the given bounds, keeping shareable
// shop URLs minimal.
func (sel Selection) Query(b Bounds) url.Values {
	v := url.Values{}

	if !sel.PriceMin.Equal(b.MinPrice) {
		v.Set(paramMinPrice, sel.PriceMin.String())
	}
	if !sel.PriceMax.Equal(b.MaxPrice) {
		v.Set(paramMaxPrice, sel.PriceMax.String())
	}
	if len(sel.Sizes) > 0 {
		v.Set(paramSizes, strings.Join(sel.Sizes, ","))
	}
	if sel.Sort != SortRecommended && sel.Sort != "" {
		v.Set(paramSort, string(sel.Sort))
	}

	return v
}

// QueryString renders the selection as a URL suffix ("?sizes=M&sort=price-asc"),
// or "" when everything is at its default.
func (sel Selection) QueryString(b Bounds) string {
	q := sel.Query(b)
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

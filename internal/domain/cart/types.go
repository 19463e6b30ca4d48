// Package cart implements the shopping cart: an ordered list of lines keyed
// by (product, size), persisted best-effort between visits.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/indian-sparrow/storefront/pkg/money"
)

// StorageKey is the key the cart is persisted under.
const StorageKey = "cart"

// Line is one cart entry. Two lines are the same entry iff they share
// ProductID and Size; the same product in two sizes is two lines.
type Line struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	DisplayPrice string          `json:"displayPrice"`
	NumericPrice decimal.Decimal `json:"numericPrice"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Size         string          `json:"size,omitempty"`
	Quantity     int             `json:"quantity"`
}

// lineKey is the identity of a cart line.
type lineKey struct {
	productID string
	size      string
}

func (l Line) key() lineKey {
	return lineKey{productID: l.ProductID, size: l.Size}
}

// UnitPrice returns the exact per-item price. Older persisted carts predate
// the numeric field, so the display string is the fallback source.
func (l Line) UnitPrice() decimal.Decimal {
	if !l.NumericPrice.IsZero() {
		return l.NumericPrice
	}
	return money.Parse(l.DisplayPrice)
}

// Total returns UnitPrice multiplied by the quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

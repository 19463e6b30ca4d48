// Package checkout defines the data handed to the commerce platform when
// the shopper moves from cart to payment.
package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/indian-sparrow/storefront/internal/domain/cart"
)

// DefaultCountry is applied when the shopper leaves the country blank.
const DefaultCountry = "India"

// LineItem references one cart line in the platform's catalog terms.
type LineItem struct {
	CatalogItemID string `json:"catalogItemId"`
	Quantity      int    `json:"quantity"`
}

// Callbacks are the URLs the platform returns the shopper to after payment.
type Callbacks struct {
	PostFlowURL string
	ThankYouURL string
}

// Address is the shipping address collected on the checkout page.
type Address struct {
	FullName     string `json:"fullName" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state"`
	PinCode      string `json:"pinCode" validate:"required"`
	Country      string `json:"country"`
}

// Normalize fills defaulted fields in place.
func (a *Address) Normalize() {
	if strings.TrimSpace(a.Country) == "" {
		a.Country = DefaultCountry
	}
}

// Validate checks the required address fields. The returned error lists
// every missing field, suitable for display next to the form.
func (a *Address) Validate() error {
	validate := validator.New()
	err := validate.Struct(a)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, e := range validationErrors {
			messages = append(messages, fmt.Sprintf("%s is required", fieldName(e.Field())))
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return err
}

// fieldName maps struct field names to the labels the checkout form uses.
func fieldName(field string) string {
	switch field {
	case "FullName":
		return "full name"
	case "Phone":
		return "phone"
	case "AddressLine1":
		return "address line 1"
	case "City":
		return "city"
	case "PinCode":
		return "PIN code"
	default:
		return field
	}
}

// LineItemsFromCart converts cart lines into platform line items,
// preserving cart order.
func LineItemsFromCart(lines []cart.Line) []LineItem {
	items := make([]LineItem, len(lines))
	for i, l := range lines {
		items[i] = LineItem{CatalogItemID: l.ProductID, Quantity: l.Quantity}
	}
	return items
}

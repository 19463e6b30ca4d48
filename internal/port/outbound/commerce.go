package outbound

import (
	"context"

	"github.com/indian-sparrow/storefront/internal/domain/catalog"
	"github.com/indian-sparrow/storefront/internal/domain/checkout"
)

// CommerceClient talks to the external commerce platform. Every call is a
// single attempt scoped by ctx; there is no retry layer anywhere, failures
// surface to the caller.
type CommerceClient interface {
	// QueryProducts returns the catalog in the platform's recommended order.
	QueryProducts(ctx context.Context) ([]catalog.Product, error)

	// QueryProductBySlug returns the product with the given slug, or
	// catalog.ErrProductNotFound.
	QueryProductBySlug(ctx context.Context, slug string) (*catalog.Product, error)

	// CreateCheckout registers the line items with the platform and returns
	// the platform's checkout ID.
	CreateCheckout(ctx context.Context, items []checkout.LineItem) (string, error)

	// CreateRedirectSession exchanges a checkout ID for the URL the shopper
	// is sent to for payment.
	CreateRedirectSession(ctx context.Context, checkoutID string, cb checkout.Callbacks) (string, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/indian-sparrow/storefront/internal/domain/cart"
	"github.com/indian-sparrow/storefront/internal/domain/checkout"
	"github.com/indian-sparrow/storefront/internal/port/outbound"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the
// cart. No platform call is made.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutService hands the cart off to the commerce platform.
type CheckoutService struct {
	cart      *cart.Service
	client    outbound.CommerceClient
	callbacks checkout.Callbacks
	logger    *slog.Logger
}

// NewCheckoutService creates the service. callbacks are the URLs the
// platform returns the shopper to after payment.
func NewCheckoutService(cartSvc *cart.Service, client outbound.CommerceClient, callbacks checkout.Callbacks, logger *slog.Logger) *CheckoutService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutService{
		cart:      cartSvc,
		client:    client,
		callbacks: callbacks,
		logger:    logger,
	}
}

// Handoff creates a checkout for the current cart, exchanges it for a
// payment redirect URL, and clears the cart. The cart is cleared only
// after both platform calls succeed: a failure at any point leaves it
// exactly as it was so the shopper can try again.
func (s *CheckoutService) Handoff(ctx context.Context) (string, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	items := checkout.LineItemsFromCart(lines)

	checkoutID, err := s.client.CreateCheckout(ctx, items)
	if err != nil {
		return "", fmt.Errorf("checkout handoff: %w", err)
	}

	redirectURL, err := s.client.CreateRedirectSession(ctx, checkoutID, s.callbacks)
	if err != nil {
		return "", fmt.Errorf("checkout handoff: %w", err)
	}

	s.cart.Clear(ctx)
	s.logger.Info("checkout handed off", "checkout_id", checkoutID, "lines", len(lines))
	return redirectURL, nil
}

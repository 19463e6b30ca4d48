// Package commerce provides the HTTP client adapter for the external
// commerce platform (catalog, checkout, and payment redirect APIs).
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/indian-sparrow/storefront/internal/domain/catalog"
	"github.com/indian-sparrow/storefront/internal/domain/checkout"
)

const (
	// maxResponseBodySize bounds response reads so a misbehaving platform
	// cannot exhaust memory.
	maxResponseBodySize = 10 * 1024 * 1024 // 10MB

	// queryPageLimit is how many products one catalog query requests.
	queryPageLimit = 100

	// storesAppID identifies the platform's stores application in catalog
	// references on checkout line items.
	storesAppID = "1380b703-ce81-ff05-f115-39571d94dfcd"
)

// HTTPClient talks to the commerce platform's REST API. It implements the
// outbound.CommerceClient interface. Every call is a single attempt.
type HTTPClient struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
	tracer     trace.Tracer
}

// ClientOption is a functional option for configuring HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout for the HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		if c.httpClient != nil {
			c.httpClient.Timeout = d
		}
	}
}

// NewHTTPClient creates a client for the platform API at baseURL,
// authenticating with the given OAuth client ID.
func NewHTTPClient(baseURL, clientID string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:  baseURL,
		clientID: clientID,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		tracer: otel.Tracer("storefront/commerce"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire types. Only the fields the storefront reads are declared.

type productDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Price       struct {
		Price     float64 `json:"price"`
		Formatted struct {
			Price string `json:"price"`
		} `json:"formatted"`
	} `json:"priceData"`
	Media struct {
		MainMedia struct {
			Image struct {
				URL string `json:"url"`
			} `json:"image"`
		} `json:"mainMedia"`
	} `json:"media"`
	ProductOptions []struct {
		Name    string `json:"name"`
		Choices []struct {
			Value string `json:"value"`
		} `json:"choices"`
	} `json:"productOptions"`
}

type queryProductsResponse struct {
	Products []productDTO `json:"products"`
}

// QueryProducts fetches the catalog in the platform's recommended order.
func (c *HTTPClient) QueryProducts(ctx context.Context) ([]catalog.Product, error) {
	ctx, span := c.tracer.Start(ctx, "commerce.QueryProducts")
	defer span.End()

	body := map[string]any{
		"query": map[string]any{
			"paging": map[string]any{"limit": queryPageLimit},
		},
	}

	var resp queryProductsResponse
	if err := c.post(ctx, "/stores/v1/products/query", body, &resp); err != nil {
		return nil, spanError(span, fmt.Errorf("query products: %w", err))
	}

	products := make([]catalog.Product, len(resp.Products))
	for i, dto := range resp.Products {
		products[i] = mapProduct(dto)
	}
	span.SetAttributes(attribute.Int("commerce.product_count", len(products)))
	return products, nil
}

// QueryProductBySlug fetches a single product by its URL slug.
func (c *HTTPClient) QueryProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	ctx, span := c.tracer.Start(ctx, "commerce.QueryProductBySlug",
		trace.WithAttributes(attribute.String("commerce.slug", slug)))
	defer span.End()

	body := map[string]any{
		"query": map[string]any{
			"filter": fmt.Sprintf(`{"slug": %q}`, slug),
		},
	}

	var resp queryProductsResponse
	if err := c.post(ctx, "/stores/v1/products/query", body, &resp); err != nil {
		return nil, spanError(span, fmt.Errorf("query product %q: %w", slug, err))
	}
	if len(resp.Products) == 0 {
		return nil, catalog.ErrProductNotFound
	}

	p := mapProduct(resp.Products[0])
	return &p, nil
}

type createCheckoutResponse struct {
	ID       string `json:"id"`
	Checkout struct {
		ID string `json:"id"`
	} `json:"checkout"`
}

// CreateCheckout registers the line items and returns the checkout ID.
func (c *HTTPClient) CreateCheckout(ctx context.Context, items []checkout.LineItem) (string, error) {
	ctx, span := c.tracer.Start(ctx, "commerce.CreateCheckout",
		trace.WithAttributes(attribute.Int("commerce.line_items", len(items))))
	defer span.End()

	lineItems := make([]map[string]any, len(items))
	for i, item := range items {
		lineItems[i] = map[string]any{
			"catalogReference": map[string]any{
				"catalogItemId": item.CatalogItemID,
				"appId":         storesAppID,
			},
			"quantity": item.Quantity,
		}
	}
	body := map[string]any{
		"lineItems":   lineItems,
		"channelType": "WEB",
	}

	var resp createCheckoutResponse
	if err := c.post(ctx, "/ecom/v1/checkouts", body, &resp); err != nil {
		return "", spanError(span, fmt.Errorf("create checkout: %w", err))
	}

	// The platform has returned both shapes over time.
	id := resp.Checkout.ID
	if id == "" {
		id = resp.ID
	}
	if id == "" {
		return "", spanError(span, errors.New("create checkout: response carried no checkout id"))
	}
	return id, nil
}

type redirectSessionResponse struct {
	RedirectSession struct {
		FullURL string `json:"fullUrl"`
	} `json:"redirectSession"`
}

// CreateRedirectSession exchanges a checkout ID for the hosted payment URL.
func (c *HTTPClient) CreateRedirectSession(ctx context.Context, checkoutID string, cb checkout.Callbacks) (string, error) {
	ctx, span := c.tracer.Start(ctx, "commerce.CreateRedirectSession")
	defer span.End()

	body := map[string]any{
		"ecomCheckout": map[string]any{"checkoutId": checkoutID},
		"callbacks": map[string]any{
			"postFlowUrl":     cb.PostFlowURL,
			"thankYouPageUrl": cb.ThankYouURL,
		},
	}

	var resp redirectSessionResponse
	if err := c.post(ctx, "/redirects/v1/redirect-session", body, &resp); err != nil {
		return "", spanError(span, fmt.Errorf("create redirect session: %w", err))
	}
	if resp.RedirectSession.FullURL == "" {
		return "", spanError(span, errors.New("create redirect session: response carried no redirect url"))
	}
	return resp.RedirectSession.FullURL, nil
}

// post sends one JSON request and decodes the JSON response into out.
func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.clientID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapProduct converts the platform's product shape into the catalog model.
// Size variants come from the "Size" product option; the display price
// falls back to a zero rupee label when the platform omits it.
func mapProduct(dto productDTO) catalog.Product {
	display := dto.Price.Formatted.Price
	if display == "" {
		display = "₹0"
	}

	var sizes []string
	for _, opt := range dto.ProductOptions {
		if !strings.EqualFold(opt.Name, "size") {
			continue
		}
		for _, choice := range opt.Choices {
			if choice.Value != "" {
				sizes = append(sizes, choice.Value)
			}
		}
	}

	return catalog.Product{
		ID:           dto.ID,
		Name:         dto.Name,
		Slug:         dto.Slug,
		Description:  dto.Description,
		DisplayPrice: display,
		Price:        decimal.NewFromFloat(dto.Price.Price),
		ImageURL:     dto.Media.MainMedia.Image.URL,
		Sizes:        sizes,
	}
}

// spanError records err on the span and passes it through.
func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

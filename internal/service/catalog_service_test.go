package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/indian-sparrow/storefront/internal/domain/catalog"
	"github.com/indian-sparrow/storefront/internal/domain/checkout"
)

// fakeCommerce scripts the commerce platform.
type fakeCommerce struct {
	products      []catalog.Product
	queryErr      error
	queryCalls    int
	checkoutID    string
	checkoutErr   error
	checkoutCalls int
	redirectURL   string
	redirectErr   error
	redirectCalls int
	gotItems      []checkout.LineItem
}

func (f *fakeCommerce) QueryProducts(ctx context.Context) ([]catalog.Product, error) {
	f.queryCalls++
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.products, nil
}

func (f *fakeCommerce) QueryProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	for i := range f.products {
		if f.products[i].Slug == slug {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

func (f *fakeCommerce) CreateCheckout(ctx context.Context, items []checkout.LineItem) (string, error) {
	f.checkoutCalls++
	f.gotItems = items
	if f.checkoutErr != nil {
		return "", f.checkoutErr
	}
	return f.checkoutID, nil
}

func (f *fakeCommerce) CreateRedirectSession(ctx context.Context, checkoutID string, cb checkout.Callbacks) (string, error) {
	f.redirectCalls++
	if f.redirectErr != nil {
		return "", f.redirectErr
	}
	return f.redirectURL, nil
}

func testCatalog() []catalog.Product {
	return []catalog.Product{
		{ID: "p1", Name: "Mulmul Kurta", Slug: "mulmul-kurta", Price: decimal.NewFromInt(1499), Sizes: []string{"S", "M"}},
		{ID: "p2", Name: "Ajrakh Saree", Slug: "ajrakh-saree", Price: decimal.NewFromInt(4999)},
	}
}

func TestSnapshotCachesWithinTTL(t *testing.T) {
	t.Parallel()

	fake := &fakeCommerce{products: testCatalog()}
	svc := NewCatalogService(fake, slog.Default(), WithCatalogTTL(time.Hour))
	ctx := context.Background()

	first, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	second, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if fake.queryCalls != 1 {
		t.Errorf("platform saw %d queries, want 1", fake.queryCalls)
	}
	if first.Version != second.Version {
		t.Errorf("version changed without refresh: %d -> %d", first.Version, second.Version)
	}
	if first.Bounds.MinPrice.String() != "1499" || first.Bounds.MaxPrice.String() != "4999" {
		t.Errorf("bounds = %+v", first.Bounds)
	}
}

func TestSnapshotRefreshesAfterTTL(t *testing.T) {
	t.Parallel()

	fake := &fakeCommerce{products: testCatalog()}
	svc := NewCatalogService(fake, slog.Default(), WithCatalogTTL(0))
	ctx := context.Background()

	first, _ := svc.Snapshot(ctx)
	second, _ := svc.Snapshot(ctx)

	if fake.queryCalls != 2 {
		t.Errorf("platform saw %d queries, want 2", fake.queryCalls)
	}
	if second.Version != first.Version+1 {
		t.Errorf("version = %d after refresh, want %d", second.Version, first.Version+1)
	}
}

func TestSnapshotServesStaleOnRefreshFailure(t *testing.T) {
	t.Parallel()

	fake := &fakeCommerce{products: testCatalog()}
	svc := NewCatalogService(fake, slog.Default(), WithCatalogTTL(0))
	ctx := context.Background()

	if _, err := svc.Snapshot(ctx); err != nil {
		t.Fatal(err)
	}

	fake.queryErr = errors.New("platform down")
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v, want stale snapshot", err)
	}
	if len(snap.Products) != 2 {
		t.Errorf("stale snapshot has %d products, want 2", len(snap.Products))
	}
}

func TestSnapshotColdFailure(t *testing.T) {
	t.Parallel()

	fake := &fakeCommerce{queryErr: errors.New("platform down")}
	svc := NewCatalogService(fake, slog.Default())

	if _, err := svc.Snapshot(context.Background()); err == nil {
		t.Error("Snapshot() error = nil with no cache and a failing platform")
	}
}

func TestFiltered(t *testing.T) {
	t.Parallel()

	fake := &fakeCommerce{products: testCatalog()}
	svc := NewCatalogService(fake, slog.Default(), WithCatalogTTL(time.Hour))
	ctx := context.Background()

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}

	sel := catalog.DefaultSelection(snap.Bounds)
	sel.Sizes = []string{"M"}
	products, bounds, err := svc.Filtered(ctx, sel)
	if err != nil {
		t.Fatalf("Filtered() error = %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Errorf("products = %+v, want only p1", products)
	}
	if !bounds.MinPrice.Equal(snap.Bounds.MinPrice) {
		t.Errorf("bounds = %+v, want snapshot bounds", bounds)
	}
}

func TestProductBySlug(t *testing.T) {
	t.Parallel()

	fake := &fakeCommerce{products: testCatalog()}
	svc := NewCatalogService(fake, slog.Default(), WithCatalogTTL(time.Hour))
	ctx := context.Background()

	p, err := svc.ProductBySlug(ctx, "ajrakh-saree")
	if err != nil {
		t.Fatalf("ProductBySlug() error = %v", err)
	}
	if p.ID != "p2" {
		t.Errorf("product = %+v", p)
	}

	if _, err := svc.ProductBySlug(ctx, "ghost"); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

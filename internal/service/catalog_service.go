// Package service contains the application services that tie the domain
// stores to the outbound adapters.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/indian-sparrow/storefront/internal/domain/catalog"
	"github.com/indian-sparrow/storefront/internal/port/outbound"
)

// defaultCatalogTTL is how long a fetched catalog is served before the
// next request refreshes it.
const defaultCatalogTTL = time.Minute

// Snapshot is one consistent view of the catalog.
type Snapshot struct {
	Products []catalog.Product
	Bounds   catalog.Bounds

	// Version increments on every refresh; the filter engine uses it to
	// invalidate its memo.
	Version uint64
}

// CatalogService caches the platform catalog and answers filtered views
// of it. A stale cache is refreshed on demand; if the refresh fails and a
// previous snapshot exists, the stale snapshot is served so the shop stays
// browsable through a platform blip.
type CatalogService struct {
	client outbound.CommerceClient
	logger *slog.Logger
	ttl    time.Duration
	engine *catalog.Engine

	mu        sync.Mutex
	snapshot  Snapshot
	fetchedAt time.Time
}

// CatalogOption is a functional option for configuring CatalogService.
type CatalogOption func(*CatalogService)

// WithCatalogTTL overrides the cache lifetime.
func WithCatalogTTL(ttl time.Duration) CatalogOption {
	return func(s *CatalogService) {
		s.ttl = ttl
	}
}

// NewCatalogService creates the service over the given commerce client.
func NewCatalogService(client outbound.CommerceClient, logger *slog.Logger, opts ...CatalogOption) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &CatalogService{
		client: client,
		logger: logger,
		ttl:    defaultCatalogTTL,
		engine: catalog.NewEngine(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current catalog, refreshing it when stale.
func (s *CatalogService) Snapshot(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := s.snapshot.Version > 0 && time.Since(s.fetchedAt) < s.ttl
	if fresh {
		return s.snapshot, nil
	}

	products, err := s.client.QueryProducts(ctx)
	if err != nil {
		if s.snapshot.Version > 0 {
			s.logger.Warn("catalog refresh failed, serving stale snapshot",
				"error", err, "age", time.Since(s.fetchedAt).Round(time.Second))
			return s.snapshot, nil
		}
		return Snapshot{}, fmt.Errorf("fetch catalog: %w", err)
	}

	s.snapshot = Snapshot{
		Products: products,
		Bounds:   catalog.ComputeBounds(products),
		Version:  s.snapshot.Version + 1,
	}
	s.fetchedAt = time.Now()
	s.logger.Debug("catalog refreshed", "products", len(products), "version", s.snapshot.Version)
	return s.snapshot, nil
}

// Filtered returns the catalog filtered and sorted by the selection,
// along with the bounds the selection was resolved against.
func (s *CatalogService) Filtered(ctx context.Context, sel catalog.Selection) ([]catalog.Product, catalog.Bounds, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, catalog.Bounds{}, err
	}
	return s.engine.Apply(snap.Version, snap.Products, sel), snap.Bounds, nil
}

// ProductBySlug resolves a product detail page. The cached snapshot is
// consulted first; a miss falls through to a direct platform query so new
// products are reachable before the next refresh.
func (s *CatalogService) ProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	snap, err := s.Snapshot(ctx)
	if err == nil {
		for i := range snap.Products {
			if snap.Products[i].Slug == slug {
				p := snap.Products[i]
				return &p, nil
			}
		}
	}
	return s.client.QueryProductBySlug(ctx, slug)
}

package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
)

// Service is the single app-scoped cart. Mutations never fail: invalid
// requests are no-ops and persistence failures are logged, not surfaced,
// so a flaky store can't block shopping.
type Service struct {
	mu         sync.Mutex
	store      Store
	logger     *slog.Logger
	lines      []Line
	drawerOpen bool
}

// NewService builds a cart service backed by the given store and loads any
// previously persisted lines.
func NewService(ctx context.Context, store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{store: store, logger: logger}

	lines, err := store.Load(ctx)
	if err != nil {
		// Store contract says corrupt data loads as empty; an error here
		// means the backend itself is unavailable. Start empty either way.
		logger.Warn("failed to load persisted cart, starting empty", "error", err)
		lines = nil
	}
	s.lines = lines
	return s
}

// AddLine adds quantity of the item to the cart, merging with an existing
// line for the same (product, size). Quantities below one are treated as
// one. Adding opens the drawer so the shopper sees the result.
func (s *Service) AddLine(ctx context.Context, item Line, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.lines {
		if s.lines[i].key() == item.key() {
			s.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = quantity
		s.lines = append(s.lines, item)
	}

	s.drawerOpen = true
	s.persist(ctx)
}

// RemoveLine deletes the line identified by (productID, size). Removing a
// line that is not in the cart is a no-op.
func (s *Service) RemoveLine(ctx context.Context, productID, size string) {
	key := lineKey{productID: productID, size: size}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].key() == key {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// SetQuantity replaces the quantity of an existing line. Quantities below
// one and unknown lines are rejected as no-ops; removal is only ever
// explicit via RemoveLine.
func (s *Service) SetQuantity(ctx context.Context, productID, size string, quantity int) {
	if quantity < 1 {
		return
	}
	key := lineKey{productID: productID, size: size}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].key() == key {
			s.lines[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
}

// SetDrawerOpen toggles the cart drawer. The flag is UI state only and is
// never persisted; every visit starts with the drawer closed.
func (s *Service) SetDrawerOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = open
}

// DrawerOpen reports whether the cart drawer is open.
func (s *Service) DrawerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawerOpen
}

// Lines returns a copy of the cart contents in insertion order.
func (s *Service) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count returns the total item count across all lines (the drawer badge).
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// Subtotal returns the exact sum of all line totals.
func (s *Service) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Total())
	}
	return total
}

// persist saves the current lines. Callers hold s.mu. A failed save keeps
// the in-memory mutation and logs a warning; the next successful save
// catches the store up.
func (s *Service) persist(ctx context.Context) {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)

	if err := s.store.Save(ctx, lines); err != nil {
		s.logger.Warn("failed to persist cart", "error", err, "lines", len(lines))
	}
}

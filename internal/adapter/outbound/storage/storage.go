// Package storage adapts the raw key-value port into the typed stores the
// cart and account domains persist through.
//
// Values are plain JSON under well-known keys. Reads are forgiving: a
// corrupt value is logged and treated as absent, because persisted
// storefront state is a convenience, never a source of truth.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/indian-sparrow/storefront/internal/domain/account"
	"github.com/indian-sparrow/storefront/internal/domain/cart"
	"github.com/indian-sparrow/storefront/internal/port/outbound"
)

// CartStore persists cart lines under cart.StorageKey.
type CartStore struct {
	kv     outbound.KeyValueStore
	logger *slog.Logger
}

// NewCartStore creates a CartStore over the given key-value backend.
func NewCartStore(kv outbound.KeyValueStore, logger *slog.Logger) *CartStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartStore{kv: kv, logger: logger}
}

// Load returns the persisted cart lines. A missing key or a value that no
// longer parses yields an empty cart and a nil error.
func (s *CartStore) Load(ctx context.Context) ([]cart.Line, error) {
	data, ok, err := s.kv.Get(ctx, cart.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var lines []cart.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		s.logger.Warn("persisted cart is corrupt, starting empty", "error", err)
		return nil, nil
	}
	return lines, nil
}

// Save serializes the lines under cart.StorageKey.
func (s *CartStore) Save(ctx context.Context, lines []cart.Line) error {
	if lines == nil {
		lines = []cart.Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.kv.Set(ctx, cart.StorageKey, data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// UserStore persists the session under account.StorageKey.
type UserStore struct {
	kv     outbound.KeyValueStore
	logger *slog.Logger
}

// NewUserStore creates a UserStore over the given key-value backend.
func NewUserStore(kv outbound.KeyValueStore, logger *slog.Logger) *UserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{kv: kv, logger: logger}
}

// Load returns the persisted session, or nil when absent or corrupt.
func (s *UserStore) Load(ctx context.Context) (*account.User, error) {
	data, ok, err := s.kv.Get(ctx, account.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var u account.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.logger.Warn("persisted session is corrupt, discarding", "error", err)
		return nil, nil
	}
	return &u, nil
}

// Save serializes the user under account.StorageKey.
func (s *UserStore) Save(ctx context.Context, u *account.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.kv.Set(ctx, account.StorageKey, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the persisted session.
func (s *UserStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, account.StorageKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Package account implements the placeholder sign-in session.
//
// There is no real authentication behind it: any non-empty email and
// password pair signs in, nothing password-like is ever stored or checked,
// and the session exists only to personalize the account pages.
package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// StorageKey is the key the session is persisted under.
const StorageKey = "user"

// ErrMissingCredentials is returned when the email or password is empty.
var ErrMissingCredentials = errors.New("email and password are required")

// User is the signed-in shopper. No credential material is kept.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Patch is a partial profile update; nil fields are left unchanged.
type Patch struct {
	Email *string `json:"email,omitempty"`
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// Store persists the session. Load returns (nil, nil) when no session is
// persisted or the persisted data is corrupt.
type Store interface {
	Load(ctx context.Context) (*User, error)
	Save(ctx context.Context, u *User) error
	Clear(ctx context.Context) error
}

// Service is the single app-scoped session.
type Service struct {
	mu     sync.Mutex
	store  Store
	logger *slog.Logger
	user   *User
}

// NewService builds the session service and restores any persisted session.
func NewService(ctx context.Context, store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{store: store, logger: logger}

	u, err := store.Load(ctx)
	if err != nil {
		logger.Warn("failed to load persisted session, starting signed out", "error", err)
		u = nil
	}
	s.user = u
	return s
}

// Login starts a session for the given email. The password is checked only
// for presence and immediately discarded. The display name defaults to the
// email's local part.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	return s.startSession(ctx, email, localPart(email))
}

// Signup behaves exactly like Login, with an optional explicit name.
// No account record is created anywhere.
func (s *Service) Signup(ctx context.Context, email, password, name string) (*User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if name == "" {
		name = localPart(email)
	}
	return s.startSession(ctx, email, name)
}

func (s *Service) startSession(ctx context.Context, email, name string) (*User, error) {
	u := &User{
		ID:    "user_" + uuid.New().String(),
		Email: email,
		Name:  name,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	s.persist(ctx)

	out := *u
	return &out, nil
}

// Logout discards the session. Signing out never fails.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear persisted session", "error", err)
	}
}

// Update merges a partial profile patch into the current session. Without
// a session it is silently a no-op.
func (s *Service) Update(ctx context.Context, p Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}
	if p.Email != nil {
		s.user.Email = *p.Email
	}
	if p.Name != nil {
		s.user.Name = *p.Name
	}
	if p.Phone != nil {
		s.user.Phone = *p.Phone
	}
	s.persist(ctx)
}

// Current returns a copy of the signed-in user, or nil when signed out.
func (s *Service) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	out := *s.user
	return &out
}

// LoggedIn reports whether a session exists.
func (s *Service) LoggedIn() bool {
	return s.Current() != nil
}

// persist saves the session best-effort. Callers hold s.mu.
func (s *Service) persist(ctx context.Context) {
	u := *s.user
	if err := s.store.Save(ctx, &u); err != nil {
		s.logger.Warn("failed to persist session", "error", err)
	}
}

// localPart returns everything before the first "@".
func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// Package session owns the client's identity state: which user is logged
// in, under which token, and whether that pair has been verified against
// the auth service since the process started.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/feliperosa-dev/storefront-api/client/gateway"
	"github.com/feliperosa-dev/storefront-api/client/storage"
	"github.com/feliperosa-dev/storefront-api/models"
)

// Key of the persisted session entry. Cart state lives under its own key;
// the two are never written together.
const storageKey = "session"

type Status int

const (
	// StatusUnresolved means no restore attempt has been made yet.
	StatusUnresolved Status = iota
	// StatusRestoring means a persisted session was found and is being
	// validated against the auth service.
	StatusRestoring
	// StatusAuthenticated means user and token are set and trusted.
	StatusAuthenticated
	// StatusAnonymous means nobody is logged in.
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusUnresolved:
		return "unresolved"
	case StatusRestoring:
		return "restoring"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// AuthClient is the slice of the auth service the session manager needs.
// *gateway.AuthGateway satisfies it; tests plug in fakes.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (models.User, string, error)
	Register(ctx context.Context, name, email, password, role string) (models.User, error)
	Validate(ctx context.Context, token string) (models.User, error)
}

type persistedSession struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Manager is the single source of truth for the current identity. All
// operations serialize on an internal mutex, so two concurrent logins
// cannot interleave; the one that finishes last wins.
type Manager struct {
	api   AuthClient
	store storage.Store

	mu     sync.Mutex
	status Status
	user   *models.User
	token  string
}

func NewManager(api AuthClient, store storage.Store) *Manager {
	return &Manager{
		api:    api,
		store:  store,
		status: StatusUnresolved,
	}
}

// Restore loads the persisted session, if any, and revalidates it against
// the auth service. Any failure, from a garbled entry to an expired token
// to a vanished user, quietly lands in Anonymous with the entry removed;
// restore never surfaces an error to the user.
func (m *Manager) Restore(ctx context.Context) {
	m.mu.Lock()

	raw, err := m.store.Get(storageKey)
	if err != nil || raw == nil {
		m.becomeAnonymousLocked()
		m.mu.Unlock()
		return
	}

	var saved persistedSession
	if err := json.Unmarshal(raw, &saved); err != nil || saved.Token == "" {
		m.store.Remove(storageKey)
		m.becomeAnonymousLocked()
		m.mu.Unlock()
		return
	}

	m.status = StatusRestoring
	m.mu.Unlock()

	// Validation runs outside the lock; the mutex only protects committed
	// state, not the network round-trip.
	user, err := m.api.Validate(ctx, saved.Token)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.store.Remove(storageKey)
		m.becomeAnonymousLocked()
		return
	}

	// Trust the server's answer over the cached copy.
	m.user = &user
	m.token = saved.Token
	m.status = StatusAuthenticated
	m.persistLocked()
}

// Login exchanges credentials for a session. On failure the committed
// state is untouched: no partial user, no partial token, nothing written
// to storage.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", gateway.ErrValidation)
	}

	user, token, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = &user
	m.token = token
	m.status = StatusAuthenticated
	m.persistLocked()
	return nil
}

// Register creates a credential. It deliberately does not log in: the
// caller follows up with an explicit Login.
func (m *Manager) Register(ctx context.Context, name, email, password, role string) error {
	if name == "" || email == "" || password == "" {
		return fmt.Errorf("%w: name, email and password are required", gateway.ErrValidation)
	}
	if !models.ValidRole(role) {
		return fmt.Errorf("%w: role must be %s or %s", gateway.ErrValidation, models.RoleSeller, models.RoleCustomer)
	}

	_, err := m.api.Register(ctx, name, email, password, role)
	return err
}

// Logout clears the in-memory session and the persisted entry. No network
// call, no failure modes, safe to call twice.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Remove(storageKey)
	m.becomeAnonymousLocked()
}

// User returns the current user when authenticated.
func (m *Manager) User() (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// Token returns the bearer token, or "" when anonymous.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status == StatusAuthenticated
}

// IsLoading reports whether a restore is still unresolved or in flight.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status == StatusUnresolved || m.status == StatusRestoring
}

func (m *Manager) becomeAnonymousLocked() {
	m.user = nil
	m.token = ""
	m.status = StatusAnonymous
}

// persistLocked writes the committed (token, user) pair. Storage failures
// are best-effort: the in-memory session stays valid either way.
func (m *Manager) persistLocked() {
	raw, err := json.Marshal(persistedSession{Token: m.token, User: *m.user})
	if err != nil {
		return
	}
	m.store.Set(storageKey, raw)
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/feliperosa-dev/storefront-api/client/gateway"
	"github.com/feliperosa-dev/storefront-api/client/storage"
	"github.com/feliperosa-dev/storefront-api/models"
)

// fakeAuth scripts the auth service per test.
type fakeAuth struct {
	loginUser    models.User
	loginToken   string
	loginErr     error
	validateUser models.User
	validateErr  error
	registerErr  error
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (models.User, string, error) {
	if f.loginErr != nil {
		return models.User{}, "", f.loginErr
	}
	return f.loginUser, f.loginToken, nil
}

func (f *fakeAuth) Register(ctx context.Context, name, email, password, role string) (models.User, error) {
	return models.User{Name: name, Email: email, Role: models.Role(role)}, f.registerErr
}

func (f *fakeAuth) Validate(ctx context.Context, token string) (models.User, error) {
	if f.validateErr != nil {
		return models.User{}, f.validateErr
	}
	return f.validateUser, nil
}

func maria() models.User {
	return models.User{ID: "2", Email: "maria@x.com", Name: "Maria", Role: models.RoleCustomer}
}

func seedSession(t *testing.T, store storage.Store, token string, user models.User) {
	t.Helper()
	raw, err := json.Marshal(persistedSession{Token: token, User: user})
	if err != nil {
		t.Fatal(err)
	}
	store.Set(storageKey, raw)
}

func TestRestoreNoPersistedSession(t *testing.T) {
	m := NewManager(&fakeAuth{}, storage.NewMemory())

	if m.Status() != StatusUnresolved || !m.IsLoading() {
		t.Fatalf("fresh manager should be unresolved, got %s", m.Status())
	}

	m.Restore(context.Background())

	if m.Status() != StatusAnonymous {
		t.Fatalf("expected anonymous, got %s", m.Status())
	}
	if m.IsLoading() {
		t.Error("isLoading should be false after restore")
	}
}

func TestRestoreValidSession(t *testing.T) {
	store := storage.NewMemory()
	seedSession(t, store, "tok-1", models.User{ID: "2", Email: "maria@x.com", Name: "Old Cached Name", Role: models.RoleCustomer})

	m := NewManager(&fakeAuth{validateUser: maria()}, store)
	m.Restore(context.Background())

	if !m.IsAuthenticated() {
		t.Fatalf("expected authenticated, got %s", m.Status())
	}
	user, ok := m.User()
	if !ok || user.Name != "Maria" {
		t.Errorf("restore must take the server's user, not the cached one: %+v", user)
	}
	if m.Token() != "tok-1" {
		t.Errorf("token lost on restore: %q", m.Token())
	}
}

func TestRestoreInvalidTokenEndsAnonymous(t *testing.T) {
	store := storage.NewMemory()
	seedSession(t, store, "tok-expired", maria())

	m := NewManager(&fakeAuth{validateErr: gateway.ErrUnauthorized}, store)
	m.Restore(context.Background())

	if m.Status() != StatusAnonymous || m.IsLoading() {
		t.Fatalf("expected anonymous with isLoading=false, got %s", m.Status())
	}
	if raw, _ := store.Get(storageKey); raw != nil {
		t.Error("persisted entry must be removed after failed validation")
	}
	if _, ok := m.User(); ok || m.Token() != "" {
		t.Error("user and token must be cleared together")
	}
}

func TestRestoreGarbledEntry(t *testing.T) {
	store := storage.NewMemory()
	store.Set(storageKey, []byte("{definitely not json"))

	m := NewManager(&fakeAuth{}, store)
	m.Restore(context.Background())

	if m.Status() != StatusAnonymous {
		t.Fatalf("garbled entry should fall back to anonymous, got %s", m.Status())
	}
	if raw, _ := store.Get(storageKey); raw != nil {
		t.Error("garbled entry should be deleted")
	}
}

func TestRestoreNetworkFailureEndsAnonymous(t *testing.T) {
	store := storage.NewMemory()
	seedSession(t, store, "tok-1", maria())

	m := NewManager(&fakeAuth{validateErr: errors.New("connection refused")}, store)
	m.Restore(context.Background())

	if m.Status() != StatusAnonymous {
		t.Fatalf("expected anonymous after network failure, got %s", m.Status())
	}
}

func TestLoginSuccessPersists(t *testing.T) {
	store := storage.NewMemory()
	m := NewManager(&fakeAuth{loginUser: maria(), loginToken: "tok-9"}, store)
	m.Restore(context.Background())

	if err := m.Login(context.Background(), "maria@x.com", "secret1"); err != nil {
		t.Fatal(err)
	}

	if !m.IsAuthenticated() || m.Token() != "tok-9" {
		t.Fatalf("expected authenticated with token, got %s / %q", m.Status(), m.Token())
	}

	raw, _ := store.Get(storageKey)
	if raw == nil {
		t.Fatal("login must persist the session entry")
	}
	var saved persistedSession
	if err := json.Unmarshal(raw, &saved); err != nil {
		t.Fatal(err)
	}
	if saved.Token != "tok-9" || saved.User.Email != "maria@x.com" {
		t.Errorf("persisted entry wrong: %+v", saved)
	}
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	store := storage.NewMemory()
	m := NewManager(&fakeAuth{loginErr: gateway.ErrInvalidCredentials}, store)
	m.Restore(context.Background())

	err := m.Login(context.Background(), "maria@x.com", "wrong")
	if !errors.Is(err, gateway.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if m.Status() != StatusAnonymous {
		t.Errorf("failed login must leave the session anonymous, got %s", m.Status())
	}
	if _, ok := m.User(); ok || m.Token() != "" {
		t.Error("no partial user/token may be written")
	}
	if raw, _ := store.Get(storageKey); raw != nil {
		t.Error("no persisted entry may be created on failure")
	}
}

func TestLoginMissingFields(t *testing.T) {
	m := NewManager(&fakeAuth{}, storage.NewMemory())

	err := m.Login(context.Background(), "", "secret")
	if !errors.Is(err, gateway.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLogoutClearsMemoryAndStorage(t *testing.T) {
	store := storage.NewMemory()
	m := NewManager(&fakeAuth{loginUser: maria(), loginToken: "tok-9"}, store)
	m.Restore(context.Background())
	if err := m.Login(context.Background(), "maria@x.com", "secret1"); err != nil {
		t.Fatal(err)
	}

	m.Logout()

	if m.Status() != StatusAnonymous {
		t.Fatalf("expected anonymous after logout, got %s", m.Status())
	}
	if _, ok := m.User(); ok || m.Token() != "" {
		t.Error("in-memory session must be cleared")
	}
	if raw, _ := store.Get(storageKey); raw != nil {
		t.Error("persisted entry must be removed")
	}

	// A fresh manager over the same storage restores to anonymous.
	fresh := NewManager(&fakeAuth{}, store)
	fresh.Restore(context.Background())
	if fresh.Status() != StatusAnonymous {
		t.Errorf("fresh restore after logout should be anonymous, got %s", fresh.Status())
	}

	// Logout is idempotent.
	m.Logout()
	if m.Status() != StatusAnonymous {
		t.Error("second logout changed state")
	}
}

func TestRegisterDoesNotChangeSession(t *testing.T) {
	store := storage.NewMemory()
	m := NewManager(&fakeAuth{}, store)
	m.Restore(context.Background())

	if err := m.Register(context.Background(), "Maria", "maria@x.com", "secret1", "CUSTOMER"); err != nil {
		t.Fatal(err)
	}

	if m.Status() != StatusAnonymous {
		t.Errorf("register must not transition the session, got %s", m.Status())
	}
	if raw, _ := store.Get(storageKey); raw != nil {
		t.Error("register must not persist a session")
	}
}

func TestRegisterRejectsBadRole(t *testing.T) {
	m := NewManager(&fakeAuth{}, storage.NewMemory())

	err := m.Register(context.Background(), "Maria", "maria@x.com", "secret1", "ADMIN")
	if !errors.Is(err, gateway.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad role, got %v", err)
	}
}

func TestRegisterSurfacesDuplicateEmail(t *testing.T) {
	m := NewManager(&fakeAuth{registerErr: gateway.ErrDuplicateEmail}, storage.NewMemory())

	err := m.Register(context.Background(), "Maria", "maria@x.com", "secret1", "CUSTOMER")
	if !errors.Is(err, gateway.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

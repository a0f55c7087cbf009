package auth

import (
	"testing"
	"time"

	"github.com/feliperosa-dev/storefront-api/models"
)

func testUser() models.User {
	return models.User{ID: "u-1", Email: "maria@x.com", Name: "Maria", Role: models.RoleCustomer}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatal(err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "maria@x.com" || claims.Role != models.RoleCustomer {
		t.Errorf("claims mangled: %+v", claims)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.Verify(token); err != ErrInvalidToken {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Hour).Issue(testUser())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewService("secret-b", time.Hour).Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestBearerClaims(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatal(err)
	}

	// With and without the Bearer prefix.
	for _, header := range []string{"Bearer " + token, token} {
		claims, err := BearerClaims(header, svc)
		if err != nil {
			t.Fatalf("BearerClaims(%q): %v", header, err)
		}
		if claims.UserID != "u-1" {
			t.Errorf("wrong claims for %q: %+v", header, claims)
		}
	}

	if _, err := BearerClaims("", svc); err != ErrInvalidToken {
		t.Errorf("empty header: expected ErrInvalidToken, got %v", err)
	}
}

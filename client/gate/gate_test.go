package gate

import (
	"testing"

	"github.com/feliperosa-dev/storefront-api/models"
)

type fakeSession struct {
	loading bool
	user    *models.User
}

func (f fakeSession) IsLoading() bool { return f.loading }

func (f fakeSession) User() (models.User, bool) {
	if f.user == nil {
		return models.User{}, false
	}
	return *f.user, true
}

func TestPendingWhileRestoring(t *testing.T) {
	result := Check(fakeSession{loading: true}, models.RoleSeller)
	if result.Decision != DecisionPending {
		t.Fatalf("a loading session must yield Pending, not %v", result.Decision)
	}
}

func TestAnonymousRedirectsToLogin(t *testing.T) {
	result := Check(fakeSession{}, models.RoleCustomer)
	if result.Decision != DecisionRedirectToLogin {
		t.Fatalf("expected RedirectToLogin, got %v", result.Decision)
	}
	if result.RedirectTo != PathLogin {
		t.Errorf("expected redirect to %s, got %s", PathLogin, result.RedirectTo)
	}
}

func TestWrongRoleRedirectsToOwnHome(t *testing.T) {
	customer := models.User{ID: "2", Role: models.RoleCustomer}
	result := Check(fakeSession{user: &customer}, models.RoleSeller)

	if result.Decision != DecisionRedirectToRoleHome {
		t.Fatalf("expected RedirectToRoleHome, got %v", result.Decision)
	}
	// The target is the user's own area, not the login page.
	if result.RedirectTo != PathStoreHome {
		t.Errorf("customer should land on %s, got %s", PathStoreHome, result.RedirectTo)
	}

	seller := models.User{ID: "1", Role: models.RoleSeller}
	result = Check(fakeSession{user: &seller}, models.RoleCustomer)
	if result.RedirectTo != PathSellerHome {
		t.Errorf("seller should land on %s, got %s", PathSellerHome, result.RedirectTo)
	}
}

func TestMatchingRoleAllows(t *testing.T) {
	seller := models.User{ID: "1", Role: models.RoleSeller}
	result := Check(fakeSession{user: &seller}, models.RoleSeller)
	if result.Decision != DecisionAllow {
		t.Fatalf("expected Allow, got %v", result.Decision)
	}
}

// Package gate turns session state plus a view's required role into a
// routing decision.
package gate

import "github.com/feliperosa-dev/storefront-api/models"

type Decision int

const (
	// DecisionPending: a restore is still in flight; show a loading
	// indicator instead of redirecting a user who is about to be
	// authenticated.
	DecisionPending Decision = iota
	// DecisionAllow: render the protected content.
	DecisionAllow
	// DecisionRedirectToLogin: nobody is logged in.
	DecisionRedirectToLogin
	// DecisionRedirectToRoleHome: logged in, wrong role; send the user to
	// their own area instead.
	DecisionRedirectToRoleHome
)

const (
	PathLogin      = "/login"
	PathSellerHome = "/seller"
	PathStoreHome  = "/store"
)

// Session is the read-only slice of the session manager the gate needs.
type Session interface {
	IsLoading() bool
	User() (models.User, bool)
}

type Result struct {
	Decision   Decision
	RedirectTo string // set for the two redirect decisions
}

// Check decides what to do with a navigation to a view requiring the
// given role.
func Check(s Session, required models.Role) Result {
	if s.IsLoading() {
		return Result{Decision: DecisionPending}
	}

	user, ok := s.User()
	if !ok {
		return Result{Decision: DecisionRedirectToLogin, RedirectTo: PathLogin}
	}

	if user.Role != required {
		return Result{Decision: DecisionRedirectToRoleHome, RedirectTo: RoleHome(user.Role)}
	}

	return Result{Decision: DecisionAllow}
}

// RoleHome maps a role to its landing area.
func RoleHome(role models.Role) string {
	if role == models.RoleSeller {
		return PathSellerHome
	}
	return PathStoreHome
}

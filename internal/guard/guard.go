package guard

import (
	"slices"

	"github.com/fleetory/console/internal/models"
	"github.com/fleetory/console/internal/session"
)

// Navigation paths. The console keeps the browser dashboard's path scheme so
// redirect decisions read the same in both clients.
const (
	LoginPath     = "/"
	DashboardPath = "/dashboard"
	AdminPath     = "/admin"
)

// Landing is the one role → landing path table. Both the guard's wrong-role
// redirect and post-login navigation consume it, so the mapping cannot drift
// between call sites.
func Landing(role models.Role) string {
	switch role {
	case models.RoleSuperAdmin:
		return AdminPath
	default:
		return DashboardPath
	}
}

// Decision is the guard's verdict for one navigation
type Decision struct {
	Allowed    bool
	RedirectTo string // set iff not allowed
}

// Guard gates protected views by session presence and role.
// It holds no state of its own: every navigation re-reads the store.
type Guard struct {
	store session.Store
}

func New(store session.Store) *Guard {
	return &Guard{store: store}
}

// Resolve decides whether a view with the given allowed roles may render.
// The authentication check precedes the role check; an empty role set means
// any authenticated role.
func (g *Guard) Resolve(allowedRoles []models.Role) Decision {
	if !g.store.IsAuthenticated() {
		return Decision{RedirectTo: LoginPath}
	}

	if len(allowedRoles) == 0 {
		return Decision{Allowed: true}
	}

	role := g.store.Role()
	if slices.Contains(allowedRoles, role) {
		return Decision{Allowed: true}
	}

	return Decision{RedirectTo: Landing(role)}
}

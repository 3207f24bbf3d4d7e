package services

import (
	"context"

	"github.com/Syed-Zahaab-Hussain/e-ticketing/core"
)

// LoginPath is where unauthenticated callers are sent.
const LoginPath = "/login"

// DashboardPath returns the dashboard route for a role. Unknown roles land
// on the root path.
func DashboardPath(role core.Role) string {
	switch role {
	case core.RoleAdmin:
		return "/admin/dashboard"
	case core.RoleBusOperator:
		return "/operator/dashboard"
	case core.RolePassenger:
		return "/passenger/dashboard"
	default:
		return "/"
	}
}

// GuardDecision is the outcome of a route-guard check. When Allowed is
// false, RedirectTo names where the caller should be sent instead.
type GuardDecision struct {
	Allowed    bool
	RedirectTo string
	User       *core.User
}

// Guard gates access to a role-specific view. It consumes CurrentUser, so a
// stale session pointer (deleted or deactivated record) counts as
// unauthenticated. An empty allowed list admits any authenticated user.
func Guard(ctx context.Context, identity core.IdentityProvider, allowed ...core.Role) GuardDecision {
	result := identity.CurrentUser(ctx)
	if !result.Success || result.User == nil {
		return GuardDecision{RedirectTo: LoginPath}
	}

	user := result.User
	if len(allowed) == 0 {
		return GuardDecision{Allowed: true, User: user}
	}

	for _, role := range allowed {
		if user.Role == role {
			return GuardDecision{Allowed: true, User: user}
		}
	}

	// Authenticated but wrong role: send them to their own dashboard.
	return GuardDecision{RedirectTo: DashboardPath(user.Role), User: user}
}

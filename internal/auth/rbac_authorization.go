package auth

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/rbac-service/internal/transport"
)

// RBACAuthorization builds the authorization guards of the decision gate.
// Every guard checks authentication first: a caller never learns which
// permission it lacks without already being a confirmed subject.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

// RequirePermission guards a route with a permission predicate. Superusers
// bypass the predicate; the bypass lives here at the call site, not inside
// permission resolution.
func (ra *RBACAuthorization) RequirePermission(permission string) func(http.Handler) http.Handler {
	return ra.require(
		func(subject transport.Subject) bool {
			return subject.Superuser() || subject.HasPermission(permission)
		},
		fmt.Sprintf("you need the '%s' permission to do this", permission),
		"required_permission", permission,
	)
}

// RequireRole guards a route with an exact, case-sensitive role match.
func (ra *RBACAuthorization) RequireRole(role string) func(http.Handler) http.Handler {
	return ra.require(
		func(subject transport.Subject) bool {
			return subject.Superuser() || subject.HasRole(role)
		},
		fmt.Sprintf("you need the '%s' role to do this", role),
		"required_role", role,
	)
}

// RequireAnyPermission passes when the subject holds at least one of the given
// permissions.
func (ra *RBACAuthorization) RequireAnyPermission(permissions ...string) func(http.Handler) http.Handler {
	return ra.require(
		func(subject transport.Subject) bool {
			if subject.Superuser() {
				return true
			}
			for _, permission := range permissions {
				if subject.HasPermission(permission) {
					return true
				}
			}
			return false
		},
		"insufficient permissions",
		"required_permissions", fmt.Sprintf("%v", permissions),
	)
}

// RequireSuperuser guards routes reserved for superuser accounts.
func (ra *RBACAuthorization) RequireSuperuser() func(http.Handler) http.Handler {
	return ra.require(
		func(subject transport.Subject) bool { return subject.Superuser() },
		"superuser access required",
		"required", "superuser",
	)
}

func (ra *RBACAuthorization) require(allowed func(transport.Subject) bool, denyMessage string, logFields ...any) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := transport.UserFromContext(r.Context())
			if !ok || subject == nil {
				ra.logger.Warn("authorization check failed: no authenticated subject in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !allowed(subject) {
				fields := append([]any{"user_id", subject.GetID()}, logFields...)
				ra.logger.WarnContext(r.Context(), "access denied", fields...)
				http.Error(w, "Forbidden: "+denyMessage, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/transport"
)

// RoleGate applies the two authorization policies of the service: admin-only
// and self-or-admin. Gates fail fast before the wrapped operation runs; a
// missing principal is itself a denial.
type RoleGate struct {
	base   *transport.BaseHandler
	logger *slog.Logger
}

func NewRoleGate(logger *slog.Logger) *RoleGate {
	return &RoleGate{
		base:   transport.NewBaseHandler(logger),
		logger: logger,
	}
}

// RequireAdmin gates a route group on the admin role.
func (g *RoleGate) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok {
				g.base.WriteError(w, internal.ErrPermissionDenied)
				return
			}

			if !principal.IsAdmin() {
				g.logger.Warn("access denied: admin role required",
					"user_id", principal.UserID,
					"role", principal.Role,
					"path", r.URL.Path)
				g.base.WriteError(w, internal.ErrPermissionDenied.WithMessage("admin access required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CanAccess reports whether the principal may act on the given user's
// resources: the subject themselves, or any admin.
func CanAccess(principal internal.Principal, userID string) bool {
	return principal.IsAdmin() || principal.UserID == userID
}

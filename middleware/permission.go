package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/deccan0963-netizen/Tasks/logging"
	"github.com/deccan0963-netizen/Tasks/services"
)

// RequirePermission gates a route on the privilege service's per-role action
// list. The RoleId header comes from the auth middleware; an unknown role or
// an empty permission set denies access.
func RequirePermission(directory services.Directory, primaryAction, secondaryAction string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roleID, err := strconv.Atoi(r.Header.Get("RoleId"))
		if err != nil {
			http.Error(w, "Missing role in request", http.StatusForbidden)
			return
		}

		for _, p := range directory.RolePermissions(r.Context(), roleID) {
			if strings.EqualFold(p.PrimaryActionName, primaryAction) &&
				(secondaryAction == "" || strings.EqualFold(p.SecondaryActionName, secondaryAction)) {
				next.ServeHTTP(w, r)
				return
			}
		}

		logging.Logger.Warnf("Event ID: PERMISSION_DENIED, Description: Role %d lacks %s/%s", roleID, primaryAction, secondaryAction)
		http.Error(w, "Access forbidden", http.StatusForbidden)
	})
}

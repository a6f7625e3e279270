package http

import (
	"net/http"

	"github.com/bestemiy/inkstudio"
)

// AdminHeader carries the shared admin secret on mutating requests.
const AdminHeader = "x-admin-password"

// RequireAdmin returns middleware enforcing the admin secret on every
// request it wraps. Read routes stay outside this middleware and are
// public.
func RequireAdmin(guard *inkstudio.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := guard.Authorize(r.Header.Get(AdminHeader)); err != nil {
				WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

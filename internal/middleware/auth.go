// Package middleware wires the authentication resolver and authorization
// policy into the router. The policy core is shared; only the failure
// rendering differs between the JSON API and the view surface.
package middleware

import (
	"net/http"

	"github.com/vaughan-dsouza/postboard/internal/auth"
	"github.com/vaughan-dsouza/postboard/internal/utils"
)

// Resolve runs the authentication resolver exactly once per request and
// stores the result (possibly nil) in the request context. Every
// downstream check reads that one resolution.
func Resolve(rv *auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := rv.Resolve(r)
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAuthAPI gates API routes: anonymous callers get a 401 JSON body.
func RequireAuthAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.RequireAuthenticated(auth.FromContext(r.Context())) != auth.Allow {
			utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdminAPI gates admin API routes with a 403 JSON body. It assumes
// RequireAuthAPI already ran, but still answers 401 for anonymous callers
// so the routes stay safe if composed alone.
func RequireAdminAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch auth.RequireAdmin(auth.FromContext(r.Context())) {
		case auth.Allow:
			next.ServeHTTP(w, r)
		case auth.DenyUnauthenticated:
			utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
		default:
			utils.JSONError(w, http.StatusForbidden, "Forbidden")
		}
	})
}

// RequireAuthView gates browser routes: anonymous visitors are sent to
// the login page.
func RequireAuthView(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.RequireAuthenticated(auth.FromContext(r.Context())) != auth.Allow {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdminView gates the admin pages. A logged-in non-admin gets a
// plain 403, not a redirect: "not logged in" and "not allowed" must stay
// distinguishable in the browser.
func RequireAdminView(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch auth.RequireAdmin(auth.FromContext(r.Context())) {
		case auth.Allow:
			next.ServeHTTP(w, r)
		case auth.DenyUnauthenticated:
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			http.Error(w, "Access denied: admin only", http.StatusForbidden)
		}
	})
}

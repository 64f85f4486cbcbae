// Package session binds the signed token to the request/response cycle
// through a cookie. Absence of the cookie is the anonymous signal, never
// an error.
package session

import "net/http"

// CookieName is shared with the frontend; changing it logs everyone out.
const CookieName = "token"

// maxAge matches the token lifetime: 7 days, in seconds.
const maxAge = 7 * 24 * 60 * 60

func Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear instructs the client to drop the cookie immediately. The token
// itself stays valid until expiry; there is no server-side revocation.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func Extract(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

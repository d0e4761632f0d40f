package middleware

import (
	"net/http"
	"strings"
)

// CaseInsensitiveMiddleware converts URL paths to lowercase so that
// /API/Records and /api/records reach the same route
func CaseInsensitiveMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = strings.ToLower(r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

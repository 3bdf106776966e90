package kit

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// MetricsAuth guards the metrics endpoint with a static bearer token.
// An empty token keeps the endpoint closed.
func MetricsAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || bearerToken(r) != token {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(authz, bearerPrefix)
}

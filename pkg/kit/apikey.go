package kit

import (
	"crypto/subtle"
	"net/http"
)

const APIKeyHeader = "x-api-key"

// APIKeyAuth rejects any request whose x-api-key header does not match
// the shared secret. An empty secret locks the routes out entirely.
func APIKeyAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				WriteError(w, r, http.StatusUnauthorized, "unauthorized", nil)
				return
			}

			key := r.Header.Get(APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
				WriteError(w, r, http.StatusUnauthorized, "invalid api key", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIPRateLimiter_BlocksOverLimit(t *testing.T) {
	l := NewIPRateLimiter(3, 60)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, do("10.0.0.1:1234"))
	}
	require.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1234"))

	// other clients are unaffected
	require.Equal(t, http.StatusOK, do("10.0.0.2:1234"))
}

func TestIPRateLimiter_UsesForwardedFor(t *testing.T) {
	l := NewIPRateLimiter(1, 60)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(xff string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
		req.RemoteAddr = "127.0.0.1:9999"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, do("1.2.3.4"))
	require.Equal(t, http.StatusTooManyRequests, do("1.2.3.4, 5.6.7.8"))
	require.Equal(t, http.StatusOK, do("9.9.9.9"))
}

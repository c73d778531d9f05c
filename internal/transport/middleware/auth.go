package middleware

import (
	"crypto/subtle"
	"net/http"
)

// SyncTokenHeader carries the shared secret of the trigger API.
const SyncTokenHeader = "X-Sync-Token"

// SyncToken rejects requests whose X-Sync-Token does not match token.
// An empty token disables the check.
func SyncToken(token string) Middleware {
	want := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(want) > 0 && subtle.ConstantTimeCompare([]byte(r.Header.Get(SyncTokenHeader)), want) != 1 {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

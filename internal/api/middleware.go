/**
 * @description
 * This file contains custom middleware for the HTTP router. The service is an
 * internal system: callers authenticate with a shared internal API key in the
 * X-Internal-API-Key header. Authorization beyond that (account ownership,
 * business roles) is enforced per command inside the engine.
 *
 * @dependencies
 * - crypto/subtle, net/http, strings: Standard Go libraries.
 */

package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// InternalKeyMiddleware rejects requests whose X-Internal-API-Key header does
// not match the configured key. An empty configured key disables the check;
// the bootstrap refuses to start in that state, so this only happens in
// tests.
func InternalKeyMiddleware(key string) func(http.Handler) http.Handler {
	expected := strings.TrimSpace(key)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expected != "" {
				provided := strings.TrimSpace(r.Header.Get("X-Internal-API-Key"))
				if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					w.Write([]byte(`{"error":"invalid internal api key"}`))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

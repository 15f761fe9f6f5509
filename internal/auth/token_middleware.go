package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// UnauthorizedMessage is the error text returned for any rejected request.
const UnauthorizedMessage = "Unauthorized request"

// BearerTokenMiddleware admits requests that present a single static token
// as "Authorization: Bearer <token>".
type BearerTokenMiddleware struct {
	token []byte
}

// NewBearerTokenMiddleware creates a new BearerTokenMiddleware. An empty token
// rejects every request.
func NewBearerTokenMiddleware(token string) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{token: []byte(token)}
}

// Authenticate is an http.Handler middleware that checks the Bearer token
// before anything else runs. Rejected requests never reach next.
func (m *BearerTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.valid(r.Header.Get("Authorization")) {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *BearerTokenMiddleware) valid(header string) bool {
	if len(m.token) == 0 || !strings.HasPrefix(header, "Bearer ") {
		return false
	}
	presented := []byte(strings.TrimPrefix(header, "Bearer "))
	return subtle.ConstantTimeCompare(presented, m.token) == 1
}

// writeUnauthorized writes a 401 JSON response with {"error": "Unauthorized request"}.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": UnauthorizedMessage})
}

package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes a JSON-encoded error response with the correct Content-Type.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeUnauthorized writes a 401 with a Bearer challenge (RFC 6750). A
// non-empty bearerErr is reported as the challenge's error code.
func writeUnauthorized(w http.ResponseWriter, bearerErr, msg string) {
	challenge := `Bearer realm="cp-portal"`
	if bearerErr != "" {
		challenge += `, error="` + bearerErr + `"`
	}
	w.Header().Set("WWW-Authenticate", challenge)
	writeJSONError(w, http.StatusUnauthorized, msg)
}

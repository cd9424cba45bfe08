// internal/handler/respond.go
package handler

import (
	"encoding/json"
	"net/http"
)

// The storefront frontend predates this service and expects bare JSON
// bodies ({"message": ...}, plain arrays), so handlers write those
// shapes directly instead of a wrapped envelope.
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

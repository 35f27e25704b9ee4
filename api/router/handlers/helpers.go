package handlers

import (
	"encoding/json"
	"net/http"

	"citetool/logger"
	"citetool/models"
)

// writeJSONError writes a JSON-encoded error body with the given status.
func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(models.ErrorResponse{Message: message}); err != nil {
		logger.Error("writeJSONError: Error encoding error response: %v", err)
	}
}

// writeJSON writes a JSON-encoded response body with the given status.
func writeJSON(w http.ResponseWriter, payload interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("writeJSON: Error encoding response: %v", err)
	}
}

// Package response provides helpers for sending consistent JSON
// responses and the standardized error body shape.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the error body returned by every endpoint. Detail is
// optional and carries additional context (usually err.Error()).
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// RespondJSON sends data as JSON with the given status code. A nil data
// sends only the status code. Encoding errors are logged, not surfaced;
// the status line is already on the wire by then.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError sends a structured error response.
func RespondError(w http.ResponseWriter, status int, message string, detail string) {
	RespondJSON(w, status, ErrorResponse{
		Error:  message,
		Detail: detail,
	})
}

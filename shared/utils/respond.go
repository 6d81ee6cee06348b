package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// RespondWithReport sends a report payload wrapped in the success envelope.
// The payload's own fields stay at the top level next to "success".
func RespondWithReport(w http.ResponseWriter, statusCode int, payload interface{}) {
	body := map[string]interface{}{"success": true}

	raw, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal report payload", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		// Non-object payloads go under "data"
		body["data"] = payload
	} else {
		for k, v := range fields {
			body[k] = v
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode success response", "error", err)
	}
}

// RespondWithError sends the failure envelope
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"success": false,
		"error":   message,
	}

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

// PanicRecoveryMiddleware converts handler panics into a 500 envelope
func PanicRecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("handler panic recovered", "error", err, "path", r.URL.Path, "stack", string(debug.Stack()))
				RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

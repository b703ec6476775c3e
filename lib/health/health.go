package health

import (
	"encoding/json"
	"net/http"
	"time"

	"log/slog"
)

// Health represents the health check response structure.
type Health struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Check returns an HTTP handler reporting that the service is up. The backend
// keeps no state and has no database, so there is nothing deeper to probe.
func Check() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, Health{
			Status:    "ok",
			Message:   "Film Robo Backend läuft!",
			Timestamp: time.Now(),
		}, http.StatusOK)
	}
}

// writeHealth writes the health check response to the HTTP response writer.
func writeHealth(w http.ResponseWriter, health Health, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Error("Failed to encode health response", slog.Any("error", err))
	}
}

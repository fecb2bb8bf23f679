package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/splice-sistemas/splice-be/internal/monitoring"
)

// StatusHandler exposes host resource usage for the admin status page.
type StatusHandler struct{}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// Host returns a point-in-time sample of CPU, memory and disk usage.
func (h *StatusHandler) Host(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(monitoring.SampleHost())
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/splice-sistemas/splice-be/internal/alerts"
)

// AlertHandler serves the derived alert feed. Alerts are recomputed on
// request from current data, never stored.
type AlertHandler struct {
	engine *alerts.Engine
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(engine *alerts.Engine) *AlertHandler {
	return &AlertHandler{engine: engine}
}

// List returns every active alert, most severe first.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.engine.Compute(r.Context())
	log.Debug().Int("count", len(items)).Msg("Computed alert feed")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"alerts": items, "total": len(items)})
}

// Summary returns per-severity and per-category counts for the dashboard.
func (h *AlertHandler) Summary(w http.ResponseWriter, r *http.Request) {
	items := h.engine.Compute(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(alerts.Summarize(items))
}

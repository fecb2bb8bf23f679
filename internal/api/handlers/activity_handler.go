package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/splice-sistemas/splice-be/internal/services"
)

// ActivityHandler serves the recent-activity feed backed by the audit log.
type ActivityHandler struct {
	auditSvc services.AuditServiceProvider
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(auditSvc services.AuditServiceProvider) *ActivityHandler {
	return &ActivityHandler{auditSvc: auditSvc}
}

// Recent returns the latest audit entries, newest first.
func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.auditSvc.RecentActivity(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch recent activity")
		http.Error(w, "Falha ao buscar atividades", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"activity": entries})
}

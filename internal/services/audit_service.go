package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/splice-sistemas/splice-be/internal/models"
	ws "github.com/splice-sistemas/splice-be/internal/websocket"
)

// AuditServiceProvider defines the interface for the audit trail.
type AuditServiceProvider interface {
	Record(ctx context.Context, actorID *string, action, entityType string, entityID *string, level, message string)
	RecentActivity(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// AuditService appends to the audit_log and pushes each entry to connected
// dashboards through the websocket hub.
type AuditService struct {
	db  *sqlx.DB
	hub *ws.Hub
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *sqlx.DB, hub *ws.Hub) *AuditService {
	return &AuditService{db: db, hub: hub}
}

// Record writes one audit entry. Audit failures are logged, never
// propagated: bookkeeping must not break the operation it describes.
func (s *AuditService) Record(ctx context.Context, actorID *string, action, entityType string, entityID *string, level, message string) {
	entry := models.AuditEntry{
		ID:         uuid.New().String(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Message:    message,
		Level:      level,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, actor_id, action, entity_type, entity_id, message, level)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.ActorID, entry.Action, entry.EntityType, entry.EntityID, entry.Message, entry.Level)
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("failed to record audit entry")
		return
	}

	if s.hub != nil {
		if payload, err := json.Marshal(ws.Message{Action: ws.ActionActivity, Payload: entry}); err == nil {
			s.hub.Broadcast <- payload
		}
	}
}

// RecentActivity retrieves the most recent audit entries.
func (s *AuditService) RecentActivity(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	entries := []models.AuditEntry{}
	err := s.db.SelectContext(ctx, &entries,
		`SELECT id, actor_id, action, entity_type, entity_id, message, level, created_at
		 FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	return entries, err
}

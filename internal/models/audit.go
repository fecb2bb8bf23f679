package models

import "time"

// AuditEntry is one row of the audit_log: who did what to which record.
type AuditEntry struct {
	ID         string    `json:"id" db:"id"`
	ActorID    *string   `json:"actorId" db:"actor_id"`
	Action     string    `json:"action" db:"action"` // e.g. "contracts.create", "import.run"
	EntityType string    `json:"entityType" db:"entity_type"`
	EntityID   *string   `json:"entityId" db:"entity_id"`
	Message    string    `json:"message" db:"message"`
	Level      string    `json:"level" db:"level"` // info | warn | error
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

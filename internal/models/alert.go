package models

import "time"

// Alert severities, ordered from most to least urgent.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// SeverityRank orders severities for sorting; lower ranks first.
var SeverityRank = map[string]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

// SystemAlert is a derived alert. Alerts are recomputed from the current
// data on every fetch and never persisted; ID is deterministic from
// category + entity so recomputation yields stable identities.
type SystemAlert struct {
	ID          string    `json:"id"`
	Severity    string    `json:"severity"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Suggestion  string    `json:"suggestion"`
	DetectedAt  time.Time `json:"detectedAt"`
	EntityID    string    `json:"entityId"`
	EntityType  string    `json:"entityType"`
	// Reserved lifecycle fields; no mutation path sets them today.
	Resolved bool `json:"resolved"`
	Ignored  bool `json:"ignored"`
}

// AlertSummary aggregates a computed alert list for dashboard widgets.
type AlertSummary struct {
	Total      int                      `json:"total"`
	BySeverity map[string]int           `json:"bySeverity"`
	ByCategory map[string][]SystemAlert `json:"byCategory"`
}

package websocket

// Actions carried over the dashboard feed.
const (
	ActionActivity    = "activity"
	ActionAlertDigest = "alert_digest"
)

// Message is the envelope for events pushed to connected dashboards: audit
// activity as it happens and the daily alert-digest summary.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

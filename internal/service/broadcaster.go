package service

// Progress event types pushed to connected directors.
const (
	EventSessionCreated   = "session_created"
	EventInstanceAnswered = "instance_answered"
	EventSessionCompleted = "session_completed"
	EventSessionSubmitted = "session_submitted"
)

// ProgressEvent is the payload of every progress event
type ProgressEvent struct {
	SessionID  string `json:"session_id"`
	TeamKey    string `json:"team_key,omitempty"`
	TeamName   string `json:"team_name,omitempty"`
	InstanceID string `json:"instance_id,omitempty"`
	Kind       string `json:"kind,omitempty"`
	Cursor     int    `json:"cursor"`
	Total      int    `json:"total"`
	Status     string `json:"status"`
}

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	Broadcast(eventType string, event ProgressEvent)
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, ProgressEvent) {}

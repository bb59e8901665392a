package events

import (
	"time"
)

// EventType identifies event payload kinds on the bus.
type EventType string

const (
	BlockImpressionRecorded EventType = "block.impression_recorded"
)

// BaseEvent carries the fields shared by every event.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // "server", "analytics", ...
	Version   string    `json:"version"`
}

// BlockImpressionEvent is published after every successful block
// render. The analytics consumer aggregates these into daily counters.
type BlockImpressionEvent struct {
	BaseEvent
	InstanceID       string    `json:"instance_id"`
	UniversityDomain string    `json:"university_domain"`
	PostCount        int       `json:"post_count"`
	RenderedAt       time.Time `json:"rendered_at"`
}

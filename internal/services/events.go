package services

import (
	"time"

	"github.com/yukikurage/ocean-hazard-api/internal/models"
)

type EventType string

const (
	EventReportCreated EventType = "report_created"
	EventReportUpdated EventType = "report_updated"
	EventTeamUpdated   EventType = "team_updated"
)

// FeedEvent is pushed to live dashboard subscribers.
type FeedEvent struct {
	Type      EventType   `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Broadcaster fans events out to connected clients. Implementations must not
// block the caller on slow subscribers for long.
type Broadcaster interface {
	Broadcast(event FeedEvent)
}

// ReportNotifier receives newly created base reports, e.g. to forward them
// to an external workflow. Delivery is best effort.
type ReportNotifier interface {
	NotifyReportCreated(report models.HazardReport)
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(FeedEvent) {}

type nopNotifier struct{}

func (nopNotifier) NotifyReportCreated(models.HazardReport) {}

func newEvent(t EventType, data interface{}, at time.Time) FeedEvent {
	return FeedEvent{Type: t, Timestamp: at.UnixMilli(), Data: data}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

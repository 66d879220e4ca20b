package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/ocean-hazard-api/internal/config"
	"github.com/yukikurage/ocean-hazard-api/internal/database"
	"github.com/yukikurage/ocean-hazard-api/internal/models"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, "error")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// recordingBroadcaster keeps every event for assertions.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []FeedEvent
}

func (r *recordingBroadcaster) Broadcast(event FeedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingBroadcaster) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// blockingBroadcaster parks every Broadcast until release is closed.
type blockingBroadcaster struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingBroadcaster) Broadcast(FeedEvent) {
	select {
	case b.entered <- struct{}{}:
	default:
	}
	<-b.release
}

type recordingNotifier struct {
	mu      sync.Mutex
	reports []models.HazardReport
}

func (r *recordingNotifier) NotifyReportCreated(report models.HazardReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
}

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(step)
		return now
	}
}

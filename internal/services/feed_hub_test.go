package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/ocean-hazard-api/internal/models"
	"github.com/yukikurage/ocean-hazard-api/internal/repository"
)

func newHubServer(t *testing.T, hub *FeedHub) string {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		id := hub.Register(conn)
		defer hub.Unregister(id)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitForSubscribers(t *testing.T, hub *FeedHub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Count() == n }, time.Second, 10*time.Millisecond)
}

func TestFeedHub_BroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewFeedHub()
	url := newHubServer(t, hub)

	var clients []*websocket.Conn
	for i := 0; i < 2; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer conn.Close()
		clients = append(clients, conn)
	}
	waitForSubscribers(t, hub, 2)

	hub.Broadcast(FeedEvent{Type: EventReportCreated, Timestamp: 42, Data: map[string]string{"id": "r-1"}})

	for _, conn := range clients {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var got struct {
			Type      EventType         `json:"type"`
			Timestamp int64             `json:"timestamp"`
			Data      map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, EventReportCreated, got.Type)
		assert.Equal(t, int64(42), got.Timestamp)
		assert.Equal(t, "r-1", got.Data["id"])
	}
}

func TestFeedHub_UnregisterOnDisconnect(t *testing.T) {
	hub := NewFeedHub()
	url := newHubServer(t, hub)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	waitForSubscribers(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForSubscribers(t, hub, 0)

	// broadcasting with no subscribers is a no-op
	hub.Broadcast(FeedEvent{Type: EventTeamUpdated})
}

func TestFeedHub_Close(t *testing.T) {
	hub := NewFeedHub()
	url := newHubServer(t, hub)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	waitForSubscribers(t, hub, 1)

	hub.Close()
	assert.Equal(t, 0, hub.Count())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
}

func TestFeedHub_StalledSubscriberDoesNotBlockBroadcast(t *testing.T) {
	hub := NewFeedHub()
	url := newHubServer(t, hub)

	stalled, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer stalled.Close()
	waitForSubscribers(t, hub, 1)

	// large frames fill the socket buffers quickly since the client never reads
	payload := map[string]string{"notes": strings.Repeat("x", 256<<10)}

	start := time.Now()
	for i := 0; i < 200; i++ {
		hub.Broadcast(FeedEvent{Type: EventReportUpdated, Data: payload})
	}
	assert.Less(t, time.Since(start), 2*time.Second)

	waitForSubscribers(t, hub, 0)
}

func TestFeedHub_SlowSubscriberDoesNotDelayTriage(t *testing.T) {
	db := newTestDB(t)
	reportRepo := repository.NewHazardReportRepository(db)
	hub := NewFeedHub()
	url := newHubServer(t, hub)

	reports := NewReportService(reportRepo, nil, nil)
	triage := NewTriageService(reportRepo, repository.NewAdminReportRepository(db), repository.NewTeamMemberRepository(db), hub)

	base, err := reports.CreateHazardReport(CreateReportInput{Description: "debris", Latitude: 13.05, Longitude: 80.28}, "u1")
	require.NoError(t, err)
	_, err = triage.Reconcile()
	require.NoError(t, err)

	stalled, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer stalled.Close()
	waitForSubscribers(t, hub, 1)

	notes := strings.Repeat("n", 256<<10)
	start := time.Now()
	for i := 0; i < 100; i++ {
		_, err := triage.SetNotes(base.ID, notes)
		require.NoError(t, err)
	}
	_, err = triage.SetStatus(base.ID, models.ReportStatusResolved)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	feedWriteTimeout = 5 * time.Second
	feedSendBuffer   = 64
)

// feedSubscriber owns one dashboard connection. Only its writer goroutine
// writes data frames to conn.
type feedSubscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// FeedHub fans triage events out to connected dashboard websockets.
// Broadcast only enqueues, so callers never wait on a socket.
type FeedHub struct {
	mu          sync.RWMutex
	subscribers map[string]*feedSubscriber
	closed      bool
}

// NewFeedHub creates a new FeedHub
func NewFeedHub() *FeedHub {
	return &FeedHub{
		subscribers: make(map[string]*feedSubscriber),
	}
}

// Register adds a connection and returns the ID to unregister it with.
func (h *FeedHub) Register(conn *websocket.Conn) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New().String()
	if h.closed {
		conn.Close()
		return id
	}

	sub := &feedSubscriber{
		conn: conn,
		send: make(chan []byte, feedSendBuffer),
	}
	h.subscribers[id] = sub
	go h.writeLoop(id, sub)

	log.Info().Str("conn_id", id).Int("subscribers", len(h.subscribers)).Msg("Feed subscriber registered")
	return id
}

// Unregister closes and removes a connection.
func (h *FeedHub) Unregister(id string) {
	if sub := h.remove(id); sub != nil {
		sub.conn.Close()
		log.Info().Str("conn_id", id).Msg("Feed subscriber unregistered")
	}
}

// Count returns the number of connected subscribers.
func (h *FeedHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Broadcast queues event for every subscriber. A subscriber whose queue is
// full is too slow to keep up and gets disconnected.
func (h *FeedHub) Broadcast(event FeedEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to marshal feed event")
		return
	}

	var slow []string
	h.mu.RLock()
	for id, sub := range h.subscribers {
		select {
		case sub.send <- data:
		default:
			slow = append(slow, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range slow {
		log.Warn().Str("conn_id", id).Msg("Feed subscriber too slow, disconnecting")
		h.Unregister(id)
	}
}

// Close disconnects every subscriber and rejects new ones.
func (h *FeedHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, sub := range h.subscribers {
		_ = sub.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		close(sub.send)
		sub.conn.Close()
		delete(h.subscribers, id)
	}
}

// remove deletes the subscriber and closes its queue. It returns nil when id
// was already gone, so the queue is closed exactly once.
func (h *FeedHub) remove(id string) *feedSubscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.subscribers[id]
	if !ok {
		return nil
	}
	delete(h.subscribers, id)
	close(sub.send)
	return sub
}

func (h *FeedHub) writeLoop(id string, sub *feedSubscriber) {
	defer sub.conn.Close()

	for data := range sub.send {
		_ = sub.conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Str("conn_id", id).Msg("Failed to deliver feed event")
			h.remove(id)
			return
		}
	}
}

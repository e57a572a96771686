package realtime

import (
	"sync"
)

// Hub tracks the dashboard sessions attached to the dev chat server. Every
// session sees every conversation (the dashboard is lender-wide), so fan-out
// is a broadcast across sessions rather than per-room routing.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Connection // connection id -> connection
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*Connection)}
}

// Attach registers a connection and starts its write loop.
func (h *Hub) Attach(conn *Connection) {
	h.mu.Lock()
	h.sessions[conn.ID] = conn
	h.mu.Unlock()

	conn.Start()
}

// Detach removes a connection if it is still tracked.
func (h *Hub) Detach(conn *Connection) {
	h.mu.Lock()
	delete(h.sessions, conn.ID)
	h.mu.Unlock()
}

// Broadcast writes payload to every attached session except the excluded
// connection id (empty string excludes nothing). It reports how many sessions
// accepted the payload.
func (h *Hub) Broadcast(payload []byte, excludeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for id, conn := range h.sessions {
		if excludeID != "" && id == excludeID {
			continue
		}
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// Notify delivers payload to one session.
func (h *Hub) Notify(connectionID string, payload []byte) bool {
	h.mu.RLock()
	conn := h.sessions[connectionID]
	h.mu.RUnlock()
	if conn == nil {
		return false
	}
	return conn.Send(payload) == nil
}

// Close terminates every tracked connection and clears hub state.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Connection, 0, len(h.sessions))
	for _, conn := range h.sessions {
		sessions = append(sessions, conn)
	}
	h.sessions = make(map[string]*Connection)
	h.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "hub shutdown")
	}
}

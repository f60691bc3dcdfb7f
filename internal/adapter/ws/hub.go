// Package ws implements the WebSocket adapter for real-time progress
// streaming. Clients subscribe to a session id before receiving its events.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"
)

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// subscribeRequest is the payload of a client "subscribe" message.
type subscribeRequest struct {
	SessionID string `json:"session_id"`
}

// conn wraps a single WebSocket connection and its session subscriptions.
type conn struct {
	ws     *websocket.Conn
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]struct{}
}

func (c *conn) subscribed(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.sessions[sessionID]
	return ok
}

// Hub manages all active WebSocket connections and routes session events to
// their subscribers.
type Hub struct {
	mu    sync.RWMutex
	conns map[*conn]struct{}
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[*conn]struct{}),
	}
}

// HandleWS upgrades the request to a WebSocket connection and processes
// subscribe messages until the client disconnects. The handler blocks for
// the lifetime of the connection; the request context is canceled once the
// handler returns, so the read loop must not outlive it.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS handled by middleware
	})
	if err != nil {
		slog.Error("websocket accept failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	c := &conn{ws: ws, cancel: cancel, sessions: make(map[string]struct{})}

	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()

	slog.Info("websocket connected", "remote", r.RemoteAddr)

	h.readLoop(ctx, c)
}

// readLoop consumes client messages, handling subscribe requests and
// detecting disconnects.
func (h *Hub) readLoop(ctx context.Context, c *conn) {
	defer func() {
		h.remove(c)
		_ = c.ws.Close(websocket.StatusNormalClosure, "")
	}()
	for {
		_, data, err := c.ws.Read(ctx)
		if err != nil {
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type != "subscribe" {
			continue
		}

		var sub subscribeRequest
		if err := json.Unmarshal(msg.Payload, &sub); err != nil || sub.SessionID == "" {
			continue
		}

		c.mu.Lock()
		c.sessions[sub.SessionID] = struct{}{}
		c.mu.Unlock()

		slog.Info("websocket subscribed", "session_id", sub.SessionID)
		h.send(ctx, c, Message{Type: "subscribed", SessionID: sub.SessionID})
	}
}

// BroadcastEvent marshals a typed event and delivers it to every connection
// subscribed to the session. Implements broadcast.Broadcaster.
func (h *Hub) BroadcastEvent(ctx context.Context, sessionID, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	msg := Message{
		Type:      eventType,
		SessionID: sessionID,
		Payload:   json.RawMessage(data),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.conns {
		if !c.subscribed(sessionID) {
			continue
		}
		h.send(ctx, c, msg)
	}
}

func (h *Hub) send(ctx context.Context, c *conn, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal failed", "error", err)
		return
	}
	if err := c.ws.Write(ctx, websocket.MessageText, data); err != nil {
		slog.Debug("websocket write failed", "error", err)
		go h.remove(c)
	}
}

// ConnectionCount returns the number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) remove(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c]; ok {
		c.cancel()
		delete(h.conns, c)
		slog.Info("websocket disconnected")
	}
}

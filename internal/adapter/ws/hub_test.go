package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
)

func dialHub(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		cancel()
		srv.Close()
		t.Fatalf("dial: %v", err)
	}
	return conn, func() {
		cancel()
		_ = conn.Close(websocket.StatusNormalClosure, "")
		srv.Close()
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return msg
}

func subscribe(t *testing.T, conn *websocket.Conn, sessionID string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload, _ := json.Marshal(map[string]string{"session_id": sessionID})
	data, _ := json.Marshal(Message{Type: "subscribe", Payload: payload})
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("write subscribe: %v", err)
	}

	ack := readMessage(t, conn)
	if ack.Type != "subscribed" || ack.SessionID != sessionID {
		t.Fatalf("unexpected ack %+v", ack)
	}
}

func TestSubscribeAndReceiveEvent(t *testing.T) {
	hub := NewHub()
	conn, done := dialHub(t, hub)
	defer done()

	subscribe(t, conn, "s1")

	hub.BroadcastEvent(context.Background(), "s1", "phase_started", map[string]any{
		"phase": 1, "phase_name": "Initialization",
	})

	msg := readMessage(t, conn)
	if msg.Type != "phase_started" || msg.SessionID != "s1" {
		t.Fatalf("unexpected message %+v", msg)
	}
	var payload struct {
		Phase     int    `json:"phase"`
		PhaseName string `json:"phase_name"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.Phase != 1 || payload.PhaseName != "Initialization" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestEventsScopedToSubscribedSession(t *testing.T) {
	hub := NewHub()
	conn, done := dialHub(t, hub)
	defer done()

	subscribe(t, conn, "mine")

	// An event for another session must not reach this connection; the next
	// frame received is the event for the subscribed session.
	hub.BroadcastEvent(context.Background(), "other", "phase_started", map[string]int{"phase": 1})
	hub.BroadcastEvent(context.Background(), "mine", "phase_completed", map[string]int{"phase": 1})

	msg := readMessage(t, conn)
	if msg.SessionID != "mine" || msg.Type != "phase_completed" {
		t.Fatalf("received event for wrong session: %+v", msg)
	}
}

func TestConnectionCount(t *testing.T) {
	hub := NewHub()
	if hub.ConnectionCount() != 0 {
		t.Fatal("expected 0 connections")
	}

	conn, done := dialHub(t, hub)
	defer done()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectionCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("connection never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	subscribe(t, conn, "s1")
	if hub.ConnectionCount() != 1 {
		t.Fatalf("expected 1 connection, got %d", hub.ConnectionCount())
	}
}

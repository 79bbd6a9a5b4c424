package websocket

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

// mockClient creates a Client with a send channel but no real connection.
func mockClient(hub *Hub, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   nil,
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub, "alice")
	c2 := mockClient(hub, "alice")

	hub.Register(c1)
	hub.Register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.Unregister(c1)
	hub.Unregister(c2)
	// Should not panic
	hub.Unregister(c2)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestBroadcastScopedToUser(t *testing.T) {
	hub := NewHub(slog.Default())

	mine := mockClient(hub, "alice")
	other := mockClient(hub, "bob")
	hub.Register(mine)
	hub.Register(other)

	hub.Broadcast("alice", NewMessage("task", "completed", "t-1", "r-1"))

	select {
	case data := <-mine.send:
		var got Message
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Type != "task_completed" {
			t.Errorf("type = %s, want task_completed", got.Type)
		}
		if got.ID != "t-1" || got.RoomID != "r-1" {
			t.Errorf("ids = %s/%s, want t-1/r-1", got.ID, got.RoomID)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
	}

	select {
	case <-other.send:
		t.Fatal("other user received a scoped broadcast")
	default:
	}

	hub.Unregister(mine)
	hub.Unregister(other)
}

func TestBroadcastFullBuffer(t *testing.T) {
	hub := NewHub(slog.Default())

	c := mockClient(hub, "alice")
	hub.Register(c)

	for i := 0; i < sendBufferSize; i++ {
		hub.Broadcast("alice", NewMessage("task", "updated", "t", "r"))
	}

	// This one should drop, not panic or block
	hub.Broadcast("alice", NewMessage("task", "updated", "dropped", "r"))

	count := 0
	for {
		select {
		case <-c.send:
			count++
		default:
			if count != sendBufferSize {
				t.Errorf("expected %d messages, got %d", sendBufferSize, count)
			}
			hub.Unregister(c)
			return
		}
	}
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage("room", "deleted", "r-9", "")
	if msg.Type != "room_deleted" {
		t.Errorf("type = %s, want room_deleted", msg.Type)
	}
	if msg.Entity != "room" || msg.Action != "deleted" || msg.ID != "r-9" {
		t.Errorf("unexpected message %+v", msg)
	}
}

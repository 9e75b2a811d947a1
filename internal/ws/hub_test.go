package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// mockClient creates a Client with a send channel but no real connection.
func mockClient(hub *Hub, sessionID int64) *Client {
	return &Client{
		hub:       hub,
		conn:      nil,
		sessionID: sessionID,
		send:      make(chan []byte, sendBufferSize),
	}
}

func testHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}

func TestRegisterUnregister(t *testing.T) {
	hub := testHub()

	c1 := mockClient(hub, 1)
	c2 := mockClient(hub, 2)

	hub.Register(c1)
	hub.Register(c2)
	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("client count = %d, want 2", got)
	}

	hub.Unregister(c1)
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("client count = %d, want 1", got)
	}

	hub.Unregister(c2)
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("client count = %d, want 0", got)
	}
}

func TestDoubleUnregister(t *testing.T) {
	hub := testHub()
	c := mockClient(hub, 1)
	hub.Register(c)
	hub.Unregister(c)
	// Should not panic
	hub.Unregister(c)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("client count = %d, want 0", got)
	}
}

func TestBroadcastSessionScoped(t *testing.T) {
	hub := testHub()

	// Two tabs of session 1, one tab of session 2.
	tabA := mockClient(hub, 1)
	tabB := mockClient(hub, 1)
	other := mockClient(hub, 2)
	hub.Register(tabA)
	hub.Register(tabB)
	hub.Register(other)

	hub.BroadcastSession(1, Message{Type: TypeStatsUpdated})

	for _, c := range []*Client{tabA, tabB} {
		select {
		case data := <-c.send:
			var got Message
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != TypeStatsUpdated {
				t.Errorf("type = %q, want %q", got.Type, TypeStatsUpdated)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for message")
		}
	}

	select {
	case <-other.send:
		t.Error("other session received the broadcast")
	default:
	}
}

func TestBroadcastEmptyHub(t *testing.T) {
	hub := testHub()
	// Should not panic
	hub.BroadcastSession(1, Message{Type: TypeSubscriptionUpdated})
}

func TestBroadcastFullBuffer(t *testing.T) {
	hub := testHub()

	c := mockClient(hub, 1)
	hub.Register(c)

	for i := 0; i < sendBufferSize; i++ {
		hub.BroadcastSession(1, Message{Type: TypeStatsUpdated})
	}

	// This one is dropped, not blocked on.
	hub.BroadcastSession(1, Message{Type: TypeStatsUpdated})

	count := 0
	for {
		select {
		case <-c.send:
			count++
		default:
			if count != sendBufferSize {
				t.Errorf("buffered %d messages, want %d", count, sendBufferSize)
			}
			hub.Unregister(c)
			return
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	hub := testHub()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(sessionID int64) {
			defer wg.Done()
			c := mockClient(hub, sessionID)
			hub.Register(c)
			hub.BroadcastSession(sessionID, Message{Type: TypeStatsUpdated})
			for {
				select {
				case <-c.send:
				default:
					hub.Unregister(c)
					return
				}
			}
		}(int64(i % 4))
	}

	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("client count = %d, want 0", got)
	}
}

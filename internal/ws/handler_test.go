package ws

import (
	"testing"
)

func newTestClient(session string) *Client {
	return &Client{sessionToken: session, send: make(chan []byte, 4)}
}

func TestHubSessionMembership(t *testing.T) {
	hub := NewHub()
	a := newTestClient("s1")
	b := newTestClient("s1")
	c := newTestClient("s2")

	hub.add(a)
	hub.add(b)
	hub.add(c)

	hub.BroadcastToSession("s1", []byte("hello"))

	if len(a.send) != 1 || len(b.send) != 1 {
		t.Errorf("Both s1 clients should receive the broadcast: a=%d b=%d", len(a.send), len(b.send))
	}
	if len(c.send) != 0 {
		t.Error("s2 client should not receive s1 broadcasts")
	}

	hub.remove(a)
	hub.BroadcastToSession("s1", []byte("again"))
	if len(a.send) != 1 {
		t.Error("Removed client should not receive further broadcasts")
	}
	if len(b.send) != 2 {
		t.Errorf("Remaining client should receive the second broadcast, got %d", len(b.send))
	}
}

func TestHubEmptySessionCleanedUp(t *testing.T) {
	hub := NewHub()
	a := newTestClient("s1")
	hub.add(a)
	hub.remove(a)

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if _, exists := hub.sessions["s1"]; exists {
		t.Error("Empty session room should be removed from the hub")
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	a := &Client{sessionToken: "s1", send: make(chan []byte, 1)}
	hub.add(a)

	hub.BroadcastToSession("s1", []byte("one"))
	hub.BroadcastToSession("s1", []byte("two")) // buffer full, must not block

	if len(a.send) != 1 {
		t.Errorf("Expected exactly one buffered message, got %d", len(a.send))
	}
}

package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case data := <-c.Send:
		return data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

func TestHub_BroadcastReachesOnlyThatTournament(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	watcher := &Client{TournamentID: "cup-2026", Send: make(chan []byte, 4)}
	other := &Client{TournamentID: "cup-2025", Send: make(chan []byte, 4)}
	hub.Register(watcher)
	hub.Register(other)

	hub.BroadcastToTournament("cup-2026", []byte(`{"type":"match_updated"}`))

	require.JSONEq(t, `{"type":"match_updated"}`, string(recv(t, watcher)))
	select {
	case data := <-other.Send:
		t.Fatalf("client of another tournament received %q", data)
	default:
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := &Client{TournamentID: "cup-2026", Send: make(chan []byte, 4)}
	hub.Register(c)
	hub.Unregister(c)

	select {
	case _, open := <-c.Send:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := &Client{TournamentID: "cup-2026", Send: make(chan []byte)} // nobody draining
	healthy := &Client{TournamentID: "cup-2026", Send: make(chan []byte, 4)}
	hub.Register(slow)
	hub.Register(healthy)

	hub.BroadcastToTournament("cup-2026", []byte("one"))
	require.Equal(t, "one", string(recv(t, healthy)))

	// The slow client's channel is closed rather than stalling the hub.
	select {
	case _, open := <-slow.Send:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("slow client was not dropped")
	}

	// Later broadcasts still reach the healthy client.
	hub.BroadcastToTournament("cup-2026", []byte("two"))
	require.Equal(t, "two", string(recv(t, healthy)))
}

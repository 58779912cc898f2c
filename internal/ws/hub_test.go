package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveOrFail(t *testing.T, client *Client) []byte {
	t.Helper()
	select {
	case data := <-client.Send:
		return data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a message")
		return nil
	}
}

func waitClosed(t *testing.T, client *Client) {
	t.Helper()
	select {
	case _, ok := <-client.Send:
		require.False(t, ok, "expected Send to be closed")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Send to close")
	}
}

func TestHubBroadcastReachesAllRoomMembers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient("session-a")
	b := newTestClient("session-b")
	hub.Register <- a
	hub.Register <- b

	hub.JoinRoom("42", a)
	hub.JoinRoom("42", b)

	hub.Broadcast <- &RoomMessage{RoomID: "42", Data: []byte("hello")}

	assert.Equal(t, []byte("hello"), receiveOrFail(t, a))
	assert.Equal(t, []byte("hello"), receiveOrFail(t, b))
}

func TestHubBroadcastScopedToRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient("session-a")
	b := newTestClient("session-b")
	hub.Register <- a
	hub.Register <- b

	hub.JoinRoom("42", a)
	hub.JoinRoom("43", b)

	hub.Broadcast <- &RoomMessage{RoomID: "42", Data: []byte("hello")}
	hub.Broadcast <- &RoomMessage{RoomID: "43", Data: []byte("other")}

	assert.Equal(t, []byte("hello"), receiveOrFail(t, a))
	// The first thing b sees is its own room's traffic, never room 42's.
	assert.Equal(t, []byte("other"), receiveOrFail(t, b))
}

func TestHubDisconnectedSessionGetsNothing(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient("session-a")
	b := newTestClient("session-b")
	hub.Register <- a
	hub.Register <- b

	hub.JoinRoom("42", a)
	hub.JoinRoom("42", b)

	hub.Unregister <- b
	waitClosed(t, b)

	hub.Broadcast <- &RoomMessage{RoomID: "42", Data: []byte("after disconnect")}

	assert.Equal(t, []byte("after disconnect"), receiveOrFail(t, a))
	assert.Equal(t, 1, hub.RoomSize("42"))
}

func TestHubBroadcastEmptyRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// No members joined; nothing to deliver, nothing to block on.
	hub.Broadcast <- &RoomMessage{RoomID: "nowhere", Data: []byte("void")}

	a := newTestClient("session-a")
	hub.Register <- a
	hub.JoinRoom("42", a)
	hub.Broadcast <- &RoomMessage{RoomID: "42", Data: []byte("hello")}
	assert.Equal(t, []byte("hello"), receiveOrFail(t, a))
}

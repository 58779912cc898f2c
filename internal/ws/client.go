package ws

import (
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"
	"wanderers_backend/internal/chat"
	"wanderers_backend/models"

	"github.com/gofiber/contrib/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096 // 4KB
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan []byte

	// Opaque per-connection identifier.
	SessionID string

	// Message persistence.
	Store *chat.Store

	// Guards Send against the hub tearing the client down while the read
	// goroutine is still running.
	mu     sync.Mutex
	closed bool
}

// trySend queues a payload for the write pump without blocking. Safe to call
// after the hub has dropped the client; the payload is then discarded.
func (c *Client) trySend(payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- payload:
	default:
	}
}

// closeSend marks the client dropped and closes its outbound channel.
// Called by the hub goroutine only.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// Event is the envelope for everything a client sends over the socket.
// Room and user ids travel as strings, matching the browser client.
type Event struct {
	Type    string `json:"type"` // 'joinRoom', 'sendMessage'
	RoomID  string `json:"room_id,omitempty"`
	UserID  string `json:"user_id,omitempty"`
	Message string `json:"message,omitempty"`
}

// ReceiveMessageEvent carries a persisted chat message out to room members.
type ReceiveMessageEvent struct {
	Type    string              `json:"type"` // 'receiveMessage'
	Message *models.ChatMessage `json:"message"`
}

// ErrorEvent is echoed to a sender whose message could not be delivered.
type ErrorEvent struct {
	Type    string `json:"type"` // 'error'
	Message string `json:"message"`
}

// ReadPump pumps messages from the websocket connection to the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued chat messages to the current websocket message.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(message []byte) {
	var event Event
	if err := json.Unmarshal(message, &event); err != nil {
		log.Printf("Error unmarshalling message: %v", err)
		return
	}

	switch event.Type {
	case "joinRoom":
		if event.RoomID == "" {
			return
		}
		c.Hub.JoinRoom(event.RoomID, c)

	case "sendMessage":
		c.processSendMessage(&event)
	}
}

// processSendMessage persists the message and, only once it is durably
// stored, fans it out to every session in the room (sender included). On
// failure nothing is broadcast and the sender alone gets an error event.
func (c *Client) processSendMessage(event *Event) {
	roomID, err := strconv.ParseUint(event.RoomID, 10, 32)
	if err != nil {
		log.Printf("Session %s sent a non-numeric room id %q", c.SessionID, event.RoomID)
		c.sendError("invalid room id")
		return
	}

	userID, err := strconv.ParseUint(event.UserID, 10, 32)
	if err != nil {
		log.Printf("Session %s sent a non-numeric user id %q", c.SessionID, event.UserID)
		c.sendError("invalid user id")
		return
	}

	message, err := c.Store.Append(uint(roomID), uint(userID), event.Message)
	if err != nil {
		log.Printf("Error saving message for room %s: %v", event.RoomID, err)
		c.sendError("message could not be saved")
		return
	}

	payload, err := json.Marshal(ReceiveMessageEvent{
		Type:    "receiveMessage",
		Message: message,
	})
	if err != nil {
		log.Printf("Error marshalling message %d: %v", message.ID, err)
		return
	}

	c.Hub.Broadcast <- &RoomMessage{RoomID: event.RoomID, Data: payload}
}

func (c *Client) sendError(reason string) {
	payload, _ := json.Marshal(ErrorEvent{Type: "error", Message: reason})
	c.trySend(payload)
}

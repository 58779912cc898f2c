package ws

import (
	"log"
)

// RoomMessage is an outbound payload addressed to every session joined to a
// room.
type RoomMessage struct {
	RoomID string
	Data   []byte
}

// Hub maintains the set of active clients and fans messages out to the
// sessions joined to a room.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Outbound messages addressed to a room.
	Broadcast chan *RoomMessage

	// Room membership. Fan-out targets always come from here.
	registry *Registry
}

func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan *RoomMessage, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		registry:   NewRegistry(),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Printf("Session %s connected. Total connections: %d", client.SessionID, len(h.clients))

		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.dropClient(client)
				log.Printf("Session %s disconnected. Total connections: %d", client.SessionID, len(h.clients))
			}

		case message := <-h.Broadcast:
			for _, client := range h.registry.Members(message.RoomID) {
				select {
				case client.Send <- message.Data:
				default:
					// Slow consumer, drop the connection.
					h.dropClient(client)
				}
			}
		}
	}
}

func (h *Hub) dropClient(client *Client) {
	h.registry.Leave(client)
	delete(h.clients, client)
	client.closeSend()
}

// JoinRoom moves the client's session into roomID, leaving any previously
// joined room.
func (h *Hub) JoinRoom(roomID string, client *Client) {
	h.registry.Join(roomID, client)
	log.Printf("Session %s joined room %s (%d members)", client.SessionID, roomID, h.registry.Count(roomID))
}

// RoomSize reports how many sessions are currently joined to roomID.
func (h *Hub) RoomSize(roomID string) int {
	return h.registry.Count(roomID)
}

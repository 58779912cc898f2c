package handlers

import (
	"log"
	"wanderers_backend/internal/chat"
	"wanderers_backend/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ChatHandler struct {
	Hub   *ws.Hub
	Store *chat.Store
	Auth  RoomAuthorizer
}

func NewChatHandler(hub *ws.Hub, store *chat.Store, auth RoomAuthorizer) *ChatHandler {
	return &ChatHandler{
		Hub:   hub,
		Store: store,
		Auth:  auth,
	}
}

// WebSocketUpgradeMiddleware ensures the client is trying to upgrade to WebSocket
func (h *ChatHandler) WebSocketUpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler returns the websocket handler function
func (h *ChatHandler) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		client := &ws.Client{
			Hub:       h.Hub,
			Conn:      c,
			Send:      make(chan []byte, 256),
			SessionID: uuid.NewString(),
			Store:     h.Store,
		}

		client.Hub.Register <- client

		// Start Pumps
		go client.WritePump()
		client.ReadPump()
	})
}

// GetChatMessages returns the full persisted history for an itinerary's chat
// room. The realtime gateway only pushes messages created after the client
// connects, so a loading page fetches everything older through here.
func (h *ChatHandler) GetChatMessages(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	itineraryID, err := c.ParamsInt("itineraryId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid itinerary ID"})
	}

	allowed, err := h.Auth.IsOwnerOrCollaborator(userID, uint(itineraryID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	if !allowed {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "You are not allowed to view the chat messages",
		})
	}

	messages, err := h.Store.ListByRoom(uint(itineraryID))
	if err != nil {
		log.Printf("Error fetching chat messages for itinerary %d: %v", itineraryID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
	}

	// An unknown room and an empty one both come back as an empty array.
	return c.JSON(messages)
}

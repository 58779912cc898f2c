package main

import (
	"log"
	"os"
	"wanderers_backend/config"
	"wanderers_backend/handlers"
	"wanderers_backend/internal/chat"
	"wanderers_backend/internal/ws"
	"wanderers_backend/middleware"
	"wanderers_backend/utils"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.LoadConfig()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if os.Getenv("DB_RESET") == "true" {
		if err := config.ResetAndMigrate(db); err != nil {
			log.Fatal("Failed to reset database:", err)
		}
	} else {
		if err := config.Migrate(db); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "Wanderers Backend",
		ServerHeader: "Wanderers Backend Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		},
	})

	middleware.SetupMiddleware(app)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	// Realtime gateway
	hub := ws.NewHub()
	go hub.Run()

	store := chat.NewStore(db, cfg.ChatIncludeInactive)

	authHandler := handlers.NewAuthHandler(db, cfg.JWTSecret, cfg.JWTExpiration)
	userHandler := handlers.NewUserHandler(db)
	itineraryHandler := handlers.NewItineraryHandler(db)
	activityHandler := handlers.NewActivityHandler(db, itineraryHandler)
	chatHandler := handlers.NewChatHandler(hub, store, itineraryHandler)

	// Public routes
	auth := app.Group("/api/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Protected routes
	api := app.Group("/api", utils.AuthMiddleware(cfg.JWTSecret))

	api.Get("/chat/:itineraryId", chatHandler.GetChatMessages)

	api.Get("/users/search", userHandler.SearchUsers)

	api.Post("/itinerary", itineraryHandler.CreateItinerary)
	api.Get("/itinerary", itineraryHandler.GetMyItineraries)
	api.Get("/itinerary/collaborated", itineraryHandler.GetCollaboratedItineraries)
	api.Get("/itinerary/:itineraryId", itineraryHandler.GetItinerary)
	api.Put("/itinerary/:itineraryId", itineraryHandler.UpdateItinerary)
	api.Delete("/itinerary/:itineraryId", itineraryHandler.DeleteItinerary)
	api.Put("/itinerary/:itineraryId/restore", itineraryHandler.RestoreItinerary)
	api.Post("/itinerary/:itineraryId/collaborators", itineraryHandler.AddCollaborator)
	api.Delete("/itinerary/:itineraryId/collaborators/:userId", itineraryHandler.RemoveCollaborator)

	api.Post("/activity", activityHandler.CreateActivity)
	api.Get("/activity/itinerary/:itineraryId", activityHandler.GetActivities)
	api.Put("/activity/:activityId", activityHandler.UpdateActivity)
	api.Delete("/activity/:activityId", activityHandler.DeleteActivity)

	// Websocket endpoint for live chat
	app.Use("/ws", chatHandler.WebSocketUpgradeMiddleware)
	app.Get("/ws/chat", chatHandler.Handler())

	middleware.SetupErrorHandler(app)

	log.Printf("🚀 Server starting on host %s in port %s mode", cfg.HOST, cfg.AppPort)

	if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package config

import (
	"log"
	"time"
	"wanderers_backend/models"
	"wanderers_backend/utils"

	"gorm.io/gorm"
)

func SeedUsers(db *gorm.DB) {
	log.Println("🌱 Seeding users...")

	password, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Username: "user1",
			Email:    "user1@example.com",
			Password: password,
		},
		{
			Username: "user2",
			Email:    "user2@example.com",
			Password: password,
		},
	}

	for _, user := range users {
		var existingUser models.User
		if err := db.Where("email = ?", user.Email).First(&existingUser).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&user).Error; err != nil {
					log.Printf("Failed to seed user %s: %v", user.Username, err)
				} else {
					log.Printf("User seeded: %s (ID: %d)", user.Username, user.ID)
				}
			}
		} else {
			log.Printf("User already exists: %s", user.Username)
		}
	}

	log.Println("✅ Seeding complete.")
}

func SeedItineraries(db *gorm.DB) {
	log.Println("🌱 Seeding itineraries...")

	var owner, collaborator models.User
	if err := db.Where("email = ?", "user1@example.com").First(&owner).Error; err != nil {
		log.Printf("Seed owner not found, skipping itinerary seed: %v", err)
		return
	}
	if err := db.Where("email = ?", "user2@example.com").First(&collaborator).Error; err != nil {
		log.Printf("Seed collaborator not found, skipping itinerary seed: %v", err)
		return
	}

	var existing models.Itinerary
	if err := db.Where("title = ? AND owner_id = ?", "Tokyo Trip", owner.ID).First(&existing).Error; err == nil {
		log.Println("Itinerary already exists: Tokyo Trip")
		return
	}

	itinerary := models.Itinerary{
		Title:      "Tokyo Trip",
		Location:   "Tokyo, Japan",
		Visibility: models.VisibilityPrivate,
		StartDate:  time.Now().AddDate(0, 1, 0),
		EndDate:    time.Now().AddDate(0, 1, 7),
		OwnerID:    owner.ID,
		Active:     true,
	}

	if err := db.Create(&itinerary).Error; err != nil {
		log.Printf("Failed to seed itinerary: %v", err)
		return
	}

	if err := db.Model(&itinerary).Association("Collaborators").Append(&collaborator); err != nil {
		log.Printf("Failed to attach seed collaborator: %v", err)
	}

	log.Printf("Itinerary seeded: %s (ID: %d)", itinerary.Title, itinerary.ID)
	log.Println("✅ Seeding complete.")
}

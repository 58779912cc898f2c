package models

import (
	"time"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Login information
	Username string `gorm:"unique;not null;size:50" json:"username"`
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Profile
	ImageURL string `json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Itineraries this user was invited to collaborate on
	CollaboratedItineraries []Itinerary `gorm:"many2many:itinerary_collaborators;" json:"-"`
}

package models

import (
	"time"
)

// Itinerary visibility values
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type Itinerary struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Location string `gorm:"size:255;not null" json:"location"`

	Visibility string    `gorm:"default:'public';size:20" json:"visibility"` // 'public' or 'private'
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`

	OwnerID uint `gorm:"index;not null" json:"owner_id"`

	// Soft delete flag. Itineraries are deactivated, never removed.
	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner         User       `gorm:"foreignKey:OwnerID" json:"-"`
	Collaborators []User     `gorm:"many2many:itinerary_collaborators;" json:"collaborators,omitempty"`
	Activities    []Activity `gorm:"foreignKey:ItineraryID" json:"activities,omitempty"`
}

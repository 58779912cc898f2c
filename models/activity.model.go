package models

import (
	"time"
)

// Expense split values
const (
	SplitEqual = "equal"
	SplitSelf  = "self"
)

type Activity struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	ItineraryID uint `gorm:"index;not null" json:"itinerary_id"`

	Expense  float64 `gorm:"default:0" json:"expense"`
	Split    string  `gorm:"default:'equal';size:20" json:"split"` // 'equal' or 'self'
	Sequence int     `gorm:"not null" json:"sequence"`             // position within the itinerary day plan

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

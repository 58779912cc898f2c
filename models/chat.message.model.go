package models

import (
	"time"
)

// ChatMessage is one message in an itinerary's chat room. Messages are
// immutable once created except for the Active flag (soft delete).
type ChatMessage struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	ItineraryID     uint `gorm:"index;not null" json:"itinerary_id"`       // the room this message belongs to
	ChatMessageByID uint `gorm:"index;not null" json:"chat_message_by_id"` // the sending user

	ChatMessage string `gorm:"type:text;not null" json:"chat_message"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`

	// Author username, resolved at read time rather than stored redundantly.
	ChatMessageBy MessageAuthor `gorm:"foreignKey:ChatMessageByID" json:"chat_message_by"`
}

// MessageAuthor is a read-only projection of the users table carrying just
// what chat payloads expose about the sender.
type MessageAuthor struct {
	ID       uint   `json:"-"`
	Username string `json:"username"`
}

func (MessageAuthor) TableName() string {
	return "users"
}

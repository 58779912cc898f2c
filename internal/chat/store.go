package chat

import (
	"errors"
	"wanderers_backend/models"

	"gorm.io/gorm"
)

var (
	// ErrInvalidAuthor is returned when the author id does not match a user.
	ErrInvalidAuthor = errors.New("chat: author does not exist")

	// ErrInvalidRoom is returned when the room id does not match an itinerary.
	ErrInvalidRoom = errors.New("chat: itinerary does not exist")
)

// Store appends and retrieves chat messages for itinerary rooms. Messages are
// append-only; "deleting" one only flips its Active flag.
type Store struct {
	db *gorm.DB

	// includeInactive controls whether ListByRoom returns soft-deleted
	// messages. On by default to match the behavior clients expect.
	includeInactive bool
}

func NewStore(db *gorm.DB, includeInactive bool) *Store {
	return &Store{db: db, includeInactive: includeInactive}
}

// Append persists a new message and returns it with the author's username
// resolved. The author and room must both exist; nothing is written otherwise.
func (s *Store) Append(roomID, authorID uint, body string) (*models.ChatMessage, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", authorID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrInvalidAuthor
	}

	if err := s.db.Model(&models.Itinerary{}).Where("id = ?", roomID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrInvalidRoom
	}

	message := models.ChatMessage{
		ItineraryID:     roomID,
		ChatMessageByID: authorID,
		ChatMessage:     body,
		Active:          true,
	}

	if err := s.db.Omit("ChatMessageBy").Create(&message).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("ChatMessageBy").First(&message, message.ID).Error; err != nil {
		return nil, err
	}

	return &message, nil
}

// ListByRoom returns the room's messages in creation order, each with the
// author's username resolved.
func (s *Store) ListByRoom(roomID uint) ([]models.ChatMessage, error) {
	query := s.db.Preload("ChatMessageBy").
		Where("itinerary_id = ?", roomID).
		Order("created_at ASC, id ASC")

	if !s.includeInactive {
		query = query.Where("active = ?", true)
	}

	messages := []models.ChatMessage{}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}

	return messages, nil
}

// Deactivate soft-deletes a message. The record stays in place with its
// Active flag cleared.
func (s *Store) Deactivate(messageID uint) error {
	result := s.db.Model(&models.ChatMessage{}).
		Where("id = ?", messageID).
		Update("active", false)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

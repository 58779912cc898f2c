package handlers

import (
	"errors"
	"time"
	"wanderers_backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RoomAuthorizer decides whether a user may access an itinerary's chat room.
type RoomAuthorizer interface {
	IsOwnerOrCollaborator(userID, itineraryID uint) (bool, error)
}

type ItineraryHandler struct {
	DB *gorm.DB
}

func NewItineraryHandler(db *gorm.DB) *ItineraryHandler {
	return &ItineraryHandler{DB: db}
}

// IsOwnerOrCollaborator reports whether the user owns the itinerary or is a
// registered collaborator on it. Unknown itineraries are simply unauthorized.
func (h *ItineraryHandler) IsOwnerOrCollaborator(userID, itineraryID uint) (bool, error) {
	var itinerary models.Itinerary
	err := h.DB.Preload("Collaborators").First(&itinerary, itineraryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if itinerary.OwnerID == userID {
		return true, nil
	}
	for _, collaborator := range itinerary.Collaborators {
		if collaborator.ID == userID {
			return true, nil
		}
	}
	return false, nil
}

// ItineraryRequest defines the payload for creating or updating an itinerary
type ItineraryRequest struct {
	Title         string    `json:"title"`
	Location      string    `json:"location"`
	Visibility    string    `json:"visibility"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Collaborators []string  `json:"collaborators"` // collaborator emails
}

// CreateItinerary creates an itinerary owned by the caller and attaches any
// collaborator emails that resolve to existing users.
func (h *ItineraryHandler) CreateItinerary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var req ItineraryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.Visibility == "" {
		req.Visibility = models.VisibilityPublic
	}

	var details []models.ErrorDetail
	if req.Title == "" {
		details = append(details, models.ErrorDetail{Code: "required", Field: "title", Message: "Title is required"})
	}
	if req.Location == "" {
		details = append(details, models.ErrorDetail{Code: "required", Field: "location", Message: "Location is required"})
	}
	if req.Visibility != models.VisibilityPublic && req.Visibility != models.VisibilityPrivate {
		details = append(details, models.ErrorDetail{Code: "invalid", Field: "visibility", Message: "Visibility must be 'public' or 'private'"})
	}
	if len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(models.ErrorResponse("Validation failed", models.ValidationErrors{Errors: details}))
	}

	itinerary := models.Itinerary{
		Title:      req.Title,
		Location:   req.Location,
		Visibility: req.Visibility,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		OwnerID:    userID,
		Active:     true,
	}

	if err := h.DB.Create(&itinerary).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create itinerary"})
	}

	// Attach collaborators that resolve to existing users. The owner cannot
	// collaborate on their own itinerary.
	for _, email := range req.Collaborators {
		var collaborator models.User
		if err := h.DB.Where("email = ?", email).First(&collaborator).Error; err != nil {
			continue
		}
		if collaborator.ID == userID {
			continue
		}
		if err := h.DB.Model(&itinerary).Association("Collaborators").Append(&collaborator); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add collaborators"})
		}
	}

	if err := h.DB.Preload("Collaborators").First(&itinerary, itinerary.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load itinerary"})
	}

	return c.Status(fiber.StatusCreated).JSON(itinerary)
}

// GetItinerary returns a single active itinerary. Private itineraries are
// only visible to their owner and collaborators.
func (h *ItineraryHandler) GetItinerary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	itineraryID, err := c.ParamsInt("itineraryId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid itinerary ID"})
	}

	var itinerary models.Itinerary
	if err := h.DB.Preload("Collaborators").Preload("Activities").
		Where("id = ? AND active = ?", itineraryID, true).
		First(&itinerary).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Itinerary not found"})
	}

	if itinerary.Visibility == models.VisibilityPrivate {
		allowed, err := h.IsOwnerOrCollaborator(userID, uint(itineraryID))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not check access"})
		}
		if !allowed {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Itinerary not found"})
		}
	}

	return c.JSON(itinerary)
}

// GetMyItineraries returns the itineraries the caller created, newest first.
func (h *ItineraryHandler) GetMyItineraries(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	scope := h.DB.Model(&models.Itinerary{}).
		Where("owner_id = ? AND active = ?", userID, true)

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch itineraries"})
	}

	itineraries := []models.Itinerary{}
	if err := h.DB.Preload("Collaborators").
		Where("owner_id = ? AND active = ?", userID, true).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&itineraries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch itineraries"})
	}

	meta := models.NewPaginationMeta(page, limit, total)
	return c.JSON(models.SuccessResponse("Itineraries fetched successfully", itineraries, meta))
}

// GetCollaboratedItineraries returns the itineraries the caller was invited
// to, newest first.
func (h *ItineraryHandler) GetCollaboratedItineraries(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	var total int64
	if err := h.DB.Model(&models.Itinerary{}).
		Joins("JOIN itinerary_collaborators ic ON ic.itinerary_id = itineraries.id").
		Where("ic.user_id = ? AND itineraries.active = ?", userID, true).
		Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch itineraries"})
	}

	itineraries := []models.Itinerary{}
	if err := h.DB.Preload("Collaborators").
		Joins("JOIN itinerary_collaborators ic ON ic.itinerary_id = itineraries.id").
		Where("ic.user_id = ? AND itineraries.active = ?", userID, true).
		Order("itineraries.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&itineraries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch itineraries"})
	}

	meta := models.NewPaginationMeta(page, limit, total)
	return c.JSON(models.SuccessResponse("Itineraries fetched successfully", itineraries, meta))
}

// UpdateItinerary updates the itinerary's details. Owner only.
func (h *ItineraryHandler) UpdateItinerary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	itineraryID, err := c.ParamsInt("itineraryId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid itinerary ID"})
	}

	var itinerary models.Itinerary
	if err := h.DB.Where("id = ? AND active = ?", itineraryID, true).First(&itinerary).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Itinerary not found"})
	}
	if itinerary.OwnerID != userID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Only the owner can update the itinerary"})
	}

	var req ItineraryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.Visibility == models.VisibilityPublic || req.Visibility == models.VisibilityPrivate {
		updates["visibility"] = req.Visibility
	}
	if !req.StartDate.IsZero() {
		updates["start_date"] = req.StartDate
	}
	if !req.EndDate.IsZero() {
		updates["end_date"] = req.EndDate
	}

	if err := h.DB.Model(&itinerary).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update itinerary"})
	}

	return c.JSON(itinerary)
}

// DeleteItinerary soft-deletes the itinerary. Owner only.
func (h *ItineraryHandler) DeleteItinerary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	itineraryID, err := c.ParamsInt("itineraryId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid itinerary ID"})
	}

	var itinerary models.Itinerary
	if err := h.DB.Where("id = ? AND active = ?", itineraryID, true).First(&itinerary).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Itinerary not found"})
	}
	if itinerary.OwnerID != userID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Only the owner can delete the itinerary"})
	}

	if err := h.DB.Model(&itinerary).Update("active", false).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete itinerary"})
	}

	return c.JSON(fiber.Map{"message": "Itinerary deleted successfully"})
}

// RestoreItinerary reactivates a soft-deleted itinerary. Owner only.
func (h *ItineraryHandler) RestoreItinerary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	itineraryID, err := c.ParamsInt("itineraryId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid itinerary ID"})
	}

	var itinerary models.Itinerary
	if err := h.DB.Where("id = ? AND active = ?", itineraryID, false).First(&itinerary).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Itinerary not found"})
	}
	if itinerary.OwnerID != userID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Only the owner can restore the itinerary"})
	}

	if err := h.DB.Model(&itinerary).Update("active", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not restore itinerary"})
	}

	return c.JSON(itinerary)
}

// CollaboratorRequest defines the payload for inviting a collaborator
type CollaboratorRequest struct {
	Email string `json:"email"`
}

// AddCollaborator invites an existing user to the itinerary by email. Owner
// only.
func (h *ItineraryHandler) AddCollaborator(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	itineraryID, err := c.ParamsInt("itineraryId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid itinerary ID"})
	}

	var itinerary models.Itinerary
	if err := h.DB.Where("id = ? AND active = ?", itineraryID, true).First(&itinerary).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Itinerary not found"})
	}
	if itinerary.OwnerID != userID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Only the owner can add collaborators"})
	}

	var req CollaboratorRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is required"})
	}

	var collaborator models.User
	if err := h.DB.Where("email = ?", req.Email).First(&collaborator).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if collaborator.ID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot add yourself as a collaborator"})
	}

	if err := h.DB.Model(&itinerary).Association("Collaborators").Append(&collaborator); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add collaborator"})
	}

	return c.JSON(fiber.Map{"message": "Collaborator added successfully"})
}

// RemoveCollaborator removes a collaborator from the itinerary. Owner only.
func (h *ItineraryHandler) RemoveCollaborator(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	itineraryID, err := c.ParamsInt("itineraryId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid itinerary ID"})
	}
	collaboratorID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var itinerary models.Itinerary
	if err := h.DB.Where("id = ? AND active = ?", itineraryID, true).First(&itinerary).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Itinerary not found"})
	}
	if itinerary.OwnerID != userID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Only the owner can remove collaborators"})
	}

	if err := h.DB.Model(&itinerary).Association("Collaborators").Delete(&models.User{ID: uint(collaboratorID)}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not remove collaborator"})
	}

	return c.JSON(fiber.Map{"message": "Collaborator removed successfully"})
}

package handlers

import (
	"wanderers_backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ActivityHandler struct {
	DB   *gorm.DB
	Auth RoomAuthorizer
}

func NewActivityHandler(db *gorm.DB, auth RoomAuthorizer) *ActivityHandler {
	return &ActivityHandler{DB: db, Auth: auth}
}

// ActivityRequest defines the payload for creating or updating an activity
type ActivityRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ItineraryID uint    `json:"itinerary_id"`
	Expense     float64 `json:"expense"`
	Split       string  `json:"split"`
	Sequence    int     `json:"sequence"`
}

// authorize checks itinerary access for the caller. When access is denied it
// writes the response itself and returns false.
func (h *ActivityHandler) authorize(c *fiber.Ctx, itineraryID uint) (bool, error) {
	userID := c.Locals("user_id").(uint)
	allowed, err := h.Auth.IsOwnerOrCollaborator(userID, itineraryID)
	if err != nil {
		return false, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not check access"})
	}
	if !allowed {
		return false, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "You are not allowed to modify this itinerary"})
	}
	return true, nil
}

// CreateActivity adds an activity to an itinerary the caller can edit.
func (h *ActivityHandler) CreateActivity(c *fiber.Ctx) error {
	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.Title == "" || req.ItineraryID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title and itinerary_id are required"})
	}
	if req.Split == "" {
		req.Split = models.SplitEqual
	}

	if ok, err := h.authorize(c, req.ItineraryID); !ok {
		return err
	}

	activity := models.Activity{
		Title:       req.Title,
		Description: req.Description,
		ItineraryID: req.ItineraryID,
		Expense:     req.Expense,
		Split:       req.Split,
		Sequence:    req.Sequence,
	}

	if err := h.DB.Create(&activity).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create activity"})
	}

	return c.Status(fiber.StatusCreated).JSON(activity)
}

// GetActivities lists an itinerary's activities in sequence order.
func (h *ActivityHandler) GetActivities(c *fiber.Ctx) error {
	itineraryID, err := c.ParamsInt("itineraryId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid itinerary ID"})
	}

	if ok, err := h.authorize(c, uint(itineraryID)); !ok {
		return err
	}

	activities := []models.Activity{}
	if err := h.DB.Where("itinerary_id = ?", itineraryID).
		Order("sequence ASC").
		Find(&activities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch activities"})
	}

	return c.JSON(fiber.Map{"data": activities})
}

// UpdateActivity updates an activity on an itinerary the caller can edit.
func (h *ActivityHandler) UpdateActivity(c *fiber.Ctx) error {
	activityID, err := c.ParamsInt("activityId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid activity ID"})
	}

	var activity models.Activity
	if err := h.DB.First(&activity, activityID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Activity not found"})
	}

	if ok, err := h.authorize(c, activity.ItineraryID); !ok {
		return err
	}

	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	updates := map[string]interface{}{
		"expense":  req.Expense,
		"sequence": req.Sequence,
	}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Split == models.SplitEqual || req.Split == models.SplitSelf {
		updates["split"] = req.Split
	}

	if err := h.DB.Model(&activity).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update activity"})
	}

	return c.JSON(activity)
}

// DeleteActivity removes an activity from an itinerary the caller can edit.
func (h *ActivityHandler) DeleteActivity(c *fiber.Ctx) error {
	activityID, err := c.ParamsInt("activityId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid activity ID"})
	}

	var activity models.Activity
	if err := h.DB.First(&activity, activityID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Activity not found"})
	}

	if ok, err := h.authorize(c, activity.ItineraryID); !ok {
		return err
	}

	if err := h.DB.Delete(&activity).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete activity"})
	}

	return c.JSON(fiber.Map{"message": "Activity deleted successfully"})
}

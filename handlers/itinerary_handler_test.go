package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"wanderers_backend/models"
	"wanderers_backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupItineraryApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	handler := NewItineraryHandler(db)
	app := fiber.New()
	api := app.Group("/api", utils.AuthMiddleware(testJWTSecret))
	api.Post("/itinerary", handler.CreateItinerary)
	api.Get("/itinerary", handler.GetMyItineraries)
	api.Get("/itinerary/collaborated", handler.GetCollaboratedItineraries)
	api.Get("/itinerary/:itineraryId", handler.GetItinerary)
	api.Delete("/itinerary/:itineraryId", handler.DeleteItinerary)
	api.Put("/itinerary/:itineraryId/restore", handler.RestoreItinerary)
	api.Post("/itinerary/:itineraryId/collaborators", handler.AddCollaborator)
	return app
}

func authedJSON(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestIsOwnerOrCollaborator(t *testing.T) {
	db := setupTestDB(t)
	handler := NewItineraryHandler(db)

	owner := createTestUser(t, db, "owner", "owner@example.com")
	collaborator := createTestUser(t, db, "collab", "collab@example.com")
	outsider := createTestUser(t, db, "outsider", "outsider@example.com")
	itinerary := createTestItinerary(t, db, owner, collaborator)

	allowed, err := handler.IsOwnerOrCollaborator(owner.ID, itinerary.ID)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = handler.IsOwnerOrCollaborator(collaborator.ID, itinerary.ID)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = handler.IsOwnerOrCollaborator(outsider.ID, itinerary.ID)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Unknown itinerary is unauthorized, not an error.
	allowed, err = handler.IsOwnerOrCollaborator(owner.ID, itinerary.ID+999)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCreateItineraryAttachesCollaborators(t *testing.T) {
	db := setupTestDB(t)
	app := setupItineraryApp(t, db)

	owner := createTestUser(t, db, "owner", "owner@example.com")
	collaborator := createTestUser(t, db, "collab", "collab@example.com")

	// Owner's own email and an unknown email are skipped silently.
	body := `{
		"title": "Tokyo Trip",
		"location": "Tokyo, Japan",
		"visibility": "private",
		"collaborators": ["collab@example.com", "owner@example.com", "nobody@example.com"]
	}`
	resp := authedJSON(t, app, http.MethodPost, "/api/itinerary", tokenFor(t, owner), body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Itinerary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, owner.ID, created.OwnerID)
	assert.True(t, created.Active)
	require.Len(t, created.Collaborators, 1)
	assert.Equal(t, collaborator.ID, created.Collaborators[0].ID)
}

func TestCreateItineraryValidation(t *testing.T) {
	db := setupTestDB(t)
	app := setupItineraryApp(t, db)
	owner := createTestUser(t, db, "owner", "owner@example.com")

	resp := authedJSON(t, app, http.MethodPost, "/api/itinerary", tokenFor(t, owner),
		`{"location": "Tokyo"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Message string                  `json:"message"`
		Error   models.ValidationErrors `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Validation failed", body.Message)
	require.Len(t, body.Error.Errors, 1)
	assert.Equal(t, "title", body.Error.Errors[0].Field)
	assert.Equal(t, "required", body.Error.Errors[0].Code)

	resp = authedJSON(t, app, http.MethodPost, "/api/itinerary", tokenFor(t, owner),
		`{"title": "Trip", "location": "Tokyo", "visibility": "secret"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body.Error.Errors = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Error.Errors, 1)
	assert.Equal(t, "visibility", body.Error.Errors[0].Field)
}

func TestGetItineraryPrivateVisibility(t *testing.T) {
	db := setupTestDB(t)
	app := setupItineraryApp(t, db)

	owner := createTestUser(t, db, "owner", "owner@example.com")
	outsider := createTestUser(t, db, "outsider", "outsider@example.com")
	itinerary := createTestItinerary(t, db, owner) // private

	path := fmt.Sprintf("/api/itinerary/%d", itinerary.ID)
	resp := authedJSON(t, app, http.MethodGet, path, tokenFor(t, owner), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Private itineraries do not exist for outsiders.
	resp = authedJSON(t, app, http.MethodGet, path, tokenFor(t, outsider), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteItinerarySoftDeletes(t *testing.T) {
	db := setupTestDB(t)
	app := setupItineraryApp(t, db)

	owner := createTestUser(t, db, "owner", "owner@example.com")
	itinerary := createTestItinerary(t, db, owner)

	path := fmt.Sprintf("/api/itinerary/%d", itinerary.ID)
	resp := authedJSON(t, app, http.MethodDelete, path, tokenFor(t, owner), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The row survives with active cleared.
	var stored models.Itinerary
	require.NoError(t, db.First(&stored, itinerary.ID).Error)
	assert.False(t, stored.Active)

	// And is no longer served.
	resp = authedJSON(t, app, http.MethodGet, path, tokenFor(t, owner), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteItineraryOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	app := setupItineraryApp(t, db)

	owner := createTestUser(t, db, "owner", "owner@example.com")
	collaborator := createTestUser(t, db, "collab", "collab@example.com")
	itinerary := createTestItinerary(t, db, owner, collaborator)

	resp := authedJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/itinerary/%d", itinerary.ID), tokenFor(t, collaborator), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRestoreItinerary(t *testing.T) {
	db := setupTestDB(t)
	app := setupItineraryApp(t, db)

	owner := createTestUser(t, db, "owner", "owner@example.com")
	collaborator := createTestUser(t, db, "collab", "collab@example.com")
	itinerary := createTestItinerary(t, db, owner, collaborator)

	path := fmt.Sprintf("/api/itinerary/%d", itinerary.ID)
	resp := authedJSON(t, app, http.MethodDelete, path, tokenFor(t, owner), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Collaborators cannot restore, only the owner.
	resp = authedJSON(t, app, http.MethodPut, path+"/restore", tokenFor(t, collaborator), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = authedJSON(t, app, http.MethodPut, path+"/restore", tokenFor(t, owner), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var restored models.Itinerary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&restored))
	assert.True(t, restored.Active)

	// Served again after the restore.
	resp = authedJSON(t, app, http.MethodGet, path, tokenFor(t, owner), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Restoring an active itinerary is a 404, same as an unknown one.
	resp = authedJSON(t, app, http.MethodPut, path+"/restore", tokenFor(t, owner), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAddCollaborator(t *testing.T) {
	db := setupTestDB(t)
	app := setupItineraryApp(t, db)

	owner := createTestUser(t, db, "owner", "owner@example.com")
	invitee := createTestUser(t, db, "invitee", "invitee@example.com")
	itinerary := createTestItinerary(t, db, owner)

	resp := authedJSON(t, app, http.MethodPost, fmt.Sprintf("/api/itinerary/%d/collaborators", itinerary.ID), tokenFor(t, owner),
		`{"email": "invitee@example.com"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	handler := NewItineraryHandler(db)
	allowed, err := handler.IsOwnerOrCollaborator(invitee.ID, itinerary.ID)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestListCollaboratedItineraries(t *testing.T) {
	db := setupTestDB(t)
	app := setupItineraryApp(t, db)

	owner := createTestUser(t, db, "owner", "owner@example.com")
	collaborator := createTestUser(t, db, "collab", "collab@example.com")
	createTestItinerary(t, db, owner, collaborator)

	resp := authedJSON(t, app, http.MethodGet, "/api/itinerary/collaborated", tokenFor(t, collaborator), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []models.Itinerary    `json:"data"`
		Meta models.PaginationMeta `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Tokyo Trip", body.Data[0].Title)
	assert.Equal(t, int64(1), body.Meta.Total)
	assert.False(t, body.Meta.HasNext)

	// The owner's collaborated list is empty.
	resp = authedJSON(t, app, http.MethodGet, "/api/itinerary/collaborated", tokenFor(t, owner), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body.Data = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Data)
}

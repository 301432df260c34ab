package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/icekidtech/information-systems/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventHandler manages event administration endpoints.
type EventHandler struct {
	db *gorm.DB
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{db: db}
}

// createEventRequest defines the request body for event creation.
type createEventRequest struct {
	Title    string     `json:"title"`
	Body     string     `json:"body"`
	Tags     []string   `json:"tags"`
	StartsAt *time.Time `json:"starts_at"`
}

// Create adds a new event posting.
func (h *EventHandler) Create(c *gin.Context) {
	var body createEventRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	title := strings.TrimSpace(body.Title)
	text := strings.TrimSpace(body.Body)
	if title == "" || text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and body are required"})
		return
	}

	tags := body.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, errMarshal := json.Marshal(tags)
	if errMarshal != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "marshal tags failed"})
		return
	}

	now := time.Now().UTC()
	event := models.Event{
		Title:     title,
		Body:      text,
		Tags:      datatypes.JSON(tagsJSON),
		StartsAt:  body.StartsAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&event).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create event failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": event.ID, "title": event.Title})
}

// updateEventRequest defines the request body for event updates.
type updateEventRequest struct {
	Title    *string    `json:"title"`
	Body     *string    `json:"body"`
	Tags     *[]string  `json:"tags"`
	StartsAt *time.Time `json:"starts_at"`
}

// Update modifies event fields.
func (h *EventHandler) Update(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body updateEventRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if body.Title != nil {
		title := strings.TrimSpace(*body.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
			return
		}
		updates["title"] = title
	}
	if body.Body != nil {
		updates["body"] = strings.TrimSpace(*body.Body)
	}
	if body.Tags != nil {
		tagsJSON, errMarshal := json.Marshal(*body.Tags)
		if errMarshal != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "marshal tags failed"})
			return
		}
		updates["tags"] = datatypes.JSON(tagsJSON)
	}
	if body.StartsAt != nil {
		updates["starts_at"] = *body.StartsAt
	}

	res := h.db.WithContext(c.Request.Context()).Model(&models.Event{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete removes an event posting.
func (h *EventHandler) Delete(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Delete(&models.Event{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

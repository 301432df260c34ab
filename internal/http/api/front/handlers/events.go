package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icekidtech/information-systems/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventHandler serves public event endpoints.
type EventHandler struct {
	db *gorm.DB
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{db: db}
}

// List returns event postings, newest first.
func (h *EventHandler) List(c *gin.Context) {
	var rows []models.Event
	if errFind := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list events failed"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		var tags []string
		if len(row.Tags) > 0 {
			if errTags := json.Unmarshal(row.Tags, &tags); errTags != nil {
				log.WithError(errTags).Warnf("events: malformed tags column (event=%d)", row.ID)
			}
		}
		out = append(out, gin.H{
			"id":         row.ID,
			"title":      row.Title,
			"body":       row.Body,
			"tags":       tags,
			"starts_at":  row.StartsAt,
			"created_at": row.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

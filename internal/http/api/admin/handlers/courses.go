package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/icekidtech/information-systems/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CourseHandler manages course administration endpoints.
type CourseHandler struct {
	db        *gorm.DB
	uploadDir string
}

// NewCourseHandler constructs a CourseHandler.
func NewCourseHandler(db *gorm.DB, uploadDir string) *CourseHandler {
	return &CourseHandler{db: db, uploadDir: uploadDir}
}

// createCourseRequest defines the request body for course creation.
type createCourseRequest struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Create adds a new course.
func (h *CourseHandler) Create(c *gin.Context) {
	var body createCourseRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	code := strings.ToUpper(strings.TrimSpace(body.Code))
	title := strings.TrimSpace(body.Title)
	if code == "" || title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and title are required"})
		return
	}

	now := time.Now().UTC()
	course := models.Course{
		Code:        code,
		Title:       title,
		Description: strings.TrimSpace(body.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&course).Error; errCreate != nil {
		if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "course code already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create course failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": course.ID, "code": course.Code, "title": course.Title})
}

// updateCourseRequest defines the request body for course updates.
type updateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Update modifies course fields.
func (h *CourseHandler) Update(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body updateCourseRequest
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
	if body.Description != nil {
		updates["description"] = strings.TrimSpace(*body.Description)
	}

	res := h.db.WithContext(c.Request.Context()).Model(&models.Course{}).Where("id = ?", id).Updates(updates)
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

// Delete removes a course, its material metadata and the stored files.
func (h *CourseHandler) Delete(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var materials []models.Material
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("course_id = ?", id).
		Find(&materials).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query course materials failed"})
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Course{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if errMaterials := h.db.WithContext(c.Request.Context()).
		Where("course_id = ?", id).
		Delete(&models.Material{}).Error; errMaterials != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete course materials failed"})
		return
	}
	for _, material := range materials {
		if errRemove := os.Remove(filepath.Join(h.uploadDir, material.FileName)); errRemove != nil && !os.IsNotExist(errRemove) {
			log.WithError(errRemove).Warnf("course delete: stored file %s not removed", material.FileName)
		}
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/icekidtech/information-systems/internal/models"
	"gorm.io/gorm"
)

// CourseHandler serves public course and material endpoints.
type CourseHandler struct {
	db        *gorm.DB
	uploadDir string
}

// NewCourseHandler constructs a CourseHandler.
func NewCourseHandler(db *gorm.DB, uploadDir string) *CourseHandler {
	return &CourseHandler{db: db, uploadDir: uploadDir}
}

// List returns all courses ordered by code.
func (h *CourseHandler) List(c *gin.Context) {
	var rows []models.Course
	if errFind := h.db.WithContext(c.Request.Context()).
		Order("code ASC").
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list courses failed"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":          row.ID,
			"code":        row.Code,
			"title":       row.Title,
			"description": row.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"courses": out})
}

// Get returns a single course.
func (h *CourseHandler) Get(c *gin.Context) {
	courseID, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	var course models.Course
	if errFind := h.db.WithContext(c.Request.Context()).First(&course, courseID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          course.ID,
		"code":        course.Code,
		"title":       course.Title,
		"description": course.Description,
		"created_at":  course.CreatedAt,
	})
}

// Materials returns material metadata for one course, newest first.
func (h *CourseHandler) Materials(c *gin.Context) {
	courseID, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	var course models.Course
	if errFind := h.db.WithContext(c.Request.Context()).First(&course, courseID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	var rows []models.Material
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list materials failed"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":           row.ID,
			"title":        row.Title,
			"originalName": row.OriginalName,
			"sizeBytes":    row.SizeBytes,
			"contentType":  row.ContentType,
			"created_at":   row.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"course": course.Code, "materials": out})
}

// Download streams a stored material file.
func (h *CourseHandler) Download(c *gin.Context) {
	materialID, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material id"})
		return
	}

	var material models.Material
	if errFind := h.db.WithContext(c.Request.Context()).First(&material, materialID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "material not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.FileAttachment(filepath.Join(h.uploadDir, material.FileName), material.OriginalName)
}

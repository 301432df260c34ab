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
	"github.com/google/uuid"
	"github.com/icekidtech/information-systems/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxMaterialSize caps course material uploads.
const maxMaterialSize = 50 << 20 // 50 MiB

// MaterialHandler manages course material uploads.
type MaterialHandler struct {
	db        *gorm.DB
	uploadDir string
}

// NewMaterialHandler constructs a MaterialHandler.
func NewMaterialHandler(db *gorm.DB, uploadDir string) *MaterialHandler {
	return &MaterialHandler{db: db, uploadDir: uploadDir}
}

// Upload stores a material file under a random name and records its metadata.
func (h *MaterialHandler) Upload(c *gin.Context) {
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

	file, errFile := c.FormFile("file")
	if errFile != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	if file.Size > maxMaterialSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		title = file.Filename
	}

	if errMkdir := os.MkdirAll(h.uploadDir, 0755); errMkdir != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prepare upload dir failed"})
		return
	}
	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	storedPath := filepath.Join(h.uploadDir, storedName)
	if errSave := c.SaveUploadedFile(file, storedPath); errSave != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store file failed"})
		return
	}

	now := time.Now().UTC()
	material := models.Material{
		CourseID:     course.ID,
		Title:        title,
		FileName:     storedName,
		OriginalName: filepath.Base(file.Filename),
		SizeBytes:    file.Size,
		ContentType:  file.Header.Get("Content-Type"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&material).Error; errCreate != nil {
		if errRemove := os.Remove(storedPath); errRemove != nil {
			log.WithError(errRemove).Warnf("material upload: orphaned file %s", storedName)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "record material failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           material.ID,
		"title":        material.Title,
		"originalName": material.OriginalName,
		"sizeBytes":    material.SizeBytes,
	})
}

// Delete removes a material record and its stored file.
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var material models.Material
	if errFind := h.db.WithContext(c.Request.Context()).First(&material, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	if errDelete := h.db.WithContext(c.Request.Context()).Delete(&material).Error; errDelete != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if errRemove := os.Remove(filepath.Join(h.uploadDir, material.FileName)); errRemove != nil && !os.IsNotExist(errRemove) {
		log.WithError(errRemove).Warnf("material delete: stored file %s not removed", material.FileName)
	}
	c.Status(http.StatusNoContent)
}

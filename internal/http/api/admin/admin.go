// Package admin registers the administrator API routes.
package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/icekidtech/information-systems/internal/config"
	internalhttp "github.com/icekidtech/information-systems/internal/http"
	"github.com/icekidtech/information-systems/internal/http/api/admin/handlers"
	"github.com/icekidtech/information-systems/internal/registration"
	"gorm.io/gorm"
)

// RegisterAdminRoutes registers admin-only routes behind role enforcement.
func RegisterAdminRoutes(r *gin.Engine, db *gorm.DB, reg *registration.Service, jwtCfg config.JWTConfig, uploadDir string) {
	if r == nil || db == nil {
		return
	}

	healthHandler := handlers.NewHealthHandler(db)
	r.GET("/healthz", healthHandler.Healthz)

	adminGroup := r.Group("/api/admin")
	adminGroup.Use(internalhttp.AccountAuthMiddleware(db, jwtCfg), internalhttp.RequireAdmin())

	registrationHandler := handlers.NewRegistrationHandler(reg)
	adminGroup.GET("/pending-registrations", registrationHandler.ListPending)
	adminGroup.POST("/confirm-registration/:id", registrationHandler.Confirm)

	courseHandler := handlers.NewCourseHandler(db, uploadDir)
	adminGroup.POST("/courses", courseHandler.Create)
	adminGroup.PUT("/courses/:id", courseHandler.Update)
	adminGroup.DELETE("/courses/:id", courseHandler.Delete)

	materialHandler := handlers.NewMaterialHandler(db, uploadDir)
	adminGroup.POST("/courses/:id/materials", materialHandler.Upload)
	adminGroup.DELETE("/materials/:id", materialHandler.Delete)

	eventHandler := handlers.NewEventHandler(db)
	adminGroup.POST("/events", eventHandler.Create)
	adminGroup.PUT("/events/:id", eventHandler.Update)
	adminGroup.DELETE("/events/:id", eventHandler.Delete)
}

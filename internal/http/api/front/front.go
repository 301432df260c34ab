// Package front registers the public and student-facing API routes.
package front

import (
	"github.com/gin-gonic/gin"
	"github.com/icekidtech/information-systems/internal/auth"
	"github.com/icekidtech/information-systems/internal/config"
	internalhttp "github.com/icekidtech/information-systems/internal/http"
	"github.com/icekidtech/information-systems/internal/http/api/front/handlers"
	"github.com/icekidtech/information-systems/internal/registration"
	"gorm.io/gorm"
)

// RegisterFrontRoutes registers public and authenticated front routes.
func RegisterFrontRoutes(r *gin.Engine, db *gorm.DB, reg *registration.Service, authSvc *auth.Service, jwtCfg config.JWTConfig, uploadDir string) {
	if r == nil || db == nil {
		return
	}

	api := r.Group("/api")

	authHandler := handlers.NewAuthHandler(reg, authSvc, jwtCfg)
	api.POST("/signup", authHandler.SignUp)
	api.POST("/login", authHandler.Login)

	courseHandler := handlers.NewCourseHandler(db, uploadDir)
	api.GET("/courses", courseHandler.List)
	api.GET("/courses/:id", courseHandler.Get)
	api.GET("/courses/:id/materials", courseHandler.Materials)
	api.GET("/materials/:id/download", courseHandler.Download)

	eventHandler := handlers.NewEventHandler(db)
	api.GET("/events", eventHandler.List)

	authed := api.Group("")
	authed.Use(internalhttp.AccountAuthMiddleware(db, jwtCfg))

	profileHandler := handlers.NewProfileHandler(db, authSvc)
	authed.GET("/profile", profileHandler.Get)
	authed.POST("/change-password", profileHandler.ChangePasscode)
}

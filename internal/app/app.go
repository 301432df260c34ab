// Package app wires configuration, storage, services and HTTP routes
// into a runnable server.
package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/icekidtech/information-systems/internal/auth"
	"github.com/icekidtech/information-systems/internal/config"
	"github.com/icekidtech/information-systems/internal/db"
	"github.com/icekidtech/information-systems/internal/http/api/admin"
	"github.com/icekidtech/information-systems/internal/http/api/front"
	"github.com/icekidtech/information-systems/internal/notify"
	"github.com/icekidtech/information-systems/internal/registration"
	"github.com/icekidtech/information-systems/internal/store"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

// AppConfig holds process-level options.
type AppConfig struct {
	ConfigPath string
}

// Migrate opens the database, applies the schema and seeds the admin account.
func Migrate(ctx context.Context, cfg AppConfig) error {
	appCfg, err := config.Load(config.ResolveConfigPath(cfg.ConfigPath))
	if err != nil {
		return err
	}
	conn, err := db.Open(appCfg.Database.DSN)
	if err != nil {
		return err
	}
	return prepareSchema(conn, appCfg)
}

// RunServer boots the HTTP API server.
func RunServer(ctx context.Context, cfg AppConfig) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)
	appCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogging(appCfg.Log)

	conn, err := db.Open(appCfg.Database.DSN)
	if err != nil {
		return err
	}
	if errSchema := prepareSchema(conn, appCfg); errSchema != nil {
		return errSchema
	}

	accounts := store.NewAccountStore(conn)

	var notifier registration.Notifier
	smtpCfg := appCfg.NotifySMTP()
	if smtpCfg.Enabled() {
		notifier = notify.NewMailer(smtpCfg)
	} else {
		log.Warn("smtp not configured, passcode emails disabled")
		notifier = notify.NopNotifier{}
	}

	regService := registration.NewService(accounts, notifier)
	authService := auth.NewService(accounts)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	front.RegisterFrontRoutes(engine, conn, regService, authService, appCfg.JWT, appCfg.Uploads.Dir)
	admin.RegisterAdminRoutes(engine, conn, regService, appCfg.JWT, appCfg.Uploads.Dir)

	server := &http.Server{
		Addr:              appCfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("starting server with config=%s addr=%s", configPath, appCfg.Server.Addr)
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			errCh <- errServe
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return errShutdown
		}
		return nil
	case errServe := <-errCh:
		return errServe
	}
}

// prepareSchema migrates the schema and seeds the bootstrap admin.
func prepareSchema(conn *gorm.DB, appCfg *config.Config) error {
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	generated, errSeed := db.SeedAdmin(conn, db.AdminSeed{
		Name:       appCfg.Admin.Name,
		ExternalID: appCfg.Admin.ExternalID,
		Email:      appCfg.Admin.Email,
		Passcode:   appCfg.Admin.Passcode,
	})
	if errSeed != nil {
		return errSeed
	}
	if generated != "" {
		// Shown once at bootstrap; never persisted in plaintext.
		log.Warnf("seeded admin account %s with passcode %s, change it after first login", appCfg.Admin.ExternalID, generated)
	}
	return nil
}

// setupLogging configures logrus output and level.
func setupLogging(cfg config.LogConfig) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	level, errParse := log.ParseLevel(cfg.Level)
	if errParse != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // MiB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		log.SetOutput(io.MultiWriter(os.Stdout, rotating))
	}
}

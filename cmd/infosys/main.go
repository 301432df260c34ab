package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/icekidtech/information-systems/internal/app"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	migrateOnly := flag.Bool("migrate", false, "apply schema migrations and exit")
	flag.Parse()

	if errEnv := godotenv.Load(); errEnv != nil {
		log.Debug("no .env file found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := app.AppConfig{ConfigPath: *configPath}
	if *migrateOnly {
		if err := app.Migrate(ctx, cfg); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
		return
	}

	if err := app.RunServer(ctx, cfg); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

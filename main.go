// @title Calm Learning Hub API
// @version 1.0
// @description Backend for the Calm Learning Hub, a gentle reading platform
// @description where teachers and parents turn school material into short,
// @description friendly lessons for their learners.

// @contact.name API Support

// @license.name MIT

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"calm_learning_hub/internal/app"
	"calm_learning_hub/internal/config"
	"calm_learning_hub/pkg/configwatcher"
	"calm_learning_hub/pkg/logger"
	"flag"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force migrations on start, even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration finished, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			application.ReloadConfig(c)
		}
	})

	application.Run()
}

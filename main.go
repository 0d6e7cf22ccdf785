package main

import (
	"log"

	"github.com/joho/godotenv"

	"powerplan/adapters/excel"
	"powerplan/adapters/stats/engine"
	"powerplan/app"
	"powerplan/internal/config"
	"powerplan/ui"
)

func main() {
	// Load .env file if present (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	service := app.NewDesignService(engine.NewDesignEngine(), cfg.Design)
	exporter := excel.NewSweepWriter()

	uiApp, err := ui.NewApp(ui.Config{Port: cfg.Server.Port}, service, exporter)
	if err != nil {
		log.Fatalf("Failed to initialize UI: %v", err)
	}

	if err := uiApp.Start(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

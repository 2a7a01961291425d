package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/anchorleg/anchorleg/internal/app"
	"github.com/anchorleg/anchorleg/internal/handlers"
	"github.com/anchorleg/anchorleg/internal/portal"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	if err := service.Store.ApplyMigrations(service.Config.Database.MigrationsDir); err != nil {
		logger.Error.Fatalf("Failed to apply migrations: %v", err)
	}

	client := portal.NewClient(service.Config.Portal)
	automationHandler := handlers.NewAutomationHandler(service, client)

	http.HandleFunc("POST /api/v1/sports", automationHandler.HandleListSports)
	http.HandleFunc("POST /api/v1/events", automationHandler.HandleListEvents)
	http.HandleFunc("POST /api/v1/results", automationHandler.HandleSubmitResults)
	http.HandleFunc("GET /api/v1/audit", automationHandler.HandleListAudit)

	http.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting anchorleg server on %s", service.Config.Server.Port)
	if err := http.ListenAndServe(service.Config.Server.Port, nil); err != nil {
		logger.Error.Fatalf("Anchorleg server failed: %v", err)
	}
}

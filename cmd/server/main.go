package main

import (
	"net/http"
	"os"

	"github.com/WordPulse/WordPulse-backend/internal/api"
	"github.com/WordPulse/WordPulse-backend/internal/config"
	"github.com/WordPulse/WordPulse-backend/internal/database"
	"github.com/WordPulse/WordPulse-backend/internal/logger"
	"github.com/WordPulse/WordPulse-backend/internal/middleware"
	"github.com/WordPulse/WordPulse-backend/internal/store"
	"github.com/fatih/color"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize routes
	router := api.SetupRouter(store.NewPostgres(db))

	// Wrap router with CORS middleware
	handler := middleware.CORSMiddleware(router)

	// Start server
	color.Cyan("WordPulse API")
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}

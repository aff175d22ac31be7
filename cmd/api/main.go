package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/slgoiko/unirhub/internal/pkg/logger"
	"github.com/slgoiko/unirhub/internal/server"
)

// @title UnirHub API
// @version 1.0
// @description Personal academic organizer backed by Google Drive and Google Calendar

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey SessionAuth
// @in cookie
// @name unirhub_session
// @description Login session cookie

func main() {
	// Local development reads secrets from .env; a missing file is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

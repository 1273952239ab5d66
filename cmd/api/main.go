package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/ekindev/coursesearch/internal/pkg/logger"
	"github.com/ekindev/coursesearch/internal/server"
)

func main() {
	// A missing .env file is fine; the environment may carry everything.
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

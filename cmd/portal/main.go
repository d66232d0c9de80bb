package main

import (
	"os"

	"github.com/campusgate/student-portal/internal/pkg/logger"
	"github.com/campusgate/student-portal/internal/server"
)

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Portal stopped gracefully.")
}

package main

import (
	"os"

	"github.com/prasadasw/examportal/internal/pkg/logger"
	"github.com/prasadasw/examportal/internal/server"
)

// @title Exam Portal API
// @version 1.0
// @description API for an online exam platform: enrollment-gated tests with manual review and result release

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT bearer token

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

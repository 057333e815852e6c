package main

import (
	"log/slog"
	"os"
)

// @title CloneWander API
// @version 1.0
// @description Dispatch simulated travelers and read the journals they write in accelerated time.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCmd(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

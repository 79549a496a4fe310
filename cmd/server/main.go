package main

import (
	"context"
	"log"

	"github.com/polyglot/api/internal/app"
	"github.com/polyglot/api/internal/cli"
	"github.com/polyglot/api/internal/config"
	"go.uber.org/zap"
)

// @title Polyglot API
// @version 1.0.0
// @description Prompt-to-code generation with language suggestions and per-client history.
// @host localhost:3001
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	logger, err := app.NewLogger("stdout")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := cli.Serve(context.Background(), config.Load(), logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

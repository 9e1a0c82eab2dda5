package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/sardorbek/kalit/internal/cli"
	"github.com/sardorbek/kalit/internal/logger"
)

// @title Kalit Quiz Platform API
// @version 1.0
// @description API for a code-keyed quiz platform: creators publish answer-key tests, participants submit answers by code, the platform scores submissions and reports statistics.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	if err := cli.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

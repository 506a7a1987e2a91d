// Package common provides shared dependency construction for CLI commands.
package common

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/riftline/guidecrawl/internal/config"
	"github.com/riftline/guidecrawl/internal/logger"
)

// Deps bundles the dependencies every command needs.
type Deps struct {
	Config *config.Config
	Logger logger.Interface
}

// NewDeps loads the configuration from viper and builds the logger.
func NewDeps() (*Deps, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &Deps{Config: cfg, Logger: log}, nil
}

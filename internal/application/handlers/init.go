// Package handlers contains application use case handlers.
package handlers

import (
	"fmt"

	"github.com/yasar2385/family-address-book/internal/infrastructure/config"
)

// InitHandler handles project initialization.
type InitHandler struct{}

// NewInitHandler creates a new init handler.
func NewInitHandler() *InitHandler {
	return &InitHandler{}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath string
	Config     *config.Config
}

// Handle writes the default config into basePath and loads it back.
func (h *InitHandler) Handle(basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("address book already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &InitResult{
		ConfigPath: config.ConfigFilePath(basePath),
		Config:     cfg,
	}, nil
}

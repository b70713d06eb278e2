package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"pet-mftc/internal/config"
	"pet-mftc/internal/pet"
	"pet-mftc/internal/tasks/mftc"
)

// NewRegistry returns a registry with every task in this repo registered.
func NewRegistry() (*pet.Registry, error) {
	registry := pet.NewRegistry()

	if err := mftc.Register(registry); err != nil {
		return nil, fmt.Errorf("error registering task '%s': %w", mftc.TaskName, err)
	}

	return registry, nil
}

func SetupLogging(cfg *config.Config) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(handler))
}

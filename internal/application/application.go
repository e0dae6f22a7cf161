package application

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/prefstore/internal/config"
	"github.com/eugenenazirov/prefstore/internal/prefs"
	"github.com/eugenenazirov/prefstore/internal/settings"
)

// App encapsulates the settings registry and the preference groups it persists.
type App struct {
	registry *settings.Registry
	user     *prefs.UserPreferences
	debug    *prefs.DebugPreferences
	autosave *settings.Autosaver
	logger   *zap.Logger
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if strings.TrimSpace(cfg.SettingsFile) == "" {
		return nil, errors.New("settings file path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	user := prefs.NewUserPreferences()
	debug := prefs.NewDebugPreferences()
	registry := settings.New(cfg.SettingsFile, logger,
		settings.WithGroups(user, debug),
		settings.WithDebugMode(settings.StaticDebugMode(cfg.Debug)),
	)

	return &App{
		registry: registry,
		user:     user,
		debug:    debug,
		autosave: settings.NewAutosaver(registry, cfg.AutosaveInterval, logger),
		logger:   logger,
	}, nil
}

// Registry returns the settings registry.
func (a *App) Registry() *settings.Registry {
	return a.registry
}

// User returns the user preferences group.
func (a *App) User() *prefs.UserPreferences {
	return a.user
}

// Debug returns the debug-only preferences group.
func (a *App) Debug() *prefs.DebugPreferences {
	return a.debug
}

// Load reads the settings file, creating it from defaults when missing.
func (a *App) Load() error {
	if err := a.registry.TryLoad(); err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	return nil
}

// Changed notes that a setting changed; the change is saved subject to the
// autosave interval.
func (a *App) Changed() error {
	return a.autosave.Touch()
}

// Close writes any change the autosave interval has held back.
func (a *App) Close() error {
	if err := a.autosave.Flush(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

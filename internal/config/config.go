package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultSettingsFile     = "config.properties"
	defaultLogLevel         = "info"
	defaultLogEncoding      = "console"
	defaultAutosaveInterval = time.Second
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	SettingsFile     string
	Debug            bool
	LogLevel         string
	LogEncoding      string
	AutosaveInterval time.Duration
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	SettingsFile     string      `yaml:"settings_file"`
	Debug            *bool       `yaml:"debug"`
	Log              yamlLogging `yaml:"log"`
	AutosaveInterval string      `yaml:"autosave_interval"`
}

// yamlLogging represents the log section in YAML.
type yamlLogging struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile   string
	SettingsFile *string
	Debug        *bool
	LogLevel     *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Apply environment variables first; YAML and flags override them.
	applyEnvConfig(&cfg)

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		SettingsFile:     defaultSettingsFile,
		LogLevel:         defaultLogLevel,
		LogEncoding:      defaultLogEncoding,
		AutosaveInterval: defaultAutosaveInterval,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.SettingsFile != "" {
		cfg.SettingsFile = yamlCfg.SettingsFile
	}

	if yamlCfg.Debug != nil {
		cfg.Debug = *yamlCfg.Debug
	}

	if yamlCfg.Log.Level != "" {
		cfg.LogLevel = yamlCfg.Log.Level
	}

	if yamlCfg.Log.Encoding != "" {
		cfg.LogEncoding = yamlCfg.Log.Encoding
	}

	if yamlCfg.AutosaveInterval != "" {
		d, err := time.ParseDuration(yamlCfg.AutosaveInterval)
		if err != nil {
			return fmt.Errorf("autosave_interval: %w", err)
		}
		cfg.AutosaveInterval = d
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if file := strings.TrimSpace(os.Getenv("PREFS_FILE")); file != "" {
		cfg.SettingsFile = file
	}

	if debug := strings.TrimSpace(os.Getenv("PREFS_DEBUG")); debug != "" {
		if value, err := strconv.ParseBool(debug); err == nil {
			cfg.Debug = value
		}
	}

	if level := strings.TrimSpace(os.Getenv("PREFS_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if encoding := strings.TrimSpace(os.Getenv("PREFS_LOG_ENCODING")); encoding != "" {
		cfg.LogEncoding = encoding
	}

	if interval := strings.TrimSpace(os.Getenv("PREFS_AUTOSAVE_INTERVAL")); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			cfg.AutosaveInterval = d
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.SettingsFile != nil && *overrides.SettingsFile != "" {
		cfg.SettingsFile = *overrides.SettingsFile
	}

	if overrides.Debug != nil {
		cfg.Debug = *overrides.Debug
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.SettingsFile) == "" {
		return fmt.Errorf("settings file cannot be empty")
	}
	switch cfg.LogEncoding {
	case "json", "console":
	default:
		return fmt.Errorf("log encoding must be json or console, got %q", cfg.LogEncoding)
	}
	if cfg.AutosaveInterval < 0 {
		return fmt.Errorf("autosave interval must be >= 0")
	}
	return nil
}

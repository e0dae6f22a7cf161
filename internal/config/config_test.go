package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PREFS_FILE", "PREFS_DEBUG", "PREFS_LOG_LEVEL", "PREFS_LOG_ENCODING", "PREFS_AUTOSAVE_INTERVAL"} {
		t.Setenv(key, "")
	}
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefsctl.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.SettingsFile != defaultSettingsFile {
		t.Fatalf("expected default settings file %s, got %s", defaultSettingsFile, cfg.SettingsFile)
	}
	if cfg.Debug {
		t.Fatalf("expected debug mode off by default")
	}
	if cfg.LogLevel != "info" || cfg.LogEncoding != "console" {
		t.Fatalf("unexpected logging defaults: %s %s", cfg.LogLevel, cfg.LogEncoding)
	}
	if cfg.AutosaveInterval != time.Second {
		t.Fatalf("unexpected autosave interval: %s", cfg.AutosaveInterval)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PREFS_FILE", "/tmp/editor.properties")
	t.Setenv("PREFS_DEBUG", "true")
	t.Setenv("PREFS_AUTOSAVE_INTERVAL", "250ms")
	t.Setenv("PREFS_LOG_ENCODING", "json")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.SettingsFile != "/tmp/editor.properties" {
		t.Fatalf("expected overridden settings file, got %s", cfg.SettingsFile)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug mode from environment")
	}
	if cfg.AutosaveInterval != 250*time.Millisecond {
		t.Fatalf("unexpected autosave interval: %s", cfg.AutosaveInterval)
	}
	if cfg.LogEncoding != "json" {
		t.Fatalf("unexpected log encoding: %s", cfg.LogEncoding)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PREFS_FILE", "from-env.properties")
	t.Setenv("PREFS_LOG_LEVEL", "warn")

	path := writeYAML(t, `
settings_file: from-yaml.properties
debug: true
log:
  level: debug
autosave_interval: 5s
`)

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SettingsFile != "from-yaml.properties" || cfg.LogLevel != "debug" || !cfg.Debug {
		t.Fatalf("expected YAML to override environment, got %+v", cfg)
	}
	if cfg.AutosaveInterval != 5*time.Second {
		t.Fatalf("unexpected autosave interval: %s", cfg.AutosaveInterval)
	}

	file := "from-flag.properties"
	debug := false
	cfg, err = Load(&CLIOverrides{ConfigFile: path, SettingsFile: &file, Debug: &debug})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SettingsFile != file || cfg.Debug {
		t.Fatalf("expected flags to override YAML, got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
			t.Fatalf("expected error for missing config file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeYAML(t, "settings_file: [unterminated")
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatalf("expected parse error")
		}
	})

	t.Run("invalid interval", func(t *testing.T) {
		path := writeYAML(t, "autosave_interval: soon\n")
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatalf("expected duration error")
		}
	})

	t.Run("invalid encoding", func(t *testing.T) {
		path := writeYAML(t, "log:\n  encoding: xml\n")
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatalf("expected encoding error")
		}
	})
}

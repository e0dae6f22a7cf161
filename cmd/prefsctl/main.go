package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/prefstore/internal/application"
	"github.com/eugenenazirov/prefstore/internal/config"
	"github.com/eugenenazirov/prefstore/internal/logging"
	"github.com/eugenenazirov/prefstore/internal/settings"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "prefsctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	kingpinApp := kingpin.New("prefsctl", "Inspect and edit editor preference files")
	kingpinApp.UsageWriter(stderr)
	kingpinApp.ErrorWriter(stderr)

	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	settingsFile := kingpinApp.Flag("file", "Settings file to operate on").Short('f').String()
	var debugSet bool
	debug := kingpinApp.Flag("debug", "Treat the host as running in debug mode").IsSetByUser(&debugSet).Bool()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()

	pathCmd := kingpinApp.Command("path", "Print the settings file path")
	showCmd := kingpinApp.Command("show", "Print the persisted settings")
	getCmd := kingpinApp.Command("get", "Print the value of one setting")
	getKey := getCmd.Arg("key", "Setting key, e.g. user_zoom").Required().String()
	setCmd := kingpinApp.Command("set", "Change settings and save them")
	setPairs := setCmd.Arg("pairs", "KEY=VALUE pairs").Required().Strings()
	recentCmd := kingpinApp.Command("recent", "Manage recently opened files")
	recentAddCmd := recentCmd.Command("add", "Record a file as the most recently opened")
	recentAddPath := recentAddCmd.Arg("path", "Opened file").Required().String()
	recentListCmd := recentCmd.Command("list", "List recently opened files, most recent first")
	recentClearCmd := recentCmd.Command("clear", "Forget recently opened files")
	exportCmd := kingpinApp.Command("export", "Write all persisted settings")
	exportFormat := exportCmd.Flag("format", "Output format").Default("properties").Enum("properties", "yaml")

	command, err := kingpinApp.Parse(args)
	if err != nil {
		return err
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *settingsFile != "" {
		overrides.SettingsFile = settingsFile
	}

	if debugSet {
		overrides.Debug = debug
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	if command == pathCmd.FullCommand() {
		_, err := fmt.Fprintln(stdout, app.Registry().FilePath())
		return err
	}

	if err := app.Load(); err != nil {
		return err
	}

	switch command {
	case showCmd.FullCommand():
		return app.Registry().WriteSections(stdout)
	case getCmd.FullCommand():
		return get(app, *getKey, stdout)
	case setCmd.FullCommand():
		return set(app, *setPairs, logger)
	case recentAddCmd.FullCommand():
		app.User().AddOpenedFile(*recentAddPath)
		return commit(app)
	case recentListCmd.FullCommand():
		for _, path := range app.User().RecentFiles().Paths() {
			if _, err := fmt.Fprintln(stdout, path); err != nil {
				return err
			}
		}
		return nil
	case recentClearCmd.FullCommand():
		app.User().ClearOpenedFiles()
		return commit(app)
	case exportCmd.FullCommand():
		return export(app.Registry(), *exportFormat, stdout)
	}

	return fmt.Errorf("unhandled command %q", command)
}

func get(app *application.App, key string, stdout io.Writer) error {
	value, ok := app.Registry().Snapshot().Get(key)
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	_, err := fmt.Fprintln(stdout, value)
	return err
}

func set(app *application.App, pairs []string, logger *zap.Logger) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return fmt.Errorf("expected KEY=VALUE, got %q", pair)
		}

		accepted, err := app.Registry().Apply(key, value)
		if accepted == 0 {
			if err == nil {
				err = errors.New("no settings group matches the key")
			}
			return fmt.Errorf("set %s: %w", key, err)
		}
		if err != nil {
			logger.Warn("setting rejected by some groups", zap.String("key", key), zap.Error(err))
		}

		if err := app.Changed(); err != nil {
			return err
		}
	}
	return app.Close()
}

func commit(app *application.App) error {
	if err := app.Changed(); err != nil {
		return err
	}
	return app.Close()
}

func export(registry *settings.Registry, format string, stdout io.Writer) error {
	if format != "yaml" {
		return registry.WriteSections(stdout)
	}

	snapshot := registry.Snapshot()
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range snapshot.Keys() {
		value, _ := snapshot.Get(key)
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		)
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return enc.Close()
}

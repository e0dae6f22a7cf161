// Package config loads the tool's runtime configuration from multiple sources
// (YAML files, environment variables, CLI flags) with precedence: CLI flags >
// YAML config > Environment variables > Defaults. It locates the settings file
// and decides whether the host runs in debug mode.
package config

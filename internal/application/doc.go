// Package application provides application initialization and dependency wiring.
// It builds the settings registry with the editor's preference groups and the
// autosaver, keeping the main package focused on CLI parsing and output.
package application

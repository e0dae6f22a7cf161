// Package prefs defines the editor's persisted preference groups: the user
// preferences, including the list of recently opened files, and the
// debug-only rendering switches.
package prefs

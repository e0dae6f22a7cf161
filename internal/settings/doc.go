// Package settings persists typed, prefixed groups of settings to a flat
// key/value properties file.
//
// A Registry owns the groups and the backing file path. Load routes every
// key in the file to each group whose prefix starts the key; Save writes one
// section per group in registration order. Both are best-effort: failures
// are logged and the application keeps its in-memory values. Groups marked
// as debug-only are persisted only while the host reports debug mode.
package settings

package settings

import "errors"

var (
	// ErrDecode indicates the settings file content could not be parsed.
	ErrDecode = errors.New("malformed settings file")
	// ErrIO indicates the settings file could not be opened, read, or written.
	ErrIO = errors.New("settings file I/O failure")
	// ErrUnknownField is returned by a group when a key names no field it knows.
	ErrUnknownField = errors.New("unknown settings field")
	// ErrInvalidValue is returned by a group when a value cannot be coerced to the field's type.
	ErrInvalidValue = errors.New("invalid settings value")
)

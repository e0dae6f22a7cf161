package settings

// DebugMode reports whether the host application runs in debug mode.
type DebugMode interface {
	IsDebugModeActive() bool
}

// DebugModeFunc adapts a function to DebugMode.
type DebugModeFunc func() bool

// IsDebugModeActive implements DebugMode.
func (f DebugModeFunc) IsDebugModeActive() bool {
	return f()
}

// StaticDebugMode returns a DebugMode that always reports the given state.
func StaticDebugMode(active bool) DebugMode {
	return DebugModeFunc(func() bool { return active })
}

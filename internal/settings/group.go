package settings

// Group is a typed, prefixed bundle of settings persisted and restored as a unit.
//
// Every key a group writes starts with its prefix. When loading, the registry
// hands a group every key its prefix starts; a group reports keys it cannot
// interpret through the returned error and keeps the field's prior value.
type Group interface {
	// Prefix returns the namespace prepended to every field name.
	Prefix() string
	// Debug reports whether the group is persisted only in debug mode.
	Debug() bool
	// StoreProperties writes every serializable field as prefix+name = value.
	StoreProperties(sink PropertySink)
	// InitializeByProperty assigns the field named by key, which starts with Prefix.
	InitializeByProperty(key, value string) error
}

// Value is a setting with a custom text form, such as an enumeration.
type Value interface {
	String() string
	Set(string) error
}

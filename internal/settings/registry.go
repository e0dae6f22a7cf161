package settings

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// sectionSuffix follows the group prefix in each section header comment.
const sectionSuffix = "SETTINGS"

// Option configures a Registry.
type Option func(*Registry)

// WithGroups registers groups in the given order.
func WithGroups(groups ...Group) Option {
	return func(r *Registry) {
		r.groups = append(r.groups, groups...)
	}
}

// WithDebugMode sets the host query consulted before persisting debug-only groups.
// Without it the host is treated as not in debug mode.
func WithDebugMode(mode DebugMode) Option {
	return func(r *Registry) {
		if mode != nil {
			r.debugMode = mode
		}
	}
}

// Registry owns an ordered collection of groups and the file they persist to.
// It is not safe for concurrent use.
type Registry struct {
	path      string
	groups    []Group
	debugMode DebugMode
	logger    *zap.Logger
}

// New creates a registry backed by the file at path.
func New(path string, logger *zap.Logger, opts ...Option) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		path:      path,
		debugMode: StaticDebugMode(false),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add appends group to the registry.
func (r *Registry) Add(group Group) {
	r.groups = append(r.groups, group)
}

// Groups returns the registered groups in registration order.
func (r *Registry) Groups() []Group {
	out := make([]Group, len(r.groups))
	copy(out, r.groups)
	return out
}

// FilePath returns the path of the backing file.
func (r *Registry) FilePath() string {
	return r.path
}

// Group returns the first group whose prefix equals prefix.
func (r *Registry) Group(prefix string) (Group, bool) {
	for _, g := range r.groups {
		if g.Prefix() == prefix {
			return g, true
		}
	}
	return nil, false
}

// GroupOf returns the first registered group of type T.
func GroupOf[T Group](r *Registry) (T, bool) {
	for _, g := range r.groups {
		if typed, ok := g.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

// Load reads the backing file into the registered groups. A missing file is
// created from the current values. Failures are logged and leave the groups
// as they were.
func (r *Registry) Load() {
	if err := r.TryLoad(); err != nil {
		r.logger.Error("failed to load configuration", zap.String("path", r.path), zap.Error(err))
	}
}

// TryLoad is Load returning the failure instead of logging it.
func (r *Registry) TryLoad() error {
	if _, err := os.Stat(r.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r.createDefault()
		}
		return fmt.Errorf("%w: stat %s: %w", ErrIO, r.path, err)
	}

	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrIO, r.path, err)
	}
	defer f.Close()

	rec, err := Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", r.path, err)
	}

	for _, key := range rec.Keys() {
		value, _ := rec.Get(key)
		if _, err := r.Apply(key, value); err != nil {
			r.logRejected(key, err)
		}
	}

	r.logger.Info("configuration loaded", zap.String("path", r.path), zap.Int("keys", rec.Len()))
	return nil
}

// Apply routes one key/value pair to every group whose prefix starts key and
// returns how many groups accepted it. Rejections from individual groups are
// joined into the returned error; the other groups still receive the pair.
func (r *Registry) Apply(key, value string) (int, error) {
	accepted := 0
	var errs []error
	for _, g := range r.groups {
		if !strings.HasPrefix(key, g.Prefix()) {
			continue
		}
		if err := g.InitializeByProperty(key, value); err != nil {
			errs = append(errs, err)
			continue
		}
		accepted++
	}
	return accepted, errors.Join(errs...)
}

// Save writes every persisted group to the backing file, replacing its
// content. Failures are logged; a failure part way leaves a partial file.
func (r *Registry) Save() {
	if err := r.TrySave(); err != nil {
		r.logger.Error("failed to save configuration", zap.String("path", r.path), zap.Error(err))
	}
}

// TrySave is Save returning the failure instead of logging it.
func (r *Registry) TrySave() error {
	if err := r.writeFile(); err != nil {
		return err
	}
	r.logger.Info("configuration saved", zap.String("path", r.path))
	return nil
}

// WriteSections writes one section per persisted group to w, flushing after each.
func (r *Registry) WriteSections(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, g := range r.persisted() {
		rec := NewRecord()
		g.StoreProperties(rec)
		if err := Encode(bw, rec, g.Prefix()+sectionSuffix); err != nil {
			return err
		}
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("%w: flush section %q: %w", ErrIO, g.Prefix(), err)
		}
	}
	return nil
}

// Snapshot returns the pairs Save would write, in file order.
func (r *Registry) Snapshot() *Record {
	rec := NewRecord()
	for _, g := range r.persisted() {
		g.StoreProperties(rec)
	}
	return rec
}

func (r *Registry) createDefault() error {
	if err := r.writeFile(); err != nil {
		return fmt.Errorf("create default configuration: %w", err)
	}
	r.logger.Info("default configuration created", zap.String("path", r.path))
	return nil
}

func (r *Registry) writeFile() (err error) {
	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s for writing: %w", ErrIO, r.path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %w", ErrIO, r.path, closeErr)
		}
	}()
	return r.WriteSections(f)
}

// persisted returns the groups to write, dropping debug-only groups unless
// the host is in debug mode.
func (r *Registry) persisted() []Group {
	debug := r.debugMode.IsDebugModeActive()
	out := make([]Group, 0, len(r.groups))
	for _, g := range r.groups {
		if g.Debug() && !debug {
			continue
		}
		out = append(out, g)
	}
	return out
}

func (r *Registry) logRejected(key string, err error) {
	if errors.Is(err, ErrInvalidValue) {
		r.logger.Warn("ignoring invalid settings value", zap.String("key", key), zap.Error(err))
		return
	}
	r.logger.Debug("ignoring unknown settings key", zap.String("key", key), zap.Error(err))
}

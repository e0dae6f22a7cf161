package settings

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type viewGroup struct {
	*FieldSet
	zoom float32
	grid bool
	name string
}

func newViewGroup(prefix string, debug bool) *viewGroup {
	g := &viewGroup{FieldSet: NewFieldSet(prefix, debug), zoom: 1, grid: true, name: "default"}
	g.Float32("zoom", &g.zoom)
	g.Bool("showGrid", &g.grid)
	g.Text("name", &g.name)
	return g
}

type traceGroup struct {
	*FieldSet
	enabled bool
}

func newTraceGroup() *traceGroup {
	g := &traceGroup{FieldSet: NewFieldSet("trace_", true)}
	g.Bool("enabled", &g.enabled)
	return g
}

func settingsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.properties")
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestRegistryRoundTrip(t *testing.T) {
	path := settingsPath(t)

	user := newViewGroup("user_", false)
	user.zoom = 2.5
	user.grid = false
	user.name = "level one"
	New(path, zaptest.NewLogger(t), WithGroups(user)).Save()

	restored := newViewGroup("user_", false)
	New(path, zaptest.NewLogger(t), WithGroups(restored)).Load()

	if restored.zoom != 2.5 || restored.grid || restored.name != "level one" {
		t.Fatalf("unexpected restored values: zoom=%v grid=%v name=%q", restored.zoom, restored.grid, restored.name)
	}
}

func TestRegistrySaveIsByteStable(t *testing.T) {
	path := settingsPath(t)
	registry := New(path, zaptest.NewLogger(t), WithGroups(newViewGroup("user_", false), newViewGroup("other_", false)))

	registry.Save()
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read first save: %v", err)
	}

	registry.Save()
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read second save: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical bytes:\n%s\n---\n%s", first, second)
	}

	want := "# user_SETTINGS\nuser_zoom = 1\nuser_showGrid = true\nuser_name = default\n" +
		"# other_SETTINGS\nother_zoom = 1\nother_showGrid = true\nother_name = default\n"
	if diff := cmp.Diff(want, string(first)); diff != "" {
		t.Fatalf("unexpected file (-want +got):\n%s", diff)
	}
}

func TestRegistryLoadBootstrapsMissingFile(t *testing.T) {
	path := settingsPath(t)
	logger, logs := observedLogger()

	registry := New(path, logger, WithGroups(newViewGroup("user_", false), newTraceGroup()))
	registry.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected default file to be created: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "user_zoom = 1") {
		t.Fatalf("expected defaults in file, got:\n%s", content)
	}
	if strings.Contains(content, "trace_") {
		t.Fatalf("expected debug-only group to be filtered, got:\n%s", content)
	}
	if logs.FilterMessage("default configuration created").Len() != 1 {
		t.Fatalf("expected bootstrap log entry, got %v", logs.All())
	}
}

func TestRegistryDebugFiltering(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantTrace bool
	}{
		{name: "debug active", debug: true, wantTrace: true},
		{name: "debug inactive", debug: false, wantTrace: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := settingsPath(t)
			registry := New(path, zaptest.NewLogger(t),
				WithGroups(newViewGroup("user_", false), newTraceGroup()),
				WithDebugMode(StaticDebugMode(tc.debug)),
			)
			registry.Save()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if got := strings.Contains(string(data), "# trace_SETTINGS"); got != tc.wantTrace {
				t.Fatalf("trace section present=%v, want %v:\n%s", got, tc.wantTrace, data)
			}
			if !strings.Contains(string(data), "# user_SETTINGS") {
				t.Fatalf("expected non-debug group to be present:\n%s", data)
			}
		})
	}
}

func TestRegistryDebugModeConsultedAtSaveTime(t *testing.T) {
	active := false
	registry := New(settingsPath(t), zaptest.NewLogger(t),
		WithGroups(newTraceGroup()),
		WithDebugMode(DebugModeFunc(func() bool { return active })),
	)

	if registry.Snapshot().Len() != 0 {
		t.Fatalf("expected debug group to be excluded")
	}
	active = true
	if registry.Snapshot().Len() != 1 {
		t.Fatalf("expected debug group to be included once debug mode is active")
	}
}

func TestRegistryRoutesByPrefix(t *testing.T) {
	path := settingsPath(t)
	if err := os.WriteFile(path, []byte("user_zoom=2.0\nother_zoom=9.9\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	user := newViewGroup("user_", false)
	other := newViewGroup("other_", false)
	New(path, zaptest.NewLogger(t), WithGroups(user, other)).Load()

	if user.zoom != 2.0 {
		t.Fatalf("expected user zoom 2.0, got %v", user.zoom)
	}
	if other.zoom != 9.9 {
		t.Fatalf("expected other zoom 9.9, got %v", other.zoom)
	}
}

func TestRegistryDuplicatePrefixesAllReceiveValue(t *testing.T) {
	path := settingsPath(t)
	if err := os.WriteFile(path, []byte("user_zoom = 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	first := newViewGroup("user_", false)
	second := newViewGroup("user_", false)
	broad := newViewGroup("u", false)
	registry := New(path, zaptest.NewLogger(t), WithGroups(first, second, broad))
	registry.Load()

	if first.zoom != 3 || second.zoom != 3 {
		t.Fatalf("expected both groups to receive zoom, got %v and %v", first.zoom, second.zoom)
	}
	if broad.zoom != 1 {
		t.Fatalf("expected broad prefix group to ignore unrelated field, got %v", broad.zoom)
	}

	got, ok := registry.Group("user_")
	if !ok || got != Group(first) {
		t.Fatalf("expected prefix lookup to return the first registered group")
	}
}

func TestRegistryLoadToleratesMalformedFile(t *testing.T) {
	path := settingsPath(t)
	if err := os.WriteFile(path, []byte{0x89, 'P', 'N', 'G', 0x00, 0xff, 0xfe, 0x01}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	logger, logs := observedLogger()

	user := newViewGroup("user_", false)
	registry := New(path, logger, WithGroups(user))
	registry.Load()

	if user.zoom != 1 || !user.grid || user.name != "default" {
		t.Fatalf("expected defaults to be kept, got %+v", user)
	}
	entries := logs.FilterMessage("failed to load configuration").All()
	if len(entries) != 1 || entries[0].Level != zap.ErrorLevel {
		t.Fatalf("expected one error log entry, got %v", logs.All())
	}
	if err := registry.TryLoad(); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode from TryLoad, got %v", err)
	}
}

func TestRegistryLoadIgnoresUnknownAndInvalidKeys(t *testing.T) {
	path := settingsPath(t)
	content := "user_extra = 1\nuser_zoom = wide\nuser_showGrid = false\nstray = x\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	logger, logs := observedLogger()

	user := newViewGroup("user_", false)
	if err := New(path, logger, WithGroups(user)).TryLoad(); err != nil {
		t.Fatalf("TryLoad returned error: %v", err)
	}

	if user.zoom != 1 {
		t.Fatalf("expected zoom to keep its default, got %v", user.zoom)
	}
	if user.grid {
		t.Fatalf("expected valid key after invalid ones to be applied")
	}
	if logs.FilterMessage("ignoring invalid settings value").Len() != 1 {
		t.Fatalf("expected a warning for the invalid value, got %v", logs.All())
	}
	if logs.FilterMessage("ignoring unknown settings key").Len() != 1 {
		t.Fatalf("expected a debug entry for the unknown key, got %v", logs.All())
	}
}

func TestRegistryLoadReportsIOFailure(t *testing.T) {
	dir := t.TempDir()
	logger, logs := observedLogger()

	user := newViewGroup("user_", false)
	registry := New(dir, logger, WithGroups(user))
	registry.Load()

	if logs.FilterMessage("failed to load configuration").Len() != 1 {
		t.Fatalf("expected error log entry, got %v", logs.All())
	}
	if err := registry.TryLoad(); !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestRegistrySaveReportsIOFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.properties")
	logger, logs := observedLogger()

	registry := New(path, logger, WithGroups(newViewGroup("user_", false)))
	registry.Save()
	registry.Load()

	if logs.FilterMessage("failed to save configuration").Len() != 1 {
		t.Fatalf("expected save failure to be logged, got %v", logs.All())
	}
	if logs.FilterMessage("failed to load configuration").Len() != 1 {
		t.Fatalf("expected bootstrap failure to be logged, got %v", logs.All())
	}
	if err := registry.TrySave(); !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

type failingWriter struct {
	writes int
	limit  int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.writes >= w.limit {
		return 0, errors.New("disk full")
	}
	w.writes++
	return len(p), nil
}

func TestRegistryWriteSectionsAbortsAfterFailure(t *testing.T) {
	registry := New("unused", zaptest.NewLogger(t),
		WithGroups(newViewGroup("a_", false), newViewGroup("b_", false), newViewGroup("c_", false)),
	)

	w := &failingWriter{limit: 1}
	err := registry.WriteSections(w)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if w.writes != 1 {
		t.Fatalf("expected the first section to be flushed before the failure, got %d writes", w.writes)
	}
}

func TestRegistryGroupLookup(t *testing.T) {
	view := newViewGroup("user_", false)
	registry := New(settingsPath(t), nil)
	registry.Add(view)

	if got, ok := GroupOf[*viewGroup](registry); !ok || got != view {
		t.Fatalf("expected type lookup to return the view group")
	}
	if _, ok := GroupOf[*traceGroup](registry); ok {
		t.Fatalf("expected no trace group")
	}
	if _, ok := registry.Group("user"); ok {
		t.Fatalf("expected prefix lookup to require an exact match")
	}

	registry.Add(newTraceGroup())
	if _, ok := GroupOf[*traceGroup](registry); !ok {
		t.Fatalf("expected trace group after Add")
	}
	if len(registry.Groups()) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(registry.Groups()))
	}
	if registry.FilePath() == "" {
		t.Fatalf("expected file path")
	}
}

func TestRegistryApplyCountsAcceptingGroups(t *testing.T) {
	first := newViewGroup("user_", false)
	second := newViewGroup("user_", false)
	registry := New(settingsPath(t), nil, WithGroups(first, second))

	n, err := registry.Apply("user_name", "shared")
	if err != nil || n != 2 {
		t.Fatalf("expected 2 accepting groups, got %d (%v)", n, err)
	}

	n, err = registry.Apply("user_missing", "x")
	if n != 0 || !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected unknown field from both groups, got %d (%v)", n, err)
	}

	n, err = registry.Apply("nobody_name", "x")
	if n != 0 || err != nil {
		t.Fatalf("expected unmatched key to be dropped silently, got %d (%v)", n, err)
	}
}

package prefs

import "slices"

// MaxRecentFiles is the number of recently opened files remembered.
const MaxRecentFiles = 10

// RecentFiles is a capacity-bounded list of paths, most recent first.
// It never holds empty entries or duplicates.
type RecentFiles struct {
	capacity int
	paths    []string
}

// NewRecentFiles creates an empty list holding at most capacity paths.
func NewRecentFiles(capacity int) *RecentFiles {
	if capacity <= 0 {
		capacity = MaxRecentFiles
	}
	return &RecentFiles{capacity: capacity}
}

// Add moves path to the front, dropping any earlier occurrence and evicting
// the oldest entry once the list is full. Empty paths are ignored.
func (r *RecentFiles) Add(path string) {
	if path == "" {
		return
	}
	r.paths = slices.DeleteFunc(r.paths, func(p string) bool { return p == path })
	r.paths = slices.Insert(r.paths, 0, path)
	if len(r.paths) > r.capacity {
		r.paths = r.paths[:r.capacity]
	}
}

// Paths returns a copy of the list, most recent first.
func (r *RecentFiles) Paths() []string {
	return slices.Clone(r.paths)
}

// Len returns the number of remembered paths.
func (r *RecentFiles) Len() int {
	return len(r.paths)
}

// Capacity returns the maximum number of remembered paths.
func (r *RecentFiles) Capacity() int {
	return r.capacity
}

// Clear forgets all paths.
func (r *RecentFiles) Clear() {
	r.paths = nil
}

// restore places path in slot index while loading persisted settings.
func (r *RecentFiles) restore(index int, path string) {
	if path == "" || index < 0 || index >= r.capacity {
		return
	}
	if i := slices.Index(r.paths, path); i >= 0 {
		if i == index {
			return
		}
		r.paths = slices.Delete(r.paths, i, i+1)
	}
	if index < len(r.paths) {
		r.paths[index] = path
		return
	}
	r.paths = append(r.paths, path)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package watch tracks the modification times of a set of files.
//
// A Watcher is an explicitly constructed, owned service: callers create one,
// register paths with Add and ask Poll whether a path changed since the last
// time they asked. Polling is synchronous and costs one stat per call, which
// suits a render loop that checks a handful of files once per frame.
//
// A file that does not exist has the zero modification time. Deleting a
// watched file is therefore observed as a change, and so is recreating it.
package watch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
	"time"
)

// Sentinel errors.
var (
	// ErrLimit is returned by Add when the watcher already holds its
	// maximum number of entries.
	ErrLimit = errors.New("watch: too many watched files")

	// ErrNotWatched is returned by Remove for a path that is not watched.
	ErrNotWatched = errors.New("watch: file is not watched")

	// ErrAlreadyWatched is returned by Add for a path that is already
	// watched.
	ErrAlreadyWatched = errors.New("watch: file is already watched")
)

// StatFunc returns file information for a path. It has the signature of
// os.Stat.
type StatFunc func(path string) (fs.FileInfo, error)

type entry struct {
	modified time.Time
}

// Watcher records the last observed modification time of each watched
// file. It is safe for concurrent use.
type Watcher struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	stat    StatFunc
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLimit caps the number of watched files. Zero or negative means no
// limit.
func WithLimit(n int) Option {
	return func(w *Watcher) {
		w.limit = n
	}
}

// WithStat replaces os.Stat, mainly for tests.
func WithStat(fn StatFunc) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.stat = fn
		}
	}
}

// New creates an empty Watcher.
func New(opts ...Option) *Watcher {
	w := &Watcher{
		entries: make(map[string]*entry),
		stat:    os.Stat,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// modTime returns the modification time of path, or the zero time when the
// file cannot be stat'ed.
func (w *Watcher) modTime(path string) time.Time {
	fi, err := w.stat(path)
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}

// Add starts watching path, recording its current modification time.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.entries[path]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyWatched, path)
	}
	if w.limit > 0 && len(w.entries) >= w.limit {
		return fmt.Errorf("%w: %s not watched (max is %d)", ErrLimit, path, w.limit)
	}
	w.entries[path] = &entry{modified: w.modTime(path)}
	return nil
}

// Remove stops watching path.
func (w *Watcher) Remove(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.entries[path]; !ok {
		return fmt.Errorf("%w: %s", ErrNotWatched, path)
	}
	delete(w.entries, path)
	return nil
}

// Watches reports whether path is watched.
func (w *Watcher) Watches(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.entries[path]
	return ok
}

// Files returns the watched paths in sorted order.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.entries))
	for p := range w.entries {
		files = append(files, p)
	}
	sort.Strings(files)
	return files
}

// Len returns the number of watched files.
func (w *Watcher) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// ModTime returns the recorded modification time of path and whether path
// is watched.
func (w *Watcher) ModTime(path string) (time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entries[path]
	if !ok {
		return time.Time{}, false
	}
	return e.modified, true
}

// Current returns the modification time path has now, whether or not it
// is watched. A missing file has the zero time. Nothing is recorded.
func (w *Watcher) Current(path string) time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.modTime(path)
}

// Poll reports whether the modification time of path differs from the
// recorded one, and records the new value. Unwatched paths never change.
func (w *Watcher) Poll(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entries[path]
	if !ok {
		return false
	}
	return e.trigger(w.modTime(path))
}

// PollAll polls every watched file and returns the changed paths in sorted
// order.
func (w *Watcher) PollAll() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var changed []string
	for p, e := range w.entries {
		if e.trigger(w.modTime(p)) {
			changed = append(changed, p)
		}
	}
	sort.Strings(changed)
	return changed
}

func (e *entry) trigger(modified time.Time) bool {
	if modified.Equal(e.modified) {
		return false
	}
	e.modified = modified
	return true
}

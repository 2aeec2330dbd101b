// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-runs a function when documents in a directory change.
package watch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 2 * time.Second

// Func is called once per burst of file events.
type Func func(ctx context.Context) error

// Watcher observes one directory and calls its Func after changes settle.
type Watcher struct {
	dir      string
	debounce time.Duration
	fn       Func
	filter   func(name string) bool
	out      io.Writer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithFilter limits the events that trigger a run to files accepted by f.
func WithFilter(f func(name string) bool) Option {
	return func(w *Watcher) { w.filter = f }
}

// WithOutput sets where run failures and watcher errors are reported.
func WithOutput(out io.Writer) Option {
	return func(w *Watcher) { w.out = out }
}

// New returns a Watcher for dir. A non-positive debounce uses
// DefaultDebounce.
func New(dir string, debounce time.Duration, fn Func, opts ...Option) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{dir: dir, debounce: debounce, fn: fn, out: io.Discard}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. Errors returned by the Func are
// reported and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				fire = time.After(w.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.out, "watch error: %v\n", err)
		case <-fire:
			fire = nil
			if err := w.fn(ctx); err != nil {
				fmt.Fprintf(w.out, "failed  run: %v\n", err)
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	return w.filter == nil || w.filter(ev.Name)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// touchUntil rewrites path until a run is signalled on calls.
func touchUntil(t *testing.T, path string, calls <-chan struct{}) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-calls:
			return
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte(time.Now().String()), 0o644))
		case <-deadline:
			t.Fatal("watcher did not run")
		}
	}
}

func TestRunTriggersAndSurvivesErrors(t *testing.T) {
	dir := t.TempDir()
	calls := make(chan struct{}, 16)
	var n int
	fn := func(ctx context.Context) error {
		n++
		calls <- struct{}{}
		if n == 1 {
			return errors.New("boom")
		}
		return nil
	}

	out := &syncBuffer{}
	w := New(dir, 20*time.Millisecond, fn,
		WithFilter(func(name string) bool { return strings.HasSuffix(name, ".txt") }),
		WithOutput(out))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	touchUntil(t, filepath.Join(dir, "5-2-2023.txt"), calls)
	touchUntil(t, filepath.Join(dir, "6-6-2023.txt"), calls)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Contains(t, out.String(), "failed  run: boom")
}

func TestRunMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), 0, func(context.Context) error { return nil })
	assert.Error(t, w.Run(context.Background()))
}

func TestRelevant(t *testing.T) {
	w := New(".", 0, nil, WithFilter(func(name string) bool { return strings.HasSuffix(name, ".json") }))
	assert.Equal(t, DefaultDebounce, w.debounce)

	assert.True(t, w.relevant(fsnotify.Event{Name: "a.json", Op: fsnotify.Create}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "a.json", Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "a.json", Op: fsnotify.Remove}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "a.json", Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "a.pdf", Op: fsnotify.Create}))
}

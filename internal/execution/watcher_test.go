package execution

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wraptest/internal/discovery"
)

func startWatcher(t *testing.T, root string) (<-chan []string, func()) {
	t.Helper()
	w, err := NewWatcher(root, discovery.NewScanner([]string{"target"}, ".rs"), nil)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []string, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, files []string) {
			batches <- files
		})
	}()

	return batches, func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func waitFor(t *testing.T, batches <-chan []string, want string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case files := <-batches:
			for _, f := range files {
				if f == want {
					return
				}
			}
		case <-deadline:
			t.Fatalf("no change reported for %s", want)
		}
	}
}

func TestWatcher_ReportsChangedSources(t *testing.T) {
	root := t.TempDir()
	batches, stop := startWatcher(t, root)
	defer stop()

	path := filepath.Join(root, "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte("fn a() {}\n"), 0644))
	waitFor(t, batches, path)
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	batches, stop := startWatcher(t, root)
	defer stop()

	sub := filepath.Join(root, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))
	// Give the watcher a moment to pick up the directory
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(sub, "mod.rs")
	require.NoError(t, os.WriteFile(path, []byte("fn a() {}\n"), 0644))
	waitFor(t, batches, path)
}

func TestWatcher_Settled(t *testing.T) {
	w := &Watcher{debounce: time.Second, pending: make(map[string]time.Time)}
	now := time.Now()
	w.pending["b.rs"] = now.Add(-2 * time.Second)
	w.pending["a.rs"] = now.Add(-3 * time.Second)
	w.pending["fresh.rs"] = now

	assert.Equal(t, []string{"a.rs", "b.rs"}, w.settled(now))
	assert.Len(t, w.pending, 1)
	assert.Empty(t, w.settled(now))
}

func TestNewWatcher_MissingRoot(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "absent"), discovery.NewScanner(nil, ".rs"), nil)
	assert.Error(t, err)
}

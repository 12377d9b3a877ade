package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, files []string, reload func() error) {
	t.Helper()

	w, err := New(files, reload, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	// Give the watcher time to register its directories.
	time.Sleep(50 * time.Millisecond)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "types.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("types: []\n"), 0o600))

	var calls atomic.Int32
	startWatcher(t, []string{file}, func() error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o600))
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, calls.Load())

	// A burst of writes is collapsed into one reload.
	for range 3 {
		require.NoError(t, os.WriteFile(file, []byte("types: []\n"), 0o600))
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_ReloadsOnReplace(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "types.yaml")
	require.NoError(t, os.WriteFile(file, []byte("types: []\n"), 0o600))

	var calls atomic.Int32
	startWatcher(t, []string{file}, func() error {
		calls.Add(1)
		return nil
	})

	tmp := filepath.Join(dir, "types.yaml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("types: []\n"), 0o600))
	require.NoError(t, os.Rename(tmp, file))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_KeepsRunningAfterFailedReload(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "types.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	var calls atomic.Int32
	startWatcher(t, []string{file}, func() error {
		calls.Add(1)
		return errors.New("broken catalog")
	})

	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("y"), 0o600))
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestNew_NoFiles(t *testing.T) {
	_, err := New(nil, func() error { return nil })
	assert.Error(t, err)
}

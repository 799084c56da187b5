package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tube-notes/internal/logger"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "prompt.md")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0644))

	var calls atomic.Int32
	var last atomic.Value
	handler := func(ctx context.Context, path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		last.Store(string(data))
		calls.Add(1)
		return nil
	}

	w, err := New(target, handler, logger.Discard())
	require.NoError(t, err)
	w.(*implWatcher).settle = 10 * time.Millisecond
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(target, []byte("v2"), 0644))

	assert.Eventually(t, func() bool {
		v, _ := last.Load().(string)
		return v == "v2"
	}, 3*time.Second, 20*time.Millisecond)
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestWatcherStopsOnCancel(t *testing.T) {
	target := filepath.Join(t.TempDir(), "prompt.md")

	w, err := New(target, func(context.Context, string) error { return nil }, logger.Discard())
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "prompt.md"), nil, logger.Discard())
	assert.Error(t, err)
}

package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setupTestWatcher(t *testing.T) (string, chan string, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "catalog-watch-test-*")
	require.NoError(t, err)

	path := filepath.Join(tmpDir, "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("idx,title\n"), 0o644))

	changes := make(chan string, 4)
	w, err := NewWatcher(path, slog.New(slog.DiscardHandler), func(p string) {
		changes <- p
	})
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx)

	cleanup := func() {
		cancel()
		_ = w.Close()
		_ = os.RemoveAll(tmpDir)
	}
	return path, changes, cleanup
}

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	path, changes, cleanup := setupTestWatcher(t)
	defer cleanup()

	// A burst of writes should settle into a single notification.
	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte("idx,title\n1,Bolt\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case got := <-changes:
		require.Equal(t, filepath.Clean(path), got)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification")
	}

	select {
	case <-changes:
		t.Fatal("write burst produced more than one notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	path, changes, cleanup := setupTestWatcher(t)
	defer cleanup()

	sibling := filepath.Join(filepath.Dir(path), "other.csv")
	require.NoError(t, os.WriteFile(sibling, []byte("x\n"), 0o644))

	select {
	case <-changes:
		t.Fatal("sibling file write should not notify")
	case <-time.After(300 * time.Millisecond):
	}
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := New(file, time.Second)
	assert.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "missing"), time.Second)
	assert.Error(t, err)
}

func TestWatcherCoalescesBurst(t *testing.T) {
	root := t.TempDir()

	w, err := New(root, 200*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// A burst of writes should produce a single trigger after the quiet period
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "f.txt"), []byte{byte(i)}, 0644))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-w.Triggers():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a trigger after the write burst")
	}

	// No second trigger without further changes
	select {
	case <-w.Triggers():
		t.Fatal("unexpected second trigger")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherPicksUpNewSubdirectory(t *testing.T) {
	root := t.TempDir()

	w, err := New(root, 100*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))

	select {
	case <-w.Triggers():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a trigger for the new directory")
	}

	// Give the watcher a moment to add the new directory, then change inside it
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "inner.txt"), []byte("x"), 0644))

	select {
	case <-w.Triggers():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a trigger for a change inside the new directory")
	}
}

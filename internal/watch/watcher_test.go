// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/wayfind/internal/config"
)

const testDebounce = 50 * time.Millisecond

// next reads one result or fails the test after a generous timeout.
func next(t *testing.T, w *Watcher) Result {
	t.Helper()
	select {
	case r := <-w.Results():
		return r
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for a reload result")
		return Result{}
	}
}

func startWatcher(t *testing.T, path string) *Watcher {
	t.Helper()

	w, err := New(path, testDebounce)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go w.Watch(ctx)

	return w
}

func TestWatcher_InitialResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, config.DefaultDocument(), 0o644))

	w := startWatcher(t, path)

	r := next(t, w)
	require.NoError(t, r.Err)
	require.NotNil(t, r.Config)
	require.Equal(t, 2, r.Config.Parallelism)
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, config.DefaultDocument(), 0o644))

	w := startWatcher(t, path)
	next(t, w) // initial pass

	// break the document
	require.NoError(t, os.WriteFile(path, []byte("parallelism = [broken"), 0o644))

	r := next(t, w)
	require.Error(t, r.Err)
	require.Nil(t, r.Config)

	// and fix it again
	require.NoError(t, os.WriteFile(path, config.DefaultDocument(), 0o644))

	r = next(t, w)
	require.NoError(t, r.Err)
	require.NotNil(t, r.Config)
}

func TestWatcher_SurvivesRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, config.DefaultDocument(), 0o644))

	w := startWatcher(t, path)
	next(t, w)

	// editor-style save: write a temp file and rename it over the original
	tmp := filepath.Join(dir, ".config.toml.swp")
	require.NoError(t, os.WriteFile(tmp, config.DefaultDocument(), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	r := next(t, w)
	require.NoError(t, r.Err)
	require.NotNil(t, r.Config)
}

func TestWatcher_MissingFileReportsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	w := startWatcher(t, path)

	r := next(t, w)
	require.Error(t, r.Err)
}

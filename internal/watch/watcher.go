// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch revalidates a configuration document whenever it changes
// on disk.
//
// The parent directory is watched rather than the file itself because
// most editors save by writing a temp file and renaming it over the
// original, which replaces the inode the watch was attached to. Events
// are debounced so a burst of writes produces one reload, and a rate
// limiter enforces a floor between reloads even under constant churn.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/jeranaias/wayfind/internal/config"
)

// Result is one reload outcome. Exactly one of Config and Err is set.
type Result struct {
	Config *config.Config
	Err    error
}

// Watcher reloads and revalidates a document on file changes.
type Watcher struct {
	path    string
	base    string
	fsw     *fsnotify.Watcher
	limiter *rate.Limiter

	debounce time.Duration
	results  chan Result

	mu      sync.Mutex
	pending time.Time // zero when no change is queued
}

// New creates a watcher for path. Reloads are debounced by debounce and
// never happen more often than once per debounce interval.
func New(path string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		path:     path,
		base:     filepath.Base(path),
		fsw:      fsw,
		limiter:  rate.NewLimiter(rate.Every(debounce), 1),
		debounce: debounce,
		results:  make(chan Result, 1),
	}, nil
}

// Results returns the channel reload outcomes are delivered on.
func (w *Watcher) Results() <-chan Result {
	return w.results
}

// Watch blocks until ctx is cancelled, delivering an initial result
// immediately and one result per (debounced) change after that.
func (w *Watcher) Watch(ctx context.Context) error {
	w.reload(ctx)

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != w.base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.mark()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.deliver(ctx, Result{Err: err})

		case <-ticker.C:
			if w.due() {
				w.reload(ctx)
			}
		}
	}
}

// mark queues a change for the next due check.
func (w *Watcher) mark() {
	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

// due reports whether a queued change has settled for the debounce
// interval, clearing it if so.
func (w *Watcher) due() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		return false
	}
	w.pending = time.Time{}
	return true
}

// reload loads and validates the document, then delivers the outcome.
func (w *Watcher) reload(ctx context.Context) {
	if err := w.limiter.Wait(ctx); err != nil {
		return
	}
	cfg, err := config.Load(w.path)
	if err != nil {
		w.deliver(ctx, Result{Err: err})
		return
	}
	w.deliver(ctx, Result{Config: cfg})
}

// deliver sends a result without blocking forever on a gone consumer.
func (w *Watcher) deliver(ctx context.Context, r Result) {
	select {
	case w.results <- r:
	case <-ctx.Done():
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

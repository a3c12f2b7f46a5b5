// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watch_cmd.go - wayfind watch: revalidate a document on every change.
//
// Runs until interrupted. Each save reprints the validation outcome, so
// a document can be edited side by side with live feedback.

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeranaias/wayfind/internal/watch"
)

const defaultWatchInterval = 500 * time.Millisecond

// runWatch handles `wayfind watch <file> [--interval <dur>]`.
func runWatch(args *ArgParser) error {
	path := args.Positional(0)
	if path == "" {
		return usageErrorf("watch requires a file argument")
	}
	interval := args.DurationFlag("interval", defaultWatchInterval)
	verbose := os.Getenv("WAYFIND_VERBOSE") != ""

	watcher, err := watch.New(path, interval)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(TitleStyle.Render("watching "+path) + DimStyle.Render(" (ctrl-c to stop)"))

	go watcher.Watch(ctx)

	for {
		select {
		case <-ctx.Done():
			fmt.Println(DimStyle.Render("stopped"))
			return nil

		case r := <-watcher.Results():
			if verbose {
				fmt.Println(DimStyle.Render(time.Now().Format("15:04:05 ") + "reloaded"))
			}
			if r.Err != nil {
				printFindings(path, r.Err)
				continue
			}
			fmt.Println(SuccessStyle.Render("ok") + DimStyle.Render(" "+path))
		}
	}
}

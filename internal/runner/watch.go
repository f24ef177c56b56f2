package runner

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mainbong/spagrep/internal/config"
	"github.com/mainbong/spagrep/internal/logger"
	"github.com/mainbong/spagrep/internal/terminal"
)

// Watch runs the search once and then again every time the file is written, until ctx is
// done. Errors from the first run are returned unchanged; later failures go to onError
// and watching continues.
func (r *Runner) Watch(ctx context.Context, req *config.Request, onError func(error)) error {
	if err := r.Run(req); err != nil {
		return err
	}

	target, err := filepath.Abs(req.Filename)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// editors often replace the file instead of writing it, so watch the directory
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to add file to watcher: %w", err)
	}
	logger.Info("watching %s", target)

	renderer := terminal.NewRenderer(r.out, req.Query, req.CaseSensitive)
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped watching %s", target)
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("change detected: %s", event)
			if err := renderer.RenderHeader(req.Filename); err != nil {
				return fmt.Errorf("failed to write results: %w", err)
			}
			if err := r.Run(req); err != nil {
				onError(err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/slidecraft/deck2video/internal/logger"
)

type implWatcher struct {
	deckPath string
	debounce time.Duration
	handler  RerunHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
}

// Start monitors the deck file and reruns the handler after each burst of
// changes. A save from most editors produces several events in quick
// succession; the debounce timer collapses them into one rerun.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "watching %s (rerun after %s of quiet)", w.deckPath, w.debounce)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "watch stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.isDeckEvent(event) {
				continue
			}
			w.logger.Debug(ctx, "deck changed: %s", event.Op)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			w.logger.Info(ctx, "deck settled, rerunning pipeline")
			if err := w.handler(ctx); err != nil {
				w.logger.Error(ctx, "rerun failed: %v", err)
			} else {
				w.logger.Info(ctx, "rerun complete")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "watch error: %v", err)
		}
	}
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// isDeckEvent keeps only writes and creates of the watched file itself.
// Creates matter because editors often save by writing a new file over
// the old one.
func (w *implWatcher) isDeckEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.deckPath {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}

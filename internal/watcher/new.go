package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/slidecraft/deck2video/internal/logger"
)

// New creates a Watcher on a single deck file. Editors replace files
// rather than write in place, so the watch is on the containing
// directory and events are filtered down to the deck's name.
func New(deckPath string, debounce time.Duration, handler RerunHandler, log logger.Logger) (Watcher, error) {
	abs, err := filepath.Abs(deckPath)
	if err != nil {
		return nil, fmt.Errorf("resolve deck path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &implWatcher{
		deckPath: abs,
		debounce: debounce,
		handler:  handler,
		logger:   log,
		watcher:  fsw,
	}, nil
}

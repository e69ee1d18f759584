// Package watcher reruns the pipeline whenever the deck file changes,
// for a local preview loop.
package watcher

import "context"

// RerunHandler is invoked after the deck file settles. Reruns are
// sequential; the next change is handled only after the current rerun
// returns. Handler errors are logged and the watch continues.
type RerunHandler func(ctx context.Context) error

type Watcher interface {
	// Start blocks until ctx is cancelled or the underlying watch fails.
	Start(ctx context.Context) error
	Stop() error
}

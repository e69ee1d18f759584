// Package pipeline orchestrates the full deck-to-video run: validate,
// render, synthesize, reconcile, encode, concatenate. Everything is
// strictly sequential; each external call finishes before the next starts.
package pipeline

import "context"

// Options are the per-invocation inputs resolved by the CLI.
type Options struct {
	// DeckPath is the presentation file, used for rendering and as the
	// base directory for screencast references.
	DeckPath string
	// ManifestPath is the slide manifest written by the external parser.
	ManifestPath string
	// Output is the final video path.
	Output string
	// TempDir holds all intermediate artifacts. Always set before Run.
	TempDir string
	// UserTempDir marks a caller-supplied temp dir, which is never removed.
	UserTempDir bool
}

type Pipeline interface {
	// Run executes the whole pipeline. On failure the temp dir is
	// preserved for inspection; on success it is removed unless keep-temp
	// is configured or the dir was user-supplied.
	Run(ctx context.Context) error

	// Redo re-synthesizes only the given slide indices against existing
	// artifacts in the temp dir, then re-assembles the whole video.
	Redo(ctx context.Context, indices []int) error

	// Reassemble skips synthesis entirely and rebuilds the video from the
	// artifacts already in the temp dir.
	Reassemble(ctx context.Context) error
}

package synth

import (
	"context"
	"errors"

	"github.com/slidecraft/deck2video/internal/deck"
)

// ErrOperatorQuit is returned when the operator ends the run from the
// interactive review prompt. It is a clean early exit, not a failure;
// artifacts produced so far stay on disk.
var ErrOperatorQuit = errors.New("operator quit")

// Synthesizer turns slide narration into per-slide audio artifacts.
type Synthesizer interface {
	// GenerateAll writes one index-keyed WAV per slide into tempDir,
	// overwriting in place. Slides whose synthesis fails terminally get a
	// silent artifact; their indices are returned. The only errors are
	// fatal ones: engine load failure, artifact write failure, or
	// ErrOperatorQuit.
	GenerateAll(ctx context.Context, slides []deck.Slide, tempDir string) (failed []int, err error)

	// GenerateSubset re-runs the same protocol for the named slide indices
	// only, overwriting just those artifacts. Other slides' audio is left
	// alone.
	GenerateSubset(ctx context.Context, slides []deck.Slide, indices []int, tempDir string) (failed []int, err error)
}

package assembler

import (
	"context"
	"errors"
)

// ErrEncodingFailed marks a nonzero exit from the external encoder or
// concatenator. It is fatal for the run; everything already on disk is
// kept for inspection and retry.
var ErrEncodingFailed = errors.New("encoding failed")

// Assembler encodes per-slide segments and joins them into the final video.
type Assembler interface {
	// EncodeSegment renders one slide's timed segment into tempDir and
	// returns its path.
	EncodeSegment(ctx context.Context, tempDir string, spec SegmentSpec, fps int) (string, error)
	// Concatenate joins encoded segments, already ordered by slide index,
	// into the output file.
	Concatenate(ctx context.Context, tempDir string, segments []string, output string) error
}

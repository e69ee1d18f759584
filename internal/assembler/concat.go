package assembler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const concatManifest = "concat.txt"

// Concatenate stream-copies the ordered segments into the final artifact
// via ffmpeg's concat demuxer. The manifest and segments are left on disk
// whether or not this succeeds.
func (a *implAssembler) Concatenate(ctx context.Context, tempDir string, segments []string, output string) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: no segments to concatenate", ErrEncodingFailed)
	}

	var manifest strings.Builder
	for _, seg := range segments {
		// The manifest references segments by filename; ffmpeg runs inside
		// tempDir so no path quoting is needed.
		fmt.Fprintf(&manifest, "file '%s'\n", filepath.Base(seg))
	}
	manifestPath := filepath.Join(tempDir, concatManifest)
	if err := os.WriteFile(manifestPath, []byte(manifest.String()), 0644); err != nil {
		return fmt.Errorf("write concat manifest: %w", err)
	}

	absOutput, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	a.logger.Info(ctx, "concatenating %d segments", len(segments))
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", concatManifest,
		"-c", "copy",
		absOutput,
	}
	if _, err := a.exec.ExecuteInDir(ctx, tempDir, "ffmpeg", args...); err != nil {
		return fmt.Errorf("%w: concatenate: %v", ErrEncodingFailed, err)
	}

	if info, err := os.Stat(absOutput); err == nil {
		a.logger.Info(ctx, "output: %s (%.1f MB)", absOutput, float64(info.Size())/1024/1024)
	}
	return nil
}

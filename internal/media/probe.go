// Package media queries durations and framerates of audio/video files
// through ffprobe.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/slidecraft/deck2video/pkg/executor"
)

type formatInfo struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type streamInfo struct {
	Streams []struct {
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
}

// Duration returns the duration of a media file in seconds.
func Duration(ctx context.Context, exec executor.Executor, path string) (float64, error) {
	out, err := exec.Execute(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var info formatInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return 0, fmt.Errorf("parse ffprobe output for %s: %w", path, err)
	}
	dur, err := strconv.ParseFloat(info.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q for %s: %w", info.Format.Duration, path, err)
	}
	return dur, nil
}

// FPS returns the framerate of the first video stream.
func FPS(ctx context.Context, exec executor.Executor, path string) (float64, error) {
	out, err := exec.Execute(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-select_streams", "v:0",
		"-show_streams",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var info streamInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return 0, fmt.Errorf("parse ffprobe output for %s: %w", path, err)
	}
	if len(info.Streams) == 0 {
		return 0, fmt.Errorf("no video stream in %s", path)
	}

	// r_frame_rate is a fraction like "30/1" or "30000/1001".
	rate := info.Streams[0].RFrameRate
	num, den, ok := strings.Cut(rate, "/")
	if !ok {
		return 0, fmt.Errorf("unexpected frame rate %q in %s", rate, path)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("parse frame rate %q: %w", rate, err)
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("parse frame rate %q in %s", rate, path)
	}
	return n / d, nil
}

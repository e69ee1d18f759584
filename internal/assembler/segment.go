package assembler

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/slidecraft/deck2video/internal/deck"
)

// Stills are scaled down or up onto a 1920x1080 canvas.
const stillScaleFilter = "scale=1920:1080:force_original_aspect_ratio=decrease," +
	"pad=1920:1080:(ow-iw)/2:(oh-ih)/2"

// Screencasts are only scaled down if larger than 1920x1080, otherwise kept
// at original size and centered on a black canvas.
const clipScaleFilter = "scale='min(iw,1920)':'min(ih,1080)':force_original_aspect_ratio=decrease," +
	"pad=1920:1080:(ow-iw)/2:(oh-ih)/2"

// EncodeSegment renders a slide's segment as an mpegts file so the final
// concatenation can be a pure stream copy.
func (a *implAssembler) EncodeSegment(ctx context.Context, tempDir string, spec SegmentSpec, fps int) (string, error) {
	segment := filepath.Join(tempDir, deck.SegmentFileName(spec.Index))

	var args []string
	if spec.Kind == KindScreencast {
		args = a.screencastArgs(spec, fps, segment)
	} else {
		args = a.stillArgs(spec, fps, segment)
	}

	a.logger.Debug(ctx, "segment %d: ffmpeg %v", spec.Index, args)
	if _, err := a.exec.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("%w: slide %d: %v", ErrEncodingFailed, spec.Index, err)
	}

	a.logger.Info(ctx, "segment %d: encoded (%.2fs)", spec.Index, spec.Duration)
	return segment, nil
}

// stillArgs loops the slide image for the padded narration duration.
func (a *implAssembler) stillArgs(spec SegmentSpec, fps int, segment string) []string {
	args := []string{
		"-y",
		"-loop", "1",
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", spec.Visual,
		"-i", spec.Audio,
		"-t", fmt.Sprintf("%.4f", spec.Duration),
		"-c:v", a.cfg.FFmpeg.VideoCodec,
		"-tune", "stillimage",
		"-pix_fmt", "yuv420p",
		"-vf", stillScaleFilter,
		"-c:a", a.cfg.FFmpeg.AudioCodec,
		"-b:a", a.cfg.FFmpeg.AudioBitrate,
	}
	args = append(args, audioFilterArgs(spec.PaddingMS)...)
	args = append(args,
		"-shortest",
		"-f", "mpegts",
		segment,
	)
	return args
}

// screencastArgs strips the clip's own audio, maps in the narration, and
// freezes the last frame when the padded narration outlasts the clip.
func (a *implAssembler) screencastArgs(spec SegmentSpec, fps int, segment string) []string {
	vf := clipScaleFilter
	if spec.Freeze > 0 {
		vf = fmt.Sprintf("tpad=stop_mode=clone:stop_duration=%.4f,%s", spec.Freeze, clipScaleFilter)
	}

	args := []string{
		"-y",
		"-i", spec.Visual,
		"-i", spec.Audio,
		"-t", fmt.Sprintf("%.4f", spec.Duration),
		"-map", "0:v",
		"-map", "1:a",
		"-c:v", a.cfg.FFmpeg.VideoCodec,
		"-pix_fmt", "yuv420p",
		"-r", fmt.Sprintf("%d", fps),
		"-vf", vf,
	}
	args = append(args, audioFilterArgs(spec.PaddingMS)...)
	args = append(args,
		"-c:a", a.cfg.FFmpeg.AudioCodec,
		"-b:a", a.cfg.FFmpeg.AudioBitrate,
		"-f", "mpegts",
		segment,
	)
	return args
}

func audioFilterArgs(paddingMS int) []string {
	if paddingMS <= 0 {
		return nil
	}
	return []string{"-af", fmt.Sprintf("adelay=%d|%d", paddingMS, paddingMS)}
}

package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResolveScreencasts turns each slide's screencast reference into an
// absolute path under baseDir. Paths that escape the deck directory or
// point at missing files are rejected. The returned slice is indexed by
// slide position; entries without a screencast are empty.
func ResolveScreencasts(slides []Slide, baseDir string) ([]string, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve deck directory: %w", err)
	}

	resolved := make([]string, len(slides))
	for i, s := range slides {
		if s.Screencast == "" {
			continue
		}
		p := filepath.Join(absBase, s.Screencast)
		clean := filepath.Clean(p)
		if clean != absBase && !strings.HasPrefix(clean, absBase+string(filepath.Separator)) {
			return nil, fmt.Errorf("%w: screencast path escapes deck directory: %s",
				ErrInvalidInput, s.Screencast)
		}
		if _, err := os.Stat(clean); err != nil {
			return nil, fmt.Errorf("%w: screencast not found: %s", ErrInvalidInput, clean)
		}
		resolved[i] = clean
	}
	return resolved, nil
}

// AudioFileName is the stable index-keyed name of a slide's audio artifact.
func AudioFileName(index int) string {
	return fmt.Sprintf("audio_%03d.wav", index)
}

// ImageFileName is the stable index-keyed name of a slide's rendered still.
func ImageFileName(index int) string {
	return fmt.Sprintf("slide_%03d.png", index)
}

// SegmentFileName is the stable index-keyed name of a slide's encoded segment.
func SegmentFileName(index int) string {
	return fmt.Sprintf("segment_%03d.ts", index)
}

// DiscoverArtifacts finds existing slide images and audio files in the temp
// directory, for the reassemble and redo modes. Both lists are sorted by
// index and must agree with each other and, when slideCount > 0, with the
// parsed deck.
func DiscoverArtifacts(tempDir string, slideCount int) (images []string, audio []string, err error) {
	images, err = sortedGlob(tempDir, "slide_[0-9][0-9][0-9].png")
	if err != nil {
		return nil, nil, err
	}
	audio, err = sortedGlob(tempDir, "audio_[0-9][0-9][0-9].wav")
	if err != nil {
		return nil, nil, err
	}

	if len(images) == 0 {
		return nil, nil, fmt.Errorf("%w: no slide images found in %s", ErrInvalidInput, tempDir)
	}
	if len(audio) == 0 {
		return nil, nil, fmt.Errorf("%w: no audio files found in %s", ErrInvalidInput, tempDir)
	}
	if len(images) != len(audio) {
		return nil, nil, fmt.Errorf("%w: found %d images but %d audio files in %s",
			ErrInvalidInput, len(images), len(audio), tempDir)
	}
	if slideCount > 0 && len(images) != slideCount {
		return nil, nil, fmt.Errorf("%w: deck has %d slides but %s holds %d rendered images",
			ErrInvalidInput, slideCount, tempDir, len(images))
	}
	return images, audio, nil
}

func sortedGlob(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

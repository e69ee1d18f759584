package deck

import (
	"encoding/json"
	"fmt"
	"os"
)

// MaxSlides bounds a deck at the three digits the index-keyed artifact
// names (audio_%03d.wav, slide_%03d.png, segment_%03d.ts) can carry.
const MaxSlides = 999

// LoadManifest reads the slide manifest written by the external parser:
// a JSON array of slide records ordered by index.
func LoadManifest(path string) ([]Slide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read slide manifest: %w", err)
	}

	var slides []Slide
	if err := json.Unmarshal(data, &slides); err != nil {
		return nil, fmt.Errorf("%w: parse slide manifest: %v", ErrInvalidInput, err)
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("%w: manifest contains no slides", ErrInvalidInput)
	}
	if len(slides) > MaxSlides {
		return nil, fmt.Errorf("%w: deck has %d slides, the maximum is %d",
			ErrInvalidInput, len(slides), MaxSlides)
	}

	for i, s := range slides {
		if s.Index != i+1 {
			return nil, fmt.Errorf("%w: slide at position %d has index %d, want %d",
				ErrInvalidInput, i, s.Index, i+1)
		}
	}
	return slides, nil
}

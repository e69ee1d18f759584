// Package deck holds the slide records handed over by the external
// presentation parser, plus the pre-flight validation the pipeline runs
// before any synthesis starts.
package deck

import "errors"

// ErrInvalidInput marks malformed or inconsistent pipeline inputs:
// a bad manifest, a missing screencast, or an artifact count mismatch.
// These are fatal before synthesis starts.
var ErrInvalidInput = errors.New("invalid input")

// Slide is one slide of the deck. Records are created once by the parser
// and never mutated afterwards; the pronunciation rewrite happens on a
// copy of the notes text, not in place.
type Slide struct {
	// Index is 1-based and contiguous across the deck.
	Index int `json:"index"`
	// Body is the slide's markdown body. Unused by this pipeline but kept
	// so the manifest round-trips.
	Body string `json:"body"`
	// Notes is the narration text, empty for silent slides.
	Notes string `json:"notes"`
	// Screencast is an optional path to a clip that replaces the still
	// image for this slide, relative to the deck file.
	Screencast string `json:"screencast,omitempty"`
}

// HasNotes reports whether the slide carries narration text.
func (s Slide) HasNotes() bool {
	return s.Notes != ""
}

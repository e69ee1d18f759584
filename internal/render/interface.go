// Package render drives the external slide renderer that turns a deck
// file into one PNG per slide.
package render

import "context"

// Renderer renders a deck into index-keyed slide images inside tempDir.
// Implementations shell out to an external tool; the pipeline only depends
// on this interface so tests can substitute a fake.
type Renderer interface {
	// Render returns the image paths in slide order. The number of images
	// must match expectedCount or the render fails.
	Render(ctx context.Context, deckPath, tempDir string, expectedCount int) ([]string, error)
}

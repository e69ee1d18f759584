// Package speech owns the speech-model handle: the engine contract, the
// exec-backed worker implementation and the model device placement.
package speech

import (
	"context"
	"errors"
	"strings"

	"github.com/slidecraft/deck2video/internal/audio"
)

// ErrResourceExhausted marks an accelerator out-of-memory failure during
// generation. The orchestrator recovers from it once per run by moving the
// model to CPU and retrying the slide.
var ErrResourceExhausted = errors.New("accelerator memory exhausted")

// Request carries the parameters of one model call.
type Request struct {
	Text         string
	VoicePath    string
	Exaggeration float64
	CFGWeight    float64
	Temperature  float64
}

// Engine is the speech-model handle. It is owned and passed explicitly;
// nothing in this package keeps process-wide state.
type Engine interface {
	// Load brings the model up on the requested device ("auto", "cpu",
	// "cuda", "mps") and returns the resolved placement.
	Load(ctx context.Context, device string) (Device, error)
	// Generate synthesizes one chunk of text into a waveform.
	Generate(ctx context.Context, req Request) (*audio.Waveform, error)
	// MoveToCPU relocates the model off the accelerator and frees its memory.
	MoveToCPU(ctx context.Context) error
	// Release reclaims transient accelerator memory. Called after every
	// chunk and at every slide boundary to bound peak usage.
	Release(ctx context.Context) error
	// SampleRate is the model's output rate, valid after Load.
	SampleRate() int
	Close() error
}

// isOOMMessage matches the error text accelerator runtimes emit on
// allocation failure.
func isOOMMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "out of memory")
}

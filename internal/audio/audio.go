// Package audio holds the in-memory waveform type shared by the speech
// engine and the synthesis orchestrator, and writes WAV artifacts.
package audio

import (
	"encoding/binary"
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// DefaultSampleRate matches the chatterbox-style speech models.
	DefaultSampleRate = 24000

	numChannels   = 1
	bitsPerSample = 16
)

// Waveform is a mono 16-bit PCM buffer.
type Waveform struct {
	Data       []int
	SampleRate int
}

// Seconds returns the waveform duration in seconds.
func (w *Waveform) Seconds() float64 {
	if w.SampleRate == 0 {
		return 0
	}
	return float64(len(w.Data)) / float64(w.SampleRate)
}

// Silence produces a waveform of all-zero samples. The duration is rounded
// down to whole samples. Deterministic: identical inputs yield identical
// buffers, with no dependency on the speech pathway.
func Silence(seconds float64, sampleRate int) *Waveform {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	n := int(float64(sampleRate) * seconds)
	if n < 0 {
		n = 0
	}
	return &Waveform{Data: make([]int, n), SampleRate: sampleRate}
}

// FromPCM16 decodes little-endian 16-bit mono PCM bytes.
func FromPCM16(pcm []byte, sampleRate int) (*Waveform, error) {
	if len(pcm)%2 != 0 {
		return nil, fmt.Errorf("pcm payload not aligned to 16-bit samples")
	}
	data := make([]int, len(pcm)/2)
	for i := range data {
		data[i] = int(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
	}
	return &Waveform{Data: data, SampleRate: sampleRate}, nil
}

// Concat joins waveforms along time, in order. All parts must share one
// sample rate.
func Concat(parts []*Waveform) (*Waveform, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("no waveforms to concatenate")
	}
	rate := parts[0].SampleRate
	total := 0
	for _, p := range parts {
		if p.SampleRate != rate {
			return nil, fmt.Errorf("sample rate mismatch: %d vs %d", p.SampleRate, rate)
		}
		total += len(p.Data)
	}
	data := make([]int, 0, total)
	for _, p := range parts {
		data = append(data, p.Data...)
	}
	return &Waveform{Data: data, SampleRate: rate}, nil
}

// WriteWAV writes the waveform to path as mono 16-bit PCM WAV,
// overwriting any existing file.
func WriteWAV(path string, w *Waveform) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}
	defer file.Close()

	buffer := &gaudio.IntBuffer{
		Format: &gaudio.Format{NumChannels: numChannels, SampleRate: w.SampleRate},
		Data:   w.Data,
	}

	enc := wav.NewEncoder(file, w.SampleRate, bitsPerSample, numChannels, 1)
	if err := enc.Write(buffer); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav encoder: %w", err)
	}
	return nil
}

// WriteSilentWAV writes a silent artifact of the given duration.
// Used for notesless slides and as the universal synthesis fallback.
func WriteSilentWAV(path string, seconds float64, sampleRate int) error {
	return WriteWAV(path, Silence(seconds, sampleRate))
}

package synth

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/slidecraft/deck2video/internal/audio"
	"github.com/slidecraft/deck2video/internal/deck"
	"github.com/slidecraft/deck2video/internal/notes"
	"github.com/slidecraft/deck2video/internal/pronounce"
	"github.com/slidecraft/deck2video/internal/speech"
)

// GenerateAll drives synthesis for every slide, strictly in index order.
func (s *implSynthesizer) GenerateAll(ctx context.Context, slides []deck.Slide, tempDir string) ([]int, error) {
	needSpeech := false
	for _, slide := range slides {
		if slide.HasNotes() {
			needSpeech = true
			break
		}
	}

	// The model is heavy; load it only when something needs narration.
	if needSpeech && s.state == nil {
		device, err := s.engine.Load(ctx, s.cfg.Speech.Device)
		if err != nil {
			return nil, fmt.Errorf("load speech model: %w", err)
		}
		s.state = speech.NewState(device)
		s.logger.Info(ctx, "speech model ready on %s", device)
	}

	var failed []int
	for _, slide := range slides {
		outPath := filepath.Join(tempDir, deck.AudioFileName(slide.Index))

		if !slide.HasNotes() {
			hold := s.cfg.Timing.HoldDuration
			if err := audio.WriteSilentWAV(outPath, hold, s.sampleRate()); err != nil {
				return failed, fmt.Errorf("slide %d: write silent audio: %w", slide.Index, err)
			}
			s.logger.Info(ctx, "slide %d: silent (%.1fs)", slide.Index, hold)
			continue
		}

		// Pure rewrite; the slide record itself stays untouched.
		text := pronounce.Apply(slide.Notes, s.table)
		if text != slide.Notes {
			s.logger.Debug(ctx, "slide %d: notes after pronunciations: %q", slide.Index, text)
		}

		wf, nSentences, nChunks, err := s.synthesizeSlide(ctx, slide.Index, text)
		if err != nil && errors.Is(err, speech.ErrResourceExhausted) && s.state.OnAccelerator() {
			// One-time downgrade for the whole run, then the entire
			// slide's chunk loop is retried from scratch.
			s.logger.Warn(ctx, "slide %d: accelerator memory exhausted, moving model to cpu", slide.Index)
			if mvErr := s.engine.MoveToCPU(ctx); mvErr != nil {
				s.logger.Warn(ctx, "slide %d: move to cpu: %v", slide.Index, mvErr)
			}
			s.state.Downgrade()
			wf, nSentences, nChunks, err = s.synthesizeSlide(ctx, slide.Index, text)
		}
		if err != nil {
			if quit := ctx.Err(); quit != nil {
				return failed, quit
			}
			s.logger.Error(ctx, "slide %d: synthesis failed (%v), substituting silence", slide.Index, err)
			if wErr := audio.WriteSilentWAV(outPath, s.cfg.Timing.HoldDuration, s.sampleRate()); wErr != nil {
				return failed, fmt.Errorf("slide %d: write fallback audio: %w", slide.Index, wErr)
			}
			failed = append(failed, slide.Index)
			continue
		}

		if err := audio.WriteWAV(outPath, wf); err != nil {
			return failed, fmt.Errorf("slide %d: write audio: %w", slide.Index, err)
		}
		s.logger.Info(ctx, "slide %d: synthesized %d sentence(s) in %d chunk(s), %.2fs",
			slide.Index, nSentences, nChunks, wf.Seconds())

		if s.cfg.Review.Interactive {
			if err := s.review(ctx, slide.Index, text, outPath); err != nil {
				return failed, err
			}
		}
	}

	return failed, nil
}

// GenerateSubset filters the deck down to the requested indices and runs
// the normal synthesis protocol over them.
func (s *implSynthesizer) GenerateSubset(ctx context.Context, slides []deck.Slide, indices []int, tempDir string) ([]int, error) {
	wanted := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 1 || idx > len(slides) {
			return nil, fmt.Errorf("%w: slide index %d out of range (deck has %d slides)",
				deck.ErrInvalidInput, idx, len(slides))
		}
		wanted[idx] = true
	}

	subset := make([]deck.Slide, 0, len(wanted))
	for _, slide := range slides {
		if wanted[slide.Index] {
			subset = append(subset, slide)
		}
	}
	return s.GenerateAll(ctx, subset, tempDir)
}

// synthesizeSlide runs the chunk loop for one slide and concatenates the
// resulting waveforms. Transient accelerator memory is released after
// every chunk, on success and on failure; unreleased chunk buffers add up
// across a deck and exhaust the accelerator before the run finishes.
func (s *implSynthesizer) synthesizeSlide(ctx context.Context, index int, text string) (*audio.Waveform, int, int, error) {
	sentences := notes.SplitSentences(text)
	chunks := notes.Chunk(sentences, notes.ChunkSize)
	if len(chunks) == 0 {
		return nil, 0, 0, fmt.Errorf("slide %d: no narration text", index)
	}
	s.logger.Debug(ctx, "slide %d: %d sentence(s) in %d chunk(s)", index, len(sentences), len(chunks))

	parts := make([]*audio.Waveform, 0, len(chunks))
	for j, chunk := range chunks {
		wf, err := s.engine.Generate(ctx, speech.Request{
			Text:         chunk,
			VoicePath:    s.cfg.Speech.VoicePath,
			Exaggeration: s.cfg.Speech.Exaggeration,
			CFGWeight:    s.cfg.Speech.CFGWeight,
			Temperature:  s.cfg.Speech.Temperature,
		})
		s.release(ctx)
		if err != nil {
			return nil, 0, 0, err
		}
		parts = append(parts, wf)
		if len(chunks) > 1 {
			s.logger.Info(ctx, "slide %d: chunk %d/%d ok", index, j+1, len(chunks))
		}
	}

	combined, err := audio.Concat(parts)
	s.release(ctx)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("slide %d: join chunks: %w", index, err)
	}
	return combined, len(sentences), len(chunks), nil
}

func (s *implSynthesizer) release(ctx context.Context) {
	if err := s.engine.Release(ctx); err != nil {
		s.logger.Warn(ctx, "release accelerator memory: %v", err)
	}
}

func (s *implSynthesizer) sampleRate() int {
	if rate := s.engine.SampleRate(); rate > 0 {
		return rate
	}
	return s.cfg.Speech.SampleRate
}

package synth

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/slidecraft/deck2video/internal/audio"
)

// decision is the operator's verdict on a synthesized slide.
type decision int

const (
	decisionKeep decision = iota
	decisionRegenerate
	decisionReplay
	decisionQuit
)

func parseDecision(line string) decision {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y":
		return decisionKeep
	case "r":
		return decisionReplay
	case "q":
		return decisionQuit
	default:
		return decisionRegenerate
	}
}

// review plays a freshly synthesized slide and blocks on the operator:
// keep (default) accepts it, replay plays it again, regenerate redoes the
// slide's chunk loop and overwrites the artifact, quit ends the whole run.
// There is no timeout; the prompt waits as long as it takes.
func (s *implSynthesizer) review(ctx context.Context, index int, text, outPath string) error {
	s.play(ctx, outPath)

	for {
		fmt.Fprintf(s.prompt, "  slide %d: (enter) keep  (n) regenerate  (r) replay  (q) quit: ", index)
		line, err := s.input.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("read review input: %w", err)
		}
		if err == io.EOF && line == "" {
			// Input stream gone; keep whatever we have and stop prompting.
			return nil
		}

		switch parseDecision(line) {
		case decisionKeep:
			s.logger.Debug(ctx, "slide %d: review kept", index)
			return nil

		case decisionReplay:
			s.play(ctx, outPath)

		case decisionQuit:
			s.logger.Info(ctx, "run ended by operator during review of slide %d", index)
			return ErrOperatorQuit

		case decisionRegenerate:
			s.logger.Info(ctx, "slide %d: regenerating", index)
			wf, nSentences, nChunks, genErr := s.synthesizeSlide(ctx, index, text)
			if genErr != nil {
				s.logger.Warn(ctx, "slide %d: regeneration failed (%v), keeping previous audio", index, genErr)
				return nil
			}
			if wErr := audio.WriteWAV(outPath, wf); wErr != nil {
				return fmt.Errorf("slide %d: write regenerated audio: %w", index, wErr)
			}
			s.logger.Info(ctx, "slide %d: synthesized %d sentence(s) in %d chunk(s), %.2fs",
				index, nSentences, nChunks, wf.Seconds())
			s.play(ctx, outPath)
		}
	}
}

func (s *implSynthesizer) play(ctx context.Context, path string) {
	if err := s.player.Play(ctx, path); err != nil {
		s.logger.Warn(ctx, "audio playback: %v", err)
	}
}

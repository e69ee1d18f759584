package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/slidecraft/deck2video/internal/assembler"
	"github.com/slidecraft/deck2video/internal/deck"
	"github.com/slidecraft/deck2video/internal/media"
	"github.com/slidecraft/deck2video/internal/synth"
)

const defaultFPS = 24

func (p *implPipeline) Run(ctx context.Context) error {
	if err := p.preflight(); err != nil {
		return err
	}

	slides, screencasts, err := p.loadDeck()
	if err != nil {
		return err
	}
	p.logger.Info(ctx, "deck: %d slide(s)", len(slides))

	if _, err := p.renderer.Render(ctx, p.opts.DeckPath, p.opts.TempDir, len(slides)); err != nil {
		return p.preserve(ctx, err)
	}

	failed, err := p.synth.GenerateAll(ctx, slides, p.opts.TempDir)
	if err != nil {
		// A quit from the review prompt is a clean early exit, not a
		// failure; everything synthesized so far stays on disk.
		if errors.Is(err, synth.ErrOperatorQuit) {
			p.logger.Info(ctx, "run ended by operator, artifacts kept at %s", p.opts.TempDir)
			return nil
		}
		return p.preserve(ctx, err)
	}
	for _, idx := range failed {
		p.logger.Warn(ctx, "slide %d: narration replaced by silence after synthesis failure", idx)
	}

	if err := p.assemble(ctx, slides, screencasts); err != nil {
		return p.preserve(ctx, err)
	}

	narrated := 0
	for _, s := range slides {
		if s.HasNotes() {
			narrated++
		}
	}
	p.logger.Info(ctx, "done: %d slide(s) processed (%d narrated, %d silent, %d failed)",
		len(slides), narrated, len(slides)-narrated, len(failed))

	p.cleanup(ctx)
	return nil
}

func (p *implPipeline) Redo(ctx context.Context, indices []int) error {
	if len(indices) == 0 {
		return fmt.Errorf("%w: no slide indices to redo", deck.ErrInvalidInput)
	}
	if err := p.preflight(); err != nil {
		return err
	}

	slides, screencasts, err := p.loadDeck()
	if err != nil {
		return err
	}
	// Redo works against a previous run's artifacts; all of them must be
	// present before anything is overwritten.
	if _, _, err := deck.DiscoverArtifacts(p.opts.TempDir, len(slides)); err != nil {
		return err
	}

	p.logger.Info(ctx, "redoing narration for %d slide(s)", len(indices))
	failed, err := p.synth.GenerateSubset(ctx, slides, indices, p.opts.TempDir)
	if err != nil {
		if errors.Is(err, synth.ErrOperatorQuit) {
			p.logger.Info(ctx, "redo ended by operator, artifacts kept at %s", p.opts.TempDir)
			return nil
		}
		return err
	}
	for _, idx := range failed {
		p.logger.Warn(ctx, "slide %d: narration replaced by silence after synthesis failure", idx)
	}

	return p.assemble(ctx, slides, screencasts)
}

func (p *implPipeline) Reassemble(ctx context.Context) error {
	if err := p.preflight(); err != nil {
		return err
	}

	slides, screencasts, err := p.loadDeck()
	if err != nil {
		return err
	}
	if _, _, err := deck.DiscoverArtifacts(p.opts.TempDir, len(slides)); err != nil {
		return err
	}

	p.logger.Info(ctx, "reassembling %d slide(s) from existing artifacts", len(slides))
	return p.assemble(ctx, slides, screencasts)
}

// preflight verifies the external tools the pipeline shells out to.
func (p *implPipeline) preflight() error {
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		if err := p.exec.LookPath(tool); err != nil {
			return fmt.Errorf("%s not found on PATH: install ffmpeg (e.g. apt install ffmpeg or brew install ffmpeg)", tool)
		}
	}
	return nil
}

func (p *implPipeline) loadDeck() ([]deck.Slide, []string, error) {
	slides, err := deck.LoadManifest(p.opts.ManifestPath)
	if err != nil {
		return nil, nil, err
	}
	screencasts, err := deck.ResolveScreencasts(slides, filepath.Dir(p.opts.DeckPath))
	if err != nil {
		return nil, nil, err
	}
	return slides, screencasts, nil
}

// assemble reconciles and encodes every slide's segment in index order,
// then concatenates. Any encode failure aborts before concatenation.
func (p *implPipeline) assemble(ctx context.Context, slides []deck.Slide, screencasts []string) error {
	fps, err := p.resolveFPS(ctx, screencasts)
	if err != nil {
		return err
	}
	p.logger.Info(ctx, "assembling at %d fps", fps)

	segments := make([]string, 0, len(slides))
	for i, slide := range slides {
		audioPath := filepath.Join(p.opts.TempDir, deck.AudioFileName(slide.Index))
		audioDur, err := media.Duration(ctx, p.exec, audioPath)
		if err != nil {
			return err
		}

		kind := assembler.KindStill
		visual := filepath.Join(p.opts.TempDir, deck.ImageFileName(slide.Index))
		clipDur := 0.0
		if screencasts[i] != "" {
			kind = assembler.KindScreencast
			visual = screencasts[i]
			clipDur, err = media.Duration(ctx, p.exec, visual)
			if err != nil {
				return err
			}
		}

		spec := assembler.Reconcile(slide.Index, kind, visual, audioPath,
			audioDur, clipDur, p.cfg.Timing.AudioPaddingMS)
		segment, err := p.assembler.EncodeSegment(ctx, p.opts.TempDir, spec, fps)
		if err != nil {
			return err
		}
		segments = append(segments, segment)
	}

	return p.assembler.Concatenate(ctx, p.opts.TempDir, segments, p.opts.Output)
}

// resolveFPS uses the configured framerate when set, otherwise the highest
// screencast framerate so no clip is resampled downward, otherwise 24.
func (p *implPipeline) resolveFPS(ctx context.Context, screencasts []string) (int, error) {
	if p.cfg.FFmpeg.FPS > 0 {
		return p.cfg.FFmpeg.FPS, nil
	}

	best := 0.0
	for _, clip := range screencasts {
		if clip == "" {
			continue
		}
		fps, err := media.FPS(ctx, p.exec, clip)
		if err != nil {
			return 0, err
		}
		if fps > best {
			best = fps
		}
	}
	if best == 0 {
		return defaultFPS, nil
	}
	return int(math.Round(best)), nil
}

// preserve keeps the temp dir around after a failure and says where it is.
func (p *implPipeline) preserve(ctx context.Context, err error) error {
	p.logger.Error(ctx, "pipeline failed, temp files preserved at %s", p.opts.TempDir)
	return err
}

// cleanup removes the temp dir after a successful run unless the operator
// asked to keep it or supplied the dir themselves.
func (p *implPipeline) cleanup(ctx context.Context) {
	if p.opts.UserTempDir || p.cfg.Paths.KeepTemp {
		p.logger.Info(ctx, "temp files kept at %s", p.opts.TempDir)
		return
	}
	if err := os.RemoveAll(p.opts.TempDir); err != nil {
		p.logger.Warn(ctx, "remove temp dir: %v", err)
	}
}

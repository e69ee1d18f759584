package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/slidecraft/deck2video/internal/assembler"
	"github.com/slidecraft/deck2video/internal/config"
	"github.com/slidecraft/deck2video/internal/logger"
	"github.com/slidecraft/deck2video/internal/render"
	"github.com/slidecraft/deck2video/internal/synth"
	"github.com/slidecraft/deck2video/pkg/executor"
)

type implPipeline struct {
	cfg       *config.Config
	opts      Options
	exec      executor.Executor
	logger    logger.Logger
	renderer  render.Renderer
	synth     synth.Synthesizer
	assembler assembler.Assembler
}

// New creates a Pipeline. All collaborators are passed in explicitly;
// tests substitute fakes for any of them.
func New(cfg *config.Config, opts Options, exec executor.Executor, renderer render.Renderer,
	s synth.Synthesizer, a assembler.Assembler, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:       cfg,
		opts:      opts,
		exec:      exec,
		logger:    log,
		renderer:  renderer,
		synth:     s,
		assembler: a,
	}
}

// PrepareTempDir resolves the intermediate-artifact directory: the
// configured path when set (created if needed, never removed later),
// otherwise a fresh system temp dir.
func PrepareTempDir(cfg *config.Config) (dir string, userSupplied bool, err error) {
	if cfg.Paths.TempDir != "" {
		if err := os.MkdirAll(cfg.Paths.TempDir, 0755); err != nil {
			return "", false, fmt.Errorf("create temp dir: %w", err)
		}
		abs, err := filepath.Abs(cfg.Paths.TempDir)
		if err != nil {
			return "", false, fmt.Errorf("resolve temp dir: %w", err)
		}
		return abs, true, nil
	}

	dir, err = os.MkdirTemp("", "deck2video_")
	if err != nil {
		return "", false, fmt.Errorf("create temp dir: %w", err)
	}
	return dir, false, nil
}

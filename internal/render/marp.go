package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/slidecraft/deck2video/internal/deck"
	"github.com/slidecraft/deck2video/internal/logger"
	"github.com/slidecraft/deck2video/pkg/executor"
)

type implRenderer struct {
	exec   executor.Executor
	logger logger.Logger
}

// New creates a Renderer backed by the marp CLI. A globally installed
// marp binary is preferred; npx is the fallback.
func New(exec executor.Executor, log logger.Logger) Renderer {
	return &implRenderer{exec: exec, logger: log}
}

func (r *implRenderer) Render(ctx context.Context, deckPath, tempDir string, expectedCount int) ([]string, error) {
	bin, prefix, err := r.resolveCLI()
	if err != nil {
		return nil, err
	}

	args := append(prefix,
		deckPath,
		"--images", "png",
		"-o", filepath.Join(tempDir, "slide.png"),
	)
	r.logger.Info(ctx, "rendering slides with %s", bin)
	if _, err := r.exec.Execute(ctx, bin, args...); err != nil {
		return nil, fmt.Errorf("render slides: %w", err)
	}

	// marp names multi-image output slide.001.png, slide.002.png, ...
	rendered, err := filepath.Glob(filepath.Join(tempDir, "slide.[0-9]*.png"))
	if err != nil {
		return nil, fmt.Errorf("collect rendered slides: %w", err)
	}
	if len(rendered) == 0 {
		// A single-slide deck gets no sequence number.
		single := filepath.Join(tempDir, "slide.png")
		if _, statErr := os.Stat(single); statErr == nil {
			rendered = []string{single}
		}
	}
	sort.Strings(rendered)

	if len(rendered) != expectedCount {
		return nil, fmt.Errorf("%w: deck has %d slides but renderer produced %d images",
			deck.ErrInvalidInput, expectedCount, len(rendered))
	}

	// Rename to the pipeline's stable index-keyed artifact names.
	images := make([]string, len(rendered))
	for i, src := range rendered {
		dst := filepath.Join(tempDir, deck.ImageFileName(i+1))
		if err := os.Rename(src, dst); err != nil {
			return nil, fmt.Errorf("rename slide image: %w", err)
		}
		images[i] = dst
	}
	r.logger.Info(ctx, "rendered %d slide image(s)", len(images))
	return images, nil
}

// resolveCLI picks the marp entry point: the marp binary when installed,
// otherwise npx.
func (r *implRenderer) resolveCLI() (string, []string, error) {
	if err := r.exec.LookPath("marp"); err == nil {
		return "marp", nil, nil
	}
	if err := r.exec.LookPath("npx"); err == nil {
		return "npx", []string{"-y", "@marp-team/marp-cli"}, nil
	}
	return "", nil, fmt.Errorf("marp-cli not found: install it globally (npm install -g @marp-team/marp-cli) or install npx")
}

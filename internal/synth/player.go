package synth

import (
	"context"
	"fmt"
	"runtime"

	"github.com/slidecraft/deck2video/pkg/executor"
)

// Player plays an audio artifact for interactive review.
type Player interface {
	Play(ctx context.Context, path string) error
}

type implPlayer struct {
	exec executor.Executor
}

// NewPlayer creates a Player backed by the platform's audio command.
func NewPlayer(exec executor.Executor) Player {
	return &implPlayer{exec: exec}
}

func (p *implPlayer) Play(ctx context.Context, path string) error {
	var name string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		name = "afplay"
	case "linux":
		name = "aplay"
	case "windows":
		name, args = "cmd", []string{"/c", "start", ""}
	default:
		return fmt.Errorf("no audio player for %s", runtime.GOOS)
	}

	args = append(args, path)
	if _, err := p.exec.Execute(ctx, name, args...); err != nil {
		return fmt.Errorf("play %s: %w", path, err)
	}
	return nil
}

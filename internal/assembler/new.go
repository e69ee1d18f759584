package assembler

import (
	"github.com/slidecraft/deck2video/internal/config"
	"github.com/slidecraft/deck2video/internal/logger"
	"github.com/slidecraft/deck2video/pkg/executor"
)

type implAssembler struct {
	cfg    *config.Config
	exec   executor.Executor
	logger logger.Logger
}

// New creates an Assembler instance
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Assembler {
	return &implAssembler{
		cfg:    cfg,
		exec:   exec,
		logger: log,
	}
}

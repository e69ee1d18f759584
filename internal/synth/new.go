package synth

import (
	"bufio"
	"io"
	"os"

	"github.com/slidecraft/deck2video/internal/config"
	"github.com/slidecraft/deck2video/internal/logger"
	"github.com/slidecraft/deck2video/internal/pronounce"
	"github.com/slidecraft/deck2video/internal/speech"
)

type implSynthesizer struct {
	cfg    *config.Config
	engine speech.Engine
	table  pronounce.Table
	logger logger.Logger
	player Player

	// state is nil until the engine is lazily loaded.
	state *speech.State

	// review prompt I/O, swappable in tests
	input  *bufio.Reader
	prompt io.Writer
}

// New creates a Synthesizer. The engine handle is owned by the caller and
// passed in explicitly so tests can substitute a fake.
func New(cfg *config.Config, engine speech.Engine, table pronounce.Table, player Player, log logger.Logger) Synthesizer {
	return &implSynthesizer{
		cfg:    cfg,
		engine: engine,
		table:  table,
		logger: log,
		player: player,
		input:  bufio.NewReader(os.Stdin),
		prompt: os.Stdout,
	}
}

// NewWithIO is New with explicit review input/prompt streams, for tests.
func NewWithIO(cfg *config.Config, engine speech.Engine, table pronounce.Table, player Player, log logger.Logger, input io.Reader, prompt io.Writer) Synthesizer {
	s := New(cfg, engine, table, player, log).(*implSynthesizer)
	s.input = bufio.NewReader(input)
	s.prompt = prompt
	return s
}

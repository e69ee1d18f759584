package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/slidecraft/deck2video/internal/assembler"
	"github.com/slidecraft/deck2video/internal/config"
	"github.com/slidecraft/deck2video/internal/logger"
	"github.com/slidecraft/deck2video/internal/pipeline"
	"github.com/slidecraft/deck2video/internal/pronounce"
	"github.com/slidecraft/deck2video/internal/render"
	"github.com/slidecraft/deck2video/internal/speech"
	"github.com/slidecraft/deck2video/internal/synth"
	"github.com/slidecraft/deck2video/pkg/executor"
)

// runtime is one fully wired pipeline invocation: config with flag
// overrides applied, a temp dir with its debug log file, and every
// collaborator behind the pipeline.
type runtime struct {
	cfg      *config.Config
	opts     pipeline.Options
	logger   logger.Logger
	pipeline pipeline.Pipeline

	engine  speech.Engine
	logFile *os.File
}

func newRuntime(cmd *cobra.Command, f *cliFlags, deckPath string) (*runtime, error) {
	if _, err := os.Stat(deckPath); err != nil {
		return nil, fmt.Errorf("deck not found: %s", deckPath)
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, f, cfg)

	opts := pipeline.Options{
		DeckPath:     deckPath,
		ManifestPath: f.manifest,
		Output:       cfg.Paths.Output,
	}
	if opts.ManifestPath == "" {
		opts.ManifestPath = defaultManifestPath(deckPath)
	}
	if opts.Output == "" {
		opts.Output = defaultOutputPath(deckPath)
	}

	opts.TempDir, opts.UserTempDir, err = pipeline.PrepareTempDir(cfg)
	if err != nil {
		return nil, err
	}

	// Full debug log into the temp dir; the console stays at the
	// configured level.
	logFile, err := os.Create(filepath.Join(opts.TempDir, "deck2video.log"))
	if err != nil {
		return nil, fmt.Errorf("create debug log: %w", err)
	}
	log := logger.NewTee(logFile, cfg.Logging.Level)

	var table pronounce.Table
	if cfg.Paths.Pronunciations != "" {
		table, err = pronounce.Load(cfg.Paths.Pronunciations)
		if err != nil {
			logFile.Close()
			return nil, err
		}
	}

	engine, err := speech.NewExecEngine(cfg.Speech, log)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	exec := executor.New()
	s := synth.New(cfg, engine, table, synth.NewPlayer(exec), log)
	a := assembler.New(cfg, exec, log)
	r := render.New(exec, log)

	return &runtime{
		cfg:      cfg,
		opts:     opts,
		logger:   log,
		pipeline: pipeline.New(cfg, opts, exec, r, s, a, log),
		engine:   engine,
		logFile:  logFile,
	}, nil
}

func (rt *runtime) close() {
	rt.engine.Close()
	rt.logFile.Close()
}

// applyFlags lets explicitly set flags override the config file. Unset
// flags keep whatever the file or the defaults chose.
func applyFlags(cmd *cobra.Command, f *cliFlags, cfg *config.Config) {
	set := cmd.Flags().Changed

	if set("output") {
		cfg.Paths.Output = f.output
	}
	if set("voice") {
		cfg.Speech.VoicePath = f.voice
	}
	if set("device") {
		cfg.Speech.Device = f.device
	}
	if set("exaggeration") {
		cfg.Speech.Exaggeration = f.exaggeration
	}
	if set("cfg-weight") {
		cfg.Speech.CFGWeight = f.cfgWeight
	}
	if set("temperature") {
		cfg.Speech.Temperature = f.temperature
	}
	if set("hold-duration") {
		cfg.Timing.HoldDuration = f.holdDuration
	}
	if set("fps") {
		cfg.FFmpeg.FPS = f.fps
	}
	if set("temp-dir") {
		cfg.Paths.TempDir = f.tempDir
	}
	if set("pronunciations") {
		cfg.Paths.Pronunciations = f.pronunciations
	}
	if set("audio-padding") {
		cfg.Timing.AudioPaddingMS = f.audioPadding
	}
	if set("keep-temp") {
		cfg.Paths.KeepTemp = f.keepTemp
	}
	if set("interactive") {
		cfg.Review.Interactive = f.interactive
	}
}

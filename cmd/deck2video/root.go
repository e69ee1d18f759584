package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type cliFlags struct {
	configPath     string
	manifest       string
	output         string
	voice          string
	device         string
	exaggeration   float64
	cfgWeight      float64
	temperature    float64
	holdDuration   float64
	fps            int
	tempDir        string
	pronunciations string
	audioPadding   int
	keepTemp       bool
	interactive    bool
}

func newRootCmd() *cobra.Command {
	f := &cliFlags{}

	cmd := &cobra.Command{
		Use:   "deck2video <deck.md>",
		Short: "Convert a slide deck into a narrated MP4 video",
		Long: `deck2video renders a slide deck to images, synthesizes the speaker
notes into narration audio, and assembles everything into one MP4.

The deck is expected alongside a slide manifest (<deck>.slides.json)
produced by the presentation parser.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, f, args[0])
			if err != nil {
				return err
			}
			defer rt.close()
			return rt.pipeline.Run(cmd.Context())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "path to a yaml config file")
	pf.StringVar(&f.manifest, "manifest", "", "slide manifest path (default: <deck>.slides.json)")
	pf.StringVar(&f.output, "output", "", "output MP4 path (default: <deck>.mp4)")
	pf.StringVar(&f.voice, "voice", "", "reference WAV for voice cloning")
	pf.StringVar(&f.device, "device", "", "speech device: auto, cpu, cuda, or mps")
	pf.Float64Var(&f.exaggeration, "exaggeration", 0, "speech exaggeration level")
	pf.Float64Var(&f.cfgWeight, "cfg-weight", 0, "speech guidance weight")
	pf.Float64Var(&f.temperature, "temperature", 0, "speech sampling temperature")
	pf.Float64Var(&f.holdDuration, "hold-duration", 0, "seconds to hold slides with no notes")
	pf.IntVar(&f.fps, "fps", 0, "output framerate (default: auto from screencasts, else 24)")
	pf.StringVar(&f.tempDir, "temp-dir", "", "where to write intermediate files")
	pf.StringVar(&f.pronunciations, "pronunciations", "", "JSON file of word respellings")
	pf.IntVar(&f.audioPadding, "audio-padding", 0, "silence around each narration, milliseconds")
	pf.BoolVar(&f.keepTemp, "keep-temp", false, "don't delete intermediate files")
	pf.BoolVar(&f.interactive, "interactive", false, "review each slide's narration before moving on")

	cmd.AddCommand(newRedoCmd(f), newReassembleCmd(f), newWatchCmd(f))
	return cmd
}

// defaultManifestPath derives the manifest location from the deck path:
// deck.md -> deck.slides.json.
func defaultManifestPath(deckPath string) string {
	ext := filepath.Ext(deckPath)
	return strings.TrimSuffix(deckPath, ext) + ".slides.json"
}

// defaultOutputPath derives the video location: deck.md -> deck.mp4.
func defaultOutputPath(deckPath string) string {
	ext := filepath.Ext(deckPath)
	return strings.TrimSuffix(deckPath, ext) + ".mp4"
}

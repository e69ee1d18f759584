package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/slidecraft/deck2video/internal/config"
	"github.com/slidecraft/deck2video/internal/logger"
	"github.com/slidecraft/deck2video/internal/watcher"
)

func newWatchCmd(f *cliFlags) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <deck.md>",
		Short: "Rebuild the video every time the deck file changes",
		Long: `watch runs the full pipeline once, then watches the deck file and
reruns on every save until interrupted. Failed reruns are logged and the
watch continues.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			deckPath := args[0]

			// Each rerun gets a fresh runtime: its own temp dir, debug log
			// and speech worker, torn down when the run finishes.
			runOnce := func(ctx context.Context) error {
				rt, err := newRuntime(cmd, f, deckPath)
				if err != nil {
					return err
				}
				defer rt.close()
				return rt.pipeline.Run(ctx)
			}

			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, f, cfg)
			log := logger.New(cfg.Logging.Level)

			if err := runOnce(cmd.Context()); err != nil {
				log.Error(cmd.Context(), "initial run failed: %v", err)
			}

			w, err := watcher.New(deckPath, debounce, runOnce, log)
			if err != nil {
				return err
			}
			defer w.Stop()

			if err := w.Start(cmd.Context()); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "quiet period before a rerun")
	return cmd
}

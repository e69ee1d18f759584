package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReassembleCmd(f *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reassemble <deck.md>",
		Short: "Rebuild the video from a previous run's artifacts without re-synthesizing",
		Long: `reassemble skips rendering and narration entirely and rebuilds the
video from the slide images and audio files of a previous run. It needs
--temp-dir pointing at the preserved temp directory of that run.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, f, args[0])
			if err != nil {
				return err
			}
			defer rt.close()

			if !rt.opts.UserTempDir {
				return fmt.Errorf("reassemble needs --temp-dir pointing at a previous run's artifacts")
			}
			return rt.pipeline.Reassemble(cmd.Context())
		},
	}
	return cmd
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newRedoCmd(f *cliFlags) *cobra.Command {
	var slidesArg string

	cmd := &cobra.Command{
		Use:   "redo <deck.md>",
		Short: "Re-synthesize narration for selected slides and rebuild the video",
		Long: `redo regenerates the narration for the given slides against the
artifacts of a previous run, then re-assembles the whole video. It needs
--temp-dir pointing at the preserved temp directory of that run.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			indices, err := parseSlideList(slidesArg)
			if err != nil {
				return err
			}

			rt, err := newRuntime(cmd, f, args[0])
			if err != nil {
				return err
			}
			defer rt.close()

			if !rt.opts.UserTempDir {
				return fmt.Errorf("redo needs --temp-dir pointing at a previous run's artifacts")
			}
			return rt.pipeline.Redo(cmd.Context(), indices)
		},
	}

	cmd.Flags().StringVar(&slidesArg, "slides", "", "comma-separated slide indices, e.g. 2,3,7")
	cmd.MarkFlagRequired("slides")
	return cmd
}

func parseSlideList(arg string) ([]int, error) {
	var indices []int
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid slide index %q", part)
		}
		indices = append(indices, n)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("no slide indices given")
	}
	return indices, nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"Tonecast/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce = watch.DefaultDebounce

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Decode every WAV recording written into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			demod, err := a.demodulator()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w, err := watch.New(args[0],
				func(path string) (string, error) {
					d, err := decodeFile(demod, path)
					return d.text, err
				},
				func(path, text string, err error) {
					if err == nil {
						fmt.Fprintf(out, "%s: %s\n", path, describe(text, a.secret()))
					}
				},
				watch.WithDebounce(debounce),
				watch.WithLogger(a.log),
			)
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()
			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "quiet period before a changed file is decoded")
	return cmd
}

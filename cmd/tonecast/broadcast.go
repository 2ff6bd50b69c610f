package main

import (
	"github.com/spf13/cobra"

	"Tonecast/internal/broadcast"
)

func newBroadcastCmd(a *app) *cobra.Command {
	var (
		payload payloadFlags
		output  string
		once    bool
	)

	cmd := &cobra.Command{
		Use:   "broadcast [text...]",
		Short: "Keep a carousel WAV file regenerated from a changing payload",
		Example: `  tonecast broadcast --file headlines.txt --timestamp -o live_broadcast.wav --interval 10m
  tonecast broadcast --file page.html --packet WEB --secret s3cret --once`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := payload.source(cmd, args, a.secret())
			if err != nil {
				return err
			}
			mod, err := a.modulator()
			if err != nil {
				return err
			}

			b := &broadcast.Broadcaster{
				Modulator: mod,
				Source:    src,
				Path:      output,
				Interval:  a.cfg.Interval,
				Logger:    a.log,
			}
			if once {
				return b.Once(cmd.Context())
			}

			ctx, stop := signalContext()
			defer stop()
			return b.Run(ctx)
		},
	}

	payload.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "live_broadcast.wav", "WAV file to keep up to date")
	cmd.Flags().BoolVar(&once, "once", false, "generate a single time and exit")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"Tonecast/internal/wavio"
	"Tonecast/pkg/modem"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		payload  payloadFlags
		output   string
		dumpPath string
		showBits bool
	)

	cmd := &cobra.Command{
		Use:   "encode [text...]",
		Short: "Render a payload into a carousel WAV file",
		Example: `  tonecast encode "HELLO WORLD" -o hello.wav
  tonecast encode --file news.txt --packet TXT --repeats 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := payload.source(cmd, args, a.secret())
			if err != nil {
				return err
			}
			text, err := fetch(cmd.Context(), src)
			if err != nil {
				return err
			}

			mod, err := a.modulator()
			if err != nil {
				return err
			}
			signal, err := mod.Modulate(text)
			if err != nil {
				return err
			}

			bits, err := modem.EncodeText(text)
			if err != nil {
				return err
			}
			if showBits {
				fmt.Fprintln(cmd.OutOrStdout(), modem.BitString(bits))
			}

			if err := wavio.WriteFile(output, a.cfg.Modem.SampleRate, modem.Float64ToInt16(signal)); err != nil {
				return err
			}
			if dumpPath != "" {
				n, err := wavio.WriteDump(dumpPath, signal)
				if err != nil {
					return err
				}
				a.log.Debug().Str("file", dumpPath).Int("samples", n).Msg("[Encode] Waveform dumped")
			}

			layout := mod.Layout(len(bits))
			a.log.Info().
				Str("file", output).
				Int("frames_per_cycle", layout.FramesPerCycle).
				Int("cycles", a.cfg.Modem.RepeatCount).
				Float64("seconds", float64(len(signal))/float64(a.cfg.Modem.SampleRate)).
				Msg("[Encode] Carousel written")
			return nil
		},
	}

	payload.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "broadcast.wav", "output WAV file")
	cmd.Flags().StringVar(&dumpPath, "dump", "", "also dump the float64 samples to this file")
	cmd.Flags().BoolVar(&showBits, "bits", false, "print the protected bit stream")
	return cmd
}

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"Tonecast/internal/wavio"
	"Tonecast/pkg/async"
	"Tonecast/pkg/modem"
)

// readSignal loads a WAV recording or a float64 dump.
func readSignal(path string, sampleRate int) ([]float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin", ".raw", ".f64":
		return wavio.ReadDump(path)
	}

	samples, rate, err := wavio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if rate != sampleRate {
		return nil, fmt.Errorf("%s: sample rate %d Hz, receiver expects %d Hz", path, rate, sampleRate)
	}
	return samples, nil
}

type decoded struct {
	text string
	bits []bool
}

func decodeFile(demod *modem.Demodulator, path string) (decoded, error) {
	samples, err := readSignal(path, demod.Config().SampleRate)
	if err != nil {
		return decoded{}, err
	}
	bits, err := demod.DemodulateBits(samples)
	if err != nil {
		return decoded{}, fmt.Errorf("%s: %w", path, err)
	}
	return decoded{text: modem.DecodeBits(bits), bits: bits}, nil
}

func newDecodeCmd(a *app) *cobra.Command {
	var showBits bool

	cmd := &cobra.Command{
		Use:   "decode <recording>...",
		Short: "Recover the payload of one or more recordings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			demod, err := a.demodulator()
			if err != nil {
				return err
			}

			jobs := make([]<-chan async.Result[decoded], len(args))
			for i, path := range args {
				path := path
				jobs[i] = async.Try(func() (decoded, error) { return decodeFile(demod, path) })
			}

			failed := 0
			out := cmd.OutOrStdout()
			for i, r := range <-async.GatherN(jobs...) {
				if r.Err != nil {
					failed++
					a.log.Error().Err(r.Err).Str("file", args[i]).Msg("[Decode] Failed")
					continue
				}
				if len(args) > 1 {
					fmt.Fprintf(out, "%s: ", args[i])
				}
				fmt.Fprintln(out, describe(r.Value.text, a.secret()))
				if showBits {
					fmt.Fprintln(out, modem.BitString(r.Value.bits))
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d recordings failed to decode", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showBits, "bits", false, "also print the raw demodulated bits")
	return cmd
}

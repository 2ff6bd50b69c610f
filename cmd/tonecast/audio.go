package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"Tonecast/internal/wavio"
	"Tonecast/pkg/async"
	"Tonecast/pkg/device"
	"Tonecast/pkg/modem"
)

func newPlayCmd(a *app) *cobra.Command {
	var (
		payload payloadFlags
		input   string
	)

	cmd := &cobra.Command{
		Use:   "play [text...]",
		Short: "Play a payload or a recording through the sound card",
		RunE: func(cmd *cobra.Command, args []string) error {
			var signal []float64
			if input != "" {
				s, err := readSignal(input, a.cfg.Modem.SampleRate)
				if err != nil {
					return err
				}
				signal = s
			} else {
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
				if signal, err = mod.Modulate(text); err != nil {
					return err
				}
			}

			dev, err := openDevice(a.cfg)
			if err != nil {
				return err
			}

			player := device.NewPlayer(device.PCMToInt32(signal))
			a.log.Info().
				Float64("seconds", float64(len(signal))/float64(a.cfg.Modem.SampleRate)).
				Msg("[Play] Playing, press enter to stop")
			return drive(dev, player.Update, player.Done())
		},
	}

	payload.bind(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "play this WAV recording instead of a payload")
	return cmd
}

func newListenCmd(a *app) *cobra.Command {
	var (
		duration time.Duration
		output   string
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Record from the sound card and decode the carousel heard",
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := openDevice(a.cfg)
			if err != nil {
				return err
			}

			recorder := device.NewRecorder(int(duration.Seconds() * float64(a.cfg.Modem.SampleRate)))
			a.log.Info().Dur("duration", duration).Msg("[Listen] Recording, press enter to stop")
			if err := drive(dev, recorder.Update, recorder.Done()); err != nil {
				return err
			}

			signal := device.Int32ToFloat64(recorder.Track())
			if output != "" {
				if err := wavio.WriteFile(output, a.cfg.Modem.SampleRate, modem.Float64ToInt16(signal)); err != nil {
					return err
				}
			}

			demod, err := a.listeningDemodulator()
			if err != nil {
				return err
			}
			text, err := demod.Demodulate(signal)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), describe(text, a.secret()))
			return nil
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "t", 0, "stop after this long (default: wait for enter)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "save the recording as WAV")
	return cmd
}

func newLoopbackCmd(a *app) *cobra.Command {
	var (
		payload payloadFlags
		noise   float64
		seed    uint64
	)

	cmd := &cobra.Command{
		Use:   "loopback [text...]",
		Short: "Send a payload through a simulated channel and decode it",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := payload.source(cmd, args, a.secret())
			if err != nil {
				return err
			}
			text, err := fetch(cmd.Context(), src)
			if err != nil {
				return err
			}

			got, err := roundTrip(a, text, &device.Loopback{Noise: noise, Seed: seed})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), describe(got, a.secret()))
			if got != modem.NormalizeText(text) {
				return fmt.Errorf("payload corrupted in transit: sent %q, received %q", modem.NormalizeText(text), got)
			}
			return nil
		},
	}

	payload.bind(cmd)
	cmd.Flags().Float64Var(&noise, "noise", 0, "peak channel noise as a fraction of full scale")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "noise seed")
	return cmd
}

// roundTrip plays text through dev while recording it. The device adds a
// block of latency, so the receiver searches for the preamble.
func roundTrip(a *app, text string, dev device.Device) (string, error) {
	mod, err := a.modulator()
	if err != nil {
		return "", err
	}
	signal, err := mod.Modulate(text)
	if err != nil {
		return "", err
	}
	demod, err := a.listeningDemodulator()
	if err != nil {
		return "", err
	}

	player := device.NewPlayer(device.PCMToInt32(signal))
	recorder := device.NewRecorder(len(signal) + 2*device.BufferSize)
	err = dev.Start(func(in, out []int32) {
		recorder.Update(in, out)
		player.Update(in, out)
	})
	if err != nil {
		return "", err
	}
	select {
	case <-recorder.Done():
	case err = <-dev.Err():
	}
	if err = errors.Join(err, dev.Stop()); err != nil {
		return "", err
	}

	a.log.Debug().Int("samples", len(signal)).Msg("[Loopback] Transmission recorded")
	return demod.Demodulate(device.Int32ToFloat64(recorder.Track()))
}

// drive runs callback on dev until done is closed. Enter, an interrupt or a
// device failure end it early.
func drive(dev device.Device, callback func(in, out []int32), done <-chan struct{}) error {
	ctx, stop := signalContext()
	defer stop()

	if err := dev.Start(callback); err != nil {
		return err
	}
	var err error
	select {
	case <-done:
	case <-async.EnterKey(os.Stdin):
	case <-ctx.Done():
	case err = <-dev.Err():
	}
	return errors.Join(err, dev.Stop())
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"Tonecast/internal/config"
	"Tonecast/internal/logging"
	"Tonecast/pkg/modem"
)

type app struct {
	cfg     config.Config
	cfgPath string
	log     zerolog.Logger
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.DefaultConfig(), log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "tonecast",
		Short: "Broadcast text over sound as a repeating multi-tone carousel",
		Long: `tonecast turns text into audio: every bit of the payload gets its own
carrier frequency, frames are played back to back, and the whole message is
repeated so a receiver can tune in at any time.`,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	bindFlags(root.PersistentFlags(), &a.cfg, &a.cfgPath)

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newWatchCmd(a),
		newBroadcastCmd(a),
		newPlayCmd(a),
		newListenCmd(a),
		newLoopbackCmd(a),
	)
	return root
}

// load layers the config file, TONECAST_* variables and explicit flags.
func (a *app) load(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = config.DefaultConfigPath()
	}
	if cfgFile != "" && config.FileExists(cfgFile) {
		fc, err := config.LoadFile(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := config.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	} else if a.cfgPath != "" {
		return fmt.Errorf("config file %s not found", a.cfgPath)
	}

	if err := config.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}

	log, err := logging.New(cmd.ErrOrStderr(), a.cfg.LogLevel, a.cfg.LogFormat)
	if err != nil {
		return err
	}
	a.log = log

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logCfg := a.cfg
	if logCfg.Secret != "" {
		logCfg.Secret = "*****"
	}
	a.log.Debug().Interface("config", logCfg).Msg("configuration")
	return nil
}

func (a *app) modulator() (*modem.Modulator, error) {
	return modem.NewModulator(a.cfg.Modem, modem.WithLogger(a.log))
}

func (a *app) demodulator() (*modem.Demodulator, error) {
	opts := append(a.cfg.DemodulatorOptions(), modem.WithLogger(a.log))
	return modem.NewDemodulator(a.cfg.Modem, opts...)
}

// listeningDemodulator searches the whole recording for a preamble regardless
// of the locator setting, since live audio may start anywhere in a cycle.
func (a *app) listeningDemodulator() (*modem.Demodulator, error) {
	locator := modem.NewPreambleLocator(a.cfg.Modem)
	locator.SearchSamples = 0
	return modem.NewDemodulator(a.cfg.Modem,
		modem.WithLocator(locator),
		modem.WithLogger(a.log))
}

func (a *app) secret() []byte {
	if a.cfg.Secret == "" {
		return nil
	}
	return []byte(a.cfg.Secret)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tonecast:", err)
		os.Exit(1)
	}
}

package main

import (
	pflag "github.com/spf13/pflag"

	"Tonecast/internal/config"
)

// bindFlags registers every setting. Flag names double as the keys of the
// changed map handed to the config loaders.
func bindFlags(fs *pflag.FlagSet, cfg *config.Config, cfgPath *string) {
	m := &cfg.Modem

	fs.StringVar(cfgPath, "config", "", "path to a .yaml or .toml config file (default: $HOME/.tonecast/config.yaml)")

	fs.IntVar(&m.SampleRate, "sample-rate", m.SampleRate, "samples per second")
	fs.IntVar(&m.ChannelCount, "channels", m.ChannelCount, "number of data carriers")
	fs.Float64Var(&m.FreqMin, "freq-min", m.FreqMin, "lowest carrier in Hz")
	fs.Float64Var(&m.FreqMax, "freq-max", m.FreqMax, "highest carrier in Hz")
	fs.DurationVar(&m.FrameDuration, "frame-duration", m.FrameDuration, "length of one frame")
	fs.DurationVar(&m.GapDuration, "gap-duration", m.GapDuration, "silence after each frame")
	fs.DurationVar(&m.CycleGapDuration, "cycle-gap-duration", m.CycleGapDuration, "silence after each cycle")
	fs.DurationVar(&m.PreambleDuration, "preamble-duration", m.PreambleDuration, "length of the cycle preamble")
	fs.Float64Var(&m.PreambleFreq, "preamble-freq", m.PreambleFreq, "preamble tone in Hz")
	fs.IntVarP(&m.RepeatCount, "repeats", "r", m.RepeatCount, "number of carousel cycles")
	fs.Float64Var(&m.DetectionRatio, "detection-ratio", m.DetectionRatio, "fraction of the strongest carrier a bit must reach")
	fs.Float64Var(&m.ActivityThreshold, "activity-threshold", m.ActivityThreshold, "peak amplitude below which a window is silence")
	fs.IntVar(&m.MaxBits, "max-bits", m.MaxBits, "stop decoding after this many raw bits")

	fs.StringVar(&cfg.Secret, "secret", cfg.Secret, "mask for sealed packet payloads")
	fs.StringVar(&cfg.Locator, "locator", cfg.Locator, "first frame location: fixed or preamble")
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "broadcast regeneration period")

	fs.StringVar(&cfg.DeviceName, "device", cfg.DeviceName, "ASIO driver name")
	fs.IntVar(&cfg.InChannel, "in-channel", cfg.InChannel, "ASIO input channel")
	fs.IntVar(&cfg.OutChannel, "out-channel", cfg.OutChannel, "ASIO output channel")

	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "console or json")
}

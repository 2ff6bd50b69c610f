package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const envPrefix = "TONECAST_"

// EnvName maps a flag name to its environment variable, e.g. "max-bits"
// becomes TONECAST_MAX_BITS.
func EnvName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// ApplyEnvConfig reads TONECAST_* variables. Flags set explicitly win.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	m := &cfg.Modem

	envInt := func(flag string, dst *int) {
		v, ok := lookup(flag)
		if !ok || s.err != nil {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			s.err = fmt.Errorf("%s: %w", EnvName(flag), err)
			return
		}
		s.setInt(flag, n, dst)
	}
	envFloat := func(flag string, dst *float64) {
		v, ok := lookup(flag)
		if !ok || s.err != nil {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.err = fmt.Errorf("%s: %w", EnvName(flag), err)
			return
		}
		s.setFloat(flag, f, dst)
	}
	envString := func(flag string, dst *string) {
		if v, ok := lookup(flag); ok {
			s.setString(flag, v, dst)
		}
	}

	envInt("sample-rate", &m.SampleRate)
	envInt("channels", &m.ChannelCount)
	envFloat("freq-min", &m.FreqMin)
	envFloat("freq-max", &m.FreqMax)
	if v, ok := lookup("frame-duration"); ok {
		s.setDuration("frame-duration", v, &m.FrameDuration)
	}
	if v, ok := lookup("gap-duration"); ok {
		s.setDuration("gap-duration", v, &m.GapDuration)
	}
	if v, ok := lookup("cycle-gap-duration"); ok {
		s.setDuration("cycle-gap-duration", v, &m.CycleGapDuration)
	}
	if v, ok := lookup("preamble-duration"); ok {
		s.setDuration("preamble-duration", v, &m.PreambleDuration)
	}
	envFloat("preamble-freq", &m.PreambleFreq)
	envInt("repeats", &m.RepeatCount)
	envFloat("detection-ratio", &m.DetectionRatio)
	envFloat("activity-threshold", &m.ActivityThreshold)
	envInt("max-bits", &m.MaxBits)

	envString("secret", &cfg.Secret)
	envString("locator", &cfg.Locator)
	if v, ok := lookup("interval"); ok {
		s.setDuration("interval", v, &cfg.Interval)
	}
	envString("device", &cfg.DeviceName)
	envInt("in-channel", &cfg.InChannel)
	envInt("out-channel", &cfg.OutChannel)
	envString("log-level", &cfg.LogLevel)
	envString("log-format", &cfg.LogFormat)

	return s.err
}

func lookup(flag string) (string, bool) {
	v, ok := os.LookupEnv(EnvName(flag))
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config with durations as strings ("200ms", "5m").
type FileConfig struct {
	Modem struct {
		SampleRate        int     `yaml:"sample_rate" toml:"sample_rate"`
		Channels          int     `yaml:"channels" toml:"channels"`
		FreqMin           float64 `yaml:"freq_min" toml:"freq_min"`
		FreqMax           float64 `yaml:"freq_max" toml:"freq_max"`
		FrameDuration     string  `yaml:"frame_duration" toml:"frame_duration"`
		GapDuration       string  `yaml:"gap_duration" toml:"gap_duration"`
		CycleGapDuration  string  `yaml:"cycle_gap_duration" toml:"cycle_gap_duration"`
		PreambleDuration  string  `yaml:"preamble_duration" toml:"preamble_duration"`
		PreambleFreq      float64 `yaml:"preamble_freq" toml:"preamble_freq"`
		Repeats           int     `yaml:"repeats" toml:"repeats"`
		DetectionRatio    float64 `yaml:"detection_ratio" toml:"detection_ratio"`
		ActivityThreshold float64 `yaml:"activity_threshold" toml:"activity_threshold"`
		MaxBits           int     `yaml:"max_bits" toml:"max_bits"`
	} `yaml:"modem" toml:"modem"`

	Secret   string `yaml:"secret" toml:"secret"`
	Locator  string `yaml:"locator" toml:"locator"`
	Interval string `yaml:"interval" toml:"interval"`

	Device struct {
		Name       string `yaml:"name" toml:"name"`
		InChannel  int    `yaml:"in_channel" toml:"in_channel"`
		OutChannel int    `yaml:"out_channel" toml:"out_channel"`
	} `yaml:"device" toml:"device"`

	Log struct {
		Level  string `yaml:"level" toml:"level"`
		Format string `yaml:"format" toml:"format"`
	} `yaml:"log" toml:"log"`
}

// LoadFile parses a .yaml/.yml or .toml file.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	case ".toml":
		err = toml.Unmarshal(b, &fc)
	default:
		return fc, fmt.Errorf("config %s: unsupported extension, want .yaml, .yml or .toml", path)
	}
	if err != nil {
		return fc, fmt.Errorf("config %s: %w", path, err)
	}
	return fc, nil
}

// ApplyFileConfig copies the non-zero values of fc into cfg, skipping
// settings whose flag was set explicitly.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)
	m := &cfg.Modem

	s.setInt("sample-rate", fc.Modem.SampleRate, &m.SampleRate)
	s.setInt("channels", fc.Modem.Channels, &m.ChannelCount)
	s.setFloat("freq-min", fc.Modem.FreqMin, &m.FreqMin)
	s.setFloat("freq-max", fc.Modem.FreqMax, &m.FreqMax)
	s.setDuration("frame-duration", fc.Modem.FrameDuration, &m.FrameDuration)
	s.setDuration("gap-duration", fc.Modem.GapDuration, &m.GapDuration)
	s.setDuration("cycle-gap-duration", fc.Modem.CycleGapDuration, &m.CycleGapDuration)
	s.setDuration("preamble-duration", fc.Modem.PreambleDuration, &m.PreambleDuration)
	s.setFloat("preamble-freq", fc.Modem.PreambleFreq, &m.PreambleFreq)
	s.setInt("repeats", fc.Modem.Repeats, &m.RepeatCount)
	s.setFloat("detection-ratio", fc.Modem.DetectionRatio, &m.DetectionRatio)
	s.setFloat("activity-threshold", fc.Modem.ActivityThreshold, &m.ActivityThreshold)
	s.setInt("max-bits", fc.Modem.MaxBits, &m.MaxBits)

	s.setString("secret", fc.Secret, &cfg.Secret)
	s.setString("locator", fc.Locator, &cfg.Locator)
	s.setDuration("interval", fc.Interval, &cfg.Interval)
	s.setString("device", fc.Device.Name, &cfg.DeviceName)
	s.setInt("in-channel", fc.Device.InChannel, &cfg.InChannel)
	s.setInt("out-channel", fc.Device.OutChannel, &cfg.OutChannel)
	s.setString("log-level", fc.Log.Level, &cfg.LogLevel)
	s.setString("log-format", fc.Log.Format, &cfg.LogFormat)

	return s.err
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Tonecast/pkg/modem"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, modem.DefaultConfig(), cfg.Modem)
	assert.Equal(t, LocatorFixed, cfg.Locator)
	assert.Nil(t, cfg.DemodulatorOptions())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Locator = "psychic"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Interval = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.OutChannel = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Modem.ChannelCount = 0
	assert.ErrorIs(t, cfg.Validate(), modem.ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Locator = LocatorPreamble
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.DemodulatorOptions(), 1)
}

const yamlConfig = `
modem:
  channels: 64
  freq_max: 8000
  frame_duration: 100ms
  repeats: 2
secret: hunter2
locator: preamble
interval: 30s
device:
  name: Focusrite USB ASIO
  out_channel: 1
log:
  level: debug
  format: json
`

const tomlConfig = `
secret = "hunter2"
locator = "preamble"
interval = "30s"

[modem]
channels = 64
freq_max = 8000.0
frame_duration = "100ms"
repeats = 2

[device]
name = "Focusrite USB ASIO"
out_channel = 1

[log]
level = "debug"
format = "json"
`

func TestLoadFile(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
	}{
		{"config.yaml", yamlConfig},
		{"config.yml", yamlConfig},
		{"config.toml", tomlConfig},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			fc, err := LoadFile(writeFile(t, tc.name, tc.content))
			require.NoError(t, err)

			cfg := DefaultConfig()
			require.NoError(t, ApplyFileConfig(&cfg, fc, nil))

			assert.Equal(t, 64, cfg.Modem.ChannelCount)
			assert.Equal(t, 8000.0, cfg.Modem.FreqMax)
			assert.Equal(t, 100*time.Millisecond, cfg.Modem.FrameDuration)
			assert.Equal(t, 2, cfg.Modem.RepeatCount)
			assert.Equal(t, "hunter2", cfg.Secret)
			assert.Equal(t, LocatorPreamble, cfg.Locator)
			assert.Equal(t, 30*time.Second, cfg.Interval)
			assert.Equal(t, "debug", cfg.LogLevel)
			assert.Equal(t, "json", cfg.LogFormat)
			assert.Equal(t, "Focusrite USB ASIO", cfg.DeviceName)
			assert.Equal(t, 1, cfg.OutChannel)

			// untouched settings keep their defaults
			assert.Equal(t, 44100, cfg.Modem.SampleRate)
			assert.Equal(t, 50*time.Millisecond, cfg.Modem.GapDuration)
			require.NoError(t, cfg.Validate())
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFile(writeFile(t, "config.json", "{}"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, "config.yaml", "modem: [1, 2"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, "config.toml", "modem = {"))
	assert.Error(t, err)
}

func TestApplyFileConfigRespectsFlags(t *testing.T) {
	fc, err := LoadFile(writeFile(t, "config.yaml", yamlConfig))
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Modem.ChannelCount = 16
	changed := map[string]bool{"channels": true, "interval": true}
	require.NoError(t, ApplyFileConfig(&cfg, fc, changed))

	assert.Equal(t, 16, cfg.Modem.ChannelCount)
	assert.Equal(t, 5*time.Minute, cfg.Interval)
	assert.Equal(t, 2, cfg.Modem.RepeatCount)
}

func TestApplyFileConfigBadDuration(t *testing.T) {
	var fc FileConfig
	fc.Modem.GapDuration = "a while"

	cfg := DefaultConfig()
	err := ApplyFileConfig(&cfg, fc, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gap-duration")
	assert.Equal(t, 50*time.Millisecond, cfg.Modem.GapDuration)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "TONECAST_MAX_BITS", EnvName("max-bits"))
	assert.Equal(t, "TONECAST_SECRET", EnvName("secret"))
}

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("TONECAST_CHANNELS", "32")
	t.Setenv("TONECAST_DETECTION_RATIO", "0.4")
	t.Setenv("TONECAST_CYCLE_GAP_DURATION", "1s")
	t.Setenv("TONECAST_SECRET", " s3cret ")
	t.Setenv("TONECAST_LOG_LEVEL", "")
	t.Setenv("TONECAST_REPEATS", "9")

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnvConfig(&cfg, map[string]bool{"repeats": true}))

	assert.Equal(t, 32, cfg.Modem.ChannelCount)
	assert.Equal(t, 0.4, cfg.Modem.DetectionRatio)
	assert.Equal(t, time.Second, cfg.Modem.CycleGapDuration)
	assert.Equal(t, "s3cret", cfg.Secret)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Modem.RepeatCount)
}

func TestApplyEnvConfigInvalid(t *testing.T) {
	for name, value := range map[string]string{
		"TONECAST_SAMPLE_RATE": "fast",
		"TONECAST_FREQ_MIN":    "low",
		"TONECAST_INTERVAL":    "often",
	} {
		name, value := name, value
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, value)
			cfg := DefaultConfig()
			assert.Error(t, ApplyEnvConfig(&cfg, nil))
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "nope")))
	assert.True(t, FileExists(writeFile(t, "config.yaml", "")))
}

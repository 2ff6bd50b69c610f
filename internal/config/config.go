// Package config assembles the settings of the tonecast command from
// defaults, a YAML or TOML file, TONECAST_* environment variables and flags,
// in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"Tonecast/internal/logging"
	"Tonecast/pkg/modem"
)

const (
	LocatorFixed    = "fixed"
	LocatorPreamble = "preamble"
)

type Config struct {
	Modem modem.Config

	Secret   string        // mask for sealed packet payloads
	Locator  string        // how the receiver finds the first frame
	Interval time.Duration // regeneration period of the broadcast command

	DeviceName string // ASIO driver used by play and listen
	InChannel  int
	OutChannel int

	LogLevel  string
	LogFormat string
}

func DefaultConfig() Config {
	return Config{
		Modem:      modem.DefaultConfig(),
		Locator:    LocatorFixed,
		Interval:   5 * time.Minute,
		DeviceName: "ASIO4ALL v2",
		LogLevel:   "info",
		LogFormat:  logging.FormatConsole,
	}
}

func (c *Config) Validate() error {
	if err := c.Modem.Validate(); err != nil {
		return err
	}
	if c.Locator != LocatorFixed && c.Locator != LocatorPreamble {
		return fmt.Errorf("locator must be %q or %q, got %q", LocatorFixed, LocatorPreamble, c.Locator)
	}
	if c.InChannel < 0 || c.OutChannel < 0 {
		return fmt.Errorf("device channels must not be negative")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}
	return nil
}

// DemodulatorOptions returns the modem options implied by the locator setting.
func (c *Config) DemodulatorOptions() []modem.Option {
	if c.Locator == LocatorPreamble {
		return []modem.Option{modem.WithLocator(modem.NewPreambleLocator(c.Modem))}
	}
	return nil
}

// DefaultConfigPath returns ~/.tonecast/config.yaml when the home directory
// is known.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".tonecast", "config.yaml")
	}
	return ""
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

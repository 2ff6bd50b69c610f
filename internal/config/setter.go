package config

import (
	"fmt"
	"time"
)

// configSetter applies values unless the matching flag was set on the
// command line. The first parse error sticks and later calls are no-ops.
type configSetter struct {
	changed map[string]bool
	err     error
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) skip(flag string) bool {
	return s.err != nil || s.changed[flag]
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if s.skip(flag) || value == "" {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if s.skip(flag) || value == 0 {
		return
	}
	*dst = value
}

func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if s.skip(flag) || value == 0 {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) {
	if s.skip(flag) || value == "" {
		return
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		s.err = fmt.Errorf("invalid %s %q: %w", flag, value, err)
		return
	}
	*dst = d
}

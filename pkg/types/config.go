package types

import (
	"errors"
	"time"
)

// Default probe parameters for the liveness sweep.
const (
	DefaultProbeTimeout = 5 * time.Second
	DefaultProbeWorkers = 8
	DefaultProbeRate    = 20.0 // probes per second, 0 disables rate limiting
)

// Config holds the data directory and liveness sweep parameters.
type Config struct {
	DataDir      string        `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	ProbeTimeout time.Duration `json:"probe_timeout" yaml:"probe_timeout" mapstructure:"probe_timeout"`
	ProbeWorkers int           `json:"probe_workers" yaml:"probe_workers" mapstructure:"probe_workers"`
	ProbeRate    float64       `json:"probe_rate" yaml:"probe_rate" mapstructure:"probe_rate"`
}

// Config validation errors.
var (
	ErrDataDirEmpty        = errors.New("data dir must not be empty")
	ErrProbeTimeoutInvalid = errors.New("probe timeout must be positive")
	ErrProbeWorkersInvalid = errors.New("probe workers must be positive")
	ErrProbeRateInvalid    = errors.New("probe rate must not be negative")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.ProbeTimeout < 0 {
		return ErrProbeTimeoutInvalid
	}
	if c.ProbeWorkers < 0 {
		return ErrProbeWorkersInvalid
	}
	if c.ProbeRate < 0 {
		return ErrProbeRateInvalid
	}
	return nil
}

// WithDefaults returns a copy of the config with zero-valued sweep parameters
// replaced by the package defaults.
func (c Config) WithDefaults() Config {
	if c.ProbeTimeout == 0 {
		c.ProbeTimeout = DefaultProbeTimeout
	}
	if c.ProbeWorkers == 0 {
		c.ProbeWorkers = DefaultProbeWorkers
	}
	return c
}

package limelight

import (
	"fmt"
	"time"
)

// Default camera address and poll rate. 10.0.0.2:5807 is the address a
// Limelight claims on a standard FRC robot network.
const (
	DefaultHost         = "10.0.0.2"
	DefaultPort         = 5807
	DefaultPollInterval = 10 * time.Millisecond
)

// Config holds the camera address and poll rate for one client.
type Config struct {
	// Host is the camera hostname or IP.
	Host string `yaml:"host"`

	// Port is the camera HTTP port.
	Port int `yaml:"port"`

	// PollInterval is how often the poll loop fetches /results.
	PollInterval time.Duration `yaml:"poll_interval"`
}

// DefaultConfig returns the standard configuration for a camera on the
// robot network.
func DefaultConfig() Config {
	return Config{
		Host:         DefaultHost,
		Port:         DefaultPort,
		PollInterval: DefaultPollInterval,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.Host == "" {
		return &ConfigError{Param: "host", Reason: "must not be empty"}
	}
	if c.Port <= 0 || c.Port > 65535 {
		return &ConfigError{Param: "port", Reason: fmt.Sprintf("%d out of range", c.Port)}
	}
	if c.PollInterval <= 0 {
		return &ConfigError{Param: "poll interval", Reason: "must be positive"}
	}
	return nil
}

// baseURL returns the camera's HTTP base URL.
func (c Config) baseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

// sameEndpoint returns true if both configs point at the same host and port.
// An interval-only change is applied to a running loop without a restart;
// an endpoint change requires one.
func (c Config) sameEndpoint(other Config) bool {
	return c.Host == other.Host && c.Port == other.Port
}

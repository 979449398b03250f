package socket

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pulsesock/pulsesock-go/pkg/transport"
)

// Config holds the tunable transport parameters.
type Config struct {
	// ChannelCapacity bounds the inbound and outbound queues
	// (default: 64). A slow consumer on the wire applies backpressure
	// to Send once the outbound queue is full.
	ChannelCapacity int

	// HeartbeatInterval is the period between heartbeat pings
	// (default: 5s).
	HeartbeatInterval time.Duration

	// IdleTimeout is the maximum silence tolerated before the receive
	// stream is presumed dead (default: 15s). This should always be
	// higher than the heartbeat interval.
	IdleTimeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ChannelCapacity:   transport.DefaultChannelCapacity,
		HeartbeatInterval: transport.DefaultHeartbeatInterval,
		IdleTimeout:       transport.DefaultIdleTimeout,
	}
}

// Validate rejects negative values. Zero values mean "use the default"
// and pass validation.
func (c Config) Validate() error {
	if c.ChannelCapacity < 0 {
		return fmt.Errorf("channel_capacity must not be negative, got %d", c.ChannelCapacity)
	}
	if c.HeartbeatInterval < 0 {
		return fmt.Errorf("heartbeat_interval must not be negative, got %v", c.HeartbeatInterval)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("idle_timeout must not be negative, got %v", c.IdleTimeout)
	}
	return nil
}

// yamlConfig is the YAML shape of Config. Durations are Go duration
// strings ("5s", "300ms").
type yamlConfig struct {
	ChannelCapacity   int    `yaml:"channel_capacity"`
	HeartbeatInterval string `yaml:"heartbeat_interval"`
	IdleTimeout       string `yaml:"idle_timeout"`
}

// UnmarshalYAML decodes a Config from YAML, leaving omitted fields at
// their zero value so defaults apply.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw yamlConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.ChannelCapacity = raw.ChannelCapacity

	var err error
	if raw.HeartbeatInterval != "" {
		if c.HeartbeatInterval, err = time.ParseDuration(raw.HeartbeatInterval); err != nil {
			return fmt.Errorf("invalid heartbeat_interval: %w", err)
		}
	}
	if raw.IdleTimeout != "" {
		if c.IdleTimeout, err = time.ParseDuration(raw.IdleTimeout); err != nil {
			return fmt.Errorf("invalid idle_timeout: %w", err)
		}
	}
	return nil
}

// MarshalYAML encodes the Config with duration strings.
func (c Config) MarshalYAML() (any, error) {
	return yamlConfig{
		ChannelCapacity:   c.ChannelCapacity,
		HeartbeatInterval: c.HeartbeatInterval.String(),
		IdleTimeout:       c.IdleTimeout.String(),
	}, nil
}

// LoadConfig reads a YAML configuration file. Omitted fields fall back
// to the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.ChannelCapacity == 0 {
		cfg.ChannelCapacity = transport.DefaultChannelCapacity
	}
	if cfg.HeartbeatInterval == 0 {
		cfg.HeartbeatInterval = transport.DefaultHeartbeatInterval
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = transport.DefaultIdleTimeout
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

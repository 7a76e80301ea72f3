package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the daemon configuration, read from ~/.sparkd/config.toml.
// Every field has a working default; a missing file yields Default().
type Config struct {
	DataDir    string          `toml:"data_dir"`
	SocketPath string          `toml:"socket_path"`
	Simulator  SimulatorConfig `toml:"simulator"`
	Responder  ResponderConfig `toml:"responder"`
}

// SimulatorConfig controls the incoming-like simulator.
type SimulatorConfig struct {
	MaxLikes int      `toml:"max_likes"`
	Interval duration `toml:"interval"`
}

// ResponderConfig controls the chat auto-responder.
type ResponderConfig struct {
	ReplyDelay duration `toml:"reply_delay"`
}

// duration wraps time.Duration with TOML text encoding ("5s", "1.5s").
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Simulator: SimulatorConfig{
			MaxLikes: 3,
			Interval: duration{5 * time.Second},
		},
		Responder: ResponderConfig{
			ReplyDelay: duration{1500 * time.Millisecond},
		},
	}
}

// SimulatorInterval returns the delay between simulated likes.
func (c *Config) SimulatorInterval() time.Duration {
	return c.Simulator.Interval.Duration
}

// ReplyDelay returns the auto-responder delay.
func (c *Config) ReplyDelay() time.Duration {
	return c.Responder.ReplyDelay.Duration
}

// Load reads config from path, filling unset or invalid fields with
// defaults. A missing file is not an error; it returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if cfg.Simulator.MaxLikes <= 0 {
		cfg.Simulator.MaxLikes = Default().Simulator.MaxLikes
	}
	if cfg.Simulator.Interval.Duration <= 0 {
		cfg.Simulator.Interval = Default().Simulator.Interval
	}
	if cfg.Responder.ReplyDelay.Duration <= 0 {
		cfg.Responder.ReplyDelay = Default().Responder.ReplyDelay
	}
	return cfg, nil
}

// Save writes config to path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

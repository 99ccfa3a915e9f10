// Package cli implements the logic behind the facerig commands. The
// cobra definitions in cmd/facerig stay thin and delegate here.
package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServeConfig configures the serve command. YAML shape:
//
//	listen: ":8080"
//	metrics_listen: ":2112"
//	store:
//	  dir: ./sequences
//	  redis:
//	    addr: localhost:6379
//	    password: ""
//	    db: 0
//	    ttl: 1h
type ServeConfig struct {
	Listen        string      `yaml:"listen"`
	MetricsListen string      `yaml:"metrics_listen"`
	Store         StoreConfig `yaml:"store"`
}

// StoreConfig selects and configures the sequence store.
type StoreConfig struct {
	Dir   string       `yaml:"dir"`
	Redis *RedisConfig `yaml:"redis"`
}

// RedisConfig enables the read-through cache in front of the store.
type RedisConfig struct {
	Addr     string   `yaml:"addr"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	TTL      Duration `yaml:"ttl"`
}

// Duration parses "1h30m" style YAML scalars.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// DefaultServeConfig returns the config used when no file is given.
func DefaultServeConfig() ServeConfig {
	return ServeConfig{
		Listen:        ":8080",
		MetricsListen: ":2112",
		Store:         StoreConfig{Dir: "./sequences"},
	}
}

// LoadServeConfig reads a YAML config file, filling unset fields with
// defaults.
func LoadServeConfig(path string) (ServeConfig, error) {
	cfg := DefaultServeConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = "./sequences"
	}
	return cfg, nil
}

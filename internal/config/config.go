// Package config loads the flowguard.yaml settings shared by the CLI and the servers.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/flowguard/pkg/domain"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "flowguard.yaml"

// Server configures the HTTP adapter.
type Server struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Redis configures the Redis flow store. An empty Addr disables it.
type Redis struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

// Config is the root of flowguard.yaml.
type Config struct {
	LogLevel string        `yaml:"log_level" json:"log_level"`
	Limits   domain.Limits `yaml:"limits" json:"limits"`
	Server   Server        `yaml:"server" json:"server"`
	Redis    Redis         `yaml:"redis" json:"redis"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel: "info",
		Limits:   domain.DefaultLimits(),
		Server:   Server{Addr: ":8080"},
		Redis:    Redis{Prefix: "flowguard:"},
	}
}

// Load reads a configuration file (YAML or JSON) on top of the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	cfg.Limits = cfg.Limits.WithDefaults()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = Default().Server.Addr
	}
	return cfg, nil
}

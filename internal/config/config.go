// Package config loads the YAML configuration file shared by the CLI
// commands. Flags always win over file values; the file only supplies
// defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lineage-sh/lineage/internal/object"
)

// Config is the root configuration document.
type Config struct {
	// Database is the SQLite database path.
	Database string `yaml:"database"`

	// Hash selects the object id width: "sha1" or "sha256".
	Hash string `yaml:"hash"`

	Redis Redis `yaml:"redis"`
}

// Redis configures the optional ancestor-count cache. An empty Addr
// disables it.
type Redis struct {
	Addr string   `yaml:"addr"`
	TTL  Duration `yaml:"ttl"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "10m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Database: "lineage.db",
		Hash:     string(object.HashSHA1),
	}
}

// Load reads and validates a configuration file. Fields absent from the
// file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if object.HashAlgorithm(c.Hash).Width() == 0 {
		return fmt.Errorf("unknown hash algorithm %q", c.Hash)
	}
	if c.Database == "" {
		return fmt.Errorf("database path must not be empty")
	}
	return nil
}

// HashAlgorithm returns the validated hash algorithm.
func (c Config) HashAlgorithm() object.HashAlgorithm {
	return object.HashAlgorithm(c.Hash)
}

// Package config provides configuration management for the storyshare service.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the corresponding file values.
const (
	EnvAddr     = "STORYSHARE_ADDR"
	EnvDiagAddr = "STORYSHARE_DIAG_ADDR"
	EnvDataFile = "STORYSHARE_DATA_FILE"
)

// Config represents the main service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Limits  Limits        `yaml:"limits"`
}

// ServerConfig holds the listen addresses.
type ServerConfig struct {
	Addr     string `yaml:"addr"`      // application port
	DiagAddr string `yaml:"diag_addr"` // diagnostics port (/metrics)
}

// StorageConfig holds the persistence settings.
type StorageConfig struct {
	DataFile string `yaml:"data_file"` // path to the JSON story file
}

// Limits bounds the fields of a story submission. The content minimum keeps
// drive-by one-liners out; the maxima keep a single record from bloating
// the data file.
type Limits struct {
	ContentMin int `yaml:"content_min"`
	ContentMax int `yaml:"content_max"`
	TitleMax   int `yaml:"title_max"`
	AuthorMax  int `yaml:"author_max"`
}

// DefaultLimits returns the submission limits used when no config file
// overrides them.
func DefaultLimits() Limits {
	return Limits{
		ContentMin: 40,
		ContentMax: 1800,
		TitleMax:   120,
		AuthorMax:  80,
	}
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:     ":3333",
			DiagAddr: ":9999",
		},
		Storage: StorageConfig{
			DataFile: "data/stories.json",
		},
		Limits: DefaultLimits(),
	}
}

// Load reads and parses a configuration file from the specified path. An
// empty path yields the defaults. Environment variables take precedence
// over file values.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		// #nosec G304 -- path is provided by user as configuration file path
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}

		applyDefaults(config)
	}

	// Override with environment variables (env vars take precedence)
	if addr := os.Getenv(EnvAddr); addr != "" {
		config.Server.Addr = addr
	}
	if diagAddr := os.Getenv(EnvDiagAddr); diagAddr != "" {
		config.Server.DiagAddr = diagAddr
	}
	if dataFile := os.Getenv(EnvDataFile); dataFile != "" {
		config.Storage.DataFile = dataFile
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyDefaults fills in any field the config file left unset.
func applyDefaults(config *Config) {
	def := Default()

	if config.Server.Addr == "" {
		config.Server.Addr = def.Server.Addr
	}
	if config.Server.DiagAddr == "" {
		config.Server.DiagAddr = def.Server.DiagAddr
	}
	if config.Storage.DataFile == "" {
		config.Storage.DataFile = def.Storage.DataFile
	}
	if config.Limits.ContentMin == 0 {
		config.Limits.ContentMin = def.Limits.ContentMin
	}
	if config.Limits.ContentMax == 0 {
		config.Limits.ContentMax = def.Limits.ContentMax
	}
	if config.Limits.TitleMax == 0 {
		config.Limits.TitleMax = def.Limits.TitleMax
	}
	if config.Limits.AuthorMax == 0 {
		config.Limits.AuthorMax = def.Limits.AuthorMax
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if c.Server.DiagAddr == "" {
		return fmt.Errorf("server.diag_addr cannot be empty")
	}
	if c.Storage.DataFile == "" {
		return fmt.Errorf("storage.data_file cannot be empty")
	}
	if c.Limits.ContentMin < 1 {
		return fmt.Errorf("limits.content_min must be positive, got %d", c.Limits.ContentMin)
	}
	if c.Limits.ContentMax < c.Limits.ContentMin {
		return fmt.Errorf("limits.content_max must be at least content_min, got %d < %d",
			c.Limits.ContentMax, c.Limits.ContentMin)
	}
	if c.Limits.TitleMax < 1 {
		return fmt.Errorf("limits.title_max must be positive, got %d", c.Limits.TitleMax)
	}
	if c.Limits.AuthorMax < 1 {
		return fmt.Errorf("limits.author_max must be positive, got %d", c.Limits.AuthorMax)
	}

	return nil
}

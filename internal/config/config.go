// Package config handles configuration loading and shared data structures.
package config

import (
	"os"
	"time"

	"github.com/woozymasta/licblocks/internal/rfgf"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Source Source `yaml:"source"`
	Parser Parser `yaml:"parser"`
	Output Output `yaml:"output"`
	Server Server `yaml:"server"`
}

// Source describes where registry exports come from.
type Source struct {
	URL      string        `yaml:"url,omitempty"`
	Request  string        `yaml:"request"` // saved JSON query payload
	Result   string        `yaml:"result"`  // downloaded export
	Timeout  time.Duration `yaml:"timeout,omitempty"`
	Insecure bool          `yaml:"insecure,omitempty"`
}

// Parser holds coordinate listing parser settings.
type Parser struct {
	Threshold   float64 `yaml:"threshold,omitempty"`
	Concurrency int     `yaml:"concurrency,omitempty"`
}

// Output describes where converted blocks are written.
type Output struct {
	GeoJSON     string `yaml:"geojson"`
	PostgresDSN string `yaml:"postgres_dsn,omitempty"`
	Table       string `yaml:"table,omitempty"`
}

// Server holds HTTP API settings.
type Server struct {
	Addr string `yaml:"addr,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Source.URL == "" {
		c.Source.URL = rfgf.DefaultURL
	}
	if c.Source.Request == "" {
		c.Source.Request = "request.json"
	}
	if c.Source.Result == "" {
		c.Source.Result = "export.json"
	}
	if c.Source.Timeout <= 0 {
		c.Source.Timeout = 10 * time.Minute
	}
	if c.Parser.Threshold <= 0 {
		c.Parser.Threshold = 0.1
	}
	if c.Parser.Concurrency <= 0 {
		c.Parser.Concurrency = 4
	}
	if c.Output.GeoJSON == "" {
		c.Output.GeoJSON = "blocks.geojson"
	}
	if c.Output.Table == "" {
		c.Output.Table = "license_blocks"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "0.0.0.0"
	}
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
}

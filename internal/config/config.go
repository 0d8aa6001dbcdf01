package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config for the staffing map service. The mappings section drives
// column normalization of the three source workbooks and must be
// present for a reload to succeed.
type Config struct {
	DataDir string `yaml:"data_dir"`
	Files   struct {
		Employees  string `yaml:"employees"`
		Properties string `yaml:"properties"`
		Positions  string `yaml:"positions"`
	} `yaml:"files"`
	Mappings map[string]map[string][]string `yaml:"mappings"`
	Flags    struct {
		TreatMissingPositionsAsVacant bool `yaml:"treat_missing_positions_as_vacant"`
	} `yaml:"flags"`
	Geocode struct {
		Enabled bool   `yaml:"enabled"`
		BaseURL string `yaml:"base_url"`
		Email   string `yaml:"email"`
	} `yaml:"geocode"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads the YAML config file and applies environment overrides.
// A missing file is an error; missing individual settings fall back to
// defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Files.Employees == "" {
		c.Files.Employees = "Employee.xlsx"
	}
	if c.Files.Properties == "" {
		c.Files.Properties = "Properties_geocoded.xlsx"
	}
	if c.Files.Positions == "" {
		c.Files.Positions = "Positions.xlsx"
	}
	if c.Geocode.BaseURL == "" {
		c.Geocode.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

func (c *Config) applyEnv() {
	c.DataDir = getEnv("DATA_DIR", c.DataDir)
	c.HTTP.Addr = getEnv("HTTP_ADDR", c.HTTP.Addr)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

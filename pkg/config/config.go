// Package config provides configuration loading and management for usefulfunctions.
// It handles loading configuration from YAML or TOML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"usefulfunctions/internal/models"
)

// Config represents the application configuration
type Config struct {
	// Image slicing parameters
	Slicing struct {
		// Grid is the number of columns and rows to cut an image into
		Grid models.Grid `yaml:"grid" toml:"grid"`

		// Save determines whether cut slices are written to OutputDir
		Save bool `yaml:"save" toml:"save"`

		// OutputDir is where slices are written. There is no implicit default;
		// it must be set here or on the command line.
		OutputDir string `yaml:"outputDir" toml:"outputDir"`

		// Format is png or jpeg
		Format string `yaml:"format" toml:"format"`

		// Names optionally names each slice in row-major order
		Names []string `yaml:"names,omitempty" toml:"names,omitempty"`
	} `yaml:"slicing" toml:"slicing"`

	// Chart parameters
	Chart struct {
		// Width and Height are the rendered size in pixels
		Width  int `yaml:"width" toml:"width"`
		Height int `yaml:"height" toml:"height"`

		// Colormap names the palette used by the missing-values heatmap
		Colormap string `yaml:"colormap" toml:"colormap"`

		// FontSize is the annotation size of correlation heatmap cells
		FontSize float64 `yaml:"fontSize" toml:"fontSize"`

		// TimeFormat is the Go layout used on time axes
		TimeFormat string `yaml:"timeFormat" toml:"timeFormat"`
	} `yaml:"chart" toml:"chart"`

	// Distance parameters
	Distance struct {
		// EarthRadiusKm is the sphere radius used for haversine distances
		EarthRadiusKm float64 `yaml:"earthRadiusKm" toml:"earthRadiusKm"`
	} `yaml:"distance" toml:"distance"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose" toml:"verbose"`
	} `yaml:"output" toml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Slicing.Grid = models.Grid{Columns: 2, Rows: 1}
	cfg.Slicing.Save = true
	cfg.Slicing.Format = "png"

	cfg.Chart.Width = 1500
	cfg.Chart.Height = 800
	cfg.Chart.Colormap = "magma"
	cfg.Chart.FontSize = 10
	cfg.Chart.TimeFormat = "2006-01-02"

	cfg.Distance.EarthRadiusKm = 6371

	cfg.Output.Verbose = true

	return cfg
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// LoadConfig loads configuration from a YAML or TOML file, chosen by extension.
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if isTOML(configPath) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Slicing.Grid.Validate(); err != nil {
		return nil, fmt.Errorf("invalid slicing grid in %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML or TOML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	var data []byte
	if isTOML(configPath) {
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		data = []byte(sb.String())
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}

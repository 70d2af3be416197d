package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTimezone  = "Europe/Paris"
	DefaultMaxCharts = 6
)

// Config holds the application settings
type Config struct {
	DataDir     string     `yaml:"-"`
	Timezone    string     `yaml:"timezone"`
	RecentLimit int        `yaml:"recent_limit"`
	MaxCharts   int        `yaml:"max_charts"`
	Cleaning    CleanRules `yaml:"cleaning"`
}

// DefaultConfig returns the built-in settings for a data directory
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:     dataDir,
		Timezone:    DefaultTimezone,
		RecentLimit: DefaultRecentLimit,
		MaxCharts:   DefaultMaxCharts,
		Cleaning:    DefaultCleanRules(),
	}
}

// LoadConfig returns the default settings for dataDir overlaid with
// <dataDir>/config.yaml when it exists. An empty dataDir uses DetectDataDir.
func LoadConfig(dataDir string) (Config, error) {
	if dataDir == "" {
		dir, err := DetectDataDir()
		if err != nil {
			return Config{}, err
		}
		dataDir = dir
	}
	cfg := DefaultConfig(dataDir)

	path := filepath.Join(dataDir, configFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, &StorageError{Path: path, Op: "read", Err: err}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ParseError{Source: "config", Key: path, Err: err}
	}
	cfg.DataDir = dataDir
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings and fills unset limits with defaults
func (c *Config) Validate() error {
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.RecentLimit <= 0 {
		c.RecentLimit = DefaultRecentLimit
	}
	if c.MaxCharts <= 0 {
		c.MaxCharts = DefaultMaxCharts
	}
	defaults := DefaultCleanRules()
	if c.Cleaning.MaxSpeed <= 0 {
		c.Cleaning.MaxSpeed = defaults.MaxSpeed
	}
	if c.Cleaning.MaxVoltage <= 0 {
		c.Cleaning.MaxVoltage = defaults.MaxVoltage
	}
	if c.Cleaning.MaxAltitudeJump <= 0 {
		c.Cleaning.MaxAltitudeJump = defaults.MaxAltitudeJump
	}
	if c.Cleaning.MaxCurrent <= 0 {
		c.Cleaning.MaxCurrent = defaults.MaxCurrent
	}
	return nil
}

// Location resolves the configured time zone
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Paths returns the on-disk layout of the configured data directory
func (c Config) Paths() DataPaths {
	return NewDataPaths(c.DataDir)
}

// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/benchchart.json"
	// DefaultDataPath is the benchmark data file read when none is given.
	DefaultDataPath = "data.toml"
	// defaultFormat is the export format used when the config omits it.
	defaultFormat = "svg"
	// defaultHighlight is the package outlined in every chart.
	defaultHighlight = "spdlog-rs"
	defaultLogFile   = "benchchart.log"
)

var supportedFormats = []string{"svg", "png"}

// Config represents the top-level application configuration.
type Config struct {
	DataPath       string `json:"data" mapstructure:"data"`
	OutputDir      string `json:"outputDir,omitempty" mapstructure:"outputDir"`
	Format         string `json:"format,omitempty" mapstructure:"format"`
	Export         bool   `json:"export" mapstructure:"export"`
	HTMLReport     string `json:"htmlReport,omitempty" mapstructure:"htmlReport"`
	Highlight      string `json:"highlight,omitempty" mapstructure:"highlight"`
	RustSyncBench  string `json:"rustSyncBench,omitempty" mapstructure:"rustSyncBench"`
	RustAsyncBench string `json:"rustAsyncBench,omitempty" mapstructure:"rustAsyncBench"`
	LogFile        string `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug          bool   `json:"debug" mapstructure:"debug"`
	ConfigPath     string `json:"-" mapstructure:"-"`
}

// DataFile returns the benchmark data path, applying the default if not set.
func (c Config) DataFile() string {
	if path := strings.TrimSpace(c.DataPath); path != "" {
		return path
	}
	return DefaultDataPath
}

// ResolvedOutputDir returns where exported charts go: the configured directory,
// or the directory holding the data file.
func (c Config) ResolvedOutputDir() string {
	if dir := strings.TrimSpace(c.OutputDir); dir != "" {
		return dir
	}
	return filepath.Dir(c.DataFile())
}

// ExportFormat returns the lower-cased export format, defaulting to svg.
func (c Config) ExportFormat() string {
	if f := strings.ToLower(strings.TrimSpace(c.Format)); f != "" {
		return f
	}
	return defaultFormat
}

// HighlightName returns the package to outline in charts.
func (c Config) HighlightName() string {
	if h := strings.TrimSpace(c.Highlight); h != "" {
		return h
	}
	return defaultHighlight
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// Validate rejects settings the renderer cannot honour.
func (c Config) Validate() error {
	format := c.ExportFormat()
	for _, f := range supportedFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("invalid configuration: unsupported format %q (want one of %s)", c.Format, strings.Join(supportedFormats, ", "))
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}

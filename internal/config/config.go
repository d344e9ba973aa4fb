// Package config provides configuration types and defaults for ruleta.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"ruleta/internal/log"
)

// ThemeConfig holds the color tokens used by every screen.
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"` // brand accent, buttons and borders
	Subtle    string `mapstructure:"subtle"`    // secondary text
	Error     string `mapstructure:"error"`     // message area, failed exports
	Success   string `mapstructure:"success"`   // winner badges
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowCharts bool `mapstructure:"show_charts"` // charts panel on the registros dashboard
	ShowFooter bool `mapstructure:"show_footer"` // record count footer
}

// TracingConfig configures the optional OpenTelemetry pipeline around
// remote API calls.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"` // none, file, stdout, otlp
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// Config holds all configuration options for ruleta.
//
// APIURL and Campaign are read once at startup and injected into every
// component that needs them; nothing mutates them at runtime.
type Config struct {
	APIURL    string        `mapstructure:"api_url"`
	Campaign  string        `mapstructure:"campaign"`
	Timezone  string        `mapstructure:"timezone"` // IANA name for timestamp rendering
	ExportDir string        `mapstructure:"export_dir"`
	UI        UIConfig      `mapstructure:"ui"`
	Theme     ThemeConfig   `mapstructure:"theme"`
	Tracing   TracingConfig `mapstructure:"tracing"`
}

// Defaults returns the configuration used when no config file exists.
func Defaults() Config {
	return Config{
		APIURL:    "http://localhost:3000",
		Campaign:  "CAMPANA_DEFAULT",
		Timezone:  "America/Lima",
		ExportDir: ".",
		UI: UIConfig{
			ShowCharts: true,
			ShowFooter: true,
		},
		Theme: ThemeConfig{
			Highlight: "#65C7C3",
			Subtle:    "#6B7280",
			Error:     "#EF4444",
			Success:   "#4ADE80",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks that the config can drive the kiosk.
func (c Config) Validate() error {
	if c.Campaign == "" {
		return fmt.Errorf("campaign is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q is not an absolute URL", c.APIURL)
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("timezone %q: %w", c.Timezone, err)
		}
	}
	return nil
}

// Location returns the configured rendering time zone, falling back to UTC
// when the zone cannot be loaded. The fallback is deliberate: timestamp
// rendering is presentation, never a blocker.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn(log.CatConfig, "Falling back to UTC", "timezone", c.Timezone)
		return time.UTC
	}
	return loc
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# ruleta configuration
# Campaign identity and API endpoint are read once at startup.

# Base URL of the campaign API
api_url: http://localhost:3000

# Campaign identifier sent with every spin and listing request
campaign: CAMPANA_DEFAULT

# Time zone used to render registration timestamps
timezone: America/Lima

# Directory where exported spreadsheets are written
export_dir: .

ui:
  show_charts: true   # charts panel on the registros dashboard
  show_footer: true   # "Mostrando N últimos registros" footer

theme:
  highlight: "#65C7C3"
  subtle: "#6B7280"
  error: "#EF4444"
  success: "#4ADE80"

# Distributed tracing around remote API calls
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/ruleta/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

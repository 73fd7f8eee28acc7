// Package config provides configuration management for heimdex-contracts.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

const (
	// Default values
	DefaultPort             = 8787
	DefaultLogLevel         = "info"
	DefaultBatchConcurrency = 4
	DefaultExportFrameRate  = 30.0

	// Environment variable names
	EnvPort             = "HEIMDEX_PORT"
	EnvLogLevel         = "HEIMDEX_LOG_LEVEL"
	EnvProfilePath      = "HEIMDEX_PROFILE_PATH"
	EnvAuthToken        = "HEIMDEX_AUTH_TOKEN"
	EnvBatchConcurrency = "HEIMDEX_BATCH_CONCURRENCY"
	EnvExportFrameRate  = "HEIMDEX_EXPORT_FRAME_RATE"
	EnvCloudBaseURL     = "HEIMDEX_CLOUD_BASE_URL"
	EnvCloudToken       = "HEIMDEX_CLOUD_TOKEN"
	EnvCloudOrgSlug     = "HEIMDEX_CLOUD_ORG_SLUG"
	EnvCloudLibraryID   = "HEIMDEX_CLOUD_LIBRARY_ID"
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	ProfilePath() string
	AuthToken() string
	BatchConcurrency() int
	ExportFrameRate() float64
	CloudBaseURL() string
	CloudToken() string
	CloudOrgSlug() string
	CloudLibraryID() string
}

// EnvConfig reads configuration from environment variables
type EnvConfig struct {
	port             int
	logLevel         string
	profilePath      string
	authToken        string
	batchConcurrency int
	exportFrameRate  float64
	cloudBaseURL     string
	cloudToken       string
	cloudOrgSlug     string
	cloudLibraryID   string
}

// New creates a new EnvConfig with defaults and environment variable overrides
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		port:             DefaultPort,
		logLevel:         DefaultLogLevel,
		batchConcurrency: DefaultBatchConcurrency,
		exportFrameRate:  DefaultExportFrameRate,
	}

	// Override port from environment
	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}

	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}

	cfg.profilePath = os.Getenv(EnvProfilePath)
	cfg.authToken = os.Getenv(EnvAuthToken)

	if bc := os.Getenv(EnvBatchConcurrency); bc != "" {
		n, err := strconv.Atoi(bc)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvBatchConcurrency, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("invalid %s: must be at least 1", EnvBatchConcurrency)
		}
		cfg.batchConcurrency = n
	}

	if fr := os.Getenv(EnvExportFrameRate); fr != "" {
		rate, err := strconv.ParseFloat(fr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvExportFrameRate, err)
		}
		// Rates below 1 round to a zero timebase.
		if rate < 1 || rate > 1000 {
			return nil, fmt.Errorf("invalid %s: frame rate must be between 1 and 1000", EnvExportFrameRate)
		}
		cfg.exportFrameRate = rate
	}

	if u := os.Getenv(EnvCloudBaseURL); u != "" {
		parsed, err := url.Parse(u)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvCloudBaseURL, err)
		}
		if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return nil, fmt.Errorf("invalid %s: must be an http or https URL", EnvCloudBaseURL)
		}
		cfg.cloudBaseURL = u
	}
	cfg.cloudToken = os.Getenv(EnvCloudToken)
	cfg.cloudOrgSlug = os.Getenv(EnvCloudOrgSlug)
	cfg.cloudLibraryID = os.Getenv(EnvCloudLibraryID)

	return cfg, nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// ProfilePath returns the profile file path, empty for built-in defaults
func (c *EnvConfig) ProfilePath() string {
	return c.profilePath
}

// AuthToken returns the bearer token the API requires, empty for no auth
func (c *EnvConfig) AuthToken() string {
	return c.authToken
}

func (c *EnvConfig) BatchConcurrency() int {
	return c.batchConcurrency
}

func (c *EnvConfig) ExportFrameRate() float64 {
	return c.exportFrameRate
}

// CloudBaseURL returns the search backend URL, empty when pushing is disabled
func (c *EnvConfig) CloudBaseURL() string {
	return c.cloudBaseURL
}

func (c *EnvConfig) CloudToken() string {
	return c.cloudToken
}

func (c *EnvConfig) CloudOrgSlug() string {
	return c.cloudOrgSlug
}

// CloudLibraryID returns the default library for ingest pushes
func (c *EnvConfig) CloudLibraryID() string {
	return c.cloudLibraryID
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout is the per-request timeout. Icons are small static
	// assets; 30 seconds covers slow CDN cold paths without stalling a
	// batch for minutes on a dead host.
	DefaultTimeout = 30 * time.Second

	// DefaultBatchSize of 4 concurrent site audits balances throughput
	// with politeness. A single site's three category checks already
	// run back to back, so higher values mostly add load, not speed.
	DefaultBatchSize = 4

	// DefaultMaxBodySize limits the response body size to read.
	// 2MB is generous for any icon; anything larger is itself a finding
	// waiting to happen, but we still truncate rather than hang.
	DefaultMaxBodySize = 2 * 1024 * 1024 // 2MB

	// DefaultUserAgent identifies iconaudit in HTTP requests.
	// A descriptive User-Agent lets site operators identify audit
	// traffic in their logs.
	DefaultUserAgent = "iconaudit/1.0 (+https://github.com/nao1215/iconaudit)"

	// AppName is the application name used for XDG directory paths.
	AppName = "iconaudit"
)

// Config holds all configuration options for iconaudit.
// It is populated from CLI flags and the optional config file, then
// passed through the application by dependency injection; there is no
// global state.
type Config struct {
	// Timeout is the per-request timeout for icon fetches.
	Timeout time.Duration

	// BatchSize is the number of concurrent site audits.
	BatchSize int

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .iconaudit in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds per-site candidate sets loaded from the config file.
	SiteConfigs *File

	// ReportFile is the output file path for the JSON report.
	// When set, the report is written there instead of stdout.
	ReportFile string

	// PrettyPrint enables indented JSON report output.
	PrettyPrint bool

	// SaveToDB indicates whether to save audit results to the database.
	SaveToDB bool

	// DBDir is the directory path for the SQLite database.
	// Defaults to the XDG data directory.
	DBDir string

	// Targets is the list of base document URLs to audit.
	Targets []string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor instead of relying on zero
// values because many defaults are non-zero, and the constructor
// doubles as documentation of what they are.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		BatchSize:   DefaultBatchSize,
		MaxBodySize: DefaultMaxBodySize,
		UserAgent:   DefaultUserAgent,
		SaveToDB:    true,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for iconaudit.
// On Linux: ~/.local/share/iconaudit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for iconaudit.
// On Linux: ~/.config/iconaudit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error so callers can
// match with errors.Is.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}

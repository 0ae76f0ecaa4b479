package entities

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig  `toml:"server"`
	Slides   SlidesConfig  `toml:"slides"`
	Output   OutputConfig  `toml:"output"`
	Browser  BrowserConfig `toml:"browser"`
	Watcher  WatcherConfig `toml:"watcher"`
	Metadata Metadata      `toml:"metadata"`
	Logging  LoggingConfig `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Slides.Validate(); err != nil {
		return fmt.Errorf("slides config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.Browser.Validate(); err != nil {
		return fmt.Errorf("browser config: %w", err)
	}

	if err := c.Watcher.Validate(); err != nil {
		return fmt.Errorf("watcher config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	Environment     string   `toml:"environment"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" {
		if ip := net.ParseIP(s.Host); ip == nil {
			if _, err := net.LookupHost(s.Host); err != nil {
				return fmt.Errorf("invalid host: %w", err)
			}
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	// Validate CORS origins
	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		// Allow wildcard origin for development
		if origin == "*" {
			continue
		}
		// Basic URL validation
		if len(origin) < 7 || (!strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://")) {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetCORSOrigins returns CORS origins with defaults if empty
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		// Default to secure localhost origins for development
		return []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		}
	}
	return s.CORSOrigins
}

// IsDevelopment returns true if the server is running in development mode
func (s ServerConfig) IsDevelopment() bool {
	return s.Environment == "development" || s.Environment == ""
}

// SlidesConfig contains slide page geometry. Dimensions are in inches; zero
// means "use the default 10 x 7.5 page".
type SlidesConfig struct {
	WidthInches  float64 `toml:"width"`
	HeightInches float64 `toml:"height"`
}

// Validate validates slide geometry configuration
func (s SlidesConfig) Validate() error {
	if s.WidthInches < 0 {
		return errors.New("slide width must be non-negative")
	}

	if s.HeightInches < 0 {
		return errors.New("slide height must be non-negative")
	}

	// Either both dimensions are set or neither is; a half-specified page
	// is almost always a typo.
	if (s.WidthInches == 0) != (s.HeightInches == 0) {
		return errors.New("slide width and height must be set together")
	}

	return nil
}

// GetSize returns the configured page size with defaults if unset
func (s SlidesConfig) GetSize() SlideSize {
	if s.WidthInches <= 0 || s.HeightInches <= 0 {
		return DefaultSlideSize()
	}
	return SlideSize{
		Width:  Inches(s.WidthInches),
		Height: Inches(s.HeightInches),
	}
}

// OutputConfig contains build output configuration
type OutputConfig struct {
	// Path is the HTML file the build command writes. Empty derives the
	// name from the deck file.
	Path string `toml:"path"`
}

// Validate validates output configuration
func (o OutputConfig) Validate() error {
	if o.Path != "" && strings.HasSuffix(o.Path, string(filepath.Separator)) {
		return errors.New("output path must name a file, not a directory")
	}
	return nil
}

// BrowserConfig contains browser launch configuration
type BrowserConfig struct {
	AutoOpen bool   `toml:"auto_open"`
	Browser  string `toml:"browser"`
}

// Validate validates browser configuration
func (b BrowserConfig) Validate() error {
	// Browser name validation is minimal since it's platform-dependent
	return nil
}

// WatcherConfig contains file watcher configuration
type WatcherConfig struct {
	IntervalMs   int `toml:"interval_ms"`
	DebounceMs   int `toml:"debounce_ms"`
	MaxRetries   int `toml:"max_retries"`
	RetryDelayMs int `toml:"retry_delay_ms"`
}

// Validate validates watcher configuration. Zero values mean "use the
// default" so partial config files stay valid.
func (w WatcherConfig) Validate() error {
	if w.IntervalMs < 0 || (w.IntervalMs > 0 && w.IntervalMs < 50) {
		return errors.New("watcher interval must be at least 50ms")
	}

	if w.DebounceMs < 0 {
		return errors.New("debounce time must be non-negative")
	}

	if w.MaxRetries < 0 {
		return errors.New("max retries must be non-negative")
	}

	if w.RetryDelayMs < 0 {
		return errors.New("retry delay must be non-negative")
	}

	return nil
}

// GetInterval returns the watcher interval as a duration
func (w WatcherConfig) GetInterval() time.Duration {
	if w.IntervalMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(w.IntervalMs) * time.Millisecond
}

// GetDebounce returns the debounce time as a duration
func (w WatcherConfig) GetDebounce() time.Duration {
	if w.DebounceMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// GetRetryDelay returns the retry delay as a duration
func (w WatcherConfig) GetRetryDelay() time.Duration {
	if w.RetryDelayMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(w.RetryDelayMs) * time.Millisecond
}

// Metadata contains deck metadata defaults
type Metadata struct {
	Author  string `toml:"author"`
	Email   string `toml:"email"`
	Company string `toml:"company"`
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`       // debug, info, warn, error
	Verbose    bool   `toml:"verbose"`     // Enable verbose logging
	JSONFormat bool   `toml:"json_format"` // Output logs in JSON format
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	// Validate log level
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		// Valid levels
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}

	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo // Default level
	}
	return LogLevel(l.Level)
}

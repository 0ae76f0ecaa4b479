package config

import (
	"os"
	"strconv"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	// Start with first config as base
	result := deepCopy(configs[0])

	// Merge subsequent configs
	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	// Apply CLI flag overrides
	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if output, ok := flags["output"].(string); ok && output != "" {
		result.Output.Path = output
	}

	if noBrowser, ok := flags["no-browser"].(bool); ok {
		result.Browser.AutoOpen = !noBrowser
	}

	if author, ok := flags["author"].(string); ok && author != "" {
		result.Metadata.Author = author
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
	}

	return result
}

// ApplyEnvVars applies environment variable overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	// Server configuration from environment
	if host := os.Getenv("DECKGEN_HOST"); host != "" {
		result.Server.Host = host
	}

	if portStr := os.Getenv("DECKGEN_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			result.Server.Port = port
		}
	}

	// Slide geometry from environment
	if widthStr := os.Getenv("DECKGEN_SLIDE_WIDTH"); widthStr != "" {
		if width, err := strconv.ParseFloat(widthStr, 64); err == nil && width > 0 {
			result.Slides.WidthInches = width
		}
	}

	if heightStr := os.Getenv("DECKGEN_SLIDE_HEIGHT"); heightStr != "" {
		if height, err := strconv.ParseFloat(heightStr, 64); err == nil && height > 0 {
			result.Slides.HeightInches = height
		}
	}

	// Output configuration from environment
	if output := os.Getenv("DECKGEN_OUTPUT"); output != "" {
		result.Output.Path = output
	}

	// Browser configuration from environment
	if noBrowserStr := os.Getenv("DECKGEN_NO_BROWSER"); noBrowserStr != "" {
		if noBrowser, err := strconv.ParseBool(noBrowserStr); err == nil {
			result.Browser.AutoOpen = !noBrowser
		}
	}

	if browser := os.Getenv("DECKGEN_BROWSER"); browser != "" {
		result.Browser.Browser = browser
	}

	// Watcher configuration from environment
	if intervalStr := os.Getenv("DECKGEN_WATCH_INTERVAL"); intervalStr != "" {
		if interval, err := strconv.Atoi(intervalStr); err == nil && interval > 0 {
			result.Watcher.IntervalMs = interval
		}
	}

	if debounceStr := os.Getenv("DECKGEN_WATCH_DEBOUNCE"); debounceStr != "" {
		if debounce, err := strconv.Atoi(debounceStr); err == nil && debounce >= 0 {
			result.Watcher.DebounceMs = debounce
		}
	}

	// Metadata from environment
	if author := os.Getenv("DECKGEN_AUTHOR"); author != "" {
		result.Metadata.Author = author
	}

	if email := os.Getenv("DECKGEN_EMAIL"); email != "" {
		result.Metadata.Email = email
	}

	if company := os.Getenv("DECKGEN_COMPANY"); company != "" {
		result.Metadata.Company = company
	}

	return result
}

// mergeInto merges source configuration into target configuration
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Server config
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if source.Server.Environment != "" {
		target.Server.Environment = source.Server.Environment
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = make([]string, len(source.Server.CORSOrigins))
		copy(target.Server.CORSOrigins, source.Server.CORSOrigins)
	}

	// Slide geometry
	if source.Slides.WidthInches != 0 {
		target.Slides.WidthInches = source.Slides.WidthInches
	}
	if source.Slides.HeightInches != 0 {
		target.Slides.HeightInches = source.Slides.HeightInches
	}

	// Output config
	if source.Output.Path != "" {
		target.Output.Path = source.Output.Path
	}

	// Browser config
	if source.Browser.Browser != "" {
		target.Browser.Browser = source.Browser.Browser
	}
	// For boolean fields, we need to check if they were explicitly set
	// This is a limitation of TOML - we can't distinguish between false and unset
	// We'll always merge boolean fields for now (this is a known TOML limitation)
	target.Browser.AutoOpen = source.Browser.AutoOpen

	// Watcher config
	if source.Watcher.IntervalMs != 0 {
		target.Watcher.IntervalMs = source.Watcher.IntervalMs
	}
	if source.Watcher.DebounceMs != 0 {
		target.Watcher.DebounceMs = source.Watcher.DebounceMs
	}
	if source.Watcher.MaxRetries != 0 {
		target.Watcher.MaxRetries = source.Watcher.MaxRetries
	}
	if source.Watcher.RetryDelayMs != 0 {
		target.Watcher.RetryDelayMs = source.Watcher.RetryDelayMs
	}

	// Metadata config
	if source.Metadata.Author != "" {
		target.Metadata.Author = source.Metadata.Author
	}
	if source.Metadata.Email != "" {
		target.Metadata.Email = source.Metadata.Email
	}
	if source.Metadata.Company != "" {
		target.Metadata.Company = source.Metadata.Company
	}

	// Logging config; booleans merge unconditionally, same as browser
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	target.Logging.Verbose = source.Logging.Verbose
	target.Logging.JSONFormat = source.Logging.JSONFormat
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	// Manual copy to avoid reflection for performance
	dst := &entities.Config{
		Server: entities.ServerConfig{
			Host:            src.Server.Host,
			Port:            src.Server.Port,
			ReadTimeout:     src.Server.ReadTimeout,
			WriteTimeout:    src.Server.WriteTimeout,
			ShutdownTimeout: src.Server.ShutdownTimeout,
			Environment:     src.Server.Environment,
		},
		Slides: entities.SlidesConfig{
			WidthInches:  src.Slides.WidthInches,
			HeightInches: src.Slides.HeightInches,
		},
		Output: entities.OutputConfig{
			Path: src.Output.Path,
		},
		Browser: entities.BrowserConfig{
			AutoOpen: src.Browser.AutoOpen,
			Browser:  src.Browser.Browser,
		},
		Watcher: entities.WatcherConfig{
			IntervalMs:   src.Watcher.IntervalMs,
			DebounceMs:   src.Watcher.DebounceMs,
			MaxRetries:   src.Watcher.MaxRetries,
			RetryDelayMs: src.Watcher.RetryDelayMs,
		},
		Metadata: entities.Metadata{
			Author:  src.Metadata.Author,
			Email:   src.Metadata.Email,
			Company: src.Metadata.Company,
		},
		Logging: entities.LoggingConfig{
			Level:      src.Logging.Level,
			Verbose:    src.Logging.Verbose,
			JSONFormat: src.Logging.JSONFormat,
		},
	}

	// Copy slices
	if src.Server.CORSOrigins != nil {
		dst.Server.CORSOrigins = make([]string, len(src.Server.CORSOrigins))
		copy(dst.Server.CORSOrigins, src.Server.CORSOrigins)
	}

	return dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)

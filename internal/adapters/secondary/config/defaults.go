package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	config := &entities.Config{
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault("DECKGEN_HOST", "localhost"),
			Port:            getEnvIntOrDefault("DECKGEN_PORT", 1000),
			ReadTimeout:     getEnvIntOrDefault("DECKGEN_READ_TIMEOUT", 30),
			WriteTimeout:    getEnvIntOrDefault("DECKGEN_WRITE_TIMEOUT", 30),
			ShutdownTimeout: getEnvIntOrDefault("DECKGEN_SHUTDOWN_TIMEOUT", 5),
			CORSOrigins: getEnvSliceOrDefault("DECKGEN_CORS_ORIGINS", []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:8080",
				"http://127.0.0.1:8080",
			}),
		},
		Slides: entities.SlidesConfig{
			WidthInches:  10,
			HeightInches: 7.5,
		},
		Output: entities.OutputConfig{
			Path: getEnvOrDefault("DECKGEN_OUTPUT", ""),
		},
		Browser: entities.BrowserConfig{
			AutoOpen: true,
			Browser:  "default",
		},
		Watcher: entities.WatcherConfig{
			IntervalMs:   200,
			DebounceMs:   500,
			MaxRetries:   3,
			RetryDelayMs: 100,
		},
		Metadata: entities.Metadata{
			Author:  getEnvOrDefault("DECKGEN_AUTHOR", ""),
			Email:   getEnvOrDefault("DECKGEN_EMAIL", ""),
			Company: getEnvOrDefault("DECKGEN_COMPANY", ""),
		},
		Logging: entities.LoggingConfig{
			Level:      getEnvOrDefault("DECKGEN_LOG_LEVEL", "info"),
			Verbose:    getEnvBoolOrDefault("DECKGEN_LOG_VERBOSE", false),
			JSONFormat: getEnvBoolOrDefault("DECKGEN_LOG_JSON", false),
		},
	}

	// Apply additional environment-based overrides
	applyEnvironmentOverrides(config)

	return config
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns environment variable as slice or default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		// Split by comma and trim whitespace
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// applyEnvironmentOverrides applies additional environment-based configuration
func applyEnvironmentOverrides(config *entities.Config) {
	// Override slide geometry
	if width := os.Getenv("DECKGEN_SLIDE_WIDTH"); width != "" {
		if floatValue, err := strconv.ParseFloat(width, 64); err == nil && floatValue > 0 {
			config.Slides.WidthInches = floatValue
		}
	}

	if height := os.Getenv("DECKGEN_SLIDE_HEIGHT"); height != "" {
		if floatValue, err := strconv.ParseFloat(height, 64); err == nil && floatValue > 0 {
			config.Slides.HeightInches = floatValue
		}
	}

	// Override browser settings
	if autoOpen := os.Getenv("DECKGEN_BROWSER_AUTO_OPEN"); autoOpen != "" {
		if boolValue, err := strconv.ParseBool(autoOpen); err == nil {
			config.Browser.AutoOpen = boolValue
		}
	}

	if browser := os.Getenv("DECKGEN_BROWSER"); browser != "" {
		config.Browser.Browser = browser
	}
}

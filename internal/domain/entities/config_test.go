package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		config := &Config{
			Server: ServerConfig{
				Host:            "localhost",
				Port:            3000,
				ReadTimeout:     30,
				WriteTimeout:    30,
				ShutdownTimeout: 5,
			},
			Slides: SlidesConfig{
				WidthInches:  10,
				HeightInches: 7.5,
			},
			Browser: BrowserConfig{
				AutoOpen: true,
				Browser:  "default",
			},
			Watcher: WatcherConfig{
				IntervalMs:   200,
				DebounceMs:   500,
				MaxRetries:   3,
				RetryDelayMs: 100,
			},
		}

		err := config.Validate()
		assert.NoError(t, err)
	})

	t.Run("invalid server config", func(t *testing.T) {
		config := &Config{
			Server: ServerConfig{
				Port: -1, // Invalid port
			},
			Watcher: WatcherConfig{
				IntervalMs: 200,
			},
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "server config")
	})

	t.Run("invalid slides config", func(t *testing.T) {
		config := &Config{
			Server: ServerConfig{
				Port: 3000,
			},
			Slides: SlidesConfig{
				WidthInches: 10, // Height missing
			},
			Watcher: WatcherConfig{
				IntervalMs: 200,
			},
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "slides config")
	})
}

func TestServerConfig_Validate(t *testing.T) {
	t.Run("valid server config", func(t *testing.T) {
		config := ServerConfig{
			Host:            "localhost",
			Port:            3000,
			ReadTimeout:     30,
			WriteTimeout:    30,
			ShutdownTimeout: 5,
		}

		err := config.Validate()
		assert.NoError(t, err)
	})

	t.Run("invalid port - negative", func(t *testing.T) {
		config := ServerConfig{
			Port: -1,
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "port must be between 0 and 65535")
	})

	t.Run("invalid port - too high", func(t *testing.T) {
		config := ServerConfig{
			Port: 70000,
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "port must be between 0 and 65535")
	})

	t.Run("valid port range", func(t *testing.T) {
		validPorts := []int{0, 1, 3000, 8080, 65535}
		for _, port := range validPorts {
			config := ServerConfig{Port: port}
			err := config.Validate()
			assert.NoError(t, err, "Port %d should be valid", port)
		}
	})

	t.Run("negative timeouts", func(t *testing.T) {
		tests := []struct {
			name   string
			config ServerConfig
		}{
			{
				name: "negative read timeout",
				config: ServerConfig{
					Port:        3000,
					ReadTimeout: -1,
				},
			},
			{
				name: "negative write timeout",
				config: ServerConfig{
					Port:         3000,
					WriteTimeout: -1,
				},
			},
			{
				name: "negative shutdown timeout",
				config: ServerConfig{
					Port:            3000,
					ShutdownTimeout: -1,
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.config.Validate()
				assert.Error(t, err)
			})
		}
	})

	t.Run("invalid CORS origin", func(t *testing.T) {
		config := ServerConfig{
			Port:        3000,
			CORSOrigins: []string{"localhost:3000"},
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid CORS origin format")
	})

	t.Run("wildcard CORS origin", func(t *testing.T) {
		config := ServerConfig{
			Port:        3000,
			CORSOrigins: []string{"*"},
		}

		err := config.Validate()
		assert.NoError(t, err)
	})
}

func TestServerConfig_GetTimeouts(t *testing.T) {
	t.Run("custom timeouts", func(t *testing.T) {
		config := ServerConfig{
			ReadTimeout:     45,
			WriteTimeout:    60,
			ShutdownTimeout: 10,
		}

		assert.Equal(t, 45*time.Second, config.GetReadTimeout())
		assert.Equal(t, 60*time.Second, config.GetWriteTimeout())
		assert.Equal(t, 10*time.Second, config.GetShutdownTimeout())
	})

	t.Run("default timeouts", func(t *testing.T) {
		config := ServerConfig{}

		assert.Equal(t, 30*time.Second, config.GetReadTimeout())
		assert.Equal(t, 30*time.Second, config.GetWriteTimeout())
		assert.Equal(t, 5*time.Second, config.GetShutdownTimeout())
	})
}

func TestServerConfig_GetCORSOrigins(t *testing.T) {
	t.Run("returns configured origins", func(t *testing.T) {
		config := ServerConfig{
			CORSOrigins: []string{"https://example.com"},
		}

		assert.Equal(t, []string{"https://example.com"}, config.GetCORSOrigins())
	})

	t.Run("defaults to localhost origins", func(t *testing.T) {
		config := ServerConfig{}

		origins := config.GetCORSOrigins()
		assert.Contains(t, origins, "http://localhost:3000")
		assert.Contains(t, origins, "http://localhost:8080")
	})
}

func TestSlidesConfig_Validate(t *testing.T) {
	t.Run("valid slides config", func(t *testing.T) {
		config := SlidesConfig{
			WidthInches:  13.333,
			HeightInches: 7.5,
		}

		err := config.Validate()
		assert.NoError(t, err)
	})

	t.Run("unset dimensions are valid", func(t *testing.T) {
		config := SlidesConfig{}

		err := config.Validate()
		assert.NoError(t, err)
	})

	t.Run("negative dimensions", func(t *testing.T) {
		config := SlidesConfig{
			WidthInches:  -10,
			HeightInches: 7.5,
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "slide width must be non-negative")
	})

	t.Run("half-specified page", func(t *testing.T) {
		config := SlidesConfig{
			HeightInches: 7.5,
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be set together")
	})
}

func TestSlidesConfig_GetSize(t *testing.T) {
	t.Run("configured size", func(t *testing.T) {
		config := SlidesConfig{
			WidthInches:  13.333,
			HeightInches: 7.5,
		}

		size := config.GetSize()
		assert.Equal(t, Inches(13.333), size.Width)
		assert.Equal(t, Inches(7.5), size.Height)
	})

	t.Run("default size when unset", func(t *testing.T) {
		config := SlidesConfig{}

		size := config.GetSize()
		assert.Equal(t, Inches(10), size.Width)
		assert.Equal(t, Inches(7.5), size.Height)
	})
}

func TestOutputConfig_Validate(t *testing.T) {
	t.Run("empty path is valid", func(t *testing.T) {
		config := OutputConfig{}

		err := config.Validate()
		assert.NoError(t, err)
	})

	t.Run("file path is valid", func(t *testing.T) {
		config := OutputConfig{Path: "out/deck.html"}

		err := config.Validate()
		assert.NoError(t, err)
	})

	t.Run("directory path is rejected", func(t *testing.T) {
		config := OutputConfig{Path: "out/"}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must name a file")
	})
}

func TestWatcherConfig_Validate(t *testing.T) {
	t.Run("valid watcher config", func(t *testing.T) {
		config := WatcherConfig{
			IntervalMs:   200,
			DebounceMs:   500,
			MaxRetries:   3,
			RetryDelayMs: 100,
		}

		err := config.Validate()
		assert.NoError(t, err)
	})

	t.Run("invalid interval - too low", func(t *testing.T) {
		config := WatcherConfig{
			IntervalMs: 25, // Below minimum of 50ms
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "watcher interval must be at least 50ms")
	})

	t.Run("zero interval means default", func(t *testing.T) {
		config := WatcherConfig{}

		assert.NoError(t, config.Validate())
		assert.Equal(t, 200*time.Millisecond, config.GetInterval())
	})

	t.Run("negative values", func(t *testing.T) {
		tests := []struct {
			name   string
			config WatcherConfig
		}{
			{
				name: "negative debounce",
				config: WatcherConfig{
					IntervalMs: 200,
					DebounceMs: -1,
				},
			},
			{
				name: "negative max retries",
				config: WatcherConfig{
					IntervalMs: 200,
					MaxRetries: -1,
				},
			},
			{
				name: "negative retry delay",
				config: WatcherConfig{
					IntervalMs:   200,
					RetryDelayMs: -1,
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.config.Validate()
				assert.Error(t, err)
			})
		}
	})
}

func TestWatcherConfig_GetDurations(t *testing.T) {
	t.Run("custom durations", func(t *testing.T) {
		config := WatcherConfig{
			IntervalMs:   300,
			DebounceMs:   750,
			RetryDelayMs: 150,
		}

		assert.Equal(t, 300*time.Millisecond, config.GetInterval())
		assert.Equal(t, 750*time.Millisecond, config.GetDebounce())
		assert.Equal(t, 150*time.Millisecond, config.GetRetryDelay())
	})

	t.Run("default durations", func(t *testing.T) {
		config := WatcherConfig{}

		assert.Equal(t, 200*time.Millisecond, config.GetInterval())
		assert.Equal(t, 500*time.Millisecond, config.GetDebounce())
		assert.Equal(t, 100*time.Millisecond, config.GetRetryDelay())
	})
}

func TestLoggingConfig_Validate(t *testing.T) {
	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"", "debug", "info", "warn", "error"} {
			config := LoggingConfig{Level: level}
			err := config.Validate()
			assert.NoError(t, err, "level %q should be valid", level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		config := LoggingConfig{Level: "trace"}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestLoggingConfig_GetLevel(t *testing.T) {
	t.Run("configured level", func(t *testing.T) {
		config := LoggingConfig{Level: "debug"}
		assert.Equal(t, LogLevelDebug, config.GetLevel())
	})

	t.Run("defaults to info", func(t *testing.T) {
		config := LoggingConfig{}
		assert.Equal(t, LogLevelInfo, config.GetLevel())
	})
}

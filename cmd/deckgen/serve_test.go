package main

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

func TestServeCommand(t *testing.T) {
	t.Run("valid arguments", func(t *testing.T) {
		// Test validation logic only - don't actually start server
		if err := validateServeArgs([]string{"deck.yaml"}); err != nil {
			t.Errorf("Expected no error for valid args, got: %v", err)
		}
	})

	t.Run("missing file argument", func(t *testing.T) {
		cmd := &cobra.Command{Use: serveCmd.Use, Args: serveCmd.Args, RunE: serveCmd.RunE}
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "accepts 1 arg(s)")
	})

	t.Run("multiple arguments", func(t *testing.T) {
		err := validateServeArgs([]string{"deck1.yaml", "deck2.yaml"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "accepts 1 arg(s)")
	})

	t.Run("empty arguments", func(t *testing.T) {
		err := validateServeArgs([]string{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "accepts 1 arg(s)")
	})
}

func TestValidateServeConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		config := &entities.Config{
			Server: entities.ServerConfig{
				Host: "localhost",
				Port: 3000,
			},
		}
		err := validateServeConfig(config)
		require.NoError(t, err)
	})

	t.Run("invalid port - zero", func(t *testing.T) {
		config := &entities.Config{
			Server: entities.ServerConfig{
				Host: "localhost",
				Port: 0,
			},
		}
		err := validateServeConfig(config)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid port number")
	})

	t.Run("invalid port - too high", func(t *testing.T) {
		config := &entities.Config{
			Server: entities.ServerConfig{
				Host: "localhost",
				Port: 99999,
			},
		}
		err := validateServeConfig(config)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid port number")
	})

	t.Run("invalid host", func(t *testing.T) {
		config := &entities.Config{
			Server: entities.ServerConfig{
				Host: "invalid host!",
				Port: 3000,
			},
		}
		err := validateServeConfig(config)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid host")
	})
}

func TestServerURL(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     int
		expected string
	}{
		{
			name:     "default values",
			host:     "localhost",
			port:     3000,
			expected: "http://localhost:3000",
		},
		{
			name:     "custom host and port",
			host:     "127.0.0.1",
			port:     8080,
			expected: "http://127.0.0.1:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &entities.Config{
				Server: entities.ServerConfig{
					Host: tt.host,
					Port: tt.port,
				},
			}

			result := serverURL(config)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCollectServeFlags(t *testing.T) {
	t.Run("nothing set collects nothing", func(t *testing.T) {
		flags := collectServeFlags(serveCmd)
		assert.Empty(t, flags)
	})

	t.Run("explicitly set flags are collected", func(t *testing.T) {
		oldPort := port
		oldNoBrowser := noBrowser

		require.NoError(t, serveCmd.Flags().Set("port", "8080"))
		require.NoError(t, serveCmd.Flags().Set("no-browser", "true"))

		flags := collectServeFlags(serveCmd)

		assert.Equal(t, 8080, flags["port"])
		assert.Equal(t, true, flags["no-browser"])
		assert.NotContains(t, flags, "host")

		serveCmd.Flags().Lookup("port").Changed = false
		serveCmd.Flags().Lookup("no-browser").Changed = false
		port = oldPort
		noBrowser = oldNoBrowser
	})
}

func TestNewDomainLogger(t *testing.T) {
	tests := []struct {
		name         string
		cfg          entities.LoggingConfig
		verbose      bool
		debugEnabled bool
		infoEnabled  bool
	}{
		{
			name:         "default level is info",
			cfg:          entities.LoggingConfig{},
			verbose:      false,
			debugEnabled: false,
			infoEnabled:  true,
		},
		{
			name:         "warn level filters info",
			cfg:          entities.LoggingConfig{Level: "warn"},
			verbose:      false,
			debugEnabled: false,
			infoEnabled:  false,
		},
		{
			name:         "verbose forces debug",
			cfg:          entities.LoggingConfig{Level: "error"},
			verbose:      true,
			debugEnabled: true,
			infoEnabled:  true,
		},
		{
			name:         "json format keeps the level",
			cfg:          entities.LoggingConfig{Level: "debug", JSONFormat: true},
			verbose:      false,
			debugEnabled: true,
			infoEnabled:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := newDomainLogger(tt.cfg, tt.verbose)
			ctx := context.Background()

			assert.Equal(t, tt.debugEnabled, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.infoEnabled, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level    entities.LogLevel
		expected slog.Level
	}{
		{entities.LogLevelDebug, slog.LevelDebug},
		{entities.LogLevelInfo, slog.LevelInfo},
		{entities.LogLevelWarn, slog.LevelWarn},
		{entities.LogLevelError, slog.LevelError},
		{entities.LogLevel("unknown"), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.expected, slogLevel(tt.level))
		})
	}
}

func TestEnsurePortAvailable(t *testing.T) {
	t.Run("free port", func(t *testing.T) {
		// Grab an ephemeral port and release it so the check can rebind it
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		freePort := listener.Addr().(*net.TCPAddr).Port
		require.NoError(t, listener.Close())

		assert.NoError(t, ensurePortAvailable("127.0.0.1", freePort))
	})

	t.Run("port in use", func(t *testing.T) {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer func() { _ = listener.Close() }()
		busyPort := listener.Addr().(*net.TCPAddr).Port

		err = ensurePortAvailable("127.0.0.1", busyPort)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already in use")
	})
}

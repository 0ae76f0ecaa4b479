package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOMLLoader_LoadGlobal(t *testing.T) {
	t.Run("creates config on first run", func(t *testing.T) {
		// Create temporary directory for test
		tmpDir, err := os.MkdirTemp("", "deckgen-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		globalPath := filepath.Join(tmpDir, "config.toml")
		loader := &TOMLLoader{
			globalPath: globalPath,
			localName:  "deckgen.toml",
		}

		ctx := context.Background()
		config, err := loader.LoadGlobal(ctx)
		require.NoError(t, err)
		assert.NotNil(t, config)

		// Check that file was created
		_, err = os.Stat(globalPath)
		assert.NoError(t, err)

		// Verify default values
		assert.Equal(t, "localhost", config.Server.Host)
		assert.Equal(t, 1000, config.Server.Port)
		assert.Equal(t, 10.0, config.Slides.WidthInches)
		assert.Equal(t, 7.5, config.Slides.HeightInches)
		assert.True(t, config.Browser.AutoOpen)
		assert.Equal(t, 200, config.Watcher.IntervalMs)
	})

	t.Run("loads existing config", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "deckgen-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		globalPath := filepath.Join(tmpDir, "config.toml")

		// Write test config
		configContent := `
[server]
host = "0.0.0.0"
port = 8080

[slides]
width = 13.33
height = 7.5

[browser]
auto_open = false
browser = "firefox"

[watcher]
interval_ms = 200
`
		err = os.WriteFile(globalPath, []byte(configContent), 0644)
		require.NoError(t, err)

		loader := &TOMLLoader{
			globalPath: globalPath,
			localName:  "deckgen.toml",
		}

		ctx := context.Background()
		config, err := loader.LoadGlobal(ctx)
		require.NoError(t, err)
		assert.NotNil(t, config)

		// Verify loaded values
		assert.Equal(t, "0.0.0.0", config.Server.Host)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, 13.33, config.Slides.WidthInches)
		assert.False(t, config.Browser.AutoOpen)
		assert.Equal(t, "firefox", config.Browser.Browser)
	})

	t.Run("fails with invalid TOML", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "deckgen-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		globalPath := filepath.Join(tmpDir, "config.toml")

		invalidContent := `
[server
host = "localhost"
`
		err = os.WriteFile(globalPath, []byte(invalidContent), 0644)
		require.NoError(t, err)

		loader := &TOMLLoader{
			globalPath: globalPath,
			localName:  "deckgen.toml",
		}

		ctx := context.Background()
		_, err = loader.LoadGlobal(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "parsing TOML")
	})

	t.Run("fails with invalid config values", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "deckgen-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		globalPath := filepath.Join(tmpDir, "config.toml")

		// Write config with invalid port
		configContent := `
[server]
port = -1
`
		err = os.WriteFile(globalPath, []byte(configContent), 0644)
		require.NoError(t, err)

		loader := &TOMLLoader{
			globalPath: globalPath,
			localName:  "deckgen.toml",
		}

		ctx := context.Background()
		_, err = loader.LoadGlobal(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})
}

func TestTOMLLoader_LoadLocal(t *testing.T) {
	t.Run("loads existing local config", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "deckgen-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		localPath := filepath.Join(tmpDir, "deckgen.toml")

		// A partial local file only overrides what it names
		configContent := `
[server]
port = 4000

[metadata]
author = "Platform Team"
`
		err = os.WriteFile(localPath, []byte(configContent), 0644)
		require.NoError(t, err)

		loader := &TOMLLoader{
			globalPath: "unused",
			localName:  "deckgen.toml",
		}

		ctx := context.Background()
		config, err := loader.LoadLocal(ctx, tmpDir)
		require.NoError(t, err)
		assert.NotNil(t, config)

		assert.Equal(t, 4000, config.Server.Port)
		assert.Equal(t, "Platform Team", config.Metadata.Author)
	})

	t.Run("returns nil for non-existent local config", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "deckgen-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		loader := &TOMLLoader{
			globalPath: "unused",
			localName:  "deckgen.toml",
		}

		ctx := context.Background()
		config, err := loader.LoadLocal(ctx, tmpDir)
		require.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("fails with invalid local config", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "deckgen-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		localPath := filepath.Join(tmpDir, "deckgen.toml")

		configContent := `
[logging]
level = "noisy"
`
		err = os.WriteFile(localPath, []byte(configContent), 0644)
		require.NoError(t, err)

		loader := &TOMLLoader{
			globalPath: "unused",
			localName:  "deckgen.toml",
		}

		ctx := context.Background()
		_, err = loader.LoadLocal(ctx, tmpDir)
		assert.Error(t, err)
	})
}

func TestTOMLLoader_LoadFile(t *testing.T) {
	t.Run("loads an explicitly named file", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "deckgen-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		customPath := filepath.Join(tmpDir, "custom.toml")

		configContent := `
[server]
port = 5000
host = "0.0.0.0"
`
		err = os.WriteFile(customPath, []byte(configContent), 0644)
		require.NoError(t, err)

		loader := NewTOMLLoader()

		ctx := context.Background()
		config, err := loader.LoadFile(ctx, customPath)
		require.NoError(t, err)
		assert.NotNil(t, config)

		assert.Equal(t, 5000, config.Server.Port)
		assert.Equal(t, "0.0.0.0", config.Server.Host)
	})

	t.Run("fails for a non-existent file", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "deckgen-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		loader := NewTOMLLoader()

		ctx := context.Background()
		_, err = loader.LoadFile(ctx, filepath.Join(tmpDir, "nope.toml"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config file")
	})
}

func TestTOMLLoader_CreateDefaults(t *testing.T) {
	t.Run("creates default config file", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "deckgen-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		configPath := filepath.Join(tmpDir, "nested", "config.toml")
		loader := NewTOMLLoader()

		ctx := context.Background()
		err = loader.CreateDefaults(ctx, configPath)
		require.NoError(t, err)

		// Check that file was created
		_, err = os.Stat(configPath)
		assert.NoError(t, err)

		// Verify file contents by loading it
		config, err := loader.loadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "localhost", config.Server.Host)
		assert.Equal(t, 1000, config.Server.Port)
		assert.Equal(t, 10.0, config.Slides.WidthInches)
	})

	t.Run("fails when the directory cannot be created", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "deckgen-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		// A regular file where a directory is needed blocks MkdirAll
		blocker := filepath.Join(tmpDir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		loader := NewTOMLLoader()

		ctx := context.Background()
		err = loader.CreateDefaults(ctx, filepath.Join(blocker, "config.toml"))
		assert.Error(t, err)
	})
}

func TestTOMLLoader_GetPaths(t *testing.T) {
	t.Run("returns correct global path", func(t *testing.T) {
		loader := NewTOMLLoader()
		globalPath := loader.GetGlobalPath()

		assert.Contains(t, globalPath, ".config")
		assert.Contains(t, globalPath, "deckgen")
		assert.Contains(t, globalPath, "config.toml")
	})

	t.Run("returns correct local path", func(t *testing.T) {
		loader := NewTOMLLoader()
		localPath := loader.GetLocalPath("/some/project")

		expected := filepath.Join("/some/project", "deckgen.toml")
		assert.Equal(t, expected, localPath)
	})
}

func TestNewTOMLLoader(t *testing.T) {
	t.Run("creates loader with default paths", func(t *testing.T) {
		loader := NewTOMLLoader()
		assert.NotNil(t, loader)

		globalPath := loader.GetGlobalPath()
		assert.NotEmpty(t, globalPath)
		assert.Contains(t, globalPath, "config.toml")
	})
}

func TestTOMLLoader_loadConfig(t *testing.T) {
	t.Run("loads valid config", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "deckgen-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		configPath := filepath.Join(tmpDir, "test.toml")
		configContent := `
[server]
host = "127.0.0.1"
port = 9000

[output]
path = "deck.html"

[watcher]
interval_ms = 150
debounce_ms = 300
`
		err = os.WriteFile(configPath, []byte(configContent), 0644)
		require.NoError(t, err)

		loader := NewTOMLLoader()
		config, err := loader.loadConfig(configPath)
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1", config.Server.Host)
		assert.Equal(t, 9000, config.Server.Port)
		assert.Equal(t, "deck.html", config.Output.Path)
		assert.Equal(t, 150, config.Watcher.IntervalMs)
		assert.Equal(t, 300, config.Watcher.DebounceMs)
	})

	t.Run("fails with non-existent file", func(t *testing.T) {
		loader := NewTOMLLoader()
		_, err := loader.loadConfig("/non/existent/file.toml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "reading config")
	})
}

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	httpserver "github.com/fredcamaral/deckgen/internal/adapters/primary/http"
	"github.com/fredcamaral/deckgen/internal/adapters/secondary/browser"
	"github.com/fredcamaral/deckgen/internal/adapters/secondary/config"
	"github.com/fredcamaral/deckgen/internal/adapters/secondary/outline"
	"github.com/fredcamaral/deckgen/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/deckgen/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/services"
)

var (
	// Serve command flags
	port      int
	host      string
	noBrowser bool
	watchDeck bool
)

// Logger provides structured logging for the serve command
type Logger struct {
	verbose bool
	level   entities.LogLevel
}

// shouldLog checks if the message should be logged based on level
func (l *Logger) shouldLog(msgLevel entities.LogLevel) bool {
	levelMap := map[entities.LogLevel]int{
		entities.LogLevelDebug: 0,
		entities.LogLevelInfo:  1,
		entities.LogLevelWarn:  2,
		entities.LogLevelError: 3,
	}

	currentLevel := levelMap[l.level]
	messageLevel := levelMap[msgLevel]

	return messageLevel >= currentLevel
}

// Info logs informational messages
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelInfo) && l.verbose {
		log.Printf("[INFO] "+msg, args...)
	}
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelWarn) {
		log.Printf("[WARN] "+msg, args...)
	}
}

// Error logs error messages (always shown if error level)
func (l *Logger) Error(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelError) {
		log.Printf("[ERROR] "+msg, args...)
	}
}

// Success logs success messages
func (l *Logger) Success(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelInfo) && l.verbose {
		log.Printf("[SUCCESS] "+msg, args...)
	}
}

// newLoggerWithLevel creates a new logger instance with specific level
func newLoggerWithLevel(verbose bool, level entities.LogLevel) *Logger {
	return &Logger{
		verbose: verbose,
		level:   level,
	}
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Serve a deck outline with live preview",
	Long: `Start a local HTTP server to preview the deck built from a YAML
outline. The server watches the outline for changes, rebuilds the deck,
and tells connected browsers to reload over a WebSocket.

Example:
  deckgen serve deck.yaml
  deckgen serve deck.yaml --port 8080 --no-browser`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Add command flags - defaults will be overridden by config loading
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().StringVar(&host, "host", "", "Host to bind to (overrides config)")
	serveCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Don't open browser automatically (overrides config)")
	serveCmd.Flags().BoolVarP(&watchDeck, "watch", "w", true, "Watch the outline for changes and live reload")
}

// validateServeArgs validates serve command arguments without starting server
func validateServeArgs(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// validateServeConfig validates configuration after it's loaded
func validateServeConfig(config *entities.Config) error {
	// Port validation
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", config.Server.Port)
	}

	// Host validation
	if strings.Contains(config.Server.Host, " ") || strings.Contains(config.Server.Host, "!") {
		return fmt.Errorf("invalid host: %s", config.Server.Host)
	}

	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	deckPath := args[0]

	// Load and validate configuration
	finalConfig, err := loadAndValidateConfig(cmd, deckPath)
	if err != nil {
		return err
	}

	// Get verbose flag and create logger with logging configuration
	verbose, _ := cmd.Flags().GetBool("verbose")

	// Override verbose setting from config if flag wasn't explicitly set
	if !cmd.Flags().Changed("verbose") {
		verbose = finalConfig.Logging.Verbose
	}

	logger := newLoggerWithLevel(verbose, finalConfig.Logging.GetLevel())
	printStartupInfo(logger, deckPath, finalConfig)

	domainLogger := newDomainLogger(finalConfig.Logging, verbose)

	deckService, err := buildDeckService(finalConfig, domainLogger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	deck, err := deckService.LoadDeck(ctx, deckPath)
	if err != nil {
		return fmt.Errorf("loading deck: %w", err)
	}

	rendered, err := deckService.BuildDeck(ctx, deck)
	if err != nil {
		return fmt.Errorf("building deck: %w", err)
	}
	if rendered.SkippedBodies > 0 {
		logger.Warn("%d content block(s) did not fit on their slides and were dropped", rendered.SkippedBodies)
	}

	server := httpserver.NewServerWithLogging(&finalConfig.Server, &finalConfig.Logging)
	server.UpdateDeck(rendered)

	// The server binds in a background goroutine, so claim the port here
	// where a failure can still abort the command
	if err := ensurePortAvailable(finalConfig.Server.Host, finalConfig.Server.Port); err != nil {
		return err
	}

	if err := server.Start(ctx, finalConfig.Server.Port, finalConfig.Server.Host); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	url := serverURL(finalConfig)
	logger.Success("Server running at: %s", url)

	var reloader *services.ReloadService
	if watchDeck {
		reloader = services.NewReloadService(deckService, server, domainLogger)
		if err := reloader.Start(ctx, deckPath); err != nil {
			logger.Warn("Live reload disabled: %v", err)
			reloader = nil
		}
	}

	if finalConfig.Browser.AutoOpen {
		openBrowserIfConfigured(finalConfig, logger)
	}

	cmd.Printf("Serving %s at %s\n", deckPath, url)
	cmd.Println("Press Ctrl+C to stop")

	// Interrupts cancel the root context, so block until then
	<-ctx.Done()

	logger.Info("Shutting down server...")

	if reloader != nil {
		if err := reloader.Stop(); err != nil {
			logger.Error("Error stopping reload service: %v", err)
		}
	}

	// Stop applies the configured shutdown timeout itself
	if err := server.Stop(context.Background()); err != nil {
		logger.Error("Error during shutdown: %v", err)
	}

	return nil
}

// loadConfig runs the precedence chain: defaults, global config, local
// config from the deck directory (or one explicit file), environment
// variables, then CLI flags.
func loadConfig(cmd *cobra.Command, deckDir string, flags map[string]interface{}) (*entities.Config, error) {
	configService := services.NewConfigService(config.NewTOMLLoader(), config.NewConfigMerger())
	ctx := cmd.Context()

	if cfgPath, _ := cmd.Flags().GetString("config"); cfgPath != "" {
		return configService.LoadConfigFile(ctx, cfgPath, flags)
	}
	return configService.LoadConfig(ctx, deckDir, flags)
}

// loadAndValidateConfig loads configuration and validates it
func loadAndValidateConfig(cmd *cobra.Command, deckPath string) (*entities.Config, error) {
	finalConfig, err := loadConfig(cmd, filepath.Dir(deckPath), collectServeFlags(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	// Additional serve-specific validation
	if err := validateServeConfig(finalConfig); err != nil {
		return nil, err
	}

	return finalConfig, nil
}

// collectServeFlags gathers the CLI flags the user explicitly set, so
// config file values survive unless overridden
func collectServeFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})

	if cmd.Flags().Changed("port") {
		flags["port"] = port
	}
	if cmd.Flags().Changed("host") {
		flags["host"] = host
	}
	if cmd.Flags().Changed("no-browser") {
		flags["no-browser"] = noBrowser
	}
	if cmd.Flags().Changed("verbose") {
		verbose, _ := cmd.Flags().GetBool("verbose")
		flags["verbose"] = verbose
	}

	return flags
}

// printStartupInfo prints startup information if verbose mode is enabled
func printStartupInfo(logger *Logger, deckPath string, config *entities.Config) {
	logger.Info("Starting server for deck: %s", deckPath)
	logger.Info("Attempting to start server at: %s", serverURL(config))
	if config.Browser.AutoOpen {
		logger.Info("Browser will open automatically if server starts successfully")
	}
}

// buildDeckService wires the outline parser, HTML renderer, and file
// watcher into a deck service
func buildDeckService(config *entities.Config, logger *slog.Logger) (*services.DeckService, error) {
	htmlRenderer, err := renderer.NewHTMLRenderer(config.Slides.GetSize())
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	return services.NewDeckService(
		outline.NewParser(),
		htmlRenderer,
		watcher.NewPollingWatcher(config.Watcher),
		config.Metadata,
		logger,
	), nil
}

// newDomainLogger builds the structured logger the domain services share.
// Verbose mode lowers the threshold to debug regardless of the configured
// level.
func newDomainLogger(cfg entities.LoggingConfig, verbose bool) *slog.Logger {
	level := slogLevel(cfg.GetLevel())
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.JSONFormat {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

// slogLevel maps the configured level onto slog's scale
func slogLevel(level entities.LogLevel) slog.Level {
	switch level {
	case entities.LogLevelDebug:
		return slog.LevelDebug
	case entities.LogLevelWarn:
		return slog.LevelWarn
	case entities.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ensurePortAvailable verifies the port can be bound before the server
// starts
func ensurePortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use or cannot be bound: %w", port, err)
	}

	if err := listener.Close(); err != nil {
		return fmt.Errorf("failed to release port after testing: %w", err)
	}

	return nil
}

// serverURL constructs the preview URL from the final configuration
func serverURL(config *entities.Config) string {
	return fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)
}

// openBrowserIfConfigured opens the browser if auto-open is enabled
func openBrowserIfConfigured(config *entities.Config, logger *Logger) {
	launcher := browser.NewLauncher(config.Browser.Browser)

	if err := launcher.Launch(serverURL(config), false); err != nil {
		logger.Warn("Failed to open browser: %v", err)
	}
}

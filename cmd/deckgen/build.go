package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	// Build command flags
	outputPath string
	authorName string
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Build a deck outline into a standalone HTML file",
	Long: `Render the deck built from a YAML outline into a single HTML file
that can be opened directly in a browser or published as-is.

Example:
  deckgen build deck.yaml
  deckgen build deck.yaml --output slides/index.html`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output HTML file (overrides config)")
	buildCmd.Flags().StringVar(&authorName, "author", "", "Deck author when the outline names none (overrides config)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	deckPath := args[0]

	finalConfig, err := loadConfig(cmd, filepath.Dir(deckPath), collectBuildFlags(cmd))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if !cmd.Flags().Changed("verbose") {
		verbose = finalConfig.Logging.Verbose
	}

	logger := newLoggerWithLevel(verbose, finalConfig.Logging.GetLevel())
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

	outPath := resolveOutputPath(finalConfig.Output.Path, deckPath)
	if err := os.WriteFile(outPath, rendered.HTML, 0600); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	logger.Success("Deck built: %s", outPath)
	cmd.Printf("Wrote %d slides to %s\n", len(rendered.Slides), outPath)

	return nil
}

// collectBuildFlags gathers the CLI flags the user explicitly set, so
// config file values survive unless overridden
func collectBuildFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})

	if cmd.Flags().Changed("output") {
		flags["output"] = outputPath
	}
	if cmd.Flags().Changed("author") {
		flags["author"] = authorName
	}
	if cmd.Flags().Changed("verbose") {
		verbose, _ := cmd.Flags().GetBool("verbose")
		flags["verbose"] = verbose
	}

	return flags
}

// resolveOutputPath picks the output file. An explicit path from the flag
// or config wins (the flag already overrode the config during the merge);
// otherwise the outline name gets an .html extension.
func resolveOutputPath(configured, deckPath string) string {
	if configured != "" {
		return configured
	}
	return strings.TrimSuffix(deckPath, filepath.Ext(deckPath)) + ".html"
}

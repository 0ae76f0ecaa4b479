package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// DeckService implements the business logic for decks: loading outlines,
// assembling them onto a surface, and watching them for changes.
type DeckService struct {
	parser   ports.OutlineParser
	renderer ports.DeckRenderer
	watcher  ports.FileWatcher
	defaults entities.Metadata
	logger   *slog.Logger
}

// NewDeckService creates a new deck service instance.
func NewDeckService(
	parser ports.OutlineParser,
	renderer ports.DeckRenderer,
	watcher ports.FileWatcher,
	defaults entities.Metadata,
	logger *slog.Logger,
) *DeckService {
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckService{
		parser:   parser,
		renderer: renderer,
		watcher:  watcher,
		defaults: defaults,
		logger:   logger.With("service", "deck"),
	}
}

var _ ports.DeckService = (*DeckService)(nil)

// LoadDeck loads a deck outline from a file path.
func (s *DeckService) LoadDeck(ctx context.Context, path string) (*entities.Deck, error) {
	if path == "" {
		return nil, errors.New("deck path cannot be empty")
	}

	// Check if file exists
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("deck file not found: %s", path)
		}
		return nil, fmt.Errorf("checking deck file: %w", err)
	}

	content, err := os.ReadFile(path) // #nosec G304 - path validated above
	if err != nil {
		return nil, fmt.Errorf("reading deck file: %w", err)
	}

	deck, err := s.parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing deck: %w", err)
	}

	// Validate the loaded deck
	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck: %w", err)
	}

	deck.ID = uuid.New().String()
	deck.LoadedAt = time.Now()

	// Fill in author from configured defaults
	if deck.Author == "" {
		deck.Author = s.defaults.Author
	}

	return deck, nil
}

// BuildDeck assembles a loaded deck onto a fresh surface and renders the
// result. Slides that lose their bullets to a missing body region are
// counted, never fatal.
func (s *DeckService) BuildDeck(ctx context.Context, deck *entities.Deck) (*ports.RenderedDeck, error) {
	if deck == nil {
		return nil, errors.New("deck cannot be nil")
	}

	surface := s.renderer.NewSurface()
	assembler := NewAssembler(surface, s.logger)

	for i := range deck.Slides {
		if _, err := assembler.AddSlide(deck.Slides[i]); err != nil {
			return nil, fmt.Errorf("building slide %d: %w", i+1, err)
		}
	}

	rendered, err := s.renderer.RenderDocument(ctx, deck, surface)
	if err != nil {
		return nil, fmt.Errorf("rendering deck: %w", err)
	}

	stats := assembler.Stats()
	rendered.SkippedBodies = stats.SkippedBodies

	if stats.SkippedBodies > 0 {
		s.logger.Warn("Bullet items dropped on slides without a body region",
			slog.Int("skipped_bodies", stats.SkippedBodies),
		)
	}

	s.logger.Info("Deck assembled",
		slog.String("title", deck.Title),
		slog.Int("slides", stats.Slides),
		slog.Int("html_size_bytes", len(rendered.HTML)),
	)

	return rendered, nil
}

// WatchDeck watches a deck outline file for changes.
func (s *DeckService) WatchDeck(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	if path == "" {
		return nil, errors.New("deck path cannot be empty")
	}

	return s.watcher.Watch(ctx, path)
}

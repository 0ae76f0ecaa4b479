package ports

import (
	"context"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

// OutlineParser defines the interface for parsing deck outline files
type OutlineParser interface {
	// Parse converts outline file content into a deck
	Parse(content []byte) (*entities.Deck, error)
}

// RenderedSlide represents a slide after rendering
type RenderedSlide struct {
	Index  int
	Layout entities.LayoutKind
	Title  string
	HTML   string
}

// RenderedDeck represents a fully assembled deck
type RenderedDeck struct {
	Deck   *entities.Deck
	Slides []RenderedSlide
	// HTML is the complete standalone document.
	HTML []byte
	// SkippedBodies counts slides whose bullet items were dropped because
	// the layout offered no body region.
	SkippedBodies int
}

// DeckRenderer defines the interface for turning assembled surfaces into a
// viewable document. The assembler writes slides onto a surface obtained
// from NewSurface; RenderDocument then wraps that surface's slides into the
// final output.
type DeckRenderer interface {
	// NewSurface returns a fresh, empty slide surface.
	NewSurface() SlideSurface

	// RenderDocument renders a surface previously returned by NewSurface.
	// Implementations reject surfaces they did not create.
	RenderDocument(ctx context.Context, deck *entities.Deck, surface SlideSurface) (*RenderedDeck, error)
}

// DeckService defines the main service interface for decks
type DeckService interface {
	// LoadDeck loads a deck outline from a file path
	LoadDeck(ctx context.Context, path string) (*entities.Deck, error)

	// BuildDeck assembles and renders a loaded deck
	BuildDeck(ctx context.Context, deck *entities.Deck) (*RenderedDeck, error)

	// WatchDeck watches a deck outline file for changes
	WatchDeck(ctx context.Context, path string) (<-chan FileChangeEvent, error)
}

// ServerService defines the interface for serving decks
type ServerService interface {
	// Serve starts the HTTP preview server for a deck
	Serve(ctx context.Context, path string, port int, host string, openBrowser bool) error

	// Stop gracefully stops the server
	Stop(ctx context.Context) error
}

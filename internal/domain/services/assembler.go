package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// AssemblyStats summarizes one assembly run.
type AssemblyStats struct {
	// Slides is the number of slides created on the surface.
	Slides int
	// SkippedBodies counts content slides whose bullet items were dropped
	// because the layout offered no body region.
	SkippedBodies int
}

// Assembler builds deck slides onto a surface one specification at a time.
// It owns layout selection and skip accounting; everything surface-specific
// stays behind the SlideSurface port. An assembler is single-use: build one
// deck, read the stats, discard it.
type Assembler struct {
	surface ports.SlideSurface
	logger  *slog.Logger
	stats   AssemblyStats
}

// NewAssembler creates an assembler that writes to the given surface.
func NewAssembler(surface ports.SlideSurface, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Assembler{
		surface: surface,
		logger:  logger.With("service", "assembler"),
	}
}

// AddSlide dispatches one slide specification to the builder its intent
// selects. An unknown intent is a defect in the caller, not bad data, and
// panics; deck validation rejects bad files long before they reach here.
func (a *Assembler) AddSlide(spec entities.SlideSpec) (ports.SlideID, error) {
	switch spec.Intent {
	case entities.IntentTitle:
		return a.AddTitleSlide(spec.Node)
	case entities.IntentSectionHeader:
		return a.AddSectionSlide(spec.Node)
	case entities.IntentContent:
		return a.AddContentSlide(spec.Node, spec.Code)
	default:
		panic(fmt.Sprintf("deckgen: no slide builder for intent %d", int(spec.Intent)))
	}
}

// AddTitleSlide creates the opening slide with the deck title and subtitle.
func (a *Assembler) AddTitleSlide(node entities.ContentNode) (ports.SlideID, error) {
	slide, err := a.surface.NewSlide(entities.LayoutFor(entities.IntentTitle))
	if err != nil {
		return 0, fmt.Errorf("creating title slide: %w", err)
	}
	a.stats.Slides++

	if err := a.surface.SetTitle(slide, node.Title); err != nil {
		return slide, fmt.Errorf("setting title: %w", err)
	}

	if err := a.surface.SetSubtitle(slide, node.Subtitle); err != nil {
		return slide, fmt.Errorf("setting subtitle: %w", err)
	}

	return slide, nil
}

// AddSectionSlide creates a section divider carrying only a title.
func (a *Assembler) AddSectionSlide(node entities.ContentNode) (ports.SlideID, error) {
	slide, err := a.surface.NewSlide(entities.LayoutFor(entities.IntentSectionHeader))
	if err != nil {
		return 0, fmt.Errorf("creating section slide: %w", err)
	}
	a.stats.Slides++

	if err := a.surface.SetTitle(slide, node.Title); err != nil {
		return slide, fmt.Errorf("setting title: %w", err)
	}

	return slide, nil
}

// AddContentSlide creates a body slide: title, flattened bullets, then any
// positioned code blocks. A layout without a body region drops the bullets
// and is counted rather than treated as a failure, since some surfaces
// legitimately build content layouts without a body placeholder.
func (a *Assembler) AddContentSlide(node entities.ContentNode, code []entities.CodeBlock) (ports.SlideID, error) {
	slide, err := a.surface.NewSlide(entities.LayoutFor(entities.IntentContent))
	if err != nil {
		return 0, fmt.Errorf("creating content slide: %w", err)
	}
	a.stats.Slides++

	if err := a.surface.SetTitle(slide, node.Title); err != nil {
		return slide, fmt.Errorf("setting title: %w", err)
	}

	if len(node.Items) > 0 {
		sink, err := a.surface.BodyRegion(slide)
		switch {
		case errors.Is(err, ports.ErrNoBodyRegion):
			a.stats.SkippedBodies++
			a.logger.Warn("Body region missing; bullet items skipped",
				slog.String("title", node.Title),
				slog.Int("items", len(node.Items)),
			)
		case err != nil:
			return slide, fmt.Errorf("getting body region: %w", err)
		default:
			RenderBullets(sink, node.Items)
		}
	}

	for i := range code {
		if err := PlaceCodeBlock(a.surface, slide, code[i]); err != nil {
			return slide, fmt.Errorf("placing code block %d: %w", i, err)
		}
	}

	return slide, nil
}

// Stats returns the counters accumulated so far.
func (a *Assembler) Stats() AssemblyStats {
	return a.stats
}

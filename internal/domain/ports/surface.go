package ports

import (
	"errors"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

// ErrNoBodyRegion is returned by SlideSurface.BodyRegion when the slide's
// layout carries no body placeholder. Title layouts routinely lack one, so
// the assembler treats this as a skip, not a failure.
var ErrNoBodyRegion = errors.New("slide layout has no body region")

// ErrNoSubtitleRegion is returned by SlideSurface.SetSubtitle when the
// slide's layout carries no subtitle placeholder. Unlike a missing body
// region this is never tolerated: subtitles are only requested on title
// slides, which always have one.
var ErrNoSubtitleRegion = errors.New("slide layout has no subtitle region")

// SlideID identifies one slide within a surface, in creation order starting
// at zero. IDs are only meaningful to the surface that issued them.
type SlideID int

// SlideSurface abstracts the presentation container slides are built into.
// The assembler drives this interface and never sees what stands behind it;
// surfaces decide how layouts, titles, and boxes materialize.
//
// Surfaces are not safe for concurrent use. A deck is assembled by a single
// goroutine from start to finish.
type SlideSurface interface {
	// NewSlide appends a slide using the given layout and returns its ID.
	NewSlide(layout entities.LayoutKind) (SlideID, error)

	// SetTitle sets the slide's title text.
	SetTitle(slide SlideID, text string) error

	// SetSubtitle sets the subtitle text on a title-layout slide.
	SetSubtitle(slide SlideID, text string) error

	// BodyRegion returns the slide's body text region. Returns
	// ErrNoBodyRegion when the layout has no body placeholder.
	BodyRegion(slide SlideID) (ParagraphSink, error)

	// AddTextBox places an empty text box at an explicit position and
	// returns a handle for filling and styling it.
	AddTextBox(slide SlideID, box entities.Box) (TextBox, error)
}

// ParagraphSink receives flattened body paragraphs. A fresh body region
// arrives pre-seeded with one empty paragraph: SetFirst overwrites it so the
// region never starts with a blank line, and Append adds every paragraph
// after that.
type ParagraphSink interface {
	SetFirst(p entities.Paragraph)
	Append(p entities.Paragraph)
}

// TextBox is a handle to a positioned text box on a slide. Setters cannot
// fail; anything that can go wrong happens when the box is created.
type TextBox interface {
	// SetText replaces the box content with verbatim text.
	SetText(text string)

	// SetFont sets the typeface and size for all text in the box.
	SetFont(family string, sizePt float64)

	// SetBackground fills the box background with a solid color.
	SetBackground(color entities.RGB)

	// SetWordWrap toggles word wrapping inside the box.
	SetWordWrap(wrap bool)
}

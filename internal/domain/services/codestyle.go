package services

import (
	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// Code blocks render with one fixed style; callers only choose text and
// position. Uniform code styling across a deck is deliberate, so none of
// these are configurable.
const (
	CodeFontFamily = "Courier New"
	CodeFontSizePt = 9.0
)

// CodeFillColor is the light gray backdrop behind code text.
var CodeFillColor = entities.RGB{R: 240, G: 240, B: 240}

// StyleCodeBox fills a text box with verbatim code text and applies the
// fixed code style. Applying it to the same box again is harmless; every
// setter overwrites rather than accumulates.
func StyleCodeBox(box ports.TextBox, text string) {
	box.SetText(text)
	box.SetFont(CodeFontFamily, CodeFontSizePt)
	box.SetBackground(CodeFillColor)
	box.SetWordWrap(true)
}

// PlaceCodeBlock creates the positioned text box for one code block and
// styles it.
func PlaceCodeBlock(surface ports.SlideSurface, slide ports.SlideID, block entities.CodeBlock) error {
	box, err := surface.AddTextBox(slide, block.Box)
	if err != nil {
		return err
	}
	StyleCodeBox(box, block.Text)
	return nil
}

// Package renderer provides the in-memory HTML slide surface and the
// renderer that turns an assembled surface into a standalone HTML document.
package renderer

import (
	"fmt"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// Surface is the HTML implementation of ports.SlideSurface. Mutation calls
// only record state; nothing is rendered until the surface is handed back to
// the renderer.
type Surface struct {
	size   entities.SlideSize
	slides []*surfaceSlide
}

// surfaceSlide accumulates everything written onto one slide.
type surfaceSlide struct {
	layout   entities.LayoutKind
	title    string
	subtitle string
	body     *bodyRegion
	boxes    []*textBox
}

// NewSurface creates an empty surface for slides of the given size. A zero
// size falls back to the default page geometry.
func NewSurface(size entities.SlideSize) *Surface {
	if size.Validate() != nil {
		size = entities.DefaultSlideSize()
	}
	return &Surface{size: size}
}

var _ ports.SlideSurface = (*Surface)(nil)

// NewSlide appends a slide with the given layout. Only the content layout
// carries a body region; its region arrives pre-seeded with one empty
// paragraph, the way presentation containers initialize text frames.
func (s *Surface) NewSlide(layout entities.LayoutKind) (ports.SlideID, error) {
	switch layout {
	case entities.LayoutTitle, entities.LayoutSectionHeader, entities.LayoutContent:
	default:
		return 0, fmt.Errorf("unknown layout %d", int(layout))
	}

	slide := &surfaceSlide{layout: layout}
	if layout == entities.LayoutContent {
		slide.body = &bodyRegion{paragraphs: make([]entities.Paragraph, 1)}
	}

	s.slides = append(s.slides, slide)
	return ports.SlideID(len(s.slides) - 1), nil
}

// SetTitle sets the slide's title text. Every layout has a title region.
func (s *Surface) SetTitle(id ports.SlideID, text string) error {
	slide, err := s.slideAt(id)
	if err != nil {
		return err
	}
	slide.title = text
	return nil
}

// SetSubtitle sets the subtitle text. Only the title layout has a subtitle
// region.
func (s *Surface) SetSubtitle(id ports.SlideID, text string) error {
	slide, err := s.slideAt(id)
	if err != nil {
		return err
	}
	if slide.layout != entities.LayoutTitle {
		return ports.ErrNoSubtitleRegion
	}
	slide.subtitle = text
	return nil
}

// BodyRegion returns the slide's body paragraph sink, or ErrNoBodyRegion
// when the layout has none.
func (s *Surface) BodyRegion(id ports.SlideID) (ports.ParagraphSink, error) {
	slide, err := s.slideAt(id)
	if err != nil {
		return nil, err
	}
	if slide.body == nil {
		return nil, ports.ErrNoBodyRegion
	}
	return slide.body, nil
}

// AddTextBox places an empty text box on the slide and returns its handle.
func (s *Surface) AddTextBox(id ports.SlideID, box entities.Box) (ports.TextBox, error) {
	slide, err := s.slideAt(id)
	if err != nil {
		return nil, err
	}
	if err := box.Validate(); err != nil {
		return nil, fmt.Errorf("text box geometry: %w", err)
	}

	tb := &textBox{box: box}
	slide.boxes = append(slide.boxes, tb)
	return tb, nil
}

// SlideCount returns the number of slides written so far.
func (s *Surface) SlideCount() int {
	return len(s.slides)
}

func (s *Surface) slideAt(id ports.SlideID) (*surfaceSlide, error) {
	if int(id) < 0 || int(id) >= len(s.slides) {
		return nil, fmt.Errorf("invalid slide id %d", int(id))
	}
	return s.slides[id], nil
}

// bodyRegion implements ports.ParagraphSink over a paragraph list that
// starts with one empty paragraph.
type bodyRegion struct {
	paragraphs []entities.Paragraph
}

var _ ports.ParagraphSink = (*bodyRegion)(nil)

// SetFirst overwrites the pre-seeded empty paragraph.
func (b *bodyRegion) SetFirst(p entities.Paragraph) {
	b.paragraphs[0] = p
}

// Append adds a paragraph after the existing ones.
func (b *bodyRegion) Append(p entities.Paragraph) {
	b.paragraphs = append(b.paragraphs, p)
}

// textBox implements ports.TextBox by recording styling for render time.
type textBox struct {
	box        entities.Box
	text       string
	fontFamily string
	fontSizePt float64
	fill       entities.RGB
	hasFill    bool
	wordWrap   bool
}

var _ ports.TextBox = (*textBox)(nil)

func (t *textBox) SetText(text string) { t.text = text }

func (t *textBox) SetFont(family string, sizePt float64) {
	t.fontFamily = family
	t.fontSizePt = sizePt
}

func (t *textBox) SetBackground(color entities.RGB) {
	t.fill = color
	t.hasFill = true
}

func (t *textBox) SetWordWrap(wrap bool) { t.wordWrap = wrap }

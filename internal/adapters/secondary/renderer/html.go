package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// HTMLRenderer implements ports.DeckRenderer by rendering assembled surfaces
// into a standalone HTML presentation.
type HTMLRenderer struct {
	size      entities.SlideSize
	templates *template.Template
}

// NewHTMLRenderer creates a renderer for slides of the given size. A zero
// size falls back to the default page geometry.
func NewHTMLRenderer(size entities.SlideSize) (*HTMLRenderer, error) {
	if size.Validate() != nil {
		size = entities.DefaultSlideSize()
	}

	tmpl := template.New("page").Funcs(newTemplateFuncs())
	if _, err := tmpl.Parse(pageTemplate); err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	if _, err := tmpl.New("slide").Parse(slideTemplate); err != nil {
		return nil, fmt.Errorf("parsing slide template: %w", err)
	}

	return &HTMLRenderer{
		size:      size,
		templates: tmpl,
	}, nil
}

var _ ports.DeckRenderer = (*HTMLRenderer)(nil)

// NewSurface returns an empty surface sized for this renderer's page.
func (r *HTMLRenderer) NewSurface() ports.SlideSurface {
	return NewSurface(r.size)
}

// slideView is the data handed to the slide fragment template.
type slideView struct {
	Layout   string
	Title    string
	Subtitle string
	Items    []itemView
	Boxes    []boxView
}

type itemView struct {
	Text  string
	Level int
}

type boxView struct {
	ID   string
	Text string
}

// pageSlide pairs a rendered fragment with its outline entry.
type pageSlide struct {
	Index int
	Label string
	Title string
	HTML  string
}

type pageData struct {
	Title        string
	Author       string
	Date         string
	Slides       []pageSlide
	SlideCount   int
	GeneratedCSS template.CSS
}

// RenderDocument renders a surface previously returned by NewSurface into
// the final document plus per-slide fragments.
func (r *HTMLRenderer) RenderDocument(ctx context.Context, deck *entities.Deck, surface ports.SlideSurface) (*ports.RenderedDeck, error) {
	if deck == nil {
		return nil, errors.New("deck cannot be nil")
	}

	s, ok := surface.(*Surface)
	if !ok {
		return nil, errors.New("surface was not created by this renderer")
	}

	rendered := &ports.RenderedDeck{
		Deck:   deck,
		Slides: make([]ports.RenderedSlide, 0, len(s.slides)),
	}

	pageSlides := make([]pageSlide, 0, len(s.slides))
	var css strings.Builder
	writeFrameRule(&css, s.size)

	for i, slide := range s.slides {
		fragment, err := r.renderFragment(i, slide)
		if err != nil {
			return nil, fmt.Errorf("rendering slide %d: %w", i+1, err)
		}

		rendered.Slides = append(rendered.Slides, ports.RenderedSlide{
			Index:  i,
			Layout: slide.layout,
			Title:  slide.title,
			HTML:   fragment,
		})
		pageSlides = append(pageSlides, pageSlide{
			Index: i,
			Label: slide.layout.String(),
			Title: slide.title,
			HTML:  fragment,
		})

		writeBoxRules(&css, i, slide.boxes, s.size)
	}

	date := ""
	if !deck.LoadedAt.IsZero() {
		date = deck.LoadedAt.Format("2006-01-02")
	}

	data := pageData{
		Title:        deck.Title,
		Author:       deck.Author,
		Date:         date,
		Slides:       pageSlides,
		SlideCount:   len(pageSlides),
		GeneratedCSS: template.CSS(css.String()), // #nosec G203 - values are numeric or sanitized
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "page", data); err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	rendered.HTML = buf.Bytes()

	return rendered, nil
}

// renderFragment renders one slide's content fragment.
func (r *HTMLRenderer) renderFragment(index int, slide *surfaceSlide) (string, error) {
	view := slideView{
		Layout:   layoutClass(slide.layout),
		Title:    slide.title,
		Subtitle: slide.subtitle,
	}

	if slide.body != nil {
		for _, p := range slide.body.paragraphs {
			if p.Text == "" {
				// The pre-seeded paragraph renders as nothing when the
				// body was never written to.
				continue
			}
			view.Items = append(view.Items, itemView{Text: p.Text, Level: p.Level})
		}
	}

	for j, box := range slide.boxes {
		view.Boxes = append(view.Boxes, boxView{
			ID:   boxID(index, j),
			Text: box.text,
		})
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "slide", view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// layoutClass maps a layout onto its CSS class token.
func layoutClass(k entities.LayoutKind) string {
	switch k {
	case entities.LayoutTitle:
		return "title"
	case entities.LayoutSectionHeader:
		return "section"
	default:
		return "content"
	}
}

// boxID names a text box element uniquely within the page.
func boxID(slide, box int) string {
	return fmt.Sprintf("slide-%d-box-%d", slide, box)
}

// writeFrameRule keeps the slide frame at the configured page proportions.
func writeFrameRule(b *strings.Builder, size entities.SlideSize) {
	fmt.Fprintf(b, "        .slide { aspect-ratio: %s / %s; max-height: calc(100vh - 40px); }\n",
		trimFloat(size.Width.Inches()), trimFloat(size.Height.Inches()))
}

// writeBoxRules emits one CSS rule per text box, expressing geometry as
// percentages of the slide size so boxes scale with the viewport.
func writeBoxRules(b *strings.Builder, slideIndex int, boxes []*textBox, size entities.SlideSize) {
	for j, box := range boxes {
		fmt.Fprintf(b, "        #%s {\n", boxID(slideIndex, j))
		fmt.Fprintf(b, "            left: %s%%;\n", percent(box.box.Left, size.Width))
		fmt.Fprintf(b, "            top: %s%%;\n", percent(box.box.Top, size.Height))
		fmt.Fprintf(b, "            width: %s%%;\n", percent(box.box.Width, size.Width))
		fmt.Fprintf(b, "            height: %s%%;\n", percent(box.box.Height, size.Height))
		if box.fontFamily != "" {
			fmt.Fprintf(b, "            font-family: %s, monospace;\n", cssFontFamily(box.fontFamily))
		}
		if box.fontSizePt > 0 {
			fmt.Fprintf(b, "            font-size: %spt;\n", trimFloat(box.fontSizePt))
		}
		if box.hasFill {
			fmt.Fprintf(b, "            background: %s;\n", box.fill.Hex())
		}
		if box.wordWrap {
			b.WriteString("            white-space: pre-wrap;\n")
		} else {
			b.WriteString("            white-space: pre;\n")
		}
		b.WriteString("        }\n")
	}
}

// percent formats part/whole as a CSS percentage value.
func percent(part, whole entities.Length) string {
	return trimFloat(part.Inches() / whole.Inches() * 100)
}

// trimFloat formats a float with up to four decimals and no trailing zeros.
func trimFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// cssFontFamily quotes a font family for a generated CSS rule, dropping any
// characters that could escape the declaration.
func cssFontFamily(family string) string {
	family = strings.Map(func(r rune) rune {
		switch r {
		case '\'', '"', '\\', ';', '{', '}':
			return -1
		}
		return r
	}, family)
	return "'" + family + "'"
}

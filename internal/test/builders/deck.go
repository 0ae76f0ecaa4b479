package builders

import (
	"strconv"
	"time"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

// DeckBuilder helps build Deck entities for testing
type DeckBuilder struct {
	deck *entities.Deck
}

// NewDeckBuilder creates a new deck builder. The defaults mirror a freshly
// parsed outline: identity and timestamps are assigned at load time, so they
// start empty here.
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		deck: &entities.Deck{
			Title:  "Test Deck",
			Slides: []entities.SlideSpec{},
		},
	}
}

// WithID sets the deck ID
func (b *DeckBuilder) WithID(id string) *DeckBuilder {
	b.deck.ID = id
	return b
}

// WithTitle sets the deck title
func (b *DeckBuilder) WithTitle(title string) *DeckBuilder {
	b.deck.Title = title
	return b
}

// WithAuthor sets the deck author
func (b *DeckBuilder) WithAuthor(author string) *DeckBuilder {
	b.deck.Author = author
	return b
}

// WithLoadedAt sets the load timestamp
func (b *DeckBuilder) WithLoadedAt(loadedAt time.Time) *DeckBuilder {
	b.deck.LoadedAt = loadedAt
	return b
}

// WithSlide adds a single slide specification to the deck
func (b *DeckBuilder) WithSlide(spec entities.SlideSpec) *DeckBuilder {
	b.deck.Slides = append(b.deck.Slides, spec)
	return b
}

// WithSlides sets the deck slides
func (b *DeckBuilder) WithSlides(slides []entities.SlideSpec) *DeckBuilder {
	b.deck.Slides = slides
	return b
}

// WithSlideCount adds the specified number of default content slides
func (b *DeckBuilder) WithSlideCount(count int) *DeckBuilder {
	for i := 0; i < count; i++ {
		spec := NewSlideSpecBuilder().
			WithTitle("Slide " + strconv.Itoa(i+1)).
			Build()
		b.deck.Slides = append(b.deck.Slides, spec)
	}
	return b
}

// Build creates the final Deck entity
func (b *DeckBuilder) Build() *entities.Deck {
	// Deep copy to prevent mutation
	return &entities.Deck{
		ID:       b.deck.ID,
		Title:    b.deck.Title,
		Author:   b.deck.Author,
		Slides:   append([]entities.SlideSpec{}, b.deck.Slides...),
		LoadedAt: b.deck.LoadedAt,
	}
}

// SlideSpecBuilder helps build SlideSpec entities for testing
type SlideSpecBuilder struct {
	spec entities.SlideSpec
}

// NewSlideSpecBuilder creates a new slide spec builder with sensible defaults
func NewSlideSpecBuilder() *SlideSpecBuilder {
	return &SlideSpecBuilder{
		spec: entities.SlideSpec{
			Intent: entities.IntentContent,
			Node: entities.ContentNode{
				Title: "Test Slide",
				Items: []entities.BulletItem{{Text: "First point"}},
			},
		},
	}
}

// WithIntent sets the slide-building intent
func (b *SlideSpecBuilder) WithIntent(intent entities.Intent) *SlideSpecBuilder {
	b.spec.Intent = intent
	return b
}

// WithTitle sets the slide title
func (b *SlideSpecBuilder) WithTitle(title string) *SlideSpecBuilder {
	b.spec.Node.Title = title
	return b
}

// WithSubtitle sets the slide subtitle (only valid on title slides)
func (b *SlideSpecBuilder) WithSubtitle(subtitle string) *SlideSpecBuilder {
	b.spec.Node.Subtitle = subtitle
	return b
}

// WithItems sets the body bullets
func (b *SlideSpecBuilder) WithItems(items []entities.BulletItem) *SlideSpecBuilder {
	b.spec.Node.Items = items
	return b
}

// WithBullet adds a top-level bullet with optional nested children
func (b *SlideSpecBuilder) WithBullet(text string, children ...string) *SlideSpecBuilder {
	b.spec.Node.Items = append(b.spec.Node.Items, entities.BulletItem{
		Text:     text,
		Children: children,
	})
	return b
}

// WithCodeBlock adds a positioned code block to the slide
func (b *SlideSpecBuilder) WithCodeBlock(text string, box entities.Box) *SlideSpecBuilder {
	b.spec.Code = append(b.spec.Code, entities.CodeBlock{Text: text, Box: box})
	return b
}

// Build creates the final SlideSpec entity
func (b *SlideSpecBuilder) Build() entities.SlideSpec {
	spec := entities.SlideSpec{
		Intent: b.spec.Intent,
		Node: entities.ContentNode{
			Title:    b.spec.Node.Title,
			Subtitle: b.spec.Node.Subtitle,
			Items:    append([]entities.BulletItem{}, b.spec.Node.Items...),
		},
	}
	if len(b.spec.Code) > 0 {
		spec.Code = append([]entities.CodeBlock{}, b.spec.Code...)
	}
	return spec
}

// Common slide shapes for testing

// TitleSlide builds a title slide specification
func TitleSlide(title, subtitle string) entities.SlideSpec {
	return entities.SlideSpec{
		Intent: entities.IntentTitle,
		Node:   entities.ContentNode{Title: title, Subtitle: subtitle},
	}
}

// SectionSlide builds a section header specification
func SectionSlide(title string) entities.SlideSpec {
	return entities.SlideSpec{
		Intent: entities.IntentSectionHeader,
		Node:   entities.ContentNode{Title: title},
	}
}

// ContentSlide builds a content slide with one top-level bullet per argument
func ContentSlide(title string, bullets ...string) entities.SlideSpec {
	items := make([]entities.BulletItem, 0, len(bullets))
	for _, text := range bullets {
		items = append(items, entities.BulletItem{Text: text})
	}
	return entities.SlideSpec{
		Intent: entities.IntentContent,
		Node:   entities.ContentNode{Title: title, Items: items},
	}
}

// Common deck shapes for testing

// MinimalDeck creates a small deck covering all three layouts
func MinimalDeck() *entities.Deck {
	return NewDeckBuilder().
		WithTitle("Minimal").
		WithSlide(TitleSlide("Minimal", "A test deck")).
		WithSlide(SectionSlide("Part One")).
		WithSlide(ContentSlide("Agenda", "One point", "Another point")).
		Build()
}

// LargeDeck creates a deck with many slides for performance tests
func LargeDeck() *entities.Deck {
	return NewDeckBuilder().
		WithTitle("Large Deck").
		WithSlide(TitleSlide("Large Deck", "Generated")).
		WithSlideCount(50).
		Build()
}

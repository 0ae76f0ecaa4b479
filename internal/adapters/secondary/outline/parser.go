// Package outline decodes YAML deck outline files into domain decks.
package outline

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// Parser implements ports.OutlineParser for YAML outlines.
type Parser struct{}

// NewParser creates a new outline parser.
func NewParser() *Parser {
	return &Parser{}
}

var _ ports.OutlineParser = (*Parser)(nil)

// outlineDoc mirrors the YAML file structure before conversion to entities.
type outlineDoc struct {
	Title  string         `yaml:"title"`
	Author string         `yaml:"author"`
	Slides []outlineSlide `yaml:"slides"`
}

type outlineSlide struct {
	Kind     string        `yaml:"kind"`
	Title    string        `yaml:"title"`
	Subtitle string        `yaml:"subtitle"`
	Items    []bulletNode  `yaml:"items"`
	Code     []codeSnippet `yaml:"code"`
}

// bulletNode accepts either a plain string (a leaf bullet) or a mapping with
// text and children. The shorthand keeps simple outlines from drowning in
// "text:" keys.
type bulletNode struct {
	Text     string
	Children []string
}

func (b *bulletNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&b.Text)
	case yaml.MappingNode:
		var full struct {
			Text     string   `yaml:"text"`
			Children []string `yaml:"children"`
		}
		if err := value.Decode(&full); err != nil {
			return err
		}
		b.Text = full.Text
		b.Children = full.Children
		return nil
	default:
		return fmt.Errorf("line %d: bullet must be a string or a mapping", value.Line)
	}
}

// codeSnippet is a code block with its placement in inches.
type codeSnippet struct {
	Text   string  `yaml:"text"`
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Parse converts YAML outline content into a deck. The result is not yet
// validated; callers run entities-level validation after identity and
// defaults are filled in.
func (p *Parser) Parse(content []byte) (*entities.Deck, error) {
	if len(content) == 0 {
		return nil, errors.New("outline content cannot be empty")
	}

	var doc outlineDoc
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("outline content cannot be empty")
		}
		return nil, fmt.Errorf("decoding outline: %w", err)
	}

	return doc.toDeck()
}

func (d *outlineDoc) toDeck() (*entities.Deck, error) {
	deck := &entities.Deck{
		Title:  d.Title,
		Author: d.Author,
		Slides: make([]entities.SlideSpec, 0, len(d.Slides)),
	}

	for i, slide := range d.Slides {
		spec, err := slide.toSpec()
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		deck.Slides = append(deck.Slides, spec)
	}

	return deck, nil
}

func (s *outlineSlide) toSpec() (entities.SlideSpec, error) {
	// A slide without a kind is a content slide; most of an outline is body
	// content and forcing "kind: content" on every entry adds nothing.
	intent := entities.IntentContent
	if s.Kind != "" {
		var err error
		intent, err = entities.ParseIntent(s.Kind)
		if err != nil {
			return entities.SlideSpec{}, err
		}
	}

	spec := entities.SlideSpec{
		Intent: intent,
		Node: entities.ContentNode{
			Title:    s.Title,
			Subtitle: s.Subtitle,
		},
	}

	if len(s.Items) > 0 {
		spec.Node.Items = make([]entities.BulletItem, 0, len(s.Items))
		for _, item := range s.Items {
			spec.Node.Items = append(spec.Node.Items, entities.BulletItem{
				Text:     item.Text,
				Children: item.Children,
			})
		}
	}

	if len(s.Code) > 0 {
		spec.Code = make([]entities.CodeBlock, 0, len(s.Code))
		for _, snippet := range s.Code {
			spec.Code = append(spec.Code, entities.CodeBlock{
				Text: snippet.Text,
				Box: entities.Box{
					Left:   entities.Inches(snippet.Left),
					Top:    entities.Inches(snippet.Top),
					Width:  entities.Inches(snippet.Width),
					Height: entities.Inches(snippet.Height),
				},
			})
		}
	}

	return spec, nil
}

package entities

import (
	"errors"
	"fmt"
)

// ContentNode describes the text content of one slide before any rendering.
// It carries intent, not formatting: what the bullets say and how they nest,
// never fonts, colors, or positions.
type ContentNode struct {
	// Title is the slide heading. Every node has one.
	Title string `json:"title"`
	// Subtitle is only meaningful on title slides and stays empty elsewhere.
	Subtitle string `json:"subtitle,omitempty"`
	// Items holds the body bullets in presentation order. May be empty.
	Items []BulletItem `json:"items,omitempty"`
}

// Validate checks the node and all of its bullets.
func (n *ContentNode) Validate() error {
	if n.Title == "" {
		return errors.New("slide title is required")
	}
	for i := range n.Items {
		if err := n.Items[i].Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// ParagraphCount returns how many paragraphs the node's bullets flatten to:
// one per top-level item plus one per child.
func (n *ContentNode) ParagraphCount() int {
	count := 0
	for i := range n.Items {
		count += 1 + len(n.Items[i].Children)
	}
	return count
}

// BulletItem is one top-level bullet and its nested children. Nesting is
// exactly two levels deep: children are plain strings and cannot nest
// further, which the type itself guarantees.
type BulletItem struct {
	Text     string   `json:"text"`
	Children []string `json:"children,omitempty"`
}

// Validate ensures the bullet and its children carry text.
func (b *BulletItem) Validate() error {
	if b.Text == "" {
		return errors.New("bullet text is required")
	}
	for i, child := range b.Children {
		if child == "" {
			return fmt.Errorf("child bullet %d: text is required", i)
		}
	}
	return nil
}

// Paragraph is one rendered line of body text: what it says and how deep it
// is indented. Level 0 is a top-level bullet, level 1 a nested one.
type Paragraph struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// CodeBlock is a verbatim text fragment placed at an explicit position on a
// slide. Placement always comes from the caller; the engine computes none.
type CodeBlock struct {
	Text string `json:"text"`
	Box  Box    `json:"box"`
}

// Validate checks the block carries text and a well-formed box.
func (c *CodeBlock) Validate() error {
	if c.Text == "" {
		return errors.New("code block text is required")
	}
	if err := c.Box.Validate(); err != nil {
		return fmt.Errorf("code block box: %w", err)
	}
	return nil
}

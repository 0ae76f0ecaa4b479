package entities

import (
	"errors"
	"fmt"
	"time"
)

// Deck is a complete presentation outline: ordered slide specifications plus
// the metadata shown around them. It is what the outline loader produces and
// what the assembler consumes.
type Deck struct {
	// ID uniquely identifies one loaded deck instance, assigned at load time.
	ID string `json:"id,omitempty"`
	// Title is the deck name shown in browser tabs and file listings.
	Title string `json:"title"`
	// Author is optional display metadata.
	Author string `json:"author,omitempty"`
	// Slides holds the slide specifications in presentation order.
	Slides []SlideSpec `json:"slides"`
	// LoadedAt records when the deck was read from its source file.
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

// Validate checks the deck and every slide specification in it.
func (d *Deck) Validate() error {
	if d.Title == "" {
		return errors.New("deck title is required")
	}
	if len(d.Slides) == 0 {
		return errors.New("deck must contain at least one slide")
	}
	for i := range d.Slides {
		if err := d.Slides[i].Validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return nil
}

// SlideCount returns the number of slides in the deck.
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// GetAuthor returns the author or a placeholder when none was set.
func (d *Deck) GetAuthor() string {
	if d.Author == "" {
		return "Unknown"
	}
	return d.Author
}

// SlideSpec pairs one slide's content with the intent that selects its
// layout. Code blocks ride alongside the content node because they address
// the slide surface directly rather than the bullet body.
type SlideSpec struct {
	Intent Intent      `json:"intent"`
	Node   ContentNode `json:"node"`
	Code   []CodeBlock `json:"code,omitempty"`
}

// Validate checks intent, content, and code blocks together. Subtitles only
// exist on title layouts, so carrying one under any other intent is rejected
// here instead of surfacing as a rendering surprise later.
func (s *SlideSpec) Validate() error {
	if err := s.Intent.Validate(); err != nil {
		return err
	}
	if err := s.Node.Validate(); err != nil {
		return err
	}
	if s.Node.Subtitle != "" && s.Intent != IntentTitle {
		return fmt.Errorf("subtitle is only valid on title slides, not %q", s.Intent)
	}
	if len(s.Code) > 0 && s.Intent != IntentContent {
		return fmt.Errorf("code blocks are only valid on content slides, not %q", s.Intent)
	}
	for i := range s.Code {
		if err := s.Code[i].Validate(); err != nil {
			return fmt.Errorf("code block %d: %w", i, err)
		}
	}
	return nil
}

package services

import (
	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// FlattenBullets converts nested bullet items into the flat paragraph
// sequence a body region consumes. Each top-level item produces a level 0
// paragraph immediately followed by one level 1 paragraph per child, so
// source order is preserved and nesting never exceeds one level.
func FlattenBullets(items []entities.BulletItem) []entities.Paragraph {
	if len(items) == 0 {
		return nil
	}

	total := 0
	for i := range items {
		total += 1 + len(items[i].Children)
	}

	paragraphs := make([]entities.Paragraph, 0, total)
	for i := range items {
		paragraphs = append(paragraphs, entities.Paragraph{Text: items[i].Text, Level: 0})
		for _, child := range items[i].Children {
			paragraphs = append(paragraphs, entities.Paragraph{Text: child, Level: 1})
		}
	}
	return paragraphs
}

// RenderBullets writes flattened bullet items into a body region. The first
// paragraph overwrites the pre-seeded empty paragraph every fresh region
// starts with, so rendered bodies never begin with a blank line; the rest
// append after it. With no items the sink is never touched and the region
// keeps its single empty paragraph.
func RenderBullets(sink ports.ParagraphSink, items []entities.BulletItem) {
	paragraphs := FlattenBullets(items)
	for i, p := range paragraphs {
		if i == 0 {
			sink.SetFirst(p)
			continue
		}
		sink.Append(p)
	}
}

package entities

import "fmt"

// Intent identifies which of the slide-building operations a caller invoked.
// It is the input to layout selection and stays separate from LayoutKind so
// the two can diverge if a future intent maps onto an existing layout.
type Intent int

// The closed set of slide-building intents.
const (
	IntentTitle Intent = iota
	IntentSectionHeader
	IntentContent
)

// String returns the machine-readable intent name used in deck files.
func (i Intent) String() string {
	switch i {
	case IntentTitle:
		return "title"
	case IntentSectionHeader:
		return "section"
	case IntentContent:
		return "content"
	default:
		return fmt.Sprintf("intent(%d)", int(i))
	}
}

// Validate reports whether the intent is one of the known values. Deck file
// decoding uses this to reject bad input before it can reach LayoutFor.
func (i Intent) Validate() error {
	switch i {
	case IntentTitle, IntentSectionHeader, IntentContent:
		return nil
	default:
		return fmt.Errorf("unknown slide intent %d", int(i))
	}
}

// ParseIntent converts a deck-file intent name into an Intent.
func ParseIntent(s string) (Intent, error) {
	switch s {
	case "title":
		return IntentTitle, nil
	case "section":
		return IntentSectionHeader, nil
	case "content":
		return IntentContent, nil
	default:
		return 0, fmt.Errorf("unknown slide intent %q", s)
	}
}

// LayoutKind names a slide layout on the rendering surface. The set is
// closed; surfaces may map kinds onto their own template indexes but must
// support all three.
type LayoutKind int

// The closed set of surface layouts.
const (
	LayoutTitle LayoutKind = iota
	LayoutSectionHeader
	LayoutContent
)

// String returns the machine-readable layout name.
func (k LayoutKind) String() string {
	switch k {
	case LayoutTitle:
		return "title"
	case LayoutSectionHeader:
		return "section header"
	case LayoutContent:
		return "content"
	default:
		return fmt.Sprintf("layout(%d)", int(k))
	}
}

// LayoutFor maps a slide-building intent onto the layout that slide is
// created with. The mapping is fixed and total over the known intents; any
// other value is a defect in the caller, not bad data, so it panics rather
// than returning an error.
func LayoutFor(i Intent) LayoutKind {
	switch i {
	case IntentTitle:
		return LayoutTitle
	case IntentSectionHeader:
		return LayoutSectionHeader
	case IntentContent:
		return LayoutContent
	default:
		panic(fmt.Sprintf("deckgen: no layout for intent %d", int(i)))
	}
}

package entities

import (
	"errors"
	"fmt"
	"math"
)

// Length is a distance on a slide surface, stored in English Metric Units
// (EMU), the unit system presentation containers use internally. Using an
// integer base unit keeps geometry exact across inch and point inputs.
type Length int64

// EMU conversion factors.
const (
	EMUPerInch  Length = 914400
	EMUPerPoint Length = 12700
)

// Inches returns the Length for a measurement in inches.
func Inches(in float64) Length {
	return Length(math.Round(in * float64(EMUPerInch)))
}

// Points returns the Length for a measurement in typographic points.
func Points(pt float64) Length {
	return Length(math.Round(pt * float64(EMUPerPoint)))
}

// Inches returns the length expressed in inches.
func (l Length) Inches() float64 {
	return float64(l) / float64(EMUPerInch)
}

// Points returns the length expressed in typographic points.
func (l Length) Points() float64 {
	return float64(l) / float64(EMUPerPoint)
}

// Box is an explicit rectangular placement on a slide surface. The engine
// never computes placement; callers supply it with each code block.
type Box struct {
	Left   Length `json:"left"`
	Top    Length `json:"top"`
	Width  Length `json:"width"`
	Height Length `json:"height"`
}

// Validate ensures the box has positive extent and a non-negative origin.
func (b Box) Validate() error {
	if b.Width <= 0 {
		return errors.New("box width must be positive")
	}
	if b.Height <= 0 {
		return errors.New("box height must be positive")
	}
	if b.Left < 0 || b.Top < 0 {
		return errors.New("box origin must be non-negative")
	}
	return nil
}

// SlideSize is the fixed page geometry every slide of a deck is rendered at.
// Sizing is caller configuration, not engine logic.
type SlideSize struct {
	Width  Length `json:"width"`
	Height Length `json:"height"`
}

// DefaultSlideSize is a 10in x 7.5in page, the classic 4:3 slide.
func DefaultSlideSize() SlideSize {
	return SlideSize{Width: Inches(10), Height: Inches(7.5)}
}

// Validate ensures the slide size has positive extent.
func (s SlideSize) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.New("slide size must be positive in both dimensions")
	}
	return nil
}

// RGB is an 8-bit color triple used for surface fills.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the color as an uppercase hex string, e.g. "#F0F0F0".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

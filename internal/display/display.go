// Package display maps segment-display text onto per-tube protocol commands.
package display

import (
	"github.com/p3nguindeity/MPF-Nixie/internal/protocol"
	"github.com/p3nguindeity/MPF-Nixie/internal/rgb"
)

// FlashingType mirrors the host's flashing modes. Tubes do not flash; the
// value is accepted and ignored.
type FlashingType int

const (
	FlashNo FlashingType = iota
	FlashAll
	FlashMatch
	FlashMask
)

// Text is the host's text-with-colors value.
type Text interface {
	String() string
	Colors() []rgb.Input
}

// Sink is what displays funnel their commands through.
type Sink interface {
	Send(cmd protocol.Command)
	Resolve(in rgb.Input) rgb.Triple
	DefaultColor() rgb.Triple
	DefaultDim() uint8
}

// Display is a segment display backed by one or more tubes.
type Display interface {
	Render(text Text, flashing FlashingType, flashMask string)
}

// ColoredText is a plain Text.
type ColoredText struct {
	text   string
	colors []rgb.Input
}

// NewText returns text with optional per-character colors.
func NewText(s string, colors ...rgb.Input) ColoredText {
	return ColoredText{text: s, colors: colors}
}

func (t ColoredText) String() string      { return t.text }
func (t ColoredText) Colors() []rgb.Input { return t.colors }

func textOf(t Text) (string, []rgb.Input) {
	if t == nil {
		return "", nil
	}
	return t.String(), t.Colors()
}

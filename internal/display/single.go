package display

import (
	"strings"
	"unicode/utf8"

	"github.com/p3nguindeity/MPF-Nixie/internal/protocol"
)

// Single is a one-character display on one tube.
type Single struct {
	index int
	sink  Sink
}

func NewSingle(index int, sink Sink) *Single {
	return &Single{index: index, sink: sink}
}

func (d *Single) Index() int {
	return d.index
}

// Render sends exactly one command: the first non-blank character of text in
// its first color.
func (d *Single) Render(text Text, _ FlashingType, _ string) {
	s, colors := textOf(text)
	s = strings.TrimSpace(s)

	digit := protocol.BlankDigit
	if s != "" {
		r, _ := utf8.DecodeRuneInString(s)
		digit = protocol.DigitOf(r)
	}

	c := d.sink.DefaultColor()
	if len(colors) > 0 {
		c = d.sink.Resolve(colors[0])
	}

	d.sink.Send(protocol.Tube(d.index, digit, c, d.sink.DefaultDim()))
}

package display

import (
	"github.com/p3nguindeity/MPF-Nixie/internal/protocol"
	"github.com/p3nguindeity/MPF-Nixie/internal/rgb"
)

// Multi spans the consecutive tubes [base, base+size).
type Multi struct {
	base int
	size int
	sink Sink
}

func NewMulti(base, size int, sink Sink) *Multi {
	if size < 0 {
		size = 0
	}
	return &Multi{base: base, size: size, sink: sink}
}

func (d *Multi) Base() int { return d.base }
func (d *Multi) Size() int { return d.size }

// Render sends one command per tube, rightmost tube first. The controller
// chain depends on that order.
func (d *Multi) Render(text Text, _ FlashingType, _ string) {
	s, colors := textOf(text)
	chars := fit([]rune(s), d.size)
	dim := d.sink.DefaultDim()
	def := d.sink.DefaultColor()

	for i := d.size - 1; i >= 0; i-- {
		d.sink.Send(protocol.Tube(d.base+i, protocol.DigitOf(chars[i]), d.colorAt(colors, i, def), dim))
	}
}

// colorAt picks the color for position i, falling back to the first color
// and then to def.
func (d *Multi) colorAt(colors []rgb.Input, i int, def rgb.Triple) rgb.Triple {
	switch {
	case len(colors) == 0:
		return def
	case i < len(colors):
		return d.sink.Resolve(colors[i])
	default:
		return d.sink.Resolve(colors[0])
	}
}

// fit right-pads with spaces or truncates to exactly n characters.
func fit(chars []rune, n int) []rune {
	out := make([]rune, n)
	for i := range out {
		if i < len(chars) {
			out[i] = chars[i]
		} else {
			out[i] = ' '
		}
	}
	return out
}

package rgb

import (
	"fmt"
	"strings"
)

// Kind tags the shape of an Input.
type Kind uint8

const (
	KindNone Kind = iota
	KindTriple
	KindText
)

// Input is a color as supplied by the host: either three numeric components or
// a name/hex string. The zero value is an Input of no known shape and resolves
// to Fallback.
type Input struct {
	kind   Kind
	triple [3]int
	text   string
}

// RGB returns a triple Input. Components are clamped when resolved, not here.
func RGB(r, g, b int) Input {
	return Input{kind: KindTriple, triple: [3]int{r, g, b}}
}

// Text returns a name or hex string Input.
func Text(s string) Input {
	return Input{kind: KindText, text: s}
}

// Of returns the Input for an already resolved Triple.
func Of(t Triple) Input {
	return RGB(int(t.R), int(t.G), int(t.B))
}

// Parse reads a color from user input: "r,g,b" becomes a triple (each part
// coerced like a config value), anything else a text Input.
func Parse(s string) Input {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Text(s)
	}
	return RGB(int(Coerce(parts[0])), int(Coerce(parts[1])), int(Coerce(parts[2])))
}

func (in Input) Kind() Kind {
	return in.kind
}

func (in Input) String() string {
	switch in.kind {
	case KindTriple:
		return fmt.Sprintf("(%d,%d,%d)", in.triple[0], in.triple[1], in.triple[2])
	case KindText:
		return in.text
	}
	return "<none>"
}

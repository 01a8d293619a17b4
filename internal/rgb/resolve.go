package rgb

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var ErrUnknownColor = errors.New("unknown color")

// Namer looks a color up by name or hex notation. It is the host's color
// naming facility; a Resolver works without one.
type Namer interface {
	Lookup(name string) (Triple, error)
}

// NamerFunc adapts a function to Namer.
type NamerFunc func(name string) (Triple, error)

func (f NamerFunc) Lookup(name string) (Triple, error) {
	return f(name)
}

// Names resolves SVG/CSS color names ("orange", "dark slate gray") and
// "#rgb" / "#rrggbb" strings.
type Names struct{}

func (Names) Lookup(name string) (Triple, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(key, "#") {
		digits := key[1:]
		if (len(digits) == 3 || len(digits) == 6) && isHex(digits) {
			c, err := colorful.Hex(key)
			if err != nil {
				return Triple{}, err
			}
			r, g, b := c.RGB255()
			return Triple{R: r, G: g, B: b}, nil
		}
		return Triple{}, ErrUnknownColor
	}
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	if c, ok := colornames.Map[key]; ok {
		return Triple{R: c.R, G: c.G, B: c.B}, nil
	}
	return Triple{}, ErrUnknownColor
}

// Resolver turns Inputs into Triples. A nil Namer skips the name lookup.
type Resolver struct {
	Namer Namer
}

// Default is the Resolver used by Resolve.
var Default = &Resolver{Namer: Names{}}

// Resolve resolves in with the Default resolver.
func Resolve(in Input) Triple {
	return Default.Resolve(in)
}

// Resolve never fails: anything it cannot make sense of becomes Fallback.
func (r *Resolver) Resolve(in Input) Triple {
	switch in.kind {
	case KindTriple:
		return Triple{R: Clamp(in.triple[0]), G: Clamp(in.triple[1]), B: Clamp(in.triple[2])}
	case KindText:
		if r != nil && r.Namer != nil {
			if t, ok := lookup(r.Namer, in.text); ok {
				return t
			}
		}
		if t, ok := parseHex(in.text); ok {
			return t
		}
	}
	return Fallback
}

// lookup shields the resolver from a host Namer that panics.
func lookup(n Namer, name string) (t Triple, ok bool) {
	defer func() {
		if recover() != nil {
			t, ok = Triple{}, false
		}
	}()
	t, err := n.Lookup(name)
	return t, err == nil
}

// parseHex accepts "RRGGBB" with any number of leading '#'.
func parseHex(s string) (Triple, bool) {
	s = strings.TrimLeft(strings.TrimSpace(s), "#")
	if len(s) != 6 || !isHex(s) {
		return Triple{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Triple{}, false
	}
	return Triple{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

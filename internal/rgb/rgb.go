// Package rgb resolves the color inputs a host hands to a tube display into
// the 8-bit triples carried on the wire.
package rgb

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Triple is an 8-bit RGB color as sent to a tube.
type Triple struct {
	R, G, B uint8
}

var (
	Red   = Triple{R: 255}
	Green = Triple{G: 255}
	Blue  = Triple{B: 255}
	Black = Triple{}
)

// Fallback is returned for every input that cannot be resolved. Pure red makes
// a mis-specified color obvious on the tubes.
var Fallback = Red

func (t Triple) String() string {
	return fmt.Sprintf("(%d,%d,%d)", t.R, t.G, t.B)
}

// NRGBA returns the color as it looks at the given dim level. Dim 0 is full
// brightness and 255 is fully dimmed.
func (t Triple) NRGBA(dim uint8) color.NRGBA {
	scale := float64(255-dim) / 255.0
	return color.NRGBA{
		R: uint8(float64(t.R) * scale),
		G: uint8(float64(t.G) * scale),
		B: uint8(float64(t.B) * scale),
		A: 255,
	}
}

// Clamp limits i to [0,255].
func Clamp(i int) uint8 {
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return uint8(i)
}

// Coerce converts a loosely typed value, as decoded from a config file, into
// a color component. Unparsable values become 0.
func Coerce(v any) uint8 {
	switch n := v.(type) {
	case int:
		return Clamp(n)
	case int8:
		return Clamp(int(n))
	case int16:
		return Clamp(int(n))
	case int32:
		return Clamp(int(n))
	case int64:
		return clamp64(n)
	case uint:
		return clampU64(uint64(n))
	case uint8:
		return n
	case uint16:
		return clampU64(uint64(n))
	case uint32:
		return clampU64(uint64(n))
	case uint64:
		return clampU64(n)
	case float32:
		return clampFloat(float64(n))
	case float64:
		return clampFloat(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0
		}
		return clamp64(i)
	}
	return 0
}

func clamp64(i int64) uint8 {
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return uint8(i)
}

func clampU64(u uint64) uint8 {
	if u > 255 {
		return 255
	}
	return uint8(u)
}

// clampFloat truncates toward zero before clamping.
func clampFloat(f float64) uint8 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return clamp64(int64(math.Max(math.Min(math.Trunc(f), 256), -1)))
}

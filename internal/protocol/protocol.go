// Package protocol implements the ASCII line protocol spoken by the nixie
// tube controller.
//
// Every command is one newline-terminated line:
//
//	N,<index>,<digit>,<r>,<g>,<b>,<dim>   update one tube
//	A                                      run the controller's own attract animation
//
// digit is 0-9, or 10 to blank the tube. r, g, b and dim are 0-255.
package protocol

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/p3nguindeity/MPF-Nixie/internal/rgb"
)

const (
	// BlankDigit turns a tube off.
	BlankDigit = 10

	tubePrefix  = "N"
	attractCode = "A"
)

// Kind tells tube updates apart from controller-level commands. Attract
// suppression only ever drops KindTube.
type Kind uint8

const (
	KindNone Kind = iota
	KindTube
	KindControl
)

func (k Kind) String() string {
	switch k {
	case KindTube:
		return "tube"
	case KindControl:
		return "control"
	}
	return "none"
}

// TubeUpdate is the payload of an N command.
type TubeUpdate struct {
	Index int
	Digit int
	Color rgb.Triple
	Dim   uint8
}

// Command is one line on the wire.
type Command struct {
	Kind Kind
	Tube TubeUpdate
	Code string
}

// Attract asks the controller to run its idle animation.
var Attract = Control(attractCode)

// Tube builds a tube update command.
func Tube(index, digit int, c rgb.Triple, dim uint8) Command {
	return Command{
		Kind: KindTube,
		Tube: TubeUpdate{Index: index, Digit: digit, Color: c, Dim: dim},
	}
}

// Control builds a parameterless controller command.
func Control(code string) Command {
	return Command{Kind: KindControl, Code: code}
}

// DigitOf maps a character onto a tube digit. Decimal digits of any script
// count; anything else blanks the tube.
func DigitOf(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	if !unicode.IsDigit(r) {
		return BlankDigit
	}
	// Decimal digits come in contiguous runs of ten starting at zero.
	zero := r
	for unicode.IsDigit(zero - 1) {
		zero--
	}
	return int(r-zero) % 10
}

// String returns the line including its trailing newline.
func (c Command) String() string {
	switch c.Kind {
	case KindTube:
		t := c.Tube
		return fmt.Sprintf("%s,%d,%d,%d,%d,%d,%d\n", tubePrefix, t.Index, t.Digit, t.Color.R, t.Color.G, t.Color.B, t.Dim)
	case KindControl:
		return c.Code + "\n"
	}
	return ""
}

// Bytes returns the ASCII encoding of the line. Characters outside ASCII are
// left out.
func (c Command) Bytes() []byte {
	return ASCII(c.String())
}

// Line is the command without its newline, for logs.
func (c Command) Line() string {
	return strings.TrimRight(c.String(), "\n")
}

// ASCII encodes s dropping every rune that has no ASCII representation.
func ASCII(s string) []byte {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x80 {
			b = append(b, byte(r))
		}
	}
	return b
}

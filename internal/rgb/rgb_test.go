package rgb_test

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/p3nguindeity/MPF-Nixie/internal/rgb"
)

var TestTripleIsClamped = []struct {
	R, G, B int
	Expect  Triple
}{
	{300, -5, 10, Triple{255, 0, 10}},
	{0, 0, 0, Triple{0, 0, 0}},
	{255, 255, 255, Triple{255, 255, 255}},
	{-1000, 1000, 128, Triple{0, 255, 128}},
}

var TestTextResolvesToExpectedColor = []struct {
	Given  string
	Expect Triple
}{
	{"#00ff00", Triple{0, 255, 0}},
	{"00ff00", Triple{0, 255, 0}},
	{"  #0000FF ", Triple{0, 0, 255}},
	{"##102030", Triple{0x10, 0x20, 0x30}},
	{"#0f0", Triple{0, 255, 0}},
	{"orange", Triple{255, 165, 0}},
	{"Dark Slate Gray", Triple{47, 79, 79}},
	{"not-a-color", Red},
	{"", Red},
	{"#12345z", Red},
	{"12345", Red},
	{"#1234567", Red},
}

func TestResolveTriple(t *testing.T) {
	for k, v := range TestTripleIsClamped {
		t.Run("Given triple "+strconv.Itoa(k), func(t *testing.T) {
			assert.Equal(t, v.Expect, Resolve(RGB(v.R, v.G, v.B)))
		})
	}
}

func TestResolveText(t *testing.T) {
	for _, v := range TestTextResolvesToExpectedColor {
		t.Run("Given "+strconv.Quote(v.Given), func(t *testing.T) {
			assert.Equal(t, v.Expect, Resolve(Text(v.Given)))
		})
	}
}

func TestResolveZeroInputIsFallback(t *testing.T) {
	assert.Equal(t, Red, Resolve(Input{}))
	assert.Equal(t, KindNone, Input{}.Kind())
}

func TestResolveWithoutNamer(t *testing.T) {
	r := &Resolver{}
	assert.Equal(t, Triple{0, 255, 0}, r.Resolve(Text("#00ff00")))
	assert.Equal(t, Triple{0, 255, 0}, r.Resolve(Text("00ff00")))
	assert.Equal(t, Red, r.Resolve(Text("orange")), "names need a Namer")
}

func TestResolveNamerFailureFallsBackToHex(t *testing.T) {
	r := &Resolver{Namer: NamerFunc(func(string) (Triple, error) {
		return Triple{}, errors.New("boom")
	})}
	assert.Equal(t, Triple{1, 2, 3}, r.Resolve(Text("010203")))
	assert.Equal(t, Red, r.Resolve(Text("blue")))
}

func TestResolveNamerPanicIsContained(t *testing.T) {
	r := &Resolver{Namer: NamerFunc(func(string) (Triple, error) {
		panic("host color facility exploded")
	})}
	assert.NotPanics(t, func() {
		assert.Equal(t, Triple{0xaa, 0xbb, 0xcc}, r.Resolve(Text("aabbcc")))
	})
}

func TestResolveUsesNamerFirst(t *testing.T) {
	r := &Resolver{Namer: NamerFunc(func(string) (Triple, error) {
		return Triple{9, 9, 9}, nil
	})}
	assert.Equal(t, Triple{9, 9, 9}, r.Resolve(Text("00ff00")))
}

func TestCoerce(t *testing.T) {
	assert.Equal(t, uint8(7), Coerce(7))
	assert.Equal(t, uint8(255), Coerce(int64(1<<40)))
	assert.Equal(t, uint8(0), Coerce(-3))
	assert.Equal(t, uint8(12), Coerce(12.9))
	assert.Equal(t, uint8(0), Coerce(-0.5))
	assert.Equal(t, uint8(255), Coerce(uint64(math.MaxUint64)))
	assert.Equal(t, uint8(42), Coerce(" 42 "))
	assert.Equal(t, uint8(0), Coerce("forty-two"))
	assert.Equal(t, uint8(0), Coerce(math.NaN()))
	assert.Equal(t, uint8(0), Coerce(math.Inf(1)))
	assert.Equal(t, uint8(1), Coerce(true))
	assert.Equal(t, uint8(0), Coerce(nil))
	assert.Equal(t, uint8(0), Coerce([]int{1}))
}

func TestParse(t *testing.T) {
	assert.Equal(t, Triple{255, 0, 10}, Resolve(Parse("300,-5,10")))
	assert.Equal(t, KindText, Parse("orange").Kind())
	assert.Equal(t, Triple{0, 0, 255}, Resolve(Parse("0, 0, 255")))
	assert.Equal(t, "(1,2,3)", Of(Triple{1, 2, 3}).String())
}

func TestNRGBADimming(t *testing.T) {
	c := Triple{255, 128, 0}
	full := c.NRGBA(0)
	assert.Equal(t, uint8(255), full.R)
	assert.Equal(t, uint8(128), full.G)
	off := c.NRGBA(255)
	assert.Equal(t, uint8(0), off.R)
	assert.Equal(t, uint8(255), off.A)
}

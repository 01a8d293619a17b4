// Package preview mirrors tube colors onto a periph display.Drawer: the
// console for bench work, or a WS2812 strip where each pixel sits behind a
// tube.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"

	"github.com/p3nguindeity/MPF-Nixie/internal/protocol"
)

const (
	Console = "console"
	SPI     = "spi"

	// RefreshRate is the NRZ bit rate of the LED chips.
	RefreshRate physic.Frequency = 800
)

// Mirror keeps one pixel per tube and redraws on every update.
type Mirror struct {
	mu     sync.Mutex
	drawer display.Drawer
	port   io.Closer
	img    *image.NRGBA
	log    zerolog.Logger
}

func New(d display.Drawer, tubes int, log zerolog.Logger) *Mirror {
	if tubes < 1 {
		tubes = 1
	}
	return &Mirror{
		drawer: d,
		img:    image.NewNRGBA(image.Rect(0, 0, tubes, 1)),
		log:    log,
	}
}

// Open builds a Mirror for kind, one of Console or SPI. spiDev is the spireg
// port name; "" picks the first one.
func Open(kind, spiDev string, tubes int, log zerolog.Logger) (*Mirror, error) {
	switch kind {
	case Console:
		return New(screen.New(tubes), tubes, log), nil
	case SPI:
		p, err := spireg.Open(spiDev)
		if err != nil {
			return nil, fmt.Errorf("preview spi: %w", err)
		}
		d, err := nrzled.NewSPI(p, &nrzled.Opts{
			NumPixels: tubes,
			Channels:  3,
			Freq:      ((RefreshRate * 3) + 100) * physic.KiloHertz,
		})
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("preview nrzled: %w", err)
		}
		if err := d.Halt(); err != nil {
			log.Warn().Err(err).Msg("preview halt failed")
		}
		m := New(d, tubes, log)
		m.port = p
		return m, nil
	}
	return nil, fmt.Errorf("unknown preview %q", kind)
}

// Show paints the tube's pixel. A blank tube is black; indices outside the
// mirror are ignored.
func (m *Mirror) Show(t protocol.TubeUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.Index < 0 || t.Index >= m.img.Rect.Max.X {
		return
	}
	c := color.NRGBA{A: 255}
	if t.Digit != protocol.BlankDigit {
		c = t.Color.NRGBA(t.Dim)
	}
	m.img.SetNRGBA(t.Index, 0, c)

	if err := m.drawer.Draw(m.drawer.Bounds(), m.img, image.Point{}); err != nil {
		m.log.Warn().Err(err).Msg("preview draw failed")
	}
}

// Image returns a copy of the current pixels.
func (m *Mirror) Image() *image.NRGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	im := image.NewNRGBA(m.img.Rect)
	copy(im.Pix, m.img.Pix)
	return im
}

// Halt blanks the output and releases the port.
func (m *Mirror) Halt() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for x := 0; x < m.img.Rect.Max.X; x++ {
		m.img.SetNRGBA(x, 0, color.NRGBA{A: 255})
	}
	err := m.drawer.Halt()
	if m.port != nil {
		if cerr := m.port.Close(); err == nil {
			err = cerr
		}
		m.port = nil
	}
	return err
}

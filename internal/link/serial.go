package link

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/tarm/serial"
	"periph.io/x/conn/v3"

	"github.com/p3nguindeity/MPF-Nixie/internal/protocol"
)

// SimPort is a port name that opens no hardware; output is logged instead.
const SimPort = "sim"

// Port is a serial port as a periph conn.Conn.
type Port struct {
	name string
	p    *serial.Port
}

// OpenSerial opens a serial port at baud, 8N1.
func OpenSerial(name string, baud int) (*Port, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: time.Second,
	})
	if err != nil {
		return nil, err
	}
	return &Port{name: name, p: p}, nil
}

func (s *Port) String() string {
	return "serial(" + s.name + ")"
}

func (s *Port) Duplex() conn.Duplex {
	return conn.Full
}

// Tx writes w, then fills r from the port.
func (s *Port) Tx(w, r []byte) error {
	if len(w) != 0 {
		if _, err := s.p.Write(w); err != nil {
			return err
		}
	}
	if len(r) != 0 {
		if _, err := io.ReadFull(s.p, r); err != nil {
			return err
		}
	}
	return nil
}

func (s *Port) Close() error {
	return s.p.Close()
}

// Sim logs what would be written to the controller.
type Sim struct {
	log   zerolog.Logger
	Count int
}

func NewSim(log zerolog.Logger) *Sim {
	return &Sim{log: log}
}

func (s *Sim) String() string      { return SimPort }
func (s *Sim) Duplex() conn.Duplex { return conn.Half }

func (s *Sim) Tx(w, r []byte) error {
	s.Count++
	s.log.Info().Int("n", s.Count).Str("line", string(protocol.ASCII(string(w)))).Msg("sim tx")
	for i := range r {
		r[i] = 0
	}
	return nil
}

func (m *Manager) openPort(name string, baud int) (conn.Conn, error) {
	if name == SimPort {
		return NewSim(m.log), nil
	}
	p, err := OpenSerial(name, baud)
	if err != nil {
		return nil, err
	}
	return p, nil
}

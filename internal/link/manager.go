// Package link owns the serial connection to the nixie controller. Every
// display sends through a Manager, which applies the attract suppression
// policy and drops output while the link is down.
package link

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3"

	"github.com/p3nguindeity/MPF-Nixie/internal/config"
	"github.com/p3nguindeity/MPF-Nixie/internal/display"
	"github.com/p3nguindeity/MPF-Nixie/internal/events"
	"github.com/p3nguindeity/MPF-Nixie/internal/protocol"
	"github.com/p3nguindeity/MPF-Nixie/internal/rgb"
)

// SettleDelay is how long the controller needs after the port opens; opening
// the port resets it.
const SettleDelay = 2 * time.Second

var (
	ErrAlreadyInitialized = errors.New("link already initialized")
	ErrStopped            = errors.New("link stopped while opening")
)

// State of the serial link.
type State int

const (
	StateClosed State = iota
	StateOpening
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Opener opens the transport for port at baud.
type Opener func(port string, baud int) (conn.Conn, error)

// Mirror receives every tube update written to the controller.
type Mirror interface {
	Show(t protocol.TubeUpdate)
}

type Option func(*Manager)

func WithOpener(o Opener) Option {
	return func(m *Manager) { m.open = o }
}

func WithSettleDelay(d time.Duration) Option {
	return func(m *Manager) { m.settle = d }
}

func WithMirror(mr Mirror) Option {
	return func(m *Manager) { m.mirror = mr }
}

// WithNamer sets the color naming facility used to resolve text colors.
func WithNamer(n rgb.Namer) Option {
	return func(m *Manager) { m.resolver = &rgb.Resolver{Namer: n} }
}

type Manager struct {
	log      zerolog.Logger
	open     Opener
	settle   time.Duration
	mirror   Mirror
	resolver *rgb.Resolver

	mu              sync.Mutex
	cfg             config.Config
	link            conn.Conn
	state           State
	dim             uint8
	color           rgb.Triple
	autoMode        string
	ignoreInAttract bool
	inAttract       bool
	debug           bool
	unsubscribe     []events.UnsubscribeFunc
	// halt is closed by Stop to abort an Initialize in flight.
	halt chan struct{}
}

func New(log zerolog.Logger, opts ...Option) *Manager {
	m := &Manager{
		log:      log,
		settle:   SettleDelay,
		resolver: rgb.Default,
		color:    rgb.Red,
	}
	for _, o := range opts {
		o(m)
	}
	if m.open == nil {
		m.open = m.openPort
	}
	return m
}

// Initialize applies cfg, opens the link and waits for the controller to
// settle. Mode events are subscribed on sub when auto_attract is set.
// Configuration and open errors are returned; the link is then unusable.
func (m *Manager) Initialize(ctx context.Context, cfg config.Config, sub events.Subscriber) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("nixie config: %w", err)
	}

	m.mu.Lock()
	if m.state == StateOpening || m.state == StateReady {
		m.mu.Unlock()
		return ErrAlreadyInitialized
	}
	m.cfg = cfg
	m.dim = cfg.Dim()
	if c, ok := cfg.Color(); ok {
		m.color = c
	}
	m.autoMode = cfg.AttractMode()
	m.ignoreInAttract = cfg.IgnoreUpdatesInAttract
	m.debug = cfg.Debug
	m.state = StateOpening
	halt := make(chan struct{})
	m.halt = halt
	m.mu.Unlock()

	baud := cfg.BaudRate()
	m.log.Info().Str("port", cfg.Port).Int("baud", baud).Msg("opening serial link")
	l, err := m.open(cfg.Port, baud)
	if err != nil {
		m.mu.Lock()
		if !halted(halt) {
			m.state = StateFailed
		}
		m.mu.Unlock()
		return fmt.Errorf("open %s: %w", cfg.Port, err)
	}

	// The link is held while the controller settles so Stop can close it.
	m.mu.Lock()
	if halted(halt) {
		m.mu.Unlock()
		m.closeLink(l)
		return ErrStopped
	}
	m.link = l
	m.mu.Unlock()

	t := time.NewTimer(m.settle)
	defer t.Stop()
	select {
	case <-halt:
		return ErrStopped
	case <-ctx.Done():
		m.mu.Lock()
		if halted(halt) {
			m.mu.Unlock()
			return ctx.Err()
		}
		m.link = nil
		m.halt = nil
		m.state = StateFailed
		m.mu.Unlock()
		m.closeLink(l)
		return ctx.Err()
	case <-t.C:
	}

	m.mu.Lock()
	if halted(halt) {
		m.mu.Unlock()
		return ErrStopped
	}
	m.state = StateReady
	m.mu.Unlock()
	m.log.Info().Str("info", m.Info()).Msg("serial ready")

	if m.autoMode != "" && sub != nil {
		m.listen(sub, halt)
		m.log.Info().
			Str("auto_attract", m.autoMode).
			Bool("ignore_updates_in_attract", m.ignoreInAttract).
			Msg("tracking attract mode")
	}
	return nil
}

func halted(halt chan struct{}) bool {
	select {
	case <-halt:
		return true
	default:
		return false
	}
}

// Send writes cmd to the controller. It never fails: suppressed commands,
// commands sent while the link is down and failed writes are all dropped.
func (m *Manager) Send(cmd protocol.Command) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cmd.Kind == protocol.KindTube && m.ignoreInAttract && m.inAttract {
		if m.debug {
			m.log.Debug().Str("cmd", cmd.Line()).Msg("drop (in attract)")
		}
		return
	}
	if m.debug {
		m.log.Debug().Str("cmd", cmd.Line()).Msg("tx")
	}
	if m.state != StateReady || m.link == nil {
		m.log.Warn().Str("state", m.state.String()).Msg("write skipped (serial not ready)")
		return
	}
	if err := m.link.Tx(cmd.Bytes(), nil); err != nil {
		m.log.Warn().Err(err).Str("cmd", cmd.Line()).Msg("write failed")
		return
	}
	if cmd.Kind == protocol.KindTube && m.mirror != nil {
		m.mirror.Show(cmd.Tube)
	}
}

// Stop closes the link. It is safe to call more than once and never fails.
func (m *Manager) Stop() {
	m.mu.Lock()
	l := m.link
	unsub := m.unsubscribe
	m.link = nil
	m.unsubscribe = nil
	m.state = StateClosed
	if m.halt != nil {
		close(m.halt)
		m.halt = nil
	}
	m.mu.Unlock()

	for _, u := range unsub {
		u()
	}
	if l != nil {
		m.closeLink(l)
	}
}

func (m *Manager) closeLink(l conn.Conn) {
	c, ok := l.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		m.log.Debug().Err(err).Str("link", l.String()).Msg("close failed")
	}
}

// ConfigureDisplay returns the display for size tubes starting at index.
// Settings are accepted for the host's benefit and not used.
func (m *Manager) ConfigureDisplay(index, size int, settings map[string]any) (display.Display, error) {
	if index < 0 {
		return nil, fmt.Errorf("tube index %d must not be negative", index)
	}
	if size <= 1 {
		return display.NewSingle(index, m), nil
	}
	return display.NewMulti(index, size, m), nil
}

func (m *Manager) Resolve(in rgb.Input) rgb.Triple {
	return m.resolver.Resolve(in)
}

func (m *Manager) DefaultColor() rgb.Triple {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.color
}

func (m *Manager) DefaultDim() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dim
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) InAttract() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inAttract
}

func (m *Manager) Info() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("Serial %s @ %d baud; default_dim=%d; default_color=%s",
		m.cfg.Port, m.cfg.BaudRate(), m.dim, m.color)
}

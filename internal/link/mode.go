package link

import (
	"github.com/p3nguindeity/MPF-Nixie/internal/events"
	"github.com/p3nguindeity/MPF-Nixie/internal/protocol"
)

// AttractAnimation is the auto_attract token that hands the tubes to the
// controller's own animation when attract starts.
const AttractAnimation = "a"

// Host events that mean the machine went idle or became active.
var (
	IdleEvents   = []string{events.AttractStarted, events.GameEnded}
	ActiveEvents = []string{events.GameStarted, events.BallStarted}
)

// listen subscribes the mode callbacks. A Stop that raced ahead of it
// unsubscribes them straight away.
func (m *Manager) listen(sub events.Subscriber, halt chan struct{}) {
	var unsub []events.UnsubscribeFunc
	for _, kind := range IdleEvents {
		unsub = append(unsub, sub.Subscribe(kind, func(events.Event) { m.attractStarted() }))
	}
	for _, kind := range ActiveEvents {
		unsub = append(unsub, sub.Subscribe(kind, func(events.Event) { m.gameStarted() }))
	}

	m.mu.Lock()
	if !halted(halt) {
		m.unsubscribe = append(m.unsubscribe, unsub...)
		unsub = nil
	}
	m.mu.Unlock()

	for _, u := range unsub {
		u()
	}
}

func (m *Manager) attractStarted() {
	m.mu.Lock()
	m.inAttract = true
	mode := m.autoMode
	m.mu.Unlock()

	if mode == AttractAnimation {
		m.Send(protocol.Attract)
	}
}

func (m *Manager) gameStarted() {
	m.mu.Lock()
	m.inAttract = false
	m.mu.Unlock()
}

// Package input routes actions coming from a backend either to the console
// joypad or to emulator callbacks.
package input

import (
	"time"

	"github.com/valerio/go-dotmatrix/dotmatrix/input/action"
	"github.com/valerio/go-dotmatrix/dotmatrix/input/event"
	"github.com/valerio/go-dotmatrix/dotmatrix/memory"
)

// debounceDuration is the minimum time between two presses of an emulator
// control. Console buttons are never debounced.
const debounceDuration = 300 * time.Millisecond

// ButtonSink receives console button transitions.
type ButtonSink interface {
	ButtonDown(key memory.JoypadKey)
	ButtonUp(key memory.JoypadKey)
}

// Manager dispatches actions. Console buttons go to the sink, everything
// else to the callbacks registered with On.
type Manager struct {
	sink          ButtonSink
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	now           func() time.Time
}

func NewManager(sink ButtonSink) *Manager {
	return &Manager{
		sink:          sink,
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
		now:           time.Now,
	}
}

// On registers callback for act and evt.
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles one input transition.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if key, ok := joypadKey(act); ok {
		if m.sink == nil {
			return
		}
		switch evt {
		case event.Press:
			m.sink.ButtonDown(key)
		case event.Release:
			m.sink.ButtonUp(key)
		}
		return
	}

	if m.debounced(act, evt) {
		return
	}
	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}

func (m *Manager) debounced(act action.Action, evt event.Type) bool {
	if evt == event.Hold {
		return false
	}
	now := m.now()
	if m.lastTriggered[act] == nil {
		m.lastTriggered[act] = make(map[event.Type]time.Time)
	}
	if last, ok := m.lastTriggered[act][evt]; ok && now.Sub(last) < debounceDuration {
		return true
	}
	m.lastTriggered[act][evt] = now
	return false
}

func joypadKey(act action.Action) (memory.JoypadKey, bool) {
	switch act {
	case action.DMGButtonA:
		return memory.JoypadA, true
	case action.DMGButtonB:
		return memory.JoypadB, true
	case action.DMGButtonStart:
		return memory.JoypadStart, true
	case action.DMGButtonSelect:
		return memory.JoypadSelect, true
	case action.DMGDPadUp:
		return memory.JoypadUp, true
	case action.DMGDPadDown:
		return memory.JoypadDown, true
	case action.DMGDPadLeft:
		return memory.JoypadLeft, true
	case action.DMGDPadRight:
		return memory.JoypadRight, true
	}
	return 0, false
}

// Package backend defines the contract between the frame loop and whatever
// presents frames and collects input: a terminal, a window, or nothing.
package backend

import (
	"github.com/valerio/go-dotmatrix/dotmatrix/input/action"
	"github.com/valerio/go-dotmatrix/dotmatrix/input/event"
	"github.com/valerio/go-dotmatrix/dotmatrix/video"
)

// Backend presents frames and reports input. The driver calls Update once
// per emulated frame and routes the returned events through an
// input.Manager.
type Backend interface {
	// Init must be called once before Update.
	Init(config Config) error

	// Update presents frame and returns the input collected since the
	// previous call.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup releases the backend's resources.
	Cleanup() error
}

// Config holds the options common to every backend. Backends ignore the
// ones they cannot honor.
type Config struct {
	Title string
	Scale int
}

// InputEvent is one action transition reported by a backend.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// Quit is the event a backend returns to end the frame loop.
var Quit = InputEvent{Action: action.EmulatorQuit, Type: event.Press}

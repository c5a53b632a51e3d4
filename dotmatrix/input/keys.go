package input

import "github.com/valerio/go-dotmatrix/dotmatrix/input/action"

// DefaultKeyMap maps backend key names to actions. Backends translate their
// native key codes to these names and may extend the table.
var DefaultKeyMap = map[string]action.Action{
	"z":     action.DMGButtonA,
	"x":     action.DMGButtonB,
	"Enter": action.DMGButtonStart,
	"Shift": action.DMGButtonSelect,

	"Up":    action.DMGDPadUp,
	"Down":  action.DMGDPadDown,
	"Left":  action.DMGDPadLeft,
	"Right": action.DMGDPadRight,
	"w":     action.DMGDPadUp,
	"s":     action.DMGDPadDown,
	"a":     action.DMGDPadLeft,
	"d":     action.DMGDPadRight,

	"Space":  action.EmulatorPauseToggle,
	"p":      action.EmulatorPauseToggle,
	"f":      action.EmulatorStepFrame,
	"F9":     action.EmulatorSnapshot,
	"Escape": action.EmulatorQuit,
	"q":      action.EmulatorQuit,
}

// Lookup returns the action bound to key, if any.
func Lookup(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}

// Package action lists the logical inputs backends translate keys into.
package action

// Action is a platform independent input.
type Action int

const (
	// console buttons
	DMGButtonA Action = iota
	DMGButtonB
	DMGButtonStart
	DMGButtonSelect
	DMGDPadUp
	DMGDPadDown
	DMGDPadLeft
	DMGDPadRight

	// emulator controls
	EmulatorPauseToggle
	EmulatorStepFrame
	EmulatorSnapshot
	EmulatorQuit
)

// IsButton reports whether a is one of the eight console buttons.
func (a Action) IsButton() bool {
	return a >= DMGButtonA && a <= DMGDPadRight
}

func (a Action) String() string {
	switch a {
	case DMGButtonA:
		return "A"
	case DMGButtonB:
		return "B"
	case DMGButtonStart:
		return "Start"
	case DMGButtonSelect:
		return "Select"
	case DMGDPadUp:
		return "Up"
	case DMGDPadDown:
		return "Down"
	case DMGDPadLeft:
		return "Left"
	case DMGDPadRight:
		return "Right"
	case EmulatorPauseToggle:
		return "Pause"
	case EmulatorStepFrame:
		return "StepFrame"
	case EmulatorSnapshot:
		return "Snapshot"
	case EmulatorQuit:
		return "Quit"
	}
	return "Unknown"
}

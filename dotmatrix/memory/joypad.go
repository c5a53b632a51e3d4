package memory

import "github.com/valerio/go-dotmatrix/dotmatrix/bit"

// JoypadKey is one of the eight DMG buttons.
type JoypadKey uint8

const (
	JoypadRight JoypadKey = iota
	JoypadLeft
	JoypadUp
	JoypadDown
	JoypadA
	JoypadB
	JoypadSelect
	JoypadStart
)

func (k JoypadKey) String() string {
	return [...]string{"right", "left", "up", "down", "a", "b", "select", "start"}[k&7]
}

// P1 select lines, active low.
const (
	selectDirections uint8 = 1 << 4
	selectButtons    uint8 = 1 << 5
)

// Joypad keeps the pressed state of each button group, 0 meaning pressed,
// plus the group selection written to P1.
type Joypad struct {
	dpad    uint8
	buttons uint8
	line    uint8
}

// NewJoypad returns a joypad with every button released and no group selected.
func NewJoypad() *Joypad {
	return &Joypad{
		dpad:    0x0F,
		buttons: 0x0F,
		line:    selectDirections | selectButtons,
	}
}

// Read returns P1: upper bits read as 1, low nibble holds the selected groups.
func (j *Joypad) Read() uint8 {
	value := uint8(0x0F)
	if j.line&selectDirections == 0 {
		value &= j.dpad
	}
	if j.line&selectButtons == 0 {
		value &= j.buttons
	}
	return 0xC0 | j.line | value
}

// Write stores the group selection, only bits 4 and 5 are writable.
func (j *Joypad) Write(value uint8) {
	j.line = value & (selectDirections | selectButtons)
}

func (j *Joypad) group(key JoypadKey) (*uint8, uint8) {
	if key <= JoypadDown {
		return &j.dpad, uint8(key)
	}
	return &j.buttons, uint8(key - JoypadA)
}

// Press marks key as pressed and reports whether it was released before.
func (j *Joypad) Press(key JoypadKey) bool {
	state, index := j.group(key)
	wasReleased := bit.IsSet(index, *state)
	*state = bit.Reset(index, *state)
	return wasReleased
}

// Release marks key as released.
func (j *Joypad) Release(key JoypadKey) {
	state, index := j.group(key)
	*state = bit.Set(index, *state)
}

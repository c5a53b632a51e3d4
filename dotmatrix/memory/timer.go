package memory

import (
	"github.com/valerio/go-dotmatrix/dotmatrix/addr"
	"github.com/valerio/go-dotmatrix/dotmatrix/bit"
)

// Interrupter is anything that accepts interrupt requests.
type Interrupter interface {
	Request(i addr.Interrupt)
}

// tacMasks maps the TAC clock select (bits 1-0) to the divider bits that must
// be zero for TIMA to tick.
//
//	00 -> every 256 steps
//	01 -> every 4 steps
//	10 -> every 16 steps
//	11 -> every 64 steps
var tacMasks = [4]uint16{255, 3, 15, 63}

// Timer is the DIV/TIMA/TMA/TAC block, advanced once per bus access.
type Timer struct {
	counter uint16 // DIV reads bits 6 and up

	tima uint8
	tma  uint8
	tac  uint8
}

// Emulate advances the divider by one step, ticking TIMA when the selected
// divider bits roll over. Overflow reloads TMA and raises the interrupt in
// the same call.
func (t *Timer) Emulate(irq Interrupter) {
	t.counter++

	if !bit.IsSet(2, t.tac) {
		return
	}
	if t.counter&tacMasks[t.tac&0x03] != 0 {
		return
	}

	t.tima++
	if t.tima == 0 {
		t.tima = t.tma
		irq.Request(addr.TimerInterrupt)
	}
}

func (t *Timer) Read(address uint16) uint8 {
	switch address {
	case addr.DIV:
		return uint8(t.counter >> 6)
	case addr.TIMA:
		return t.tima
	case addr.TMA:
		return t.tma
	case addr.TAC:
		return t.tac | 0xF8
	}
	return 0xFF
}

func (t *Timer) Write(address uint16, value uint8) {
	switch address {
	case addr.DIV:
		t.counter = 0
	case addr.TIMA:
		t.tima = value
	case addr.TMA:
		t.tma = value
	case addr.TAC:
		t.tac = value & 0x07
	}
}

package memory

import (
	"math/bits"

	"github.com/valerio/go-dotmatrix/dotmatrix/addr"
)

// interruptMask covers the five interrupt sources in IE/IF.
const interruptMask uint8 = 0x1F

// InterruptController holds the IE and IF masks. Lower bits win.
type InterruptController struct {
	enabled uint8
	pending uint8
}

// Request sets the pending bit of an interrupt source.
func (ic *InterruptController) Request(i addr.Interrupt) {
	ic.pending |= uint8(i)
}

// Clear resets the pending bit of an interrupt source.
func (ic *InterruptController) Clear(i addr.Interrupt) {
	ic.pending &^= uint8(i)
}

// Ack clears the highest priority pending and enabled interrupt and returns
// its service address.
func (ic *InterruptController) Ack() (uint16, bool) {
	active := ic.enabled & ic.pending & interruptMask
	if active == 0 {
		return 0, false
	}
	source := addr.Interrupt(1 << bits.TrailingZeros8(active))
	ic.Clear(source)
	return source.Vector(), true
}

// Pending reports whether any enabled interrupt is waiting.
func (ic *InterruptController) Pending() bool {
	return ic.enabled&ic.pending&interruptMask != 0
}

func (ic *InterruptController) Enabled() uint8 { return ic.enabled }
func (ic *InterruptController) Flags() uint8   { return ic.pending }

func (ic *InterruptController) SetEnabled(value uint8) { ic.enabled = value }

// SetFlags replaces the pending mask, only the five source bits are kept.
func (ic *InterruptController) SetFlags(value uint8) { ic.pending = value & interruptMask }

package memory

import "log/slog"

// oamSize is the number of bytes copied by one DMA transfer.
const oamSize = 160

// DMA copies 160 bytes from page<<8 into sprite attribute memory, one byte
// per bus access.
type DMA struct {
	source uint8
	offset uint16
	active bool
}

// Initialize starts a transfer from page, unless one is already running.
func (d *DMA) Initialize(page uint8) {
	if d.active {
		return
	}
	d.source = page
	d.offset = 0
	d.active = true
	slog.Debug("DMA transfer started", "source", uint16(page)<<8)
}

// Emulate returns the next source address of a running transfer and advances
// it. The transfer goes inactive once all 160 addresses have been handed out.
func (d *DMA) Emulate() (uint16, bool) {
	if !d.active {
		return 0, false
	}
	address := uint16(d.source)<<8 + d.offset
	d.offset++
	if d.offset == oamSize {
		d.active = false
	}
	return address, true
}

// Active reports whether a transfer is running.
func (d *DMA) Active() bool { return d.active }

// Source returns the page of the last transfer, as read back from the DMA register.
func (d *DMA) Source() uint8 { return d.source }

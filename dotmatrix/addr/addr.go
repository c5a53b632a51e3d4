// Package addr names the memory map of the DMG: region boundaries, I/O
// registers and interrupt sources.
package addr

// memory regions
const (
	BootROMEnd uint16 = 0x00FF

	ROMBank0Start uint16 = 0x0000
	ROMBank0End   uint16 = 0x3FFF
	ROMBank1Start uint16 = 0x4000
	ROMBank1End   uint16 = 0x7FFF

	VRAMStart uint16 = 0x8000
	VRAMEnd   uint16 = 0x9FFF

	CartRAMStart uint16 = 0xA000
	CartRAMEnd   uint16 = 0xBFFF

	WRAMStart uint16 = 0xC000
	WRAMEnd   uint16 = 0xDFFF

	// EchoStart mirrors work RAM up to EchoEnd.
	EchoStart uint16 = 0xE000
	EchoEnd   uint16 = 0xFDFF

	// OAMStart is the start of sprite attribute memory, 40 entries of 4 bytes.
	OAMStart uint16 = 0xFE00
	OAMEnd   uint16 = 0xFE9F

	UnusableStart uint16 = 0xFEA0
	UnusableEnd   uint16 = 0xFEFF

	IOStart uint16 = 0xFF00
	IOEnd   uint16 = 0xFF7F

	HRAMStart uint16 = 0xFF80
	HRAMEnd   uint16 = 0xFFFE
)

// tile data and tile maps
const (
	// TileData0 is the base of unsigned tile addressing (tiles 0-255).
	TileData0 uint16 = 0x8000
	// TileData2 is the base of signed tile addressing, tile index 0 lives here.
	TileData2 uint16 = 0x9000

	TileMap0 uint16 = 0x9800
	TileMap1 uint16 = 0x9C00
)

// joypad
const (
	// P1 selects a button group with bits 4-5 and reads it back in bits 0-3.
	P1 uint16 = 0xFF00
)

// serial I/O
const (
	// SB holds the byte being shifted out, replaced by the received byte once
	// the transfer is done (0xFF with nothing attached).
	SB uint16 = 0xFF01
	// SC is the serial control register.
	//  - Bit 7 (Start): writing 1 starts a transfer, cleared by hardware when done.
	//  - Bit 0 (Clock): 1 for internal clock, 0 for an external peer clock.
	SC uint16 = 0xFF02
)

// timers
const (
	// DIV is the upper byte of the free running divider. Writing resets it.
	DIV uint16 = 0xFF04
	// TIMA is the timer counter, raises an interrupt when it overflows.
	TIMA uint16 = 0xFF05
	// TMA is loaded into TIMA on overflow.
	TMA uint16 = 0xFF06
	// TAC holds the timer enable bit and clock select.
	TAC uint16 = 0xFF07
)

// interrupts
const (
	IF uint16 = 0xFF0F
	IE uint16 = 0xFFFF
)

// sound registers, stubbed
const (
	AudioStart uint16 = 0xFF10
	AudioEnd   uint16 = 0xFF3F
)

// video registers
const (
	// LCD Control register.
	LCDC uint16 = 0xFF40
	// LCD Status register.
	STAT uint16 = 0xFF41
	SCY  uint16 = 0xFF42
	SCX  uint16 = 0xFF43
	// LY is the scanline currently being processed.
	LY  uint16 = 0xFF44
	LYC uint16 = 0xFF45
	// DMA starts a sprite attribute transfer from page value<<8.
	DMA  uint16 = 0xFF46
	BGP  uint16 = 0xFF47
	OBP0 uint16 = 0xFF48
	OBP1 uint16 = 0xFF49
	WY   uint16 = 0xFF4A
	WX   uint16 = 0xFF4B
)

// BootOff unmaps the boot ROM overlay on any write.
const BootOff uint16 = 0xFF50

// Interrupt is one of the five interrupt sources, expressed as its bit in IE/IF.
// Lower bits have higher priority.
type Interrupt uint8

const (
	// VBlankInterrupt fires when the PPU enters v-blank.
	VBlankInterrupt Interrupt = 1 << iota
	// LCDSTATInterrupt fires on the STAT conditions enabled by the program.
	LCDSTATInterrupt
	// TimerInterrupt fires when TIMA overflows.
	TimerInterrupt
	// SerialInterrupt fires when a serial transfer completes.
	SerialInterrupt
	// JoypadInterrupt fires when a button goes from released to pressed.
	JoypadInterrupt
)

// Vector returns the service routine address for the interrupt.
func (i Interrupt) Vector() uint16 {
	switch i {
	case VBlankInterrupt:
		return 0x40
	case LCDSTATInterrupt:
		return 0x48
	case TimerInterrupt:
		return 0x50
	case SerialInterrupt:
		return 0x58
	case JoypadInterrupt:
		return 0x60
	}
	return 0
}

func (i Interrupt) String() string {
	switch i {
	case VBlankInterrupt:
		return "vblank"
	case LCDSTATInterrupt:
		return "lcdstat"
	case TimerInterrupt:
		return "timer"
	case SerialInterrupt:
		return "serial"
	case JoypadInterrupt:
		return "joypad"
	}
	return "unknown"
}

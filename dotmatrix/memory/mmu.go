package memory

import (
	"log/slog"

	"github.com/valerio/go-dotmatrix/dotmatrix/addr"
	"github.com/valerio/go-dotmatrix/dotmatrix/audio"
	"github.com/valerio/go-dotmatrix/dotmatrix/bit"
	"github.com/valerio/go-dotmatrix/dotmatrix/serial"
	"github.com/valerio/go-dotmatrix/dotmatrix/video"
)

// SerialPort is a device connected to SB/SC. The MMU only ever forwards
// those two addresses and ticks it once per bus access.
type SerialPort interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Tick(ticks int)
}

const (
	wramSize = 0x2000
	hramSize = 0x7F
)

// MMU owns every peripheral and routes byte accesses between them. Each
// Read or Write advances DMA, PPU, timer and serial by exactly one step
// before the access is dispatched.
type MMU struct {
	cart *Cartridge
	boot []uint8 // nil once unmapped

	wram [wramSize]uint8
	hram [hramSize]uint8

	interrupts InterruptController
	timer      Timer
	dma        DMA
	joypad     *Joypad
	ppu        *video.PPU
	serial     SerialPort
	audio      *audio.Stub

	ticks uint64
}

// New wires a bus around cart with the PPU drawing into display. Serial
// output goes to a LogSink until ConnectSerial replaces it.
func New(cart *Cartridge, display video.Display) *MMU {
	m := &MMU{
		cart:   cart,
		joypad: NewJoypad(),
		ppu:    video.NewPPU(display),
		audio:  audio.NewStub(),
	}
	m.serial = serial.NewLogSink(func() { m.interrupts.Request(addr.SerialInterrupt) })
	return m
}

// LoadBootROM overlays rom on 0x0000-0x00FF until 0xFF50 is written.
func (m *MMU) LoadBootROM(rom []uint8) {
	m.boot = make([]uint8, len(rom))
	copy(m.boot, rom)
}

// BootROMActive reports whether the boot ROM is still mapped.
func (m *MMU) BootROMActive() bool { return m.boot != nil }

// ConnectSerial replaces the device plugged into the link port.
func (m *MMU) ConnectSerial(port SerialPort) { m.serial = port }

// Serial returns the device plugged into the link port.
func (m *MMU) Serial() SerialPort { return m.serial }

// SerialCompleted raises the serial interrupt, for external SerialPort
// implementations to call when a transfer finishes.
func (m *MMU) SerialCompleted() { m.interrupts.Request(addr.SerialInterrupt) }

// ApplyPostBootState sets the I/O registers the boot ROM leaves behind, for
// starting straight at the cartridge entry point. No time passes.
func (m *MMU) ApplyPostBootState() {
	m.boot = nil
	m.ppu.WriteRegister(addr.LCDC, 0x91)
	m.ppu.WriteRegister(addr.BGP, 0xFC)
	m.ppu.WriteRegister(addr.OBP0, 0xFF)
	m.ppu.WriteRegister(addr.OBP1, 0xFF)
	m.interrupts.SetFlags(0x01)
}

func (m *MMU) Read(address uint16) uint8 {
	m.advancePeripherals()
	return m.read(address)
}

func (m *MMU) Write(address uint16, value uint8) {
	m.advancePeripherals()
	m.write(address, value)
}

// ReadWord reads a little endian word, two bus accesses.
func (m *MMU) ReadWord(address uint16) uint16 {
	low := m.Read(address)
	high := m.Read(address + 1)
	return bit.Combine(high, low)
}

// WriteWord writes a little endian word, two bus accesses.
func (m *MMU) WriteWord(address uint16, value uint16) {
	m.Write(address, bit.Low(value))
	m.Write(address+1, bit.High(value))
}

// Peek reads without advancing time, for debuggers and snapshots.
func (m *MMU) Peek(address uint16) uint8 {
	return m.read(address)
}

// AckInterrupt clears the highest priority pending interrupt and returns its
// vector.
func (m *MMU) AckInterrupt() (uint16, bool) {
	return m.interrupts.Ack()
}

// PendingInterrupt reports whether an enabled interrupt is waiting,
// regardless of IME.
func (m *MMU) PendingInterrupt() bool {
	return m.interrupts.Pending()
}

func (m *MMU) RequestInterrupt(i addr.Interrupt) {
	m.interrupts.Request(i)
}

// ButtonDown presses key, raising the joypad interrupt on a press edge.
func (m *MMU) ButtonDown(key JoypadKey) {
	if m.joypad.Press(key) {
		m.interrupts.Request(addr.JoypadInterrupt)
	}
}

func (m *MMU) ButtonUp(key JoypadKey) {
	m.joypad.Release(key)
}

// Ticks returns the number of bus accesses so far.
func (m *MMU) Ticks() uint64 { return m.ticks }

func (m *MMU) PPU() *video.PPU { return m.ppu }

func (m *MMU) Cartridge() *Cartridge { return m.cart }

// advancePeripherals is the single place time moves forward: one step for
// every byte access.
func (m *MMU) advancePeripherals() {
	m.ticks++

	if source, ok := m.dma.Emulate(); ok {
		m.ppu.WriteOAM(uint8(source), m.read(source))
	}
	m.ppu.Emulate(&m.interrupts)
	m.timer.Emulate(&m.interrupts)
	m.serial.Tick(1)
}

func (m *MMU) read(address uint16) uint8 {
	switch {
	case m.boot != nil && int(address) < len(m.boot):
		return m.boot[address]
	case address <= addr.ROMBank0End:
		return m.cart.ReadROMBank0(address)
	case address <= addr.ROMBank1End:
		return m.cart.ReadROMBank1(address)
	case address <= addr.VRAMEnd:
		return m.ppu.ReadVRAM(address)
	case address <= addr.CartRAMEnd:
		return m.cart.ReadRAM(address)
	case address <= addr.WRAMEnd:
		return m.wram[address-addr.WRAMStart]
	case address <= addr.EchoEnd:
		return m.wram[address-addr.EchoStart]
	case address <= addr.OAMEnd:
		if m.dma.Active() {
			return 0xFF
		}
		return m.ppu.ReadOAM(uint8(address - addr.OAMStart))
	case address <= addr.UnusableEnd:
		return 0xFF
	case address <= addr.IOEnd:
		return m.readIO(address)
	case address <= addr.HRAMEnd:
		return m.hram[address-addr.HRAMStart]
	}
	return m.interrupts.Enabled()
}

func (m *MMU) write(address uint16, value uint8) {
	switch {
	case address <= addr.ROMBank1End:
		m.cart.WriteRegister(address, value)
	case address <= addr.VRAMEnd:
		m.ppu.WriteVRAM(address, value)
	case address <= addr.CartRAMEnd:
		m.cart.WriteRAM(address, value)
	case address <= addr.WRAMEnd:
		m.wram[address-addr.WRAMStart] = value
	case address <= addr.EchoEnd:
		m.wram[address-addr.EchoStart] = value
	case address <= addr.OAMEnd:
		if !m.dma.Active() {
			m.ppu.WriteOAM(uint8(address-addr.OAMStart), value)
		}
	case address <= addr.UnusableEnd:
	case address <= addr.IOEnd:
		m.writeIO(address, value)
	case address <= addr.HRAMEnd:
		m.hram[address-addr.HRAMStart] = value
	default:
		m.interrupts.SetEnabled(value)
	}
}

func (m *MMU) readIO(address uint16) uint8 {
	switch {
	case address == addr.P1:
		return m.joypad.Read()
	case address == addr.SB, address == addr.SC:
		return m.serial.Read(address)
	case address >= addr.DIV && address <= addr.TAC:
		return m.timer.Read(address)
	case address == addr.IF:
		return m.interrupts.Flags() | 0xE0
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		// the stub reports the access, the program sees an open bus
		value, _ := m.audio.ReadRegister(address)
		return value
	case address == addr.DMA:
		return m.dma.Source()
	case address >= addr.LCDC && address <= addr.WX:
		return m.ppu.ReadRegister(address)
	}
	return 0xFF
}

func (m *MMU) writeIO(address uint16, value uint8) {
	switch {
	case address == addr.P1:
		m.joypad.Write(value)
	case address == addr.SB, address == addr.SC:
		m.serial.Write(address, value)
	case address >= addr.DIV && address <= addr.TAC:
		m.timer.Write(address, value)
	case address == addr.IF:
		m.interrupts.SetFlags(value)
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		_ = m.audio.WriteRegister(address, value)
	case address == addr.DMA:
		m.dma.Initialize(value)
	case address >= addr.LCDC && address <= addr.WX:
		m.ppu.WriteRegister(address, value)
	case address == addr.BootOff:
		if m.boot != nil {
			slog.Debug("boot ROM unmapped", "tick", m.ticks)
		}
		m.boot = nil
	}
}

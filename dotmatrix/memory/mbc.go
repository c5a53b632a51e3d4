package memory

import (
	"log/slog"
	"time"

	"github.com/valerio/go-dotmatrix/dotmatrix/addr"
)

// MBC is the banking contract between the bus and a cartridge controller.
// Bank 0 is always read straight from ROM by the cartridge itself.
type MBC interface {
	// ReadROMBank1 reads 0x4000-0x7FFF through the selected ROM bank.
	ReadROMBank1(address uint16) uint8
	// ReadRAM reads 0xA000-0xBFFF, 0xFF while RAM is disabled.
	ReadRAM(address uint16) uint8
	// WriteRegister handles writes to 0x0000-0x7FFF.
	WriteRegister(address uint16, value uint8)
	// WriteRAM handles writes to 0xA000-0xBFFF, dropped while RAM is disabled.
	WriteRAM(address uint16, value uint8)
}

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
)

// readROMBank reads address (0x4000-0x7FFF) in bank, wrapping around the ROM size.
func readROMBank(rom []uint8, bank int, address uint16) uint8 {
	if len(rom) == 0 {
		return 0xFF
	}
	offset := bank*romBankSize + int(address-addr.ROMBank1Start)
	return rom[offset%len(rom)]
}

// bankedRAM is external cartridge RAM gated by the enable register.
type bankedRAM struct {
	data    []uint8
	enabled bool
}

func newBankedRAM(banks int) bankedRAM {
	return bankedRAM{data: make([]uint8, banks*ramBankSize)}
}

func (r *bankedRAM) index(bank int, address uint16) int {
	return (bank*ramBankSize + int(address-addr.CartRAMStart)) % len(r.data)
}

func (r *bankedRAM) read(bank int, address uint16) uint8 {
	if !r.enabled || len(r.data) == 0 {
		return 0xFF
	}
	return r.data[r.index(bank, address)]
}

func (r *bankedRAM) write(bank int, address uint16, value uint8) {
	if !r.enabled || len(r.data) == 0 {
		return
	}
	r.data[r.index(bank, address)] = value
}

// enableValue is the magic low nibble that turns cartridge RAM on.
func enableValue(value uint8) bool {
	return value&0x0F == 0x0A
}

// NoMBC maps a 32KiB ROM directly. Cartridge types 0x08/0x09 add a single
// always-enabled RAM bank.
type NoMBC struct {
	rom []uint8
	ram bankedRAM
}

func NewNoMBC(rom []uint8, ramBanks int) *NoMBC {
	m := &NoMBC{rom: rom, ram: newBankedRAM(ramBanks)}
	m.ram.enabled = ramBanks > 0
	return m
}

func (m *NoMBC) ReadROMBank1(address uint16) uint8 {
	if int(address) >= len(m.rom) {
		return 0xFF
	}
	return m.rom[address]
}

func (m *NoMBC) ReadRAM(address uint16) uint8 { return m.ram.read(0, address) }

func (m *NoMBC) WriteRegister(address uint16, value uint8) {
	slog.Debug("write to ROM without a bank controller", "addr", address, "value", value)
}

func (m *NoMBC) WriteRAM(address uint16, value uint8) { m.ram.write(0, address, value) }

// MBC1 is the most common controller:
//   - up to 2MB ROM, 5 low bank bits at 0x2000 plus 2 upper bits at 0x4000
//   - up to 32KB RAM in 4 banks, enabled by writing 0x0A to 0x0000-0x1FFF
//   - 0x6000-0x7FFF selects whether 0x4000-0x5FFF drives the upper ROM bits
//     or the RAM bank
type MBC1 struct {
	rom       []uint8
	ram       bankedRAM
	romLower  uint8
	romUpper  uint8
	ramBank   uint8
	ramBanked bool // banking mode 1
}

func NewMBC1(rom []uint8, ramBanks int) *MBC1 {
	return &MBC1{
		rom:      rom,
		ram:      newBankedRAM(ramBanks),
		romLower: 1,
	}
}

func (m *MBC1) romBank() int {
	return int(m.romUpper&0x03)<<5 | int(m.romLower&0x1F)
}

func (m *MBC1) ReadROMBank1(address uint16) uint8 {
	return readROMBank(m.rom, m.romBank(), address)
}

func (m *MBC1) ReadRAM(address uint16) uint8 {
	return m.ram.read(int(m.ramBank&0x03), address)
}

func (m *MBC1) WriteRegister(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram.enabled = enableValue(value)
	case address < 0x4000:
		// bank 0 can't be selected in the low bits, 0x20/0x40/0x60 end up one higher
		m.romLower = value & 0x1F
		if m.romLower == 0 {
			m.romLower = 1
		}
		slog.Debug("MBC1 ROM bank", "bank", m.romBank())
	case address < 0x6000:
		if m.ramBanked {
			m.ramBank = value & 0x03
		} else {
			m.romUpper = value & 0x03
		}
	default:
		m.ramBanked = value&0x01 == 1
	}
}

func (m *MBC1) WriteRAM(address uint16, value uint8) {
	m.ram.write(int(m.ramBank&0x03), address, value)
}

// MBC2 carries its own 512x4 bit RAM:
//   - up to 256KB ROM, 4 bank bits
//   - bit 8 of the register address picks RAM enable (0) or ROM bank (1)
//   - RAM is mirrored across 0xA000-0xBFFF, upper nibble reads as 1s
type MBC2 struct {
	rom        []uint8
	ram        [512]uint8
	romBank    uint8
	ramEnabled bool
}

func NewMBC2(rom []uint8) *MBC2 {
	return &MBC2{rom: rom, romBank: 1}
}

func (m *MBC2) ReadROMBank1(address uint16) uint8 {
	return readROMBank(m.rom, int(m.romBank), address)
}

func (m *MBC2) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	return m.ram[address&0x01FF] | 0xF0
}

func (m *MBC2) WriteRegister(address uint16, value uint8) {
	if address >= 0x4000 {
		return
	}
	if address&0x0100 == 0 {
		m.ramEnabled = enableValue(value)
		return
	}
	m.romBank = value & 0x0F
	if m.romBank == 0 {
		m.romBank = 1
	}
}

func (m *MBC2) WriteRAM(address uint16, value uint8) {
	if !m.ramEnabled {
		return
	}
	m.ram[address&0x01FF] = value & 0x0F
}

// Clock is the time source of the MBC3 real time clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// rtc register indices, selected by writing 0x08-0x0C as RAM bank
const (
	rtcSeconds = iota
	rtcMinutes
	rtcHours
	rtcDaysLow
	rtcDaysHigh
)

const (
	rtcHaltBit  uint8 = 1 << 6
	rtcCarryBit uint8 = 1 << 7
)

// realTimeClock counts seconds since base. Registers are only visible once
// latched.
type realTimeClock struct {
	clock   Clock
	base    time.Time
	frozen  time.Duration // elapsed time while halted
	halted  bool
	latched [5]uint8
}

func (r *realTimeClock) elapsed() time.Duration {
	if r.halted {
		return r.frozen
	}
	return r.clock.Now().Sub(r.base)
}

func (r *realTimeClock) latch() {
	seconds := int64(r.elapsed() / time.Second)
	days := seconds / 86400

	r.latched[rtcSeconds] = uint8(seconds % 60)
	r.latched[rtcMinutes] = uint8(seconds / 60 % 60)
	r.latched[rtcHours] = uint8(seconds / 3600 % 24)
	r.latched[rtcDaysLow] = uint8(days)

	high := uint8(days>>8) & 0x01
	if r.halted {
		high |= rtcHaltBit
	}
	if days > 0x1FF {
		high |= rtcCarryBit
	}
	r.latched[rtcDaysHigh] = high
}

// set writes one register and rebases the counter so the new value sticks.
func (r *realTimeClock) set(register int, value uint8) {
	r.latched[register] = value

	days := int64(r.latched[rtcDaysHigh]&0x01)<<8 | int64(r.latched[rtcDaysLow])
	total := time.Duration(int64(r.latched[rtcSeconds])+
		int64(r.latched[rtcMinutes])*60+
		int64(r.latched[rtcHours])*3600+
		days*86400) * time.Second

	r.halted = r.latched[rtcDaysHigh]&rtcHaltBit != 0
	r.frozen = total
	r.base = r.clock.Now().Add(-total)
}

// MBC3 adds a real time clock:
//   - up to 2MB ROM, 7 bank bits, bank 0 maps to 1
//   - up to 32KB RAM in 4 banks; 0x08-0x0C in the RAM bank register map an
//     RTC register instead
//   - writing 0x00 then 0x01 to 0x6000-0x7FFF latches the clock
type MBC3 struct {
	rom        []uint8
	ram        bankedRAM
	romBank    uint8
	ramBank    uint8
	hasRTC     bool
	rtc        realTimeClock
	latchArmed bool
}

// NewMBC3 creates an MBC3, clock may be nil to use the system time.
func NewMBC3(rom []uint8, ramBanks int, hasRTC bool, clock Clock) *MBC3 {
	if clock == nil {
		clock = systemClock{}
	}
	return &MBC3{
		rom:     rom,
		ram:     newBankedRAM(ramBanks),
		romBank: 1,
		hasRTC:  hasRTC,
		rtc:     realTimeClock{clock: clock, base: clock.Now()},
	}
}

func (m *MBC3) ReadROMBank1(address uint16) uint8 {
	return readROMBank(m.rom, int(m.romBank), address)
}

func (m *MBC3) rtcSelected() bool {
	return m.hasRTC && m.ramBank >= 0x08 && m.ramBank <= 0x0C
}

func (m *MBC3) ReadRAM(address uint16) uint8 {
	if m.rtcSelected() {
		if !m.ram.enabled {
			return 0xFF
		}
		return m.rtc.latched[m.ramBank-0x08]
	}
	if m.ramBank > 0x03 {
		return 0xFF
	}
	return m.ram.read(int(m.ramBank), address)
}

func (m *MBC3) WriteRegister(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram.enabled = enableValue(value)
	case address < 0x4000:
		m.romBank = value & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		m.ramBank = value
	default:
		if m.latchArmed && value == 0x01 && m.hasRTC {
			m.rtc.latch()
		}
		m.latchArmed = value == 0x00
	}
}

func (m *MBC3) WriteRAM(address uint16, value uint8) {
	if m.rtcSelected() {
		if m.ram.enabled {
			m.rtc.set(int(m.ramBank-0x08), value)
		}
		return
	}
	if m.ramBank > 0x03 {
		return
	}
	m.ram.write(int(m.ramBank), address, value)
}

// MBC5 has plain 9 bit ROM banking and 4 bit RAM banking, no quirks. Bank 0
// can be mapped at 0x4000.
type MBC5 struct {
	rom     []uint8
	ram     bankedRAM
	romBank uint16
	ramBank uint8
}

func NewMBC5(rom []uint8, ramBanks int) *MBC5 {
	return &MBC5{rom: rom, ram: newBankedRAM(ramBanks), romBank: 1}
}

func (m *MBC5) ReadROMBank1(address uint16) uint8 {
	return readROMBank(m.rom, int(m.romBank), address)
}

func (m *MBC5) ReadRAM(address uint16) uint8 {
	return m.ram.read(int(m.ramBank), address)
}

func (m *MBC5) WriteRegister(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram.enabled = enableValue(value)
	case address < 0x3000:
		m.romBank = m.romBank&0x100 | uint16(value)
	case address < 0x4000:
		m.romBank = m.romBank&0xFF | uint16(value&0x01)<<8
	case address < 0x6000:
		m.ramBank = value & 0x0F
	}
}

func (m *MBC5) WriteRAM(address uint16, value uint8) {
	m.ram.write(int(m.ramBank), address, value)
}

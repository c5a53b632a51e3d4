package memory

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

var (
	// ErrInvalidROM is returned for images too short to hold a cartridge header.
	ErrInvalidROM = errors.New("invalid ROM image")
	// ErrUnsupportedCartridge is returned for header types with no bank controller implementation.
	ErrUnsupportedCartridge = errors.New("unsupported cartridge type")
)

// header offsets
const (
	titleAddress         = 0x134
	titleLength          = 16
	cartridgeTypeAddress = 0x147
	romSizeAddress       = 0x148
	ramSizeAddress       = 0x149
	headerEnd            = 0x150
)

// Header is the metadata parsed from 0x0134-0x014F.
type Header struct {
	Title    string
	Type     uint8
	ROMBanks int
	RAMBanks int
}

// Cartridge is a loaded program image plus the bank controller its header asks for.
type Cartridge struct {
	Header
	rom []uint8
	mbc MBC
}

// NewCartridge parses the header of rom and picks the bank controller.
func NewCartridge(rom []uint8) (*Cartridge, error) {
	if len(rom) < headerEnd {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidROM, len(rom), headerEnd)
	}

	data := make([]uint8, len(rom))
	copy(data, rom)

	c := &Cartridge{
		Header: Header{
			Title:    cleanTitle(data[titleAddress : titleAddress+titleLength]),
			Type:     data[cartridgeTypeAddress],
			ROMBanks: romBanks(data[romSizeAddress]),
			RAMBanks: ramBanks(data[ramSizeAddress]),
		},
		rom: data,
	}

	mbc, err := newMBC(c.Type, data, c.RAMBanks)
	if err != nil {
		return nil, err
	}
	c.mbc = mbc

	slog.Info("cartridge loaded",
		"title", c.Title,
		"type", fmt.Sprintf("0x%02X", c.Type),
		"rom_banks", c.ROMBanks,
		"ram_banks", c.RAMBanks)
	return c, nil
}

func newMBC(cartType uint8, rom []uint8, ramBanks int) (MBC, error) {
	switch cartType {
	case 0x00:
		return NewNoMBC(rom, 0), nil
	case 0x08, 0x09:
		return NewNoMBC(rom, max(ramBanks, 1)), nil
	case 0x01, 0x02, 0x03:
		return NewMBC1(rom, ramBanks), nil
	case 0x05, 0x06:
		return NewMBC2(rom), nil
	case 0x0F, 0x10:
		return NewMBC3(rom, ramBanks, true, nil), nil
	case 0x11, 0x12, 0x13:
		return NewMBC3(rom, ramBanks, false, nil), nil
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return NewMBC5(rom, ramBanks), nil
	}
	return nil, fmt.Errorf("%w: 0x%02X", ErrUnsupportedCartridge, cartType)
}

// romBanks decodes 0x148, 32KiB shifted left by the value.
func romBanks(code uint8) int {
	if code > 8 {
		return 2
	}
	return 2 << code
}

// ramBanks decodes 0x149 into a count of 8KiB banks.
func ramBanks(code uint8) int {
	switch code {
	case 0x01, 0x02:
		return 1
	case 0x03:
		return 4
	case 0x04:
		return 16
	case 0x05:
		return 8
	}
	return 0
}

// ReadROMBank0 reads the fixed bank at 0x0000-0x3FFF.
func (c *Cartridge) ReadROMBank0(address uint16) uint8 {
	if int(address) >= len(c.rom) {
		return 0xFF
	}
	return c.rom[address]
}

func (c *Cartridge) ReadROMBank1(address uint16) uint8 { return c.mbc.ReadROMBank1(address) }

func (c *Cartridge) ReadRAM(address uint16) uint8 { return c.mbc.ReadRAM(address) }

func (c *Cartridge) WriteRegister(address uint16, value uint8) { c.mbc.WriteRegister(address, value) }

func (c *Cartridge) WriteRAM(address uint16, value uint8) { c.mbc.WriteRAM(address, value) }

// cleanTitle turns the raw header title into something printable: NUL padding
// is dropped, unprintable bytes become '?'.
func cleanTitle(raw []uint8) string {
	var sb strings.Builder
	for _, b := range raw {
		r := rune(b)
		switch {
		case r == 0:
			sb.WriteRune(' ')
		case r > unicode.MaxASCII || !unicode.IsPrint(r):
			sb.WriteRune('?')
		default:
			sb.WriteRune(r)
		}
	}

	title := strings.TrimSpace(sb.String())
	if title == "" {
		return "(untitled)"
	}
	return title
}

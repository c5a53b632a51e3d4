package video

import (
	"github.com/valerio/go-dotmatrix/dotmatrix/addr"
	"github.com/valerio/go-dotmatrix/dotmatrix/bit"
)

// Mode is the PPU state, encoded as it appears in the low two bits of STAT.
type Mode uint8

const (
	HBlank Mode = iota
	VBlank
	OAMScan
	PixelTransfer
)

func (m Mode) String() string {
	return [...]string{"hblank", "vblank", "oam", "transfer"}[m&3]
}

// Cycle budgets per mode, counted in bus accesses.
const (
	oamCycles      = 20
	transferCycles = 43
	hblankCycles   = 51
	vblankCycles   = oamCycles + transferCycles + hblankCycles

	visibleLines = FramebufferHeight
	totalLines   = 154

	// FrameCycles is the number of bus accesses making up one full frame.
	FrameCycles = vblankCycles * totalLines
)

// LCDC bits.
const (
	lcdcBGEnable     = 0
	lcdcSpriteEnable = 1
	lcdcSpriteSize   = 2
	lcdcBGMap        = 3
	lcdcTileData     = 4
	lcdcWindowEnable = 5
	lcdcWindowMap    = 6
	lcdcDisplay      = 7
)

// STAT bits.
const (
	statCoincidence = 2
	statHBlank      = 3
	statVBlank      = 4
	statOAM         = 5
	statLYC         = 6
)

const (
	vramSize = 0x2000
	oamSize  = spriteCount * 4
)

// Interrupter is the part of the interrupt controller the PPU raises
// requests on.
type Interrupter interface {
	Request(addr.Interrupt)
}

// PPU owns video memory and the LCD registers and renders one scanline at a
// time into a Display.
type PPU struct {
	vram [vramSize]uint8
	oam  [oamSize]uint8

	lcdc, stat uint8
	scy, scx   uint8
	ly, lyc    uint8
	bgp        uint8
	obp0, obp1 uint8
	wy, wx     uint8

	mode       Mode
	cycles     int
	windowLine int

	bgIndex     [FramebufferWidth]uint8
	lineSprites []Sprite

	display Display
}

func NewPPU(display Display) *PPU {
	return &PPU{
		display:     display,
		mode:        HBlank,
		lineSprites: make([]Sprite, 0, maxSpritesPerLine),
	}
}

// Emulate advances the state machine by one bus access.
func (p *PPU) Emulate(irq Interrupter) {
	if !bit.IsSet(lcdcDisplay, p.lcdc) {
		return
	}

	p.cycles--
	if p.cycles > 0 {
		return
	}

	switch p.mode {
	case OAMScan:
		p.enter(PixelTransfer, irq)
	case PixelTransfer:
		p.renderScanline()
		p.enter(HBlank, irq)
	case HBlank:
		p.setLine(p.ly+1, irq)
		if p.ly < visibleLines {
			p.enter(OAMScan, irq)
			return
		}
		p.display.VSync()
		p.enter(VBlank, irq)
	case VBlank:
		next := int(p.ly) + 1
		if next < totalLines {
			p.setLine(uint8(next), irq)
			p.cycles = vblankCycles
			return
		}
		p.windowLine = 0
		p.setLine(0, irq)
		p.enter(OAMScan, irq)
	}
}

func (p *PPU) enter(mode Mode, irq Interrupter) {
	p.mode = mode

	var enable uint8
	switch mode {
	case OAMScan:
		p.cycles, enable = oamCycles, statOAM
	case PixelTransfer:
		p.cycles = transferCycles
		return
	case HBlank:
		p.cycles, enable = hblankCycles, statHBlank
	case VBlank:
		p.cycles, enable = vblankCycles, statVBlank
		irq.Request(addr.VBlankInterrupt)
	}

	if bit.IsSet(enable, p.stat) {
		irq.Request(addr.LCDSTATInterrupt)
	}
}

func (p *PPU) setLine(line uint8, irq Interrupter) {
	p.ly = line
	match := p.ly == p.lyc
	p.stat = bit.SetTo(statCoincidence, p.stat, match)
	if match && bit.IsSet(statLYC, p.stat) {
		irq.Request(addr.LCDSTATInterrupt)
	}
}

// Mode returns the current PPU state.
func (p *PPU) Mode() Mode { return p.mode }

// Line returns the scanline being processed (LY).
func (p *PPU) Line() uint8 { return p.ly }

// ReadRegister returns the value of an LCD register in 0xFF40-0xFF4B, DMA
// excluded.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case addr.LCDC:
		return p.lcdc
	case addr.STAT:
		mode := uint8(p.mode)
		if !bit.IsSet(lcdcDisplay, p.lcdc) {
			mode = 0
		}
		return 0x80 | p.stat&0x7C | mode
	case addr.SCY:
		return p.scy
	case addr.SCX:
		return p.scx
	case addr.LY:
		return p.ly
	case addr.LYC:
		return p.lyc
	case addr.BGP:
		return p.bgp
	case addr.OBP0:
		return p.obp0
	case addr.OBP1:
		return p.obp1
	case addr.WY:
		return p.wy
	case addr.WX:
		return p.wx
	}
	return 0xFF
}

// WriteRegister updates an LCD register. Toggling LCDC bit 7 powers the
// display on or off, writing LY resets the scanline counter.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address {
	case addr.LCDC:
		wasOn := bit.IsSet(lcdcDisplay, p.lcdc)
		p.lcdc = value
		on := bit.IsSet(lcdcDisplay, value)
		switch {
		case on && !wasOn:
			p.ly = 0
			p.mode = OAMScan
			p.cycles = oamCycles
			p.windowLine = 0
		case !on && wasOn:
			p.ly = 0
			p.mode = HBlank
		}
	case addr.STAT:
		p.stat = p.stat&0x07 | value&0x78
	case addr.SCY:
		p.scy = value
	case addr.SCX:
		p.scx = value
	case addr.LY:
		p.ly = 0
	case addr.LYC:
		p.lyc = value
	case addr.BGP:
		p.bgp = value
	case addr.OBP0:
		p.obp0 = value
	case addr.OBP1:
		p.obp1 = value
	case addr.WY:
		p.wy = value
	case addr.WX:
		p.wx = value
	}
}

// ReadVRAM reads video memory, address in 0x8000-0x9FFF.
func (p *PPU) ReadVRAM(address uint16) uint8 {
	return p.vram[address-addr.VRAMStart]
}

func (p *PPU) WriteVRAM(address uint16, value uint8) {
	p.vram[address-addr.VRAMStart] = value
}

// ReadOAM reads sprite attribute memory by offset 0-159.
func (p *PPU) ReadOAM(index uint8) uint8 {
	if int(index) >= oamSize {
		return 0xFF
	}
	return p.oam[index]
}

func (p *PPU) WriteOAM(index, value uint8) {
	if int(index) < oamSize {
		p.oam[index] = value
	}
}

func (p *PPU) renderScanline() {
	line := int(p.ly)
	if line >= visibleLines {
		return
	}

	if bit.IsSet(lcdcBGEnable, p.lcdc) {
		p.renderBackground(line)
		if bit.IsSet(lcdcWindowEnable, p.lcdc) {
			p.renderWindow(line)
		}
	} else {
		for x := range p.bgIndex {
			p.bgIndex[x] = 0
			p.display.SetPixel(x, line, White)
		}
	}

	if bit.IsSet(lcdcSpriteEnable, p.lcdc) {
		p.renderSprites(line)
	}
}

func (p *PPU) mapBase(bitIndex uint8) uint16 {
	if bit.IsSet(bitIndex, p.lcdc) {
		return addr.TileMap1 - addr.VRAMStart
	}
	return addr.TileMap0 - addr.VRAMStart
}

func (p *PPU) renderBackground(line int) {
	base := p.mapBase(lcdcBGMap)
	y := (line + int(p.scy)) & 0xFF
	rowBase := base + uint16(y/8)*32

	for x := 0; x < FramebufferWidth; x++ {
		bx := (x + int(p.scx)) & 0xFF
		tile := p.vram[rowBase+uint16(bx/8)]
		index := p.tileRow(p.tileAddress(tile), y%8).Pixel(bx % 8)
		p.bgIndex[x] = index
		p.display.SetPixel(x, line, paletteColor(p.bgp, index))
	}
}

func (p *PPU) renderWindow(line int) {
	if line < int(p.wy) {
		return
	}
	left := int(p.wx) - 7
	if left >= FramebufferWidth {
		return
	}

	base := p.mapBase(lcdcWindowMap)
	y := p.windowLine
	rowBase := base + uint16(y/8)*32

	for x := max(left, 0); x < FramebufferWidth; x++ {
		wx := x - left
		tile := p.vram[rowBase+uint16(wx/8)]
		index := p.tileRow(p.tileAddress(tile), y%8).Pixel(wx % 8)
		p.bgIndex[x] = index
		p.display.SetPixel(x, line, paletteColor(p.bgp, index))
	}
	p.windowLine++
}

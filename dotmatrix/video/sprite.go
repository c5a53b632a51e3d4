package video

import (
	"slices"

	"github.com/valerio/go-dotmatrix/dotmatrix/bit"
)

const (
	spriteCount       = 40
	maxSpritesPerLine = 10
)

// Sprite is one decoded OAM entry, positions already in screen space.
type Sprite struct {
	Y, X     int
	Tile     uint8
	OAMIndex int

	BehindBG    bool // hidden behind background colors 1-3
	FlipY       bool
	FlipX       bool
	PaletteOBP1 bool
}

func parseSprite(entry []uint8, index int) Sprite {
	flags := entry[3]
	return Sprite{
		Y:           int(entry[0]) - 16,
		X:           int(entry[1]) - 8,
		Tile:        entry[2],
		OAMIndex:    index,
		BehindBG:    bit.IsSet(7, flags),
		FlipY:       bit.IsSet(6, flags),
		FlipX:       bit.IsSet(5, flags),
		PaletteOBP1: bit.IsSet(4, flags),
	}
}

// spritesForLine selects up to 10 sprites covering line, in OAM order, then
// sorts them by drawing priority: lower X first, ties broken by OAM index.
func (p *PPU) spritesForLine(line, height int) []Sprite {
	selected := p.lineSprites[:0]
	for i := 0; i < spriteCount && len(selected) < maxSpritesPerLine; i++ {
		s := parseSprite(p.oam[i*4:i*4+4], i)
		if s.Y <= line && line < s.Y+height {
			selected = append(selected, s)
		}
	}

	slices.SortStableFunc(selected, func(a, b Sprite) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.OAMIndex - b.OAMIndex
	})
	return selected
}

func (p *PPU) renderSprites(line int) {
	height := 8
	if bit.IsSet(lcdcSpriteSize, p.lcdc) {
		height = 16
	}

	var claimed [FramebufferWidth]bool
	for _, s := range p.spritesForLine(line, height) {
		row := line - s.Y
		if s.FlipY {
			row = height - 1 - row
		}
		tile := s.Tile
		if height == 16 {
			tile &^= 1
		}
		pixels := p.tileRow(uint16(tile)*bytesPerTile, row)

		palette := p.obp0
		if s.PaletteOBP1 {
			palette = p.obp1
		}

		for col := 0; col < 8; col++ {
			x := s.X + col
			if x < 0 || x >= FramebufferWidth || claimed[x] {
				continue
			}
			src := col
			if s.FlipX {
				src = 7 - col
			}
			index := pixels.Pixel(src)
			if index == 0 {
				continue
			}
			claimed[x] = true
			if s.BehindBG && p.bgIndex[x] != 0 {
				continue
			}
			p.display.SetPixel(x, line, paletteColor(palette, index))
		}
	}
}

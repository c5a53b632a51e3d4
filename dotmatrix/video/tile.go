package video

import "github.com/valerio/go-dotmatrix/dotmatrix/bit"

// bytesPerTile is the size of one 8x8 tile in VRAM.
const bytesPerTile = 16

// TileRow is one 8 pixel row of a tile, two bit planes of one byte each. Bit
// 7 holds the leftmost pixel.
//
//	Low  (0x3C): 0 0 1 1 1 1 0 0
//	High (0x7E): 0 1 1 1 1 1 1 0
//	            -----------------
//	Index:       0 2 3 3 3 3 2 0
//
// See https://gbdev.io/pandocs/Tile_Data.html
type TileRow struct {
	Low  uint8
	High uint8
}

// Pixel returns the 2 bit color index of column x, 0 being the leftmost.
func (r TileRow) Pixel(x int) uint8 {
	index := uint8(7 - x)
	return bit.Value(index, r.High)<<1 | bit.Value(index, r.Low)
}

// tileRow reads row y of the tile starting at address, an offset into VRAM.
func (p *PPU) tileRow(address uint16, y int) TileRow {
	offset := int(address) + y*2
	return TileRow{Low: p.vram[offset], High: p.vram[offset+1]}
}

// tileAddress resolves a background/window tile index to its VRAM offset.
// With LCDC bit 4 set tiles are unsigned from 0x8000, otherwise signed from
// 0x9000.
func (p *PPU) tileAddress(index uint8) uint16 {
	if bit.IsSet(lcdcTileData, p.lcdc) {
		return uint16(index) * bytesPerTile
	}
	return uint16(0x1000 + int(int8(index))*bytesPerTile)
}

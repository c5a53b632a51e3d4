// Package video implements the DMG picture processing unit: the scanline
// state machine, background, window and sprite rendering, and the pixel
// sink contract the rest of the emulator renders into.
package video

const (
	FramebufferWidth  = 160
	FramebufferHeight = 144
)

// Color is one of the four DMG shades.
type Color uint8

const (
	White Color = iota
	LightGray
	DarkGray
	Black
)

// Gray returns the 8 bit luminance used to present the shade.
func (c Color) Gray() uint8 {
	switch c {
	case White:
		return 0xFF
	case LightGray:
		return 0xAA
	case DarkGray:
		return 0x55
	}
	return 0x00
}

func (c Color) String() string {
	return [...]string{"white", "light", "dark", "black"}[c&3]
}

// Display receives the rendered picture. SetPixel is called for every pixel
// of a scanline once it is drawn, VSync once per frame when the PPU enters
// v-blank.
type Display interface {
	SetPixel(x, y int, c Color)
	VSync()
}

// paletteColor maps a 2 bit color index through a BGP/OBP palette register.
func paletteColor(palette, index uint8) Color {
	return Color(palette >> (index * 2) & 0x03)
}

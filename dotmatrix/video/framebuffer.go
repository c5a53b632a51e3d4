package video

// FrameBuffer is a double buffered Display: scanlines are drawn into the back
// buffer and become visible in one go on VSync.
type FrameBuffer struct {
	back   [FramebufferWidth * FramebufferHeight]Color
	front  [FramebufferWidth * FramebufferHeight]Color
	frames uint64
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

func (fb *FrameBuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= FramebufferWidth || y < 0 || y >= FramebufferHeight {
		return
	}
	fb.back[y*FramebufferWidth+x] = c
}

func (fb *FrameBuffer) VSync() {
	fb.front = fb.back
	fb.frames++
}

// GetPixel returns the presented color at x, y.
func (fb *FrameBuffer) GetPixel(x, y int) Color {
	return fb.front[y*FramebufferWidth+x]
}

// Pixels returns the presented frame, row major.
func (fb *FrameBuffer) Pixels() []Color {
	return fb.front[:]
}

// Frames returns how many frames have been presented.
func (fb *FrameBuffer) Frames() uint64 {
	return fb.frames
}

// Clear resets both buffers to white.
func (fb *FrameBuffer) Clear() {
	fb.back = [FramebufferWidth * FramebufferHeight]Color{}
	fb.front = fb.back
}

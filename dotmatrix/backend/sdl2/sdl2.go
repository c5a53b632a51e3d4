//go:build sdl2

// Package sdl2 presents frames in an SDL2 window. Building it needs the SDL2
// development libraries, so it sits behind the sdl2 build tag.
package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/valerio/go-dotmatrix/dotmatrix/backend"
	"github.com/valerio/go-dotmatrix/dotmatrix/input"
	"github.com/valerio/go-dotmatrix/dotmatrix/input/action"
	"github.com/valerio/go-dotmatrix/dotmatrix/input/event"
	"github.com/valerio/go-dotmatrix/dotmatrix/video"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	defaultScale  = 4
	bytesPerPixel = 4
)

type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
}

func New() *Backend {
	return &Backend{pixels: make([]byte, video.FramebufferWidth*video.FramebufferHeight*bytesPerPixel)}
}

// Available reports whether this build includes SDL2 support.
func Available() bool { return true }

func (s *Backend) Init(config backend.Config) error {
	scale := config.Scale
	if scale <= 0 {
		scale = defaultScale
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(video.FramebufferWidth*scale),
		int32(video.FramebufferHeight*scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		s.Cleanup()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth,
		video.FramebufferHeight,
	)
	if err != nil {
		s.Cleanup()
		return fmt.Errorf("failed to create texture: %w", err)
	}
	s.texture = texture

	slog.Info("SDL2 backend initialized", "scale", scale)
	return nil
}

func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	var events []backend.InputEvent
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			events = append(events, backend.Quit)
		case *sdl.KeyboardEvent:
			if in, ok := translateKey(e); ok {
				events = append(events, in)
			}
		}
	}

	if err := s.present(frame); err != nil {
		return events, err
	}
	return events, nil
}

func (s *Backend) Cleanup() error {
	if s.texture != nil {
		s.texture.Destroy()
		s.texture = nil
	}
	if s.renderer != nil {
		s.renderer.Destroy()
		s.renderer = nil
	}
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
	}
	sdl.Quit()
	return nil
}

func translateKey(e *sdl.KeyboardEvent) (backend.InputEvent, bool) {
	// SDL reports real releases, so key repeats carry no information
	if e.Repeat != 0 {
		return backend.InputEvent{}, false
	}
	act, ok := input.Lookup(keyNames[e.Keysym.Sym])
	if !ok {
		return backend.InputEvent{}, false
	}

	switch e.Type {
	case sdl.KEYDOWN:
		return backend.InputEvent{Action: act, Type: event.Press}, true
	case sdl.KEYUP:
		if act.IsButton() {
			return backend.InputEvent{Action: act, Type: event.Release}, true
		}
	}
	return backend.InputEvent{}, false
}

var keyNames = map[sdl.Keycode]string{
	sdl.K_z:      "z",
	sdl.K_x:      "x",
	sdl.K_RETURN: "Enter",
	sdl.K_RSHIFT: "Shift",
	sdl.K_LSHIFT: "Shift",
	sdl.K_UP:     "Up",
	sdl.K_DOWN:   "Down",
	sdl.K_LEFT:   "Left",
	sdl.K_RIGHT:  "Right",
	sdl.K_w:      "w",
	sdl.K_s:      "s",
	sdl.K_a:      "a",
	sdl.K_d:      "d",
	sdl.K_SPACE:  "Space",
	sdl.K_p:      "p",
	sdl.K_f:      "f",
	sdl.K_F9:     "F9",
	sdl.K_ESCAPE: "Escape",
	sdl.K_q:      "q",
}

func (s *Backend) present(frame *video.FrameBuffer) error {
	// RGBA8888 is a packed format, so on little endian hosts the bytes are ABGR
	for i, c := range frame.Pixels() {
		g := c.Gray()
		offset := i * bytesPerPixel
		s.pixels[offset] = 0xFF
		s.pixels[offset+1] = g
		s.pixels[offset+2] = g
		s.pixels[offset+3] = g
	}

	if err := s.texture.Update(nil, unsafe.Pointer(&s.pixels[0]), video.FramebufferWidth*bytesPerPixel); err != nil {
		return fmt.Errorf("failed to update texture: %w", err)
	}
	s.renderer.SetDrawColor(0, 0, 0, 0xFF)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}

//go:build !sdl2

package sdl2

import (
	"errors"

	"github.com/valerio/go-dotmatrix/dotmatrix/backend"
	"github.com/valerio/go-dotmatrix/dotmatrix/video"
)

// ErrUnavailable is returned by every call of a build without the sdl2 tag.
var ErrUnavailable = errors.New("SDL2 backend not available, build with -tags sdl2")

type Backend struct{}

func New() *Backend { return &Backend{} }

// Available reports whether this build includes SDL2 support.
func Available() bool { return false }

func (s *Backend) Init(backend.Config) error { return ErrUnavailable }

func (s *Backend) Update(*video.FrameBuffer) ([]backend.InputEvent, error) {
	return nil, ErrUnavailable
}

func (s *Backend) Cleanup() error { return nil }

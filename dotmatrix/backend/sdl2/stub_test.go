//go:build !sdl2

package sdl2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-dotmatrix/dotmatrix/backend"
	"github.com/valerio/go-dotmatrix/dotmatrix/video"
)

var _ backend.Backend = (*Backend)(nil)

func TestStubUnavailable(t *testing.T) {
	b := New()
	assert.False(t, Available())
	assert.ErrorIs(t, b.Init(backend.Config{Title: "test"}), ErrUnavailable)

	events, err := b.Update(video.NewFrameBuffer())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, events)
	assert.NoError(t, b.Cleanup())
}

package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubIsNotImplemented(t *testing.T) {
	s := NewStub()

	value, err := s.ReadRegister(0xFF26)
	require.ErrorIs(t, err, ErrNotImplemented)
	assert.Equal(t, uint8(0xFF), value)

	assert.ErrorIs(t, s.WriteRegister(0xFF26, 0x80), ErrNotImplemented)
	assert.Len(t, s.reported, 1, "each address reported once")
}

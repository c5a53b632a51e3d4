package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagsRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		assert.Equal(t, uint8(b)&0xF0, FlagsFromByte(uint8(b)).Byte(), "byte 0x%02X", b)
	}
}

func TestFlagsDecode(t *testing.T) {
	testCases := []struct {
		desc     string
		in       uint8
		expected Flags
		str      string
	}{
		{"none", 0x00, Flags{}, "----"},
		{"low nibble ignored", 0x0F, Flags{}, "----"},
		{"zero", 0x80, Flags{Zero: true}, "Z---"},
		{"subtract", 0x40, Flags{Subtract: true}, "-N--"},
		{"half carry", 0x20, Flags{HalfCarry: true}, "--H-"},
		{"carry", 0x10, Flags{Carry: true}, "---C"},
		{"all", 0xFF, Flags{true, true, true, true}, "ZNHC"},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			f := FlagsFromByte(tc.in)
			assert.Equal(t, tc.expected, f)
			assert.Equal(t, tc.str, f.String())
		})
	}
}

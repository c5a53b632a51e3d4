package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-dotmatrix/dotmatrix/addr"
)

func TestAckFollowsPriority(t *testing.T) {
	var ic InterruptController
	ic.SetEnabled(0x1F)
	ic.Request(addr.JoypadInterrupt)
	ic.Request(addr.TimerInterrupt)

	vector, ok := ic.Ack()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x50), vector)
	assert.Equal(t, uint8(addr.JoypadInterrupt), ic.Flags())

	vector, ok = ic.Ack()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x60), vector)

	_, ok = ic.Ack()
	assert.False(t, ok)
	assert.Zero(t, ic.Flags())
}

func TestAckIgnoresDisabled(t *testing.T) {
	var ic InterruptController
	ic.SetEnabled(uint8(addr.LCDSTATInterrupt))
	ic.Request(addr.VBlankInterrupt)

	assert.False(t, ic.Pending())
	_, ok := ic.Ack()
	assert.False(t, ok)
	assert.Equal(t, uint8(addr.VBlankInterrupt), ic.Flags(), "disabled requests stay pending")

	ic.Request(addr.LCDSTATInterrupt)
	assert.True(t, ic.Pending())
	vector, _ := ic.Ack()
	assert.Equal(t, uint16(0x48), vector)
}

func TestAckClearsExactlyOneBit(t *testing.T) {
	for pending := 1; pending < 0x20; pending++ {
		var ic InterruptController
		ic.SetEnabled(0xFF)
		ic.SetFlags(uint8(pending))

		_, ok := ic.Ack()
		assert.True(t, ok)

		lowest := uint8(pending) & -uint8(pending)
		assert.Equal(t, uint8(pending)&^lowest, ic.Flags(), "pending %05b", pending)
	}
}

func TestSetFlagsMasksUnusedBits(t *testing.T) {
	var ic InterruptController
	ic.SetFlags(0xFF)
	assert.Equal(t, uint8(0x1F), ic.Flags())

	ic.Clear(addr.SerialInterrupt)
	assert.Equal(t, uint8(0x17), ic.Flags())
}

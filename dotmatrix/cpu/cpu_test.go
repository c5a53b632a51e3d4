package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func step(t *testing.T, c *CPU, bus *testBus, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, c.Step(bus))
	}
}

func TestConditionalJumpConsumesOperands(t *testing.T) {
	testCases := []struct {
		desc     string
		program  []uint8
		zero     bool
		pc       uint16
		accesses int
	}{
		{"JP NZ not taken", []uint8{0xC2, 0x34, 0x12}, true, 0x0103, 3},
		{"JP NZ taken", []uint8{0xC2, 0x34, 0x12}, false, 0x1234, 3},
		{"JR Z not taken", []uint8{0x28, 0x10}, false, 0x0102, 2},
		{"JR Z taken backwards", []uint8{0x28, 0xFE}, true, 0x0100, 2},
		{"CALL Z not taken", []uint8{0xCC, 0x00, 0x02}, false, 0x0103, 3},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			c, bus := newTestCPU(tc.program...)
			c.F.Zero = tc.zero
			step(t, c, bus, 1)
			assert.Equal(t, tc.pc, c.PC)
			assert.Equal(t, tc.accesses, bus.accesses)
			assert.Equal(t, uint16(0xFFFE), c.SP)
		})
	}
}

func TestCallAndReturn(t *testing.T) {
	c, bus := newTestCPU(0xCD, 0x00, 0x02) // CALL 0x0200
	bus.memory[0x0200] = 0xC9              // RET

	step(t, c, bus, 1)
	assert.Equal(t, uint16(0x0200), c.PC)
	assert.Equal(t, uint16(0xFFFC), c.SP)
	assert.Equal(t, uint8(0x03), bus.memory[0xFFFC])
	assert.Equal(t, uint8(0x01), bus.memory[0xFFFD])

	step(t, c, bus, 1)
	assert.Equal(t, uint16(0x0103), c.PC)
	assert.Equal(t, uint16(0xFFFE), c.SP)
}

func TestPushPopAF(t *testing.T) {
	// PUSH BC, POP AF
	c, bus := newTestCPU(0xC5, 0xF1)
	c.SetBC(0x12FF)
	step(t, c, bus, 2)
	assert.Equal(t, uint16(0x12F0), c.AF())
	assert.Equal(t, uint16(0xFFFE), c.SP)
}

func TestLoads(t *testing.T) {
	t.Run("LD (HL+),A and LD A,(HL-)", func(t *testing.T) {
		c, bus := newTestCPU(0x22, 0x3A)
		c.SetHL(0xC000)
		c.A = 0x5A
		step(t, c, bus, 1)
		assert.Equal(t, uint8(0x5A), bus.memory[0xC000])
		assert.Equal(t, uint16(0xC001), c.HL())

		bus.memory[0xC001] = 0x99
		step(t, c, bus, 1)
		assert.Equal(t, uint8(0x99), c.A)
		assert.Equal(t, uint16(0xC000), c.HL())
	})

	t.Run("LDH round trip", func(t *testing.T) {
		// LDH (0x80),A ; LD A,0 ; LDH A,(0x80)
		c, bus := newTestCPU(0xE0, 0x80, 0x3E, 0x00, 0xF0, 0x80)
		c.A = 0x77
		step(t, c, bus, 3)
		assert.Equal(t, uint8(0x77), bus.memory[0xFF80])
		assert.Equal(t, uint8(0x77), c.A)
	})

	t.Run("LD (nn),SP", func(t *testing.T) {
		c, bus := newTestCPU(0x08, 0x00, 0xC0)
		step(t, c, bus, 1)
		assert.Equal(t, uint8(0xFE), bus.memory[0xC000])
		assert.Equal(t, uint8(0xFF), bus.memory[0xC001])
		assert.Equal(t, 5, bus.accesses)
	})

	t.Run("register block", func(t *testing.T) {
		// LD B,A ; LD (HL),B ; LD C,(HL)
		c, bus := newTestCPU(0x47, 0x70, 0x4E)
		c.A = 0x3C
		c.SetHL(0xD000)
		step(t, c, bus, 3)
		assert.Equal(t, uint8(0x3C), c.B)
		assert.Equal(t, uint8(0x3C), bus.memory[0xD000])
		assert.Equal(t, uint8(0x3C), c.C)
	})
}

func TestReadModifyWriteHL(t *testing.T) {
	// INC (HL)
	c, bus := newTestCPU(0x34)
	c.SetHL(0xC010)
	bus.memory[0xC010] = 0x0F
	step(t, c, bus, 1)
	assert.Equal(t, uint8(0x10), bus.memory[0xC010])
	assert.True(t, c.F.HalfCarry)
	assert.Equal(t, 3, bus.accesses)
}

func TestExtendedBitOperations(t *testing.T) {
	t.Run("BIT 7,H", func(t *testing.T) {
		c, bus := newTestCPU(0xCB, 0x7C)
		c.H = 0x80
		step(t, c, bus, 1)
		assert.False(t, c.F.Zero)
	})

	t.Run("RES 0,A", func(t *testing.T) {
		c, bus := newTestCPU(0xCB, 0x87)
		c.A = 0xFF
		step(t, c, bus, 1)
		assert.Equal(t, uint8(0xFE), c.A)
	})

	t.Run("SET 7,(HL)", func(t *testing.T) {
		c, bus := newTestCPU(0xCB, 0xFE)
		c.SetHL(0xC000)
		step(t, c, bus, 1)
		assert.Equal(t, uint8(0x80), bus.memory[0xC000])
	})

	t.Run("SWAP A", func(t *testing.T) {
		c, bus := newTestCPU(0xCB, 0x37)
		c.A = 0xAB
		step(t, c, bus, 1)
		assert.Equal(t, uint8(0xBA), c.A)
	})

	t.Run("RLCA clears zero", func(t *testing.T) {
		c, bus := newTestCPU(0x07)
		c.A = 0x00
		c.F.Zero = true
		step(t, c, bus, 1)
		assert.False(t, c.F.Zero)
	})
}

func TestEnableInterruptsIsDelayed(t *testing.T) {
	// EI ; NOP ; NOP
	c, bus := newTestCPU(0xFB, 0x00, 0x00)
	bus.enabled = uint8(0x04)
	bus.pending = uint8(0x04)

	step(t, c, bus, 1)
	assert.False(t, c.IME(), "EI takes effect one step later")

	step(t, c, bus, 1)
	assert.True(t, c.IME())
	assert.Equal(t, uint16(0x0102), c.PC, "instruction after EI still runs")

	step(t, c, bus, 1)
	assert.Equal(t, uint16(0x0050), c.PC)
	assert.False(t, c.IME())
	assert.Equal(t, uint16(0xFFFC), c.SP)
	assert.Equal(t, uint8(0x02), bus.memory[0xFFFC])
	assert.Equal(t, uint8(0x01), bus.memory[0xFFFD])
	assert.Equal(t, uint8(0x00), bus.pending)
}

func TestDisableCancelsQueuedEnable(t *testing.T) {
	// EI ; DI ; NOP
	c, bus := newTestCPU(0xFB, 0xF3, 0x00)
	bus.enabled = 0x01
	bus.pending = 0x01

	step(t, c, bus, 3)
	assert.False(t, c.IME())
	assert.Equal(t, uint16(0x0103), c.PC)
	assert.Equal(t, uint8(0x01), bus.pending)
}

func TestInterruptServiceConsumesStep(t *testing.T) {
	c, bus := newTestCPU(0x00)
	c.ime = true
	bus.enabled = 0x1F
	bus.pending = 0x11

	step(t, c, bus, 1)
	assert.Equal(t, uint16(0x0040), c.PC)
	assert.Equal(t, 2, bus.accesses, "only the two stack writes")
	assert.Equal(t, uint8(0x10), bus.pending)
}

func TestRETIEnablesImmediately(t *testing.T) {
	c, bus := newTestCPU(0xD9)
	c.SP = 0xFFFC
	bus.memory[0xFFFC] = 0x00
	bus.memory[0xFFFD] = 0x02
	step(t, c, bus, 1)
	assert.True(t, c.IME())
	assert.Equal(t, uint16(0x0200), c.PC)
}

func TestHalt(t *testing.T) {
	t.Run("waits until an interrupt is pending", func(t *testing.T) {
		// HALT ; INC A
		c, bus := newTestCPU(0x76, 0x3C)
		bus.enabled = 0x04
		step(t, c, bus, 1)
		assert.True(t, c.Halted())

		before := bus.accesses
		step(t, c, bus, 5)
		assert.True(t, c.Halted())
		assert.Equal(t, uint16(0x0101), c.PC)
		assert.Equal(t, 5, bus.accesses-before, "one tick per halted step")

		bus.pending = 0x04
		a := c.A
		step(t, c, bus, 1)
		assert.False(t, c.Halted())
		assert.Equal(t, a+1, c.A)
		assert.Equal(t, uint8(0x04), bus.pending, "IME off, interrupt stays pending")
	})

	t.Run("interrupt wakes and is serviced with IME set", func(t *testing.T) {
		c, bus := newTestCPU(0x76, 0x00)
		c.ime = true
		bus.enabled = 0x01
		step(t, c, bus, 2)
		assert.True(t, c.Halted())

		bus.pending = 0x01
		step(t, c, bus, 1)
		assert.False(t, c.Halted())
		assert.Equal(t, uint16(0x0040), c.PC)
		assert.Equal(t, uint8(0x01), bus.memory[0xFFFD])
		assert.Equal(t, uint8(0x01), bus.memory[0xFFFC])
	})

	t.Run("halt bug repeats the next byte", func(t *testing.T) {
		// HALT ; INC A ; NOP
		c, bus := newTestCPU(0x76, 0x3C, 0x00)
		bus.enabled = 0x01
		bus.pending = 0x01
		c.A = 0
		step(t, c, bus, 3)
		assert.False(t, c.Halted())
		assert.Equal(t, uint8(2), c.A)
		assert.Equal(t, uint16(0x0102), c.PC)
	})
}

func TestUnknownOpcodes(t *testing.T) {
	for _, op := range []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
		c, bus := newTestCPU(op)
		c.A = 0x42
		err := c.Step(bus)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownOpcode))
		assert.False(t, errors.Is(err, ErrUnknownExtendedOpcode))

		var opErr *OpcodeError
		require.True(t, errors.As(err, &opErr))
		assert.Equal(t, op, opErr.Opcode)
		assert.False(t, opErr.Extended)
		assert.Equal(t, uint16(0x0100), opErr.PC)
		assert.Equal(t, uint8(0x42), opErr.Registers.A)
		assert.Contains(t, err.Error(), "AF=42B0")
	}
}

func TestUnknownExtendedOpcode(t *testing.T) {
	saved := extendedOpcodes[0x37]
	extendedOpcodes[0x37] = nil
	defer func() { extendedOpcodes[0x37] = saved }()

	c, bus := newTestCPU(0xCB, 0x37)
	err := c.Step(bus)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownExtendedOpcode))

	var opErr *OpcodeError
	require.True(t, errors.As(err, &opErr))
	assert.True(t, opErr.Extended)
	assert.Equal(t, uint8(0x37), opErr.Opcode)
	assert.Contains(t, err.Error(), "0xCB37")
}

func TestOpcodeTablesAreComplete(t *testing.T) {
	undefined := 0
	for op := 0; op < 256; op++ {
		if opcodes[op] == nil {
			undefined++
		}
		assert.NotNil(t, extendedOpcodes[op], "extended 0x%02X", op)
	}
	// 11 undefined opcodes plus the 0xCB prefix
	assert.Equal(t, 12, undefined)
}

func TestMnemonic(t *testing.T) {
	assert.Equal(t, "NOP", Mnemonic(0x00, false))
	assert.Equal(t, "LD A,(HL)", Mnemonic(0x7E, false))
	assert.Equal(t, "XOR A", Mnemonic(0xAF, false))
	assert.Equal(t, "-", Mnemonic(0xD3, false))
	assert.Equal(t, "SWAP A", Mnemonic(0x37, true))
	assert.Equal(t, "BIT 7,H", Mnemonic(0x7C, true))
	assert.Equal(t, "SET 7,(HL)", Mnemonic(0xFE, true))
}

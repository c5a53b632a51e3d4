package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd8(t *testing.T) {
	testCases := []struct {
		desc      string
		a, b      uint8
		carryIn   bool
		withCarry bool
		result    uint8
		flags     Flags
	}{
		{"simple", 0x01, 0x02, false, false, 0x03, Flags{}},
		{"half carry", 0x0F, 0x01, false, false, 0x10, Flags{HalfCarry: true}},
		{"overflow to zero", 0x3A, 0xC6, false, false, 0x00, Flags{Zero: true, HalfCarry: true, Carry: true}},
		{"adc uses carry", 0xE1, 0x0F, true, true, 0xF1, Flags{HalfCarry: true}},
		{"add ignores carry", 0xE1, 0x0F, true, false, 0xF0, Flags{HalfCarry: true}},
		{"adc full carry", 0xFF, 0x00, true, true, 0x00, Flags{Zero: true, HalfCarry: true, Carry: true}},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			c := New()
			c.F.Carry = tc.carryIn
			assert.Equal(t, tc.result, c.add8(tc.a, tc.b, tc.withCarry))
			assert.Equal(t, tc.flags, c.F)
		})
	}
}

func TestSub8(t *testing.T) {
	testCases := []struct {
		desc      string
		a, b      uint8
		carryIn   bool
		withCarry bool
		result    uint8
		flags     Flags
	}{
		{"equal", 0x3E, 0x3E, false, false, 0x00, Flags{Zero: true, Subtract: true}},
		{"half borrow", 0x3E, 0x0F, false, false, 0x2F, Flags{Subtract: true, HalfCarry: true}},
		{"borrow", 0x3E, 0x40, false, false, 0xFE, Flags{Subtract: true, Carry: true}},
		{"sbc uses carry", 0x3B, 0x2A, true, true, 0x10, Flags{Subtract: true}},
		{"sbc borrow from carry", 0x3B, 0x4F, true, true, 0xEB, Flags{Subtract: true, HalfCarry: true, Carry: true}},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			c := New()
			c.F.Carry = tc.carryIn
			assert.Equal(t, tc.result, c.sub8(tc.a, tc.b, tc.withCarry))
			assert.Equal(t, tc.flags, c.F)
		})
	}
}

func TestIncDecPreserveCarry(t *testing.T) {
	c := New()
	c.F.Carry = true

	assert.Equal(t, uint8(0x00), c.inc8(0xFF))
	assert.Equal(t, Flags{Zero: true, HalfCarry: true, Carry: true}, c.F)

	assert.Equal(t, uint8(0x0F), c.dec8(0x10))
	assert.Equal(t, Flags{Subtract: true, HalfCarry: true, Carry: true}, c.F)

	c.F.Carry = false
	assert.Equal(t, uint8(0x00), c.dec8(0x01))
	assert.Equal(t, Flags{Zero: true, Subtract: true}, c.F)
}

func TestAdd16(t *testing.T) {
	c := New()
	c.F.Zero = true

	assert.Equal(t, uint16(0x1000), c.add16(0x0FFF, 0x0001))
	assert.Equal(t, Flags{Zero: true, HalfCarry: true}, c.F)

	assert.Equal(t, uint16(0x0000), c.add16(0x8000, 0x8000))
	assert.Equal(t, Flags{Zero: true, Carry: true}, c.F)
}

func TestAddSigned(t *testing.T) {
	c := New()
	assert.Equal(t, uint16(0x0001), c.addSigned(0x0002, 0xFF))
	assert.Equal(t, Flags{HalfCarry: true, Carry: true}, c.F)

	assert.Equal(t, uint16(0xFFF8), c.addSigned(0xFFF0, 0x08))
	assert.Equal(t, Flags{}, c.F)
}

func TestDAA(t *testing.T) {
	testCases := []struct {
		desc   string
		a      uint8
		flags  Flags
		result uint8
		out    Flags
	}{
		{"after 0x45+0x38", 0x7D, Flags{}, 0x83, Flags{}},
		{"after 0x99+0x01", 0x9A, Flags{}, 0x00, Flags{Zero: true, Carry: true}},
		{"half carry add", 0x10, Flags{HalfCarry: true}, 0x16, Flags{}},
		{"after 0x83-0x38", 0x4B, Flags{Subtract: true, HalfCarry: true}, 0x45, Flags{Subtract: true}},
		{"borrow sub", 0xA0, Flags{Subtract: true, Carry: true}, 0x40, Flags{Subtract: true, Carry: true}},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			c := New()
			c.A = tc.a
			c.F = tc.flags
			c.daa()
			assert.Equal(t, tc.result, c.A)
			assert.Equal(t, tc.out, c.F)
		})
	}
}

func TestShifts(t *testing.T) {
	testCases := []struct {
		desc    string
		op      func(c *CPU, v uint8) uint8
		in      uint8
		carryIn bool
		result  uint8
		carry   bool
	}{
		{"rlc", (*CPU).rlc, 0x85, false, 0x0B, true},
		{"rrc", (*CPU).rrc, 0x01, false, 0x80, true},
		{"rl through carry", (*CPU).rl, 0x80, true, 0x01, true},
		{"rr through carry", (*CPU).rr, 0x01, true, 0x80, true},
		{"sla", (*CPU).sla, 0xFF, false, 0xFE, true},
		{"sra keeps sign", (*CPU).sra, 0x8A, false, 0xC5, false},
		{"srl", (*CPU).srl, 0x01, false, 0x00, true},
		{"swap", (*CPU).swap, 0xF1, true, 0x1F, false},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			c := New()
			c.F = Flags{Subtract: true, HalfCarry: true, Carry: tc.carryIn}
			assert.Equal(t, tc.result, tc.op(c, tc.in))
			assert.Equal(t, Flags{Zero: tc.result == 0, Carry: tc.carry}, c.F)
		})
	}
}

func TestTestBit(t *testing.T) {
	c := New()
	c.F.Carry = true
	c.testBit(7, 0x7F)
	assert.Equal(t, Flags{Zero: true, HalfCarry: true, Carry: true}, c.F)
	c.testBit(0, 0x01)
	assert.Equal(t, Flags{HalfCarry: true, Carry: true}, c.F)
}

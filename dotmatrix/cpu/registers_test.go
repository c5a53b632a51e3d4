package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterPairRoundTrip(t *testing.T) {
	pairs := []struct {
		name string
		set  func(r *Registers, v uint16)
		get  func(r *Registers) uint16
		mask uint16
	}{
		{"AF", (*Registers).SetAF, (*Registers).AF, 0xFFF0},
		{"BC", (*Registers).SetBC, (*Registers).BC, 0xFFFF},
		{"DE", (*Registers).SetDE, (*Registers).DE, 0xFFFF},
		{"HL", (*Registers).SetHL, (*Registers).HL, 0xFFFF},
	}

	for _, pair := range pairs {
		t.Run(pair.name, func(t *testing.T) {
			var r Registers
			for v := 0; v <= 0xFFFF; v++ {
				pair.set(&r, uint16(v))
				if got := pair.get(&r); got != uint16(v)&pair.mask {
					t.Fatalf("%s: set 0x%04X, got 0x%04X", pair.name, v, got)
				}
			}
		})
	}
}

func TestPairsFollowSingleRegisters(t *testing.T) {
	var r Registers
	r.SetBC(0x1234)
	r.C = 0xFF
	assert.Equal(t, uint16(0x12FF), r.BC())

	r.H, r.L = 0xAB, 0xCD
	assert.Equal(t, uint16(0xABCD), r.HL())

	r.A = 0x42
	r.F.Carry = true
	assert.Equal(t, uint16(0x4210), r.AF())
}

func TestHLIncrementDecrement(t *testing.T) {
	var r Registers
	r.SetHL(0x00FF)
	assert.Equal(t, uint16(0x00FF), r.IncrementHL())
	assert.Equal(t, uint16(0x0100), r.HL())
	assert.Equal(t, uint16(0x0100), r.DecrementHL())
	assert.Equal(t, uint16(0x00FF), r.HL())

	r.SetHL(0x0000)
	r.DecrementHL()
	assert.Equal(t, uint16(0xFFFF), r.HL())
}

func TestPostBootRegisters(t *testing.T) {
	r := PostBootRegisters()
	assert.Equal(t, uint16(0x01B0), r.AF())
	assert.Equal(t, uint16(0x0013), r.BC())
	assert.Equal(t, uint16(0x00D8), r.DE())
	assert.Equal(t, uint16(0x014D), r.HL())
	assert.Equal(t, uint16(0xFFFE), r.SP)
	assert.Equal(t, uint16(0x0100), r.PC)
}

package cpu

import (
	"fmt"

	"github.com/valerio/go-dotmatrix/dotmatrix/bit"
)

// Registers holds the SM83 register file. Pairs are always derived from the
// single registers, never stored.
type Registers struct {
	A, B, C, D, E, H, L uint8
	F                   Flags
	SP                  uint16
	PC                  uint16
}

// PostBootRegisters returns the register state left behind by the DMG boot ROM.
func PostBootRegisters() Registers {
	var r Registers
	r.SetAF(0x01B0)
	r.SetBC(0x0013)
	r.SetDE(0x00D8)
	r.SetHL(0x014D)
	r.SP = 0xFFFE
	r.PC = 0x0100
	return r
}

func (r *Registers) AF() uint16 { return bit.Combine(r.A, r.F.Byte()) }
func (r *Registers) BC() uint16 { return bit.Combine(r.B, r.C) }
func (r *Registers) DE() uint16 { return bit.Combine(r.D, r.E) }
func (r *Registers) HL() uint16 { return bit.Combine(r.H, r.L) }

// SetAF loads A and F, dropping the low nibble of F.
func (r *Registers) SetAF(value uint16) {
	r.A = bit.High(value)
	r.F = FlagsFromByte(bit.Low(value))
}

func (r *Registers) SetBC(value uint16) {
	r.B = bit.High(value)
	r.C = bit.Low(value)
}

func (r *Registers) SetDE(value uint16) {
	r.D = bit.High(value)
	r.E = bit.Low(value)
}

func (r *Registers) SetHL(value uint16) {
	r.H = bit.High(value)
	r.L = bit.Low(value)
}

// IncrementHL bumps HL by one and returns the value it had before.
func (r *Registers) IncrementHL() uint16 {
	hl := r.HL()
	r.SetHL(hl + 1)
	return hl
}

// DecrementHL drops HL by one and returns the value it had before.
func (r *Registers) DecrementHL() uint16 {
	hl := r.HL()
	r.SetHL(hl - 1)
	return hl
}

// IncrementPC advances PC and returns the address it pointed at.
func (r *Registers) IncrementPC() uint16 {
	pc := r.PC
	r.PC++
	return pc
}

func (r Registers) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X flags=%s",
		r.AF(), r.BC(), r.DE(), r.HL(), r.SP, r.PC, r.F)
}

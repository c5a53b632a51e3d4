package cpu

// flag bit positions inside F
const (
	zeroFlag      uint8 = 0x80
	subFlag       uint8 = 0x40
	halfCarryFlag uint8 = 0x20
	carryFlag     uint8 = 0x10
)

// Flags is the condition code state kept in the upper nibble of F.
type Flags struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// FlagsFromByte decodes the upper nibble of b, the lower one is ignored.
func FlagsFromByte(b uint8) Flags {
	return Flags{
		Zero:      b&zeroFlag != 0,
		Subtract:  b&subFlag != 0,
		HalfCarry: b&halfCarryFlag != 0,
		Carry:     b&carryFlag != 0,
	}
}

// Byte encodes the flags as they appear in F. The low nibble is always 0.
func (f Flags) Byte() uint8 {
	var b uint8
	if f.Zero {
		b |= zeroFlag
	}
	if f.Subtract {
		b |= subFlag
	}
	if f.HalfCarry {
		b |= halfCarryFlag
	}
	if f.Carry {
		b |= carryFlag
	}
	return b
}

// String renders set flags as letters and unset ones as dashes, e.g. "Z-H-".
func (f Flags) String() string {
	out := []byte("----")
	if f.Zero {
		out[0] = 'Z'
	}
	if f.Subtract {
		out[1] = 'N'
	}
	if f.HalfCarry {
		out[2] = 'H'
	}
	if f.Carry {
		out[3] = 'C'
	}
	return string(out)
}

package cpu

import "github.com/valerio/go-dotmatrix/dotmatrix/bit"

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// add8 computes a + b (+ carry) and sets all four flags.
func (c *CPU) add8(a, b uint8, withCarry bool) uint8 {
	carry := boolToUint8(withCarry && c.F.Carry)
	sum := uint16(a) + uint16(b) + uint16(carry)
	result := uint8(sum)
	c.F = Flags{
		Zero:      result == 0,
		HalfCarry: (a&0x0F)+(b&0x0F)+carry > 0x0F,
		Carry:     sum > 0xFF,
	}
	return result
}

// sub8 computes a - b (- carry) and sets all four flags.
func (c *CPU) sub8(a, b uint8, withCarry bool) uint8 {
	carry := boolToUint8(withCarry && c.F.Carry)
	result := a - b - carry
	c.F = Flags{
		Zero:      result == 0,
		Subtract:  true,
		HalfCarry: int(a&0x0F)-int(b&0x0F)-int(carry) < 0,
		Carry:     int(a)-int(b)-int(carry) < 0,
	}
	return result
}

func (c *CPU) and8(a, b uint8) uint8 {
	result := a & b
	c.F = Flags{Zero: result == 0, HalfCarry: true}
	return result
}

func (c *CPU) or8(a, b uint8) uint8 {
	result := a | b
	c.F = Flags{Zero: result == 0}
	return result
}

func (c *CPU) xor8(a, b uint8) uint8 {
	result := a ^ b
	c.F = Flags{Zero: result == 0}
	return result
}

// inc8 and dec8 leave carry untouched.
func (c *CPU) inc8(value uint8) uint8 {
	result := value + 1
	c.F.Zero = result == 0
	c.F.Subtract = false
	c.F.HalfCarry = value&0x0F == 0x0F
	return result
}

func (c *CPU) dec8(value uint8) uint8 {
	result := value - 1
	c.F.Zero = result == 0
	c.F.Subtract = true
	c.F.HalfCarry = value&0x0F == 0
	return result
}

// add16 is ADD HL,rr: carries out of bit 11 and bit 15, zero untouched.
func (c *CPU) add16(a, b uint16) uint16 {
	sum := uint32(a) + uint32(b)
	c.F.Subtract = false
	c.F.HalfCarry = (a&0x0FFF)+(b&0x0FFF) > 0x0FFF
	c.F.Carry = sum > 0xFFFF
	return uint16(sum)
}

// addSigned is SP plus a signed offset as used by ADD SP,e and LD HL,SP+e.
// Flags come from the unsigned add of the low byte.
func (c *CPU) addSigned(sp uint16, offset uint8) uint16 {
	c.F = Flags{
		HalfCarry: (sp&0x0F)+uint16(offset&0x0F) > 0x0F,
		Carry:     (sp&0xFF)+uint16(offset) > 0xFF,
	}
	return uint16(int32(sp) + int32(int8(offset)))
}

// daa adjusts A to packed BCD after an addition or subtraction.
func (c *CPU) daa() {
	a := c.A
	var adjust uint8
	carry := c.F.Carry

	if c.F.HalfCarry || (!c.F.Subtract && a&0x0F > 0x09) {
		adjust |= 0x06
	}
	if carry || (!c.F.Subtract && a > 0x99) {
		adjust |= 0x60
		carry = true
	}

	if c.F.Subtract {
		a -= adjust
	} else {
		a += adjust
	}

	c.A = a
	c.F.Zero = a == 0
	c.F.HalfCarry = false
	c.F.Carry = carry
}

// shift and rotate helpers, bit shifted out goes to carry.

func (c *CPU) shiftFlags(result uint8, carry bool) uint8 {
	c.F = Flags{Zero: result == 0, Carry: carry}
	return result
}

func (c *CPU) rlc(value uint8) uint8 {
	return c.shiftFlags(value<<1|value>>7, value&0x80 != 0)
}

func (c *CPU) rrc(value uint8) uint8 {
	return c.shiftFlags(value>>1|value<<7, value&0x01 != 0)
}

func (c *CPU) rl(value uint8) uint8 {
	return c.shiftFlags(value<<1|boolToUint8(c.F.Carry), value&0x80 != 0)
}

func (c *CPU) rr(value uint8) uint8 {
	return c.shiftFlags(value>>1|boolToUint8(c.F.Carry)<<7, value&0x01 != 0)
}

func (c *CPU) sla(value uint8) uint8 {
	return c.shiftFlags(value<<1, value&0x80 != 0)
}

// sra keeps bit 7.
func (c *CPU) sra(value uint8) uint8 {
	return c.shiftFlags(value>>1|value&0x80, value&0x01 != 0)
}

func (c *CPU) srl(value uint8) uint8 {
	return c.shiftFlags(value>>1, value&0x01 != 0)
}

func (c *CPU) swap(value uint8) uint8 {
	return c.shiftFlags(bit.SwapNibbles(value), false)
}

// testBit is BIT n, carry untouched.
func (c *CPU) testBit(index, value uint8) {
	c.F.Zero = value&(1<<index) == 0
	c.F.Subtract = false
	c.F.HalfCarry = true
}

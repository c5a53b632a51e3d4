package cpu

import "log/slog"

// instruction executes one decoded opcode against the register file and bus.
type instruction func(c *CPU, bus Bus)

// aluOp combines A with an operand, storing the result in A.
type aluOp func(c *CPU, value uint8)

func opAdd(c *CPU, v uint8) { c.A = c.add8(c.A, v, false) }
func opAdc(c *CPU, v uint8) { c.A = c.add8(c.A, v, true) }
func opSub(c *CPU, v uint8) { c.A = c.sub8(c.A, v, false) }
func opSbc(c *CPU, v uint8) { c.A = c.sub8(c.A, v, true) }
func opAnd(c *CPU, v uint8) { c.A = c.and8(c.A, v) }
func opXor(c *CPU, v uint8) { c.A = c.xor8(c.A, v) }
func opOr(c *CPU, v uint8)  { c.A = c.or8(c.A, v) }

// opCp compares by subtracting and throwing the result away.
func opCp(c *CPU, v uint8) { c.sub8(c.A, v, false) }

func alu(op aluOp, src loc8) instruction {
	return func(c *CPU, bus Bus) {
		op(c, c.read8(bus, src))
	}
}

func ld8(dst, src loc8) instruction {
	return func(c *CPU, bus Bus) {
		c.write8(bus, dst, c.read8(bus, src))
	}
}

func ld16(dst, src loc16) instruction {
	return func(c *CPU, bus Bus) {
		c.write16(dst, c.read16(bus, src))
	}
}

// ldAddrSP is LD (nn),SP.
func ldAddrSP(c *CPU, bus Bus) {
	address := c.fetch16(bus)
	bus.Write(address, uint8(c.SP))
	bus.Write(address+1, uint8(c.SP>>8))
}

// ldHLSPOffset is LD HL,SP+e.
func ldHLSPOffset(c *CPU, bus Bus) {
	c.SetHL(c.addSigned(c.SP, c.fetch(bus)))
}

func addSPOffset(c *CPU, bus Bus) {
	c.SP = c.addSigned(c.SP, c.fetch(bus))
}

func inc8(l loc8) instruction {
	return func(c *CPU, bus Bus) { c.modify8(bus, l, c.inc8) }
}

func dec8(l loc8) instruction {
	return func(c *CPU, bus Bus) { c.modify8(bus, l, c.dec8) }
}

func inc16(l loc16) instruction {
	return func(c *CPU, bus Bus) { c.write16(l, c.read16(bus, l)+1) }
}

func dec16(l loc16) instruction {
	return func(c *CPU, bus Bus) { c.write16(l, c.read16(bus, l)-1) }
}

func addHL(l loc16) instruction {
	return func(c *CPU, bus Bus) { c.SetHL(c.add16(c.HL(), c.read16(bus, l))) }
}

func push(l loc16) instruction {
	return func(c *CPU, bus Bus) { c.push(bus, c.read16(bus, l)) }
}

func pop(l loc16) instruction {
	return func(c *CPU, bus Bus) { c.write16(l, c.pop(bus)) }
}

// Control flow. Operands are always consumed before the condition is checked.

func jp(cond condition) instruction {
	return func(c *CPU, bus Bus) {
		target := c.fetch16(bus)
		if c.check(cond) {
			c.PC = target
		}
	}
}

func jpHL(c *CPU, _ Bus) { c.PC = c.HL() }

func jr(cond condition) instruction {
	return func(c *CPU, bus Bus) {
		offset := int8(c.fetch(bus))
		if c.check(cond) {
			c.PC = uint16(int32(c.PC) + int32(offset))
		}
	}
}

func call(cond condition) instruction {
	return func(c *CPU, bus Bus) {
		target := c.fetch16(bus)
		if c.check(cond) {
			c.push(bus, c.PC)
			c.PC = target
		}
	}
}

func ret(cond condition) instruction {
	return func(c *CPU, bus Bus) {
		if c.check(cond) {
			c.PC = c.pop(bus)
		}
	}
}

// reti returns and enables interrupts without the EI delay.
func reti(c *CPU, bus Bus) {
	c.PC = c.pop(bus)
	c.ime = true
}

func rst(vector uint16) instruction {
	return func(c *CPU, bus Bus) {
		c.push(bus, c.PC)
		c.PC = vector
	}
}

// Misc and accumulator ops.

func nop(*CPU, Bus) {}

func halt(c *CPU, bus Bus) {
	if !c.ime && bus.PendingInterrupt() {
		c.haltBug = true
		return
	}
	c.halted = true
}

// stop swallows its padding byte and waits like HALT until something is pending.
func stop(c *CPU, bus Bus) {
	c.fetch(bus)
	c.halted = true
	slog.Debug("STOP executed", "pc", c.PC)
}

func di(c *CPU, _ Bus) {
	c.ime = false
	c.eiQueued = false
}

func ei(c *CPU, _ Bus) { c.eiQueued = true }

func daa(c *CPU, _ Bus) { c.daa() }

func cpl(c *CPU, _ Bus) {
	c.A = ^c.A
	c.F.Subtract = true
	c.F.HalfCarry = true
}

func scf(c *CPU, _ Bus) {
	c.F.Subtract = false
	c.F.HalfCarry = false
	c.F.Carry = true
}

func ccf(c *CPU, _ Bus) {
	c.F.Subtract = false
	c.F.HalfCarry = false
	c.F.Carry = !c.F.Carry
}

// accumulator rotates always clear Z, unlike their 0xCB counterparts.
func rotateA(rotate func(c *CPU, v uint8) uint8) instruction {
	return func(c *CPU, _ Bus) {
		c.A = rotate(c, c.A)
		c.F.Zero = false
	}
}

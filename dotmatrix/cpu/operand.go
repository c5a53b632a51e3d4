package cpu

import "github.com/valerio/go-dotmatrix/dotmatrix/bit"

// loc8 names where an 8 bit operand lives. Reading or writing any of the
// memory forms goes through the bus, immediates advance PC as they are read.
type loc8 uint8

const (
	regA loc8 = iota
	regB
	regC
	regD
	regE
	regH
	regL
	imm8      // n
	addrC     // (0xFF00+C)
	addrBC    // (BC)
	addrDE    // (DE)
	addrHL    // (HL)
	addrHLInc // (HL+)
	addrHLDec // (HL-)
	addrImm8  // (0xFF00+n)
	addrImm16 // (nn)
)

// loc16 names where a 16 bit operand lives.
type loc16 uint8

const (
	regAF loc16 = iota
	regBC
	regDE
	regHL
	regSP
	imm16 // nn
)

// condition gates jumps, calls and returns.
type condition uint8

const (
	always condition = iota
	ifNZ
	ifZ
	ifNC
	ifC
)

func (c *CPU) check(cond condition) bool {
	switch cond {
	case ifNZ:
		return !c.F.Zero
	case ifZ:
		return c.F.Zero
	case ifNC:
		return !c.F.Carry
	case ifC:
		return c.F.Carry
	}
	return true
}

// fetch reads the byte at PC and advances it, unless the halt bug swallows
// the increment.
func (c *CPU) fetch(bus Bus) uint8 {
	value := bus.Read(c.PC)
	if c.haltBug {
		c.haltBug = false
	} else {
		c.PC++
	}
	return value
}

func (c *CPU) fetch16(bus Bus) uint16 {
	low := c.fetch(bus)
	high := c.fetch(bus)
	return bit.Combine(high, low)
}

// address resolves the memory operand forms to an address. Forms with side
// effects (HL+, HL-, immediates) apply them here, exactly once.
func (c *CPU) address(bus Bus, l loc8) uint16 {
	switch l {
	case addrC:
		return 0xFF00 | uint16(c.C)
	case addrBC:
		return c.BC()
	case addrDE:
		return c.DE()
	case addrHL:
		return c.HL()
	case addrHLInc:
		return c.IncrementHL()
	case addrHLDec:
		return c.DecrementHL()
	case addrImm8:
		return 0xFF00 | uint16(c.fetch(bus))
	case addrImm16:
		return c.fetch16(bus)
	}
	panic("cpu: operand is not a memory location")
}

func (c *CPU) register(l loc8) *uint8 {
	switch l {
	case regA:
		return &c.A
	case regB:
		return &c.B
	case regC:
		return &c.C
	case regD:
		return &c.D
	case regE:
		return &c.E
	case regH:
		return &c.H
	case regL:
		return &c.L
	}
	return nil
}

func (c *CPU) read8(bus Bus, l loc8) uint8 {
	if r := c.register(l); r != nil {
		return *r
	}
	if l == imm8 {
		return c.fetch(bus)
	}
	return bus.Read(c.address(bus, l))
}

func (c *CPU) write8(bus Bus, l loc8, value uint8) {
	if r := c.register(l); r != nil {
		*r = value
		return
	}
	if l == imm8 {
		panic("cpu: immediate operand is not writable")
	}
	bus.Write(c.address(bus, l), value)
}

// modify8 applies fn to the operand, resolving memory addresses only once.
func (c *CPU) modify8(bus Bus, l loc8, fn func(uint8) uint8) {
	if r := c.register(l); r != nil {
		*r = fn(*r)
		return
	}
	address := c.address(bus, l)
	bus.Write(address, fn(bus.Read(address)))
}

func (c *CPU) read16(bus Bus, l loc16) uint16 {
	switch l {
	case regAF:
		return c.AF()
	case regBC:
		return c.BC()
	case regDE:
		return c.DE()
	case regHL:
		return c.HL()
	case regSP:
		return c.SP
	case imm16:
		return c.fetch16(bus)
	}
	panic("cpu: unknown 16 bit operand")
}

func (c *CPU) write16(l loc16, value uint16) {
	switch l {
	case regAF:
		c.SetAF(value)
	case regBC:
		c.SetBC(value)
	case regDE:
		c.SetDE(value)
	case regHL:
		c.SetHL(value)
	case regSP:
		c.SP = value
	default:
		panic("cpu: 16 bit operand is not writable")
	}
}

// push pre-decrements SP by two, then stores value low byte first.
func (c *CPU) push(bus Bus, value uint16) {
	c.SP -= 2
	bus.Write(c.SP, bit.Low(value))
	bus.Write(c.SP+1, bit.High(value))
}

// pop reads the word at SP, then post-increments SP by two.
func (c *CPU) pop(bus Bus) uint16 {
	low := bus.Read(c.SP)
	high := bus.Read(c.SP + 1)
	c.SP += 2
	return bit.Combine(high, low)
}

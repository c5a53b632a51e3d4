// Package cpu implements the SM83 instruction interpreter. The CPU owns only
// its register file and interrupt master state, everything else is reached
// through the Bus handed to each Step.
package cpu

import (
	"log/slog"
)

// Bus is the capability the CPU needs from the rest of the machine. Every
// Read and Write advances the peripherals by one machine cycle.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	// AckInterrupt returns the vector of the highest priority interrupt that
	// is both enabled and pending, clearing its pending bit.
	AckInterrupt() (uint16, bool)
	// PendingInterrupt reports whether any enabled interrupt is pending,
	// without acknowledging it.
	PendingInterrupt() bool
}

// CPU is the SM83 core state.
type CPU struct {
	Registers

	ime      bool // interrupt master enable
	eiQueued bool // EI executed, IME turns on at the start of the next step
	halted   bool

	// haltBug makes the next fetch skip its PC increment, so the byte after
	// HALT is read twice.
	haltBug bool
}

// New returns a CPU with zeroed registers, ready to run a boot ROM from 0x0000.
func New() *CPU {
	return &CPU{}
}

// NewPostBoot returns a CPU in the state the DMG boot ROM leaves it in.
func NewPostBoot() *CPU {
	return &CPU{Registers: PostBootRegisters()}
}

// Step services a pending interrupt or executes one instruction.
func (c *CPU) Step(bus Bus) error {
	if c.ime {
		if vector, ok := bus.AckInterrupt(); ok {
			c.serviceInterrupt(bus, vector)
			return nil
		}
	}

	if c.eiQueued {
		c.eiQueued = false
		c.ime = true
	}

	if c.halted {
		if !bus.PendingInterrupt() {
			// the core keeps reading the next opcode while halted
			bus.Read(c.PC)
			return nil
		}
		c.halted = false
	}

	pc := c.PC
	opcode := c.fetch(bus)
	if opcode == 0xCB {
		extended := c.fetch(bus)
		op := extendedOpcodes[extended]
		if op == nil {
			return c.opcodeError(pc, extended, true)
		}
		op(c, bus)
		return nil
	}

	op := opcodes[opcode]
	if op == nil {
		return c.opcodeError(pc, opcode, false)
	}
	op(c, bus)
	return nil
}

func (c *CPU) serviceInterrupt(bus Bus, vector uint16) {
	c.ime = false
	c.eiQueued = false
	c.halted = false
	c.push(bus, c.PC)
	c.PC = vector
}

func (c *CPU) opcodeError(pc uint16, opcode uint8, extended bool) error {
	regs := c.Registers
	regs.PC = pc
	err := &OpcodeError{
		Opcode:    opcode,
		Extended:  extended,
		PC:        pc,
		Registers: regs,
	}
	slog.Debug("undefined opcode", "opcode", opcode, "extended", extended, "pc", pc)
	return err
}

// IME reports the interrupt master enable flag.
func (c *CPU) IME() bool { return c.ime }

// Halted reports whether the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool { return c.halted }

// Snapshot returns a copy of the register file.
func (c *CPU) Snapshot() Registers { return c.Registers }

package cpu

// extendedOpcodes is the 0xCB-prefixed opcode space. Every entry is defined.
var extendedOpcodes [256]instruction

func shiftOp(shift func(c *CPU, v uint8) uint8, l loc8) instruction {
	return func(c *CPU, bus Bus) {
		c.modify8(bus, l, func(v uint8) uint8 { return shift(c, v) })
	}
}

func bitOp(index uint8, l loc8) instruction {
	return func(c *CPU, bus Bus) { c.testBit(index, c.read8(bus, l)) }
}

func resOp(index uint8, l loc8) instruction {
	return func(c *CPU, bus Bus) {
		c.modify8(bus, l, func(v uint8) uint8 { return v &^ (1 << index) })
	}
}

func setOp(index uint8, l loc8) instruction {
	return func(c *CPU, bus Bus) {
		c.modify8(bus, l, func(v uint8) uint8 { return v | 1<<index })
	}
}

func init() {
	shifts := [8]func(c *CPU, v uint8) uint8{
		(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
		(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
	}

	for op := 0; op < 256; op++ {
		target := registerOrder[op&7]
		index := uint8(op>>3) & 7

		switch op >> 6 {
		case 0:
			extendedOpcodes[op] = shiftOp(shifts[index], target)
		case 1:
			extendedOpcodes[op] = bitOp(index, target)
		case 2:
			extendedOpcodes[op] = resOp(index, target)
		case 3:
			extendedOpcodes[op] = setOp(index, target)
		}
	}
}

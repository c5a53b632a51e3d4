package cpu

// opcodes is the standard opcode space. nil entries are the eleven opcodes
// with no defined behavior on the SM83; 0xCB is dispatched by Step.
var opcodes = [256]instruction{
	0x00: nop,
	0x01: ld16(regBC, imm16),
	0x02: ld8(addrBC, regA),
	0x03: inc16(regBC),
	0x04: inc8(regB),
	0x05: dec8(regB),
	0x06: ld8(regB, imm8),
	0x07: rotateA((*CPU).rlc),
	0x08: ldAddrSP,
	0x09: addHL(regBC),
	0x0A: ld8(regA, addrBC),
	0x0B: dec16(regBC),
	0x0C: inc8(regC),
	0x0D: dec8(regC),
	0x0E: ld8(regC, imm8),
	0x0F: rotateA((*CPU).rrc),

	0x10: stop,
	0x11: ld16(regDE, imm16),
	0x12: ld8(addrDE, regA),
	0x13: inc16(regDE),
	0x14: inc8(regD),
	0x15: dec8(regD),
	0x16: ld8(regD, imm8),
	0x17: rotateA((*CPU).rl),
	0x18: jr(always),
	0x19: addHL(regDE),
	0x1A: ld8(regA, addrDE),
	0x1B: dec16(regDE),
	0x1C: inc8(regE),
	0x1D: dec8(regE),
	0x1E: ld8(regE, imm8),
	0x1F: rotateA((*CPU).rr),

	0x20: jr(ifNZ),
	0x21: ld16(regHL, imm16),
	0x22: ld8(addrHLInc, regA),
	0x23: inc16(regHL),
	0x24: inc8(regH),
	0x25: dec8(regH),
	0x26: ld8(regH, imm8),
	0x27: daa,
	0x28: jr(ifZ),
	0x29: addHL(regHL),
	0x2A: ld8(regA, addrHLInc),
	0x2B: dec16(regHL),
	0x2C: inc8(regL),
	0x2D: dec8(regL),
	0x2E: ld8(regL, imm8),
	0x2F: cpl,

	0x30: jr(ifNC),
	0x31: ld16(regSP, imm16),
	0x32: ld8(addrHLDec, regA),
	0x33: inc16(regSP),
	0x34: inc8(addrHL),
	0x35: dec8(addrHL),
	0x36: ld8(addrHL, imm8),
	0x37: scf,
	0x38: jr(ifC),
	0x39: addHL(regSP),
	0x3A: ld8(regA, addrHLDec),
	0x3B: dec16(regSP),
	0x3C: inc8(regA),
	0x3D: dec8(regA),
	0x3E: ld8(regA, imm8),
	0x3F: ccf,

	0x76: halt,

	0xC0: ret(ifNZ),
	0xC1: pop(regBC),
	0xC2: jp(ifNZ),
	0xC3: jp(always),
	0xC4: call(ifNZ),
	0xC5: push(regBC),
	0xC6: alu(opAdd, imm8),
	0xC7: rst(0x00),
	0xC8: ret(ifZ),
	0xC9: ret(always),
	0xCA: jp(ifZ),
	0xCC: call(ifZ),
	0xCD: call(always),
	0xCE: alu(opAdc, imm8),
	0xCF: rst(0x08),

	0xD0: ret(ifNC),
	0xD1: pop(regDE),
	0xD2: jp(ifNC),
	0xD4: call(ifNC),
	0xD5: push(regDE),
	0xD6: alu(opSub, imm8),
	0xD7: rst(0x10),
	0xD8: ret(ifC),
	0xD9: reti,
	0xDA: jp(ifC),
	0xDC: call(ifC),
	0xDE: alu(opSbc, imm8),
	0xDF: rst(0x18),

	0xE0: ld8(addrImm8, regA),
	0xE1: pop(regHL),
	0xE2: ld8(addrC, regA),
	0xE5: push(regHL),
	0xE6: alu(opAnd, imm8),
	0xE7: rst(0x20),
	0xE8: addSPOffset,
	0xE9: jpHL,
	0xEA: ld8(addrImm16, regA),
	0xEE: alu(opXor, imm8),
	0xEF: rst(0x28),

	0xF0: ld8(regA, addrImm8),
	0xF1: pop(regAF),
	0xF2: ld8(regA, addrC),
	0xF3: di,
	0xF5: push(regAF),
	0xF6: alu(opOr, imm8),
	0xF7: rst(0x30),
	0xF8: ldHLSPOffset,
	0xF9: ld16(regSP, regHL),
	0xFA: ld8(regA, addrImm16),
	0xFB: ei,
	0xFE: alu(opCp, imm8),
	0xFF: rst(0x38),
}

// registerOrder is the operand encoding used by the 0x40-0xBF block and by
// every 0xCB opcode: the low three bits pick the operand.
var registerOrder = [8]loc8{regB, regC, regD, regE, regH, regL, addrHL, regA}

func init() {
	// LD r,r' from 0x40 to 0x7F, 0x76 is HALT.
	for op := 0x40; op < 0x80; op++ {
		if op == 0x76 {
			continue
		}
		opcodes[op] = ld8(registerOrder[(op>>3)&7], registerOrder[op&7])
	}

	// ALU A,r from 0x80 to 0xBF.
	aluOps := [8]aluOp{opAdd, opAdc, opSub, opSbc, opAnd, opXor, opOr, opCp}
	for op := 0x80; op < 0xC0; op++ {
		opcodes[op] = alu(aluOps[(op>>3)&7], registerOrder[op&7])
	}
}

package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOpcode is wrapped by errors for undefined standard opcodes.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrUnknownExtendedOpcode is wrapped by errors for undefined 0xCB-prefixed opcodes.
	ErrUnknownExtendedOpcode = errors.New("unknown extended opcode")
)

// OpcodeError stops emulation on an opcode with no defined behavior. It keeps
// the register file as it was when the opcode was fetched.
type OpcodeError struct {
	Opcode    uint8
	Extended  bool
	PC        uint16
	Registers Registers
}

func (e *OpcodeError) Error() string {
	if e.Extended {
		return fmt.Sprintf("%v 0xCB%02X at 0x%04X: %s", ErrUnknownExtendedOpcode, e.Opcode, e.PC, e.Registers)
	}
	return fmt.Sprintf("%v 0x%02X at 0x%04X: %s", ErrUnknownOpcode, e.Opcode, e.PC, e.Registers)
}

func (e *OpcodeError) Unwrap() error {
	if e.Extended {
		return ErrUnknownExtendedOpcode
	}
	return ErrUnknownOpcode
}

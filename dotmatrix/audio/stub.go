// Package audio stands in for the DMG sound unit. Sound is not emulated:
// register accesses are reported and otherwise dropped.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
)

var ErrNotImplemented = errors.New("audio: not implemented")

// Stub answers the 0xFF10-0xFF3F register range.
type Stub struct {
	reported map[uint16]bool
}

func NewStub() *Stub {
	return &Stub{reported: make(map[uint16]bool)}
}

// ReadRegister always fails, returning the open bus value alongside the error.
func (s *Stub) ReadRegister(address uint16) (uint8, error) {
	s.report("read", address)
	return 0xFF, ErrNotImplemented
}

func (s *Stub) WriteRegister(address uint16, value uint8) error {
	s.report("write", address)
	return ErrNotImplemented
}

func (s *Stub) report(op string, address uint16) {
	if s.reported[address] {
		return
	}
	s.reported[address] = true
	slog.Debug("audio register access ignored", "op", op, "addr", fmt.Sprintf("0x%04X", address))
}

package cpu

import "math/bits"

// testBus is a flat 64KiB memory with a minimal interrupt controller.
type testBus struct {
	memory   [0x10000]uint8
	accesses int
	enabled  uint8
	pending  uint8
}

func (b *testBus) Read(address uint16) uint8 {
	b.accesses++
	return b.memory[address]
}

func (b *testBus) Write(address uint16, value uint8) {
	b.accesses++
	b.memory[address] = value
}

func (b *testBus) AckInterrupt() (uint16, bool) {
	active := b.enabled & b.pending & 0x1F
	if active == 0 {
		return 0, false
	}
	lowest := active & -active
	b.pending &^= lowest
	return 0x40 + 8*uint16(bits.TrailingZeros8(lowest)), true
}

func (b *testBus) PendingInterrupt() bool {
	return b.enabled&b.pending&0x1F != 0
}

// newTestCPU loads program at 0x0100 and returns a post-boot CPU.
func newTestCPU(program ...uint8) (*CPU, *testBus) {
	bus := &testBus{}
	copy(bus.memory[0x100:], program)
	return NewPostBoot(), bus
}

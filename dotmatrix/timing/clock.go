// Package timing paces emulation against wall time.
package timing

import (
	"log/slog"
	"time"
)

const (
	// MachineFrequency is the DMG machine cycle rate, one bus access each.
	MachineFrequency = 1 << 20

	// CyclesPerFrame is the length of one video frame in machine cycles.
	CyclesPerFrame = 17556

	// reconcileInterval is how much emulated time passes between checks
	// against the wall clock.
	reconcileInterval = 5 * time.Millisecond

	// maxLag is how far behind wall time emulation may fall before the
	// clock gives up catching up and resynchronizes.
	maxLag = 100 * time.Millisecond
)

// Clock is told how many machine cycles each step consumed and may block to
// keep emulation near real hardware speed.
type Clock interface {
	Tick(cycles int)
}

// NoClock never sleeps, for headless runs and tests.
type NoClock struct{}

func (NoClock) Tick(int) {}

// FrameDuration returns the wall time of one emulated frame.
func FrameDuration() time.Duration {
	return CyclesDuration(CyclesPerFrame)
}

// CyclesDuration converts machine cycles to wall time.
func CyclesDuration(cycles uint64) time.Duration {
	seconds, rest := cycles/MachineFrequency, cycles%MachineFrequency
	return time.Duration(seconds)*time.Second + time.Duration(rest*uint64(time.Second)/MachineFrequency)
}

// WallClock sleeps whenever emulation runs ahead of wall time.
type WallClock struct {
	start   time.Time
	elapsed uint64 // cycles reconciled since start
	pending int

	now   func() time.Time
	sleep func(time.Duration)
}

func NewWallClock() *WallClock {
	c := &WallClock{now: time.Now, sleep: time.Sleep}
	c.Reset()
	return c
}

var cyclesPerReconcile = int(MachineFrequency * reconcileInterval / time.Second)

func (c *WallClock) Tick(cycles int) {
	c.pending += cycles
	if c.pending < cyclesPerReconcile {
		return
	}
	c.elapsed += uint64(c.pending)
	c.pending = 0

	target := c.start.Add(CyclesDuration(c.elapsed))
	ahead := target.Sub(c.now())
	switch {
	case ahead > 0:
		c.sleep(ahead)
	case ahead < -maxLag:
		slog.Debug("emulation behind wall time, resyncing", "lag", -ahead)
		c.Reset()
	}
}

// Reset forgets accumulated timing, e.g. after a pause.
func (c *WallClock) Reset() {
	c.start = c.now()
	c.elapsed = 0
	c.pending = 0
}

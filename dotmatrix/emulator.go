// Package dotmatrix composes the DMG: a CPU and an MMU side by side, the MMU
// owning every peripheral. The CPU is handed the bus on each step.
package dotmatrix

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-dotmatrix/dotmatrix/addr"
	"github.com/valerio/go-dotmatrix/dotmatrix/bit"
	"github.com/valerio/go-dotmatrix/dotmatrix/cpu"
	"github.com/valerio/go-dotmatrix/dotmatrix/memory"
	"github.com/valerio/go-dotmatrix/dotmatrix/timing"
	"github.com/valerio/go-dotmatrix/dotmatrix/video"
)

// BootROMSize is the length of the DMG boot ROM image.
const BootROMSize = 0x100

// ErrInvalidBootROM is returned when the boot image is not BootROMSize bytes.
var ErrInvalidBootROM = errors.New("invalid boot ROM")

type options struct {
	bootROM []byte
	clock   timing.Clock
	display video.Display
	serial  memory.SerialPort
}

type Option func(*options)

// WithBootROM starts execution at 0x0000 with boot mapped over the cartridge.
func WithBootROM(boot []byte) Option {
	return func(o *options) { o.bootROM = boot }
}

// WithClock paces emulation. The default never sleeps.
func WithClock(clock timing.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithDisplay adds a display receiving every pixel and vsync alongside the
// built-in frame buffer.
func WithDisplay(display video.Display) Option {
	return func(o *options) { o.display = display }
}

// WithSerialPort plugs a device into the link port in place of the logging sink.
func WithSerialPort(port memory.SerialPort) Option {
	return func(o *options) { o.serial = port }
}

// DMG is the whole machine.
type DMG struct {
	cpu    *cpu.CPU
	mmu    *memory.MMU
	frame  *video.FrameBuffer
	screen *screen
	clock  timing.Clock

	lcdOffWarned bool
}

// New loads rom and returns a machine ready to step.
func New(rom []byte, opts ...Option) (*DMG, error) {
	o := options{clock: timing.NoClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	if o.bootROM != nil && len(o.bootROM) != BootROMSize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidBootROM, len(o.bootROM), BootROMSize)
	}

	cart, err := memory.NewCartridge(rom)
	if err != nil {
		return nil, fmt.Errorf("load cartridge: %w", err)
	}

	d := &DMG{
		frame: video.NewFrameBuffer(),
		clock: o.clock,
	}
	d.screen = &screen{sinks: []video.Display{d.frame}}
	if o.display != nil {
		d.screen.sinks = append(d.screen.sinks, o.display)
	}

	d.mmu = memory.New(cart, d.screen)
	if o.serial != nil {
		d.mmu.ConnectSerial(o.serial)
	}

	if o.bootROM != nil {
		d.mmu.LoadBootROM(o.bootROM)
		d.cpu = cpu.New()
	} else {
		d.mmu.ApplyPostBootState()
		d.cpu = cpu.NewPostBoot()
	}

	return d, nil
}

// Step runs one instruction or interrupt dispatch, then reports the elapsed
// machine cycles to the clock.
func (d *DMG) Step() error {
	before := d.mmu.Ticks()
	err := d.cpu.Step(d.mmu)
	d.clock.Tick(int(d.mmu.Ticks() - before))
	return err
}

// RunUntilFrame steps until the next vsync. It gives up after one frame's
// worth of cycles so a program that keeps the LCD off still yields.
func (d *DMG) RunUntilFrame() error {
	start := d.mmu.Ticks()
	frames := d.screen.vsyncs

	for d.screen.vsyncs == frames {
		if err := d.Step(); err != nil {
			return err
		}
		if d.mmu.Ticks()-start >= video.FrameCycles {
			d.warnLCDOff()
			return nil
		}
	}
	d.lcdOffWarned = false
	return nil
}

func (d *DMG) warnLCDOff() {
	if d.lcdOffWarned || bit.IsSet(7, d.mmu.Peek(addr.LCDC)) {
		return
	}
	d.lcdOffWarned = true
	slog.Warn("frame ended without vsync, LCD is off", "pc", fmt.Sprintf("0x%04X", d.cpu.PC))
}

// ButtonDown and ButtonUp make the DMG an input.ButtonSink.
func (d *DMG) ButtonDown(key memory.JoypadKey) { d.mmu.ButtonDown(key) }

func (d *DMG) ButtonUp(key memory.JoypadKey) { d.mmu.ButtonUp(key) }

// Frame returns the built-in frame buffer.
func (d *DMG) Frame() *video.FrameBuffer { return d.frame }

// Frames returns the number of vsyncs so far.
func (d *DMG) Frames() uint64 { return d.screen.vsyncs }

// Ticks returns the number of machine cycles emulated so far.
func (d *DMG) Ticks() uint64 { return d.mmu.Ticks() }

func (d *DMG) Registers() cpu.Registers { return d.cpu.Snapshot() }

func (d *DMG) Cartridge() *memory.Cartridge { return d.mmu.Cartridge() }

// SerialOutput returns the bytes sent over the link port when the built-in
// logging sink is connected, nil otherwise.
func (d *DMG) SerialOutput() []byte {
	if port, ok := d.mmu.Serial().(interface{ Output() []byte }); ok {
		return port.Output()
	}
	return nil
}

// Bus exposes the MMU, mainly for tests and tooling. Its Read and Write
// advance time like CPU accesses do; use Peek to inspect without ticking.
func (d *DMG) Bus() *memory.MMU { return d.mmu }

// screen fans pixels out to every attached display and counts vsyncs.
type screen struct {
	sinks  []video.Display
	vsyncs uint64
}

func (s *screen) SetPixel(x, y int, c video.Color) {
	for _, sink := range s.sinks {
		sink.SetPixel(x, y, c)
	}
}

func (s *screen) VSync() {
	s.vsyncs++
	for _, sink := range s.sinks {
		sink.VSync()
	}
}

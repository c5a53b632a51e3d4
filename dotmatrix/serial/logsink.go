// Package serial holds devices that can sit on the other end of the link
// port (SB/SC).
package serial

import (
	"log/slog"

	"github.com/valerio/go-dotmatrix/dotmatrix/addr"
	"github.com/valerio/go-dotmatrix/dotmatrix/bit"
)

// transferTicks is the length of one internally clocked byte transfer, in
// bus accesses (8192 Hz bit clock, 8 bits).
const transferTicks = 1024

// LogSink is a serial device with nothing plugged in on the other side: it
// logs outgoing bytes as text, one line at a time, and shifts in 0xFF.
// Test ROMs commonly report results this way.
type LogSink struct {
	irq    func()
	logger *slog.Logger

	sb, sc    uint8
	active    bool
	countdown int

	immediate bool
	line      []byte
	sent      []byte
}

type LogSinkOption func(*LogSink)

// WithFixedTiming completes transfers after transferTicks instead of right
// away.
func WithFixedTiming() LogSinkOption { return func(s *LogSink) { s.immediate = false } }

// WithLogger routes the serial output to logger instead of slog.Default.
func WithLogger(logger *slog.Logger) LogSinkOption { return func(s *LogSink) { s.logger = logger } }

// NewLogSink creates a sink that calls irq whenever a transfer completes.
func NewLogSink(irq func(), opts ...LogSinkOption) *LogSink {
	s := &LogSink{
		irq:       irq,
		logger:    slog.Default(),
		immediate: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LogSink) Read(address uint16) uint8 {
	if address == addr.SC {
		return s.sc | 0x7E
	}
	return s.sb
}

func (s *LogSink) Write(address uint16, value uint8) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value & 0x81
		s.start()
	}
}

// Tick advances a pending fixed-timing transfer.
func (s *LogSink) Tick(ticks int) {
	if !s.active {
		return
	}
	s.countdown -= ticks
	if s.countdown <= 0 {
		s.complete()
	}
}

// Output returns every byte sent so far.
func (s *LogSink) Output() []byte {
	return s.sent
}

func (s *LogSink) start() {
	// only the internal clock drives a transfer, nobody provides an external one
	if s.active || !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	b := s.sb
	s.sent = append(s.sent, b)
	if b == 0 || b == '\n' || b == '\r' {
		s.flush()
	} else {
		s.line = append(s.line, b)
	}

	if s.immediate {
		s.complete()
		return
	}
	s.active = true
	s.countdown = transferTicks
}

func (s *LogSink) flush() {
	if len(s.line) == 0 {
		return
	}
	s.logger.Info("serial", "line", string(s.line))
	s.line = s.line[:0]
}

func (s *LogSink) complete() {
	s.sb = 0xFF
	s.sc = bit.Reset(7, s.sc)
	s.active = false
	s.countdown = 0
	if s.irq != nil {
		s.irq()
	}
}

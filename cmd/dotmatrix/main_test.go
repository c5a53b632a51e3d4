package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-dotmatrix/dotmatrix"
	"github.com/valerio/go-dotmatrix/dotmatrix/backend"
	"github.com/valerio/go-dotmatrix/dotmatrix/input/action"
	"github.com/valerio/go-dotmatrix/dotmatrix/input/event"
	"github.com/valerio/go-dotmatrix/dotmatrix/timing"
	"github.com/valerio/go-dotmatrix/dotmatrix/video"
)

func writeROM(t *testing.T, program ...byte) string {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[0x134:], "CLITEST")
	copy(rom[0x100:], program)

	path := filepath.Join(t.TempDir(), "clitest.gb")
	require.NoError(t, os.WriteFile(path, rom, 0o644))
	return path
}

func TestHeadlessRun(t *testing.T) {
	rom := writeROM(t, 0x18, 0xFE)
	dir := t.TempDir()

	err := newApp().Run([]string{"dotmatrix", "--headless", "--frames", "3",
		"--snapshot-interval", "2", "--snapshot-dir", dir, "--log-level", "warn", rom})
	require.NoError(t, err)

	for _, name := range []string{"clitest_frame_2.png", "clitest_frame_3.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestRunErrors(t *testing.T) {
	rom := writeROM(t, 0x18, 0xFE)
	crash := writeROM(t, 0xD3)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no rom", args: []string{"--headless", "--frames", "1"}},
		{name: "missing file", args: []string{"--headless", "--frames", "1", "/nonexistent/rom.gb"}},
		{name: "headless without frames", args: []string{"--headless", rom}},
		{name: "bad log level", args: []string{"--log-level", "loud", rom}},
		{name: "unknown backend", args: []string{"--backend", "vga", rom}},
		{name: "short boot rom", args: []string{"--headless", "--frames", "1", "--boot-rom", rom, rom}},
		{name: "unknown opcode", args: []string{"--headless", "--frames", "1", crash}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newApp().Run(append([]string{"dotmatrix"}, tt.args...))
			assert.Error(t, err)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	level, err := parseLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", level.String())

	_, err = parseLogLevel("verbose")
	assert.Error(t, err)
}

// scriptedBackend replays one batch of events per update.
type scriptedBackend struct {
	script  [][]backend.InputEvent
	updates int
}

func (b *scriptedBackend) Init(backend.Config) error { return nil }

func (b *scriptedBackend) Update(*video.FrameBuffer) ([]backend.InputEvent, error) {
	defer func() { b.updates++ }()
	if b.updates < len(b.script) {
		return b.script[b.updates], nil
	}
	return []backend.InputEvent{backend.Quit}, nil
}

func (b *scriptedBackend) Cleanup() error { return nil }

func TestSessionPauseAndStep(t *testing.T) {
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], []byte{0x18, 0xFE})
	emu, err := dotmatrix.New(rom)
	require.NoError(t, err)

	press := func(act action.Action) []backend.InputEvent {
		return []backend.InputEvent{{Action: act, Type: event.Press}}
	}
	be := &scriptedBackend{script: [][]backend.InputEvent{
		press(action.EmulatorPauseToggle),
		nil,
		press(action.EmulatorStepFrame),
		nil,
	}}

	s := newSession(emu, be, timing.NoClock{}, "test")
	require.NoError(t, s.run())

	// one frame before pausing, one stepped while paused
	assert.Equal(t, uint64(2), emu.Frames())
	assert.Equal(t, 5, be.updates)
	assert.True(t, s.paused)
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli"
	"github.com/valerio/go-dotmatrix/dotmatrix"
	"github.com/valerio/go-dotmatrix/dotmatrix/backend"
	"github.com/valerio/go-dotmatrix/dotmatrix/backend/headless"
	"github.com/valerio/go-dotmatrix/dotmatrix/backend/sdl2"
	"github.com/valerio/go-dotmatrix/dotmatrix/backend/terminal"
	"github.com/valerio/go-dotmatrix/dotmatrix/debug"
	"github.com/valerio/go-dotmatrix/dotmatrix/input"
	"github.com/valerio/go-dotmatrix/dotmatrix/input/action"
	"github.com/valerio/go-dotmatrix/dotmatrix/input/event"
	"github.com/valerio/go-dotmatrix/dotmatrix/statsview"
	"github.com/valerio/go-dotmatrix/dotmatrix/timing"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("emulator stopped", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "dotmatrix"
	app.Description = "A cycle synchronized DMG emulator"
	app.Usage = "dotmatrix [options] <ROM file>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without any output, for a fixed number of frames",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save a PNG every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory for PNG snapshots (default: temp directory)",
		},
		cli.StringFlag{
			Name:  "boot-rom",
			Usage: "Path to a 256 byte DMG boot ROM, run before the cartridge",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Output backend: terminal or sdl2",
			Value: "terminal",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Window scale for the sdl2 backend",
			Value: 4,
		},
		cli.BoolFlag{
			Name:  "no-throttle",
			Usage: "Run as fast as possible instead of at DMG speed",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn or error",
			Value: "info",
		},
		cli.BoolFlag{
			Name:  "statsview",
			Usage: "Serve runtime statistics over HTTP (needs the statsview build tag)",
		},
	}
	app.Action = runEmulator
	return app
}

func runEmulator(c *cli.Context) error {
	level, err := parseLogLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() == 0 {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
		romPath = c.Args().First()
	}

	if c.Bool("headless") && c.Int("frames") <= 0 {
		return errors.New("headless mode requires --frames option with a positive value")
	}

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("read ROM: %w", err)
	}

	var opts []dotmatrix.Option
	if path := c.String("boot-rom"); path != "" {
		boot, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read boot ROM: %w", err)
		}
		opts = append(opts, dotmatrix.WithBootROM(boot))
	}

	var clock timing.Clock = timing.NoClock{}
	if !c.Bool("headless") && !c.Bool("no-throttle") {
		clock = timing.NewWallClock()
	}
	opts = append(opts, dotmatrix.WithClock(clock))

	emu, err := dotmatrix.New(rom, opts...)
	if err != nil {
		return err
	}

	be, err := createBackend(c, romPath, level)
	if err != nil {
		return err
	}

	if c.Bool("statsview") {
		statsview.Launch(os.Stderr, statsview.DefaultAddress)
	}

	s := newSession(emu, be, clock, romName(romPath))
	s.snapshotDir = c.String("snapshot-dir")

	if err := be.Init(backend.Config{Title: windowTitle(emu), Scale: c.Int("scale")}); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer be.Cleanup()

	return s.run()
}

func createBackend(c *cli.Context, romPath string, level slog.Level) (backend.Backend, error) {
	if c.Bool("headless") {
		snapshots, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath)
		if err != nil {
			return nil, err
		}
		return headless.New(c.Int("frames"), snapshots), nil
	}

	switch name := c.String("backend"); name {
	case "terminal":
		return terminal.New(terminal.WithLogLevel(level)), nil
	case "sdl2":
		if !sdl2.Available() {
			return nil, sdl2.ErrUnavailable
		}
		return sdl2.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

func romName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func windowTitle(emu *dotmatrix.DMG) string {
	if title := emu.Cartridge().Title; title != "" {
		return "dotmatrix - " + title
	}
	return "dotmatrix"
}

// session is the frame loop tying the emulator to a backend.
type session struct {
	emu     *dotmatrix.DMG
	backend backend.Backend
	input   *input.Manager
	clock   timing.Clock

	romName     string
	snapshotDir string

	paused    bool
	stepFrame bool
	quit      bool
}

func newSession(emu *dotmatrix.DMG, be backend.Backend, clock timing.Clock, rom string) *session {
	s := &session{
		emu:     emu,
		backend: be,
		input:   input.NewManager(emu),
		clock:   clock,
		romName: rom,
	}

	s.input.On(action.EmulatorQuit, event.Press, func() { s.quit = true })
	s.input.On(action.EmulatorPauseToggle, event.Press, s.togglePause)
	s.input.On(action.EmulatorStepFrame, event.Press, func() {
		if s.paused {
			s.stepFrame = true
		}
	})
	s.input.On(action.EmulatorSnapshot, event.Press, s.snapshot)
	return s
}

func (s *session) run() error {
	for !s.quit {
		if !s.paused || s.stepFrame {
			if err := s.emu.RunUntilFrame(); err != nil {
				return err
			}
			s.stepFrame = false
		} else {
			time.Sleep(timing.FrameDuration())
		}

		events, err := s.backend.Update(s.emu.Frame())
		if err != nil {
			return fmt.Errorf("backend update: %w", err)
		}
		for _, ev := range events {
			s.input.Trigger(ev.Action, ev.Type)
		}
	}
	slog.Info("emulation finished", "frames", s.emu.Frames(), "cycles", s.emu.Ticks())
	return nil
}

func (s *session) togglePause() {
	s.paused = !s.paused
	if !s.paused {
		// don't try to catch up on the time spent paused
		if r, ok := s.clock.(interface{ Reset() }); ok {
			r.Reset()
		}
	}
	slog.Info("pause toggled", "paused", s.paused)
}

func (s *session) snapshot() {
	dir := s.snapshotDir
	if dir == "" {
		dir = "."
	}
	name := fmt.Sprintf("%s_frame_%d", s.romName, s.emu.Frames())
	path, err := debug.SavePNG(s.emu.Frame(), dir, name)
	if err != nil {
		slog.Warn("failed to save snapshot", "error", err)
		return
	}
	slog.Info("saved snapshot", "path", path)
}

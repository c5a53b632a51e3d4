package terminal

import (
	"log/slog"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-dotmatrix/dotmatrix/backend"
	"github.com/valerio/go-dotmatrix/dotmatrix/input/action"
	"github.com/valerio/go-dotmatrix/dotmatrix/input/event"
	"github.com/valerio/go-dotmatrix/dotmatrix/video"
)

var _ backend.Backend = (*Backend)(nil)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time           { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBackend(t *testing.T) (*Backend, tcell.SimulationScreen, *testClock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	clock := &testClock{t: time.Unix(0, 0)}

	b := New(WithScreen(screen), WithLogLevel(slog.LevelDebug))
	b.now = clock.now
	require.NoError(t, b.Init(backend.Config{Title: "test"}))
	t.Cleanup(func() { b.Cleanup() })

	screen.SetSize(200, 80)
	return b, screen, clock
}

func TestButtonPressHoldRelease(t *testing.T) {
	b, screen, clock := newTestBackend(t)
	frame := video.NewFrameBuffer()

	screen.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)
	events, err := b.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, []backend.InputEvent{{Action: action.DMGButtonA, Type: event.Press}}, events)

	clock.advance(50 * time.Millisecond)
	events, err = b.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, []backend.InputEvent{{Action: action.DMGButtonA, Type: event.Hold}}, events)

	clock.advance(keyTimeout)
	events, err = b.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, []backend.InputEvent{{Action: action.DMGButtonA, Type: event.Release}}, events)

	events, err = b.Update(frame)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDirectionReplacesPrevious(t *testing.T) {
	b, screen, clock := newTestBackend(t)
	frame := video.NewFrameBuffer()

	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	_, err := b.Update(frame)
	require.NoError(t, err)

	clock.advance(10 * time.Millisecond)
	screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	events, err := b.Update(frame)
	require.NoError(t, err)
	assert.ElementsMatch(t, []backend.InputEvent{
		{Action: action.DMGDPadLeft, Type: event.Press},
		{Action: action.DMGDPadUp, Type: event.Release},
	}, events)
}

func TestEmulatorActionsAreOneShot(t *testing.T) {
	b, screen, _ := newTestBackend(t)
	frame := video.NewFrameBuffer()

	screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	events, err := b.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, []backend.InputEvent{{Action: action.EmulatorPauseToggle, Type: event.Press}}, events)

	events, err = b.Update(frame)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestCtrlCQuits(t *testing.T) {
	b, screen, _ := newTestBackend(t)

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	events, err := b.Update(video.NewFrameBuffer())
	require.NoError(t, err)
	assert.Contains(t, events, backend.Quit)
}

func TestUnmappedKeyIgnored(t *testing.T) {
	b, screen, _ := newTestBackend(t)

	screen.InjectKey(tcell.KeyRune, 'k', tcell.ModNone)
	events, err := b.Update(video.NewFrameBuffer())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRenderHalfBlocks(t *testing.T) {
	b, screen, _ := newTestBackend(t)

	frame := video.NewFrameBuffer()
	frame.SetPixel(3, 0, video.Black)
	frame.SetPixel(3, 1, video.LightGray)
	frame.VSync()

	_, err := b.Update(frame)
	require.NoError(t, err)

	cells, w, _ := screen.GetContents()
	cell := cells[1*w+3]
	require.NotEmpty(t, cell.Runes)
	assert.Equal(t, halfBlock, cell.Runes[0])
	fg, bg, _ := cell.Style.Decompose()
	assert.Equal(t, tcell.ColorBlack, fg)
	assert.Equal(t, tcell.ColorSilver, bg)

	fg, bg, _ = cells[1*w+4].Style.Decompose()
	assert.Equal(t, tcell.ColorWhite, fg)
	assert.Equal(t, tcell.ColorWhite, bg)
}

func TestLogsCaptured(t *testing.T) {
	b, _, _ := newTestBackend(t)

	slog.Warn("cartridge trouble", "bank", 3)
	recent := b.Logs().Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, slog.LevelWarn, recent[0].Level)
	assert.Equal(t, "cartridge trouble bank=3", recent[0].Message)
}

func TestLogBufferWraps(t *testing.T) {
	buf := NewLogBuffer(3)
	for i, msg := range []string{"a", "b", "c", "d"} {
		buf.Add(LogEntry{Time: time.Unix(int64(i), 0), Message: msg})
	}

	assert.Equal(t, 3, buf.Len())
	recent := buf.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "d", recent[0].Message)
	assert.Equal(t, "b", recent[2].Message)
	assert.Len(t, buf.Recent(2), 2)
}

func TestLogHandlerAttrsAndGroups(t *testing.T) {
	buf := NewLogBuffer(4)
	logger := slog.New(NewLogHandler(buf, slog.LevelInfo)).With("rom", "tetris").WithGroup("mbc")

	logger.Debug("dropped")
	logger.Info("switch", "bank", 2)

	recent := buf.Recent(0)
	require.Len(t, recent, 1)
	assert.Equal(t, "switch rom=tetris mbc.bank=2", recent[0].Message)
}

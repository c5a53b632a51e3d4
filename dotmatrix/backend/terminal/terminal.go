// Package terminal renders frames in a terminal with tcell, two pixels per
// character cell using half blocks.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-dotmatrix/dotmatrix/backend"
	"github.com/valerio/go-dotmatrix/dotmatrix/input"
	"github.com/valerio/go-dotmatrix/dotmatrix/input/action"
	"github.com/valerio/go-dotmatrix/dotmatrix/input/event"
	"github.com/valerio/go-dotmatrix/dotmatrix/video"
)

const (
	width  = video.FramebufferWidth
	height = video.FramebufferHeight

	minTermWidth  = width + 2
	minTermHeight = height/2 + 2

	logCapacity = 200
	halfBlock   = '▀'
)

// Terminals only report key presses, never releases. A button counts as held
// until no repeat has arrived for keyTimeout.
const keyTimeout = 100 * time.Millisecond

var shades = [4]tcell.Color{
	video.White:     tcell.ColorWhite,
	video.LightGray: tcell.ColorSilver,
	video.DarkGray:  tcell.ColorGray,
	video.Black:     tcell.ColorBlack,
}

type Option func(*Backend)

// WithScreen uses screen instead of the process terminal.
func WithScreen(screen tcell.Screen) Option {
	return func(t *Backend) { t.screen = screen }
}

// WithLogLevel sets the minimum level captured in the log panel.
func WithLogLevel(level slog.Level) Option {
	return func(t *Backend) { t.logLevel = level }
}

type Backend struct {
	screen   tcell.Screen
	title    string
	logs     *LogBuffer
	logLevel slog.Level
	previous *slog.Logger

	pressed map[action.Action]time.Time // last time a button key was seen
	held    map[action.Action]bool      // buttons reported down last update
	queue   []backend.InputEvent        // one shot actions since last update

	signals chan os.Signal
	quit    chan struct{}
	now     func() time.Time
}

func New(opts ...Option) *Backend {
	t := &Backend{
		logs:     NewLogBuffer(logCapacity),
		logLevel: slog.LevelInfo,
		pressed:  make(map[action.Action]time.Time),
		held:     make(map[action.Action]bool),
		quit:     make(chan struct{}, 1),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Backend) Init(config backend.Config) error {
	t.title = config.Title
	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.previous = slog.Default()
	slog.SetDefault(slog.New(NewLogHandler(t.logs, t.logLevel)))

	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go t.handleSignals(t.signals)

	slog.Info("terminal backend initialized", "title", t.title)
	return nil
}

func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	now := t.now()

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKey(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	select {
	case <-t.quit:
		t.queue = append(t.queue, backend.Quit)
	default:
	}

	events := t.buttonEvents(now)
	events = append(events, t.queue...)
	t.queue = nil

	t.render(frame)
	t.screen.Show()
	return events, nil
}

func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
		close(t.signals)
		t.signals = nil
	}
	if t.previous != nil {
		slog.SetDefault(t.previous)
		t.previous = nil
	}
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

// Logs exposes the captured log records.
func (t *Backend) Logs() *LogBuffer { return t.logs }

func (t *Backend) handleSignals(signals <-chan os.Signal) {
	if _, ok := <-signals; !ok {
		return
	}
	select {
	case t.quit <- struct{}{}:
	default:
	}
}

// buttonEvents turns key timestamps into Press, Hold and Release events.
func (t *Backend) buttonEvents(now time.Time) []backend.InputEvent {
	var events []backend.InputEvent
	active := make(map[action.Action]bool, len(t.pressed))

	for act, last := range t.pressed {
		if now.Sub(last) >= keyTimeout {
			delete(t.pressed, act)
			continue
		}
		active[act] = true
		kind := event.Hold
		if !t.held[act] {
			kind = event.Press
		}
		events = append(events, backend.InputEvent{Action: act, Type: kind})
	}

	for act := range t.held {
		if !active[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}
	t.held = active
	return events
}

func (t *Backend) processKey(ev *tcell.EventKey, now time.Time) {
	if ev.Key() == tcell.KeyCtrlC {
		t.queue = append(t.queue, backend.Quit)
		return
	}

	var name string
	if ev.Key() == tcell.KeyRune {
		name = runeNames[ev.Rune()]
	} else {
		name = keyNames[ev.Key()]
	}
	act, ok := input.Lookup(name)
	if !ok {
		return
	}

	if !act.IsButton() {
		t.queue = append(t.queue, backend.InputEvent{Action: act, Type: event.Press})
		return
	}

	// a terminal can't hold two arrows, so a new direction replaces the old one
	if isDirection(act) {
		for _, dir := range []action.Action{action.DMGDPadUp, action.DMGDPadDown, action.DMGDPadLeft, action.DMGDPadRight} {
			delete(t.pressed, dir)
		}
	}
	t.pressed[act] = now
}

func isDirection(act action.Action) bool {
	return act >= action.DMGDPadUp && act <= action.DMGDPadRight
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:  "Enter",
	tcell.KeyUp:     "Up",
	tcell.KeyDown:   "Down",
	tcell.KeyLeft:   "Left",
	tcell.KeyRight:  "Right",
	tcell.KeyEscape: "Escape",
	tcell.KeyF9:     "F9",
	tcell.KeyTab:    "Shift", // terminals don't report a lone shift
}

var runeNames = map[rune]string{
	'z': "z",
	'x': "x",
	'w': "w",
	's': "s",
	'a': "a",
	'd': "d",
	'p': "p",
	'f': "f",
	'q': "q",
	' ': "Space",
}

func (t *Backend) render(frame *video.FrameBuffer) {
	t.screen.Clear()

	termWidth, termHeight := t.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		msg := fmt.Sprintf("terminal too small, need %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	t.drawText(1, 0, width, " "+t.title+" ", titleStyle)
	t.drawFrame(frame)

	panelX := width + 1
	border := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for y := 0; y < termHeight; y++ {
		t.screen.SetContent(width, y, '│', nil, border)
	}
	t.drawText(panelX+1, 0, termWidth-panelX, " Logs ", titleStyle)
	t.drawLogs(panelX, 1, termWidth-panelX, termHeight-2)

	help := " arrows/wasd=dpad z=A x=B enter=start tab=select space=pause f=frame F9=snapshot q=quit "
	t.drawText(0, termHeight-1, termWidth, help, border)
}

// drawFrame packs two rows per cell: the upper pixel is the foreground of a
// half block, the lower one its background.
func (t *Backend) drawFrame(frame *video.FrameBuffer) {
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := shades[frame.GetPixel(x, y)]
			bottom := shades[frame.GetPixel(x, y+1)]
			t.screen.SetContent(x, y/2+1, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
}

func (t *Backend) drawLogs(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	for i, entry := range t.logs.Recent(h) {
		style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
		switch {
		case entry.Level >= slog.LevelError:
			style = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
		case entry.Level >= slog.LevelWarn:
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
		case entry.Level < slog.LevelInfo:
			style = tcell.StyleDefault.Foreground(tcell.ColorGray)
		}
		t.drawText(x, y+i, w, entry.String(), style)
	}
}

func (t *Backend) drawText(x, y, w int, text string, style tcell.Style) {
	col := 0
	for _, ch := range text {
		if col >= w {
			return
		}
		t.screen.SetContent(x+col, y, ch, nil, style)
		col++
	}
}

package cyclorama

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	Co "github.com/maroda/cyclorama/obvy"
	Cp "github.com/maroda/cyclorama/plugin"
	Cs "github.com/maroda/cyclorama/server"
	Ct "github.com/maroda/cyclorama/types"
)

const (
	defaultFPS      = 60
	shutdownTimeout = 5 * time.Second
)

// View draws the Timeline and turns terminal input into Timeline calls.
// Lock order is View.MU before Timeline.MU, never the reverse.
type View struct {
	MU         sync.Mutex        // State locks for hit regions and hover
	Timeline   *Cs.Timeline      // The timeline being shown
	Screen     tcell.Screen      // the screen itself, nil when headless
	Stats      *Co.StatsInternal // Internal status for prometheus
	Output     Cp.OutputAdapter  // Optional journal for issued tweens
	Journal    *Journal          // Writes to Output off the Timeline lock
	Supervisor *FrameSupervisor  // Ticks the timeline
	FPS        int               // Frames per second
	server     *http.Server      // API, websocket and metrics server
	hovered    int               // Point under the mouse, -1 for none
	lastTick   time.Time         // Only touched by the ticking goroutine
	navPrev    rect              // Outer prev button
	navNext    rect              // Outer next button
	evPrev     rect              // Event strip back
	evNext     rect              // Event strip forward
}

// NewView wires a Timeline to stats and tracing.
// screen may be nil to run without a terminal.
func NewView(tl *Cs.Timeline, screen tcell.Screen, fps int) (*View, error) {
	if tl == nil {
		slog.Error("Could not get a Timeline for display")
		return nil, errors.New("timeline not found")
	}
	if fps <= 0 {
		fps = defaultFPS
	}

	view := &View{
		Timeline: tl,
		Screen:   screen,
		Stats:    Co.NewStatsInternal(),
		FPS:      fps,
		hovered:  -1,
	}
	view.wire()
	return view, nil
}

// wire registers the Timeline hooks.
// They run under the Timeline lock, so none of them call back into it.
func (v *View) wire() {
	v.Timeline.OnSlide(func(index int) {
		v.Stats.RecSlide(index)
		_, span := Co.Tracer().Start(context.Background(), "slide.change",
			trace.WithAttributes(attribute.Int("index", index)))
		span.End()
	})
	v.Timeline.OnDropped(v.Stats.RecDropped)
	v.Timeline.AddSink(func(cmd Ct.TweenCommand) {
		v.Stats.RecTween(string(cmd.Property), cmd.Retarget)
		if v.Journal != nil {
			v.Journal.Record(cmd)
		}
	})
}

// StartJournal begins writing issued tweens to Output, a no-op without one
func (v *View) StartJournal() {
	if v.Output == nil || v.Journal != nil {
		return
	}
	j := NewJournal(v.Output, journalQueue)
	j.OnDrop = v.Stats.RecJournalDropped
	j.Start()
	v.Journal = j
}

func (v *View) frameInterval() time.Duration {
	fps := v.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

// Step advances the timeline by dt and redraws
func (v *View) Step(dt time.Duration) {
	start := time.Now()
	v.Timeline.Tick(dt)
	if v.Screen != nil {
		v.UpdateScreen()
	}
	v.Stats.RecFrameTimer(time.Since(start))
}

// TickFrame steps by the wall time since the last frame
func (v *View) TickFrame() {
	now := time.Now()
	dt := v.frameInterval()
	if !v.lastTick.IsZero() {
		dt = now.Sub(v.lastTick)
	}
	v.lastTick = now
	v.Step(dt)
}

// GetScreenSize provides the terminal size for drawing
func (v *View) GetScreenSize() (int, int) {
	width, height := v.Screen.Size()
	return width, height
}

// ResizeScreen redraws after terminal changes
func (v *View) ResizeScreen() {
	v.Screen.Sync()
	v.UpdateScreen()
}

func (v *View) UpdateScreen() {
	v.MU.Lock()
	defer v.MU.Unlock()

	width, height := v.GetScreenSize()
	v.Screen.Clear()
	WriteBar(v.Screen, 0, 0, width, height, v.baseStyle())
	v.DrawTimelineView()
	v.Screen.Show()
}

// pointAt returns the index of the ring point covering (x, y), or -1
func (v *View) pointAt(x, y int) int {
	width, height := v.GetScreenSize()
	l := calcLayout(width, height)
	f := v.Timeline.Frame()

	for i, pf := range f.Points {
		cx, cy := l.pointCell(pf, f.RotationDegrees)
		rx := max(1, int(math.Ceil(pf.Radius*l.sx)))
		ry := max(0, int(math.Ceil(pf.Radius*l.sy)))
		if abs(x-cx) <= rx && abs(y-cy) <= ry {
			return i
		}
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// HandleMouseClick routes a click to a button or a ring point
func (v *View) HandleMouseClick(x, y int) {
	v.MU.Lock()
	var action func() bool
	switch {
	case v.navPrev.contains(x, y):
		action = v.Timeline.Prev
	case v.navNext.contains(x, y):
		action = v.Timeline.Next
	case v.evPrev.contains(x, y):
		action = v.Timeline.EventsPrev
	case v.evNext.contains(x, y):
		action = v.Timeline.EventsNext
	default:
		if i := v.pointAt(x, y); i >= 0 {
			action = func() bool { return v.Timeline.PointClick(i) }
		}
	}
	v.MU.Unlock()

	if action != nil {
		action()
	}
}

// HandleMouseMove turns pointer motion into hover enter and exit
func (v *View) HandleMouseMove(x, y int) {
	v.MU.Lock()
	i := v.pointAt(x, y)
	prev := v.hovered
	v.hovered = i
	v.MU.Unlock()

	if i == prev {
		return
	}
	if prev >= 0 {
		v.Timeline.Hover(prev, false)
	}
	if i >= 0 {
		v.Timeline.Hover(i, true)
	}
}

// HandleKey returns true when the key asks to quit
func (v *View) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.Timeline.Prev()
	case tcell.KeyRight:
		v.Timeline.Next()
	case tcell.KeyUp:
		v.Timeline.EventsPrev()
	case tcell.KeyDown:
		v.Timeline.EventsNext()
	case tcell.KeyRune:
		if n, err := strconv.Atoi(string(ev.Rune())); err == nil && n >= 1 {
			v.Timeline.PointClick(n - 1)
		}
	}
	return false
}

// Running Loop to handle events, returns on quit
func (v *View) handleKeyBoardEvent() {
	for {
		ev := v.Screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.ResizeScreen()
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			x, y := ev.Position()
			switch ev.Buttons() {
			case tcell.Button1:
				v.HandleMouseClick(x, y)
			case tcell.ButtonNone:
				v.HandleMouseMove(x, y)
			}
		}
	}
}

// RespWriter is a wrapper with StatsMiddleware, used for Prometheus
type RespWriter struct {
	http.ResponseWriter
	Status int
}

// WriteHeader is a helper for StatsMiddleware, used for Prometheus
func (w *RespWriter) WriteHeader(status int) {
	w.Status = status
	w.ResponseWriter.WriteHeader(status)
}

func (v *View) StatsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &RespWriter{
			ResponseWriter: w,
			Status:         200,
		}
		next.ServeHTTP(wrapped, r)
		v.Stats.RecWWW(strconv.Itoa(wrapped.Status), r.Method)
	})
}

// Shutdown stops ticking and serving and releases everything held
func (v *View) Shutdown() {
	if v.Supervisor != nil {
		v.Supervisor.Stop()
	}
	if v.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := v.server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown failed", slog.Any("Error", err))
		}
	}
	v.Timeline.Unmount()
	if v.Journal != nil {
		v.Journal.Stop()
	}
	if v.Output != nil {
		if err := v.Output.Close(); err != nil {
			slog.Error("Output close failed", slog.Any("Error", err))
		}
	}
	if v.Screen != nil {
		v.Screen.Fini()
	}
}

// buildView is shared by both start modes
func buildView(c *Cs.ConfigFile, periods []Ct.Period, screen tcell.Screen) (*View, error) {
	theme, err := c.BuildTheme()
	if err != nil {
		slog.Error("Invalid theme", slog.Any("Error", err))
		return nil, err
	}

	tl, err := Cs.NewTimeline(periods, theme)
	if err != nil {
		slog.Error("Failed to build timeline", slog.Any("Error", err))
		return nil, err
	}

	view, err := NewView(tl, screen, c.FPS)
	if err != nil {
		return nil, err
	}

	// A broken output is logged, the timeline runs without it
	if err := InitOutput(view, c.Output); err != nil {
		slog.Error("Output not enabled", slog.String("output", c.Output), slog.Any("Error", err))
	}

	view.server = &http.Server{
		Addr:    c.Addr,
		Handler: otelhttp.NewHandler(view.SetupMux(), "cyclorama"),
	}

	tl.Mount()
	view.NewFrameSupervisor().Start()
	return view, nil
}

// StartTimelineView is called by main to run the program in the terminal.
// The API, websocket and /metrics endpoints run alongside.
func StartTimelineView(c *Cs.ConfigFile, periods []Ct.Period) error {
	screen, err := GetTTY()
	if err != nil {
		return err
	}

	view, err := buildView(c, periods, screen)
	if err != nil {
		screen.Fini()
		return err
	}
	defer view.Shutdown()

	go func() {
		slog.Info("Starting Cyclorama web endpoint...", slog.String("Port", c.Addr))
		if err := view.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not start web endpoint", slog.Any("Error", err))
		}
	}()

	view.handleKeyBoardEvent()
	return nil
}

// StartWebNoTUI runs headless, driven only through the API and websocket
func StartWebNoTUI(c *Cs.ConfigFile, periods []Ct.Period) error {
	view, err := buildView(c, periods, nil)
	if err != nil {
		return err
	}
	defer view.Shutdown()

	slog.Info("Starting Cyclorama web server...", slog.String("Port", c.Addr))
	if err := view.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Could not start web server", slog.Any("Error", err))
		return err
	}
	return nil
}

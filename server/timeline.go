package cyclorama

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	Ct "github.com/maroda/cyclorama/types"
)

var (
	ErrNotMounted = errors.New("timeline not mounted")
	ErrIndexRange = errors.New("index out of range")
	ErrRefused    = errors.New("navigation refused")
)

// Timeline wires the slider to the ring and the year counters.
// The active index is only ever written by the slider's slide-change
// notification; clicks on the ring ask the slider to move instead.
type Timeline struct {
	MU      sync.Mutex // serializes input, ticks and frame reads
	periods []Ct.Period
	theme   Theme
	engine  *Engine
	ring    *RingController
	first   *Counter
	last    *Counter
	lock    *TransitionLock
	slider  *Carousel
	strips  []*EventStrip
	active  int
	mounted bool

	onSlide   []func(index int)
	onDropped []func(direction string)
}

// NewTimeline validates its inputs and builds every controller unmounted
func NewTimeline(periods []Ct.Period, theme Theme) (*Timeline, error) {
	if err := ValidatePeriods(periods); err != nil {
		return nil, err
	}
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}

	engine := NewEngine()
	slider := NewCarousel(len(periods), theme.Duration)
	strips := make([]*EventStrip, len(periods))
	for i, p := range periods {
		strips[i] = NewEventStrip(p.Events)
	}

	t := &Timeline{
		periods: periods,
		theme:   theme,
		engine:  engine,
		ring:    NewRingController(theme, engine, periods),
		first:   NewCounter("first", theme, engine),
		last:    NewCounter("last", theme, engine),
		lock:    NewTransitionLock(slider),
		slider:  slider,
		strips:  strips,
	}
	slider.SetListener(sliderEvents{t: t})
	return t, nil
}

// sliderEvents keeps the slider callbacks off the exported, locking API.
// The slider is only ever driven from inside a locked Timeline method.
type sliderEvents struct {
	t *Timeline
}

func (s sliderEvents) SlideChange(index int) { s.t.slideChanged(index) }
func (s sliderEvents) TransitionStart()      { s.t.lock.Start() }
func (s sliderEvents) TransitionEnd()        { s.t.lock.End() }

// Mount establishes index 0 and issues its first batch of tweens
func (t *Timeline) Mount() {
	t.MU.Lock()
	defer t.MU.Unlock()

	if t.mounted {
		return
	}
	t.ring.Mount()
	t.first.Mount()
	t.last.Mount()
	t.mounted = true
	t.active = t.slider.Active()

	slog.Info("Timeline mounted",
		slog.Int("periods", len(t.periods)),
		slog.Int("active", t.active))
	t.apply(t.active)
}

// Unmount cancels every tween and clears the lock so nothing is left stuck
func (t *Timeline) Unmount() {
	t.MU.Lock()
	defer t.MU.Unlock()

	t.engine.KillAll()
	t.ring.Unmount()
	t.first.Unmount()
	t.last.Unmount()
	t.slider.Cancel()
	t.lock.Release()
	t.mounted = false
	slog.Info("Timeline unmounted")
}

func (t *Timeline) slideChanged(index int) {
	t.active = index
	if !t.mounted {
		return
	}
	t.apply(index)
	for _, fn := range t.onSlide {
		fn(index)
	}
}

// apply fans one active index out to the ring and both counters
func (t *Timeline) apply(index int) {
	t.ring.Activate(index)
	events := t.periods[index].Events
	t.first.CountTo(events[0].Year)
	t.last.CountTo(events[len(events)-1].Year)
}

// PointClick asks the slider to go to a period.
// The slider refuses while a transition is in flight.
func (t *Timeline) PointClick(index int) bool {
	t.MU.Lock()
	defer t.MU.Unlock()

	if !t.mounted {
		return false
	}
	return t.slider.GoTo(index)
}

// GoTo is PointClick with the reason for a refusal spelled out
func (t *Timeline) GoTo(index int) error {
	t.MU.Lock()
	defer t.MU.Unlock()

	if !t.mounted {
		return ErrNotMounted
	}
	if index < 0 || index >= len(t.periods) {
		return fmt.Errorf("%w: %d", ErrIndexRange, index)
	}
	if index == t.active {
		return nil
	}
	if !t.slider.GoTo(index) {
		return ErrRefused
	}
	return nil
}

// Next is the outer forward button, dropped while locked
func (t *Timeline) Next() bool {
	t.MU.Lock()
	defer t.MU.Unlock()

	if !t.mounted {
		return false
	}
	if t.lock.Locked() {
		t.dropped("next")
		return false
	}
	return t.slider.Next()
}

// Prev is the outer back button, dropped while locked
func (t *Timeline) Prev() bool {
	t.MU.Lock()
	defer t.MU.Unlock()

	if !t.mounted {
		return false
	}
	if t.lock.Locked() {
		t.dropped("prev")
		return false
	}
	return t.slider.Prev()
}

func (t *Timeline) dropped(direction string) {
	slog.Debug("Navigation dropped while locked", slog.String("direction", direction))
	for _, fn := range t.onDropped {
		fn(direction)
	}
}

// Hover reports false when index names no point on a mounted ring
func (t *Timeline) Hover(index int, on bool) bool {
	t.MU.Lock()
	defer t.MU.Unlock()

	if !t.mounted || index < 0 || index >= len(t.periods) {
		return false
	}
	t.ring.Hover(index, on)
	return true
}

// EventsNext scrolls the active period's inner slider
func (t *Timeline) EventsNext() bool {
	t.MU.Lock()
	defer t.MU.Unlock()

	if !t.mounted {
		return false
	}
	return t.strips[t.active].Next()
}

func (t *Timeline) EventsPrev() bool {
	t.MU.Lock()
	defer t.MU.Unlock()

	if !t.mounted {
		return false
	}
	return t.strips[t.active].Prev()
}

// Tick advances the slider transition and every tween by dt
func (t *Timeline) Tick(dt time.Duration) {
	t.MU.Lock()
	defer t.MU.Unlock()

	t.slider.Step(dt)
	t.engine.Step(dt)
}

// OnSlide registers a callback for every settled slide change.
// Callbacks run under the Timeline lock and must not call back into it.
func (t *Timeline) OnSlide(fn func(index int)) {
	t.MU.Lock()
	defer t.MU.Unlock()
	t.onSlide = append(t.onSlide, fn)
}

// OnDropped registers a callback for navigation refused by the lock
func (t *Timeline) OnDropped(fn func(direction string)) {
	t.MU.Lock()
	defer t.MU.Unlock()
	t.onDropped = append(t.onDropped, fn)
}

// AddSink forwards every issued tween command to fn
func (t *Timeline) AddSink(fn func(Ct.TweenCommand)) {
	t.MU.Lock()
	defer t.MU.Unlock()
	t.engine.AddSink(fn)
}

func (t *Timeline) Active() int {
	t.MU.Lock()
	defer t.MU.Unlock()
	return t.active
}

func (t *Timeline) Locked() bool {
	t.MU.Lock()
	defer t.MU.Unlock()
	return t.lock.Locked()
}

func (t *Timeline) Points() []Ct.RingPoint {
	t.MU.Lock()
	defer t.MU.Unlock()
	return t.ring.Points()
}

// Engine is exposed for tests and output sinks, callers must hold MU
func (t *Timeline) Engine() *Engine { return t.engine }

func (t *Timeline) Periods() []Ct.Period { return t.periods }
func (t *Timeline) Theme() Theme         { return t.theme }

// Animating reports whether any tween is still in flight
func (t *Timeline) Animating() bool {
	t.MU.Lock()
	defer t.MU.Unlock()
	return t.engine.InFlight() > 0 || t.slider.Animating()
}

// Frame is the snapshot the renderers draw from
func (t *Timeline) Frame() Ct.Frame {
	t.MU.Lock()
	defer t.MU.Unlock()

	return Ct.Frame{
		Active:          t.active,
		Total:           len(t.periods),
		Pagination:      fmt.Sprintf("%02d/%02d", t.active+1, len(t.periods)),
		RotationDegrees: t.ring.Rotation(),
		Points:          t.ring.Frames(),
		FirstYear:       t.first.Value(),
		LastYear:        t.last.Value(),
		Nav:             t.lock.Nav(),
		Locked:          t.lock.Locked(),
		Strip:           t.strips[t.active].Frame(),
	}
}

package cyclorama

import (
	"log/slog"
	"time"

	Ct "github.com/maroda/cyclorama/types"
)

// SlideListener receives the outer slider's notifications
type SlideListener interface {
	SlideChange(index int)
	TransitionStart()
	TransitionEnd()
}

// Carousel is the outer, one-period-per-slide slider.
// A successful GoTo emits SlideChange then TransitionStart right away,
// and TransitionEnd once speed worth of Step time has passed.
// While a transition is animating every GoTo is refused.
type Carousel struct {
	count     int
	active    int
	speed     time.Duration
	elapsed   time.Duration
	animating bool
	allowNext bool
	allowPrev bool
	listener  SlideListener
}

func NewCarousel(count int, speed time.Duration) *Carousel {
	return &Carousel{
		count:     count,
		speed:     speed,
		allowNext: true,
		allowPrev: true,
	}
}

func (c *Carousel) SetListener(l SlideListener) { c.listener = l }

// SetAllowNavigation toggles both directions at once
func (c *Carousel) SetAllowNavigation(allow bool) {
	c.allowNext = allow
	c.allowPrev = allow
}

// GoTo slides to n, returning false when the request is refused
func (c *Carousel) GoTo(n int) bool {
	if n < 0 || n >= c.count || n == c.active {
		return false
	}
	if c.animating {
		slog.Debug("Slide refused, transition in flight", slog.Int("to", n))
		return false
	}
	if (n > c.active && !c.allowNext) || (n < c.active && !c.allowPrev) {
		slog.Debug("Slide refused, navigation disallowed", slog.Int("to", n))
		return false
	}

	c.active = n
	c.animating = true
	c.elapsed = 0
	if c.listener != nil {
		c.listener.SlideChange(n)
		c.listener.TransitionStart()
	}
	if c.speed <= 0 {
		c.finish()
	}
	return true
}

func (c *Carousel) Next() bool { return c.GoTo(c.active + 1) }
func (c *Carousel) Prev() bool { return c.GoTo(c.active - 1) }

// Step advances an in-flight transition
func (c *Carousel) Step(dt time.Duration) {
	if !c.animating {
		return
	}
	c.elapsed += dt
	if c.elapsed >= c.speed {
		c.finish()
	}
}

func (c *Carousel) finish() {
	c.animating = false
	c.elapsed = 0
	if c.listener != nil {
		c.listener.TransitionEnd()
	}
}

// Cancel abandons an in-flight transition without notifying anyone
func (c *Carousel) Cancel() {
	c.animating = false
	c.elapsed = 0
}

func (c *Carousel) Active() int     { return c.active }
func (c *Carousel) Count() int      { return c.count }
func (c *Carousel) Animating() bool { return c.animating }
func (c *Carousel) AllowNext() bool { return c.allowNext }
func (c *Carousel) AllowPrev() bool { return c.allowPrev }

// EventStrip is the inner slider of one period's events.
// Every period owns its own strip, so scroll position survives
// moving away from a period and back.
type EventStrip struct {
	events []Ct.Event
	pos    int
}

func NewEventStrip(events []Ct.Event) *EventStrip {
	return &EventStrip{events: events}
}

func (es *EventStrip) CanNext() bool { return es.pos < len(es.events)-1 }
func (es *EventStrip) CanPrev() bool { return es.pos > 0 }

func (es *EventStrip) Next() bool {
	if !es.CanNext() {
		return false
	}
	es.pos++
	return true
}

func (es *EventStrip) Prev() bool {
	if !es.CanPrev() {
		return false
	}
	es.pos--
	return true
}

func (es *EventStrip) Position() int { return es.pos }
func (es *EventStrip) Len() int      { return len(es.events) }

func (es *EventStrip) Current() (Ct.Event, bool) {
	if len(es.events) == 0 {
		return Ct.Event{}, false
	}
	return es.events[es.pos], true
}

func (es *EventStrip) Frame() Ct.StripFrame {
	return Ct.StripFrame{
		Position:    es.pos,
		Events:      es.events,
		PrevEnabled: es.CanPrev(),
		NextEnabled: es.CanNext(),
	}
}

package cyclorama

import (
	"math"

	Ct "github.com/maroda/cyclorama/types"
)

// Counter animates a displayed whole number toward a target year.
// Values are snapped on every step so a fraction is never shown.
type Counter struct {
	handle Handle
	engine *Engine
	theme  Theme
}

func NewCounter(name string, theme Theme, engine *Engine) *Counter {
	return &Counter{
		handle: Handle("counter/" + name),
		engine: engine,
		theme:  theme,
	}
}

// Mount starts the display at zero
func (c *Counter) Mount() {
	el := NewElement(c.handle)
	el.Set(Ct.PropText, 0)
	c.engine.Register(el)
}

func (c *Counter) Unmount() {
	c.engine.Unregister(c.handle)
}

// CountTo tweens from whatever is displayed now to target.
// A target equal to the display still issues the tween; it just never moves.
func (c *Counter) CountTo(target int) {
	c.engine.To(c.handle, TweenSpec{
		Values:   map[Ct.Property]float64{Ct.PropText: float64(target)},
		Duration: c.theme.Duration,
		Ease:     c.theme.CounterEase,
		Snap:     1,
	})
}

// Value is the integer on display, 0 when unmounted
func (c *Counter) Value() int {
	el, ok := c.engine.Lookup(c.handle)
	if !ok {
		return 0
	}
	return int(math.Round(el.Value(Ct.PropText)))
}

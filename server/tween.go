package cyclorama

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"
	Ct "github.com/maroda/cyclorama/types"
)

// EaseFunc maps linear progress [0,1] onto eased progress
type EaseFunc func(float64) float64

// Ease curves are addressed with the GSAP names the theme uses
var easeNames = map[string]EaseFunc{
	"none":         ease.Linear,
	"linear":       ease.Linear,
	"power1.in":    ease.InQuad,
	"power1.out":   ease.OutQuad,
	"power1.inOut": ease.InOutQuad,
	"power2.in":    ease.InCubic,
	"power2.out":   ease.OutCubic,
	"power2.inOut": ease.InOutCubic,
	"power3.in":    ease.InQuart,
	"power3.out":   ease.OutQuart,
	"power3.inOut": ease.InOutQuart,
	"sine.in":      ease.InSine,
	"sine.out":     ease.OutSine,
	"sine.inOut":   ease.InOutSine,
}

// EaseByName looks up a curve
func EaseByName(name string) (EaseFunc, error) {
	fn, ok := easeNames[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
	}
	return fn, nil
}

// Handle is the opaque key of an animatable element
type Handle string

// Element holds the presentation values a handle exposes to the renderer
type Element struct {
	ID     Handle
	values map[Ct.Property]float64
	colors map[Ct.Property]colorful.Color
}

func NewElement(id Handle) *Element {
	return &Element{
		ID:     id,
		values: make(map[Ct.Property]float64),
		colors: make(map[Ct.Property]colorful.Color),
	}
}

func (el *Element) Set(p Ct.Property, v float64)             { el.values[p] = v }
func (el *Element) SetColor(p Ct.Property, c colorful.Color) { el.colors[p] = c }
func (el *Element) Value(p Ct.Property) float64              { return el.values[p] }
func (el *Element) Color(p Ct.Property) colorful.Color       { return el.colors[p] }
func (el *Element) Hex(p Ct.Property) string                 { return el.colors[p].Hex() }

// TweenSpec is one request against a handle.
// Every property named starts together with the same duration and ease.
type TweenSpec struct {
	Values   map[Ct.Property]float64
	Colors   map[Ct.Property]colorful.Color
	Duration time.Duration
	Ease     string
	Snap     float64 // round numeric values to this increment on every step, 0 is off
}

type tweenKey struct {
	handle Handle
	prop   Ct.Property
}

type tween struct {
	el       *Element
	prop     Ct.Property
	isColor  bool
	from, to float64
	fromC    colorful.Color
	toC      colorful.Color
	elapsed  time.Duration
	duration time.Duration
	ease     EaseFunc
	snap     float64
}

func (tw *tween) apply(p float64) {
	if tw.isColor {
		if p >= 1 {
			tw.el.colors[tw.prop] = tw.toC
			return
		}
		tw.el.colors[tw.prop] = tw.fromC.BlendRgb(tw.toC, tw.ease(p)).Clamped()
		return
	}

	v := tw.to
	if p < 1 {
		v = tw.from + (tw.to-tw.from)*tw.ease(p)
	}
	if tw.snap > 0 {
		v = math.Round(v/tw.snap) * tw.snap
	}
	tw.el.values[tw.prop] = v
}

// Engine advances tweens against registered elements.
// There is at most one tween per (handle, property): a new request
// replaces the in-flight one and continues from the current value.
// Engine is not safe for concurrent use, the Timeline serializes calls.
type Engine struct {
	elements map[Handle]*Element
	tweens   map[tweenKey]*tween
	sinks    []func(Ct.TweenCommand)
	seq      uint64
	now      func() time.Time
}

func NewEngine() *Engine {
	return &Engine{
		elements: make(map[Handle]*Element),
		tweens:   make(map[tweenKey]*tween),
		now:      time.Now,
	}
}

// SetClock replaces the time source stamped on issued commands
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// AddSink receives a copy of every issued command
func (e *Engine) AddSink(fn func(Ct.TweenCommand)) {
	e.sinks = append(e.sinks, fn)
}

func (e *Engine) Register(el *Element) {
	e.elements[el.ID] = el
}

// Unregister drops the element and anything animating it
func (e *Engine) Unregister(id Handle) {
	e.Kill(id)
	delete(e.elements, id)
}

func (e *Engine) Lookup(id Handle) (*Element, bool) {
	el, ok := e.elements[id]
	return el, ok
}

// To issues a tween. Returns false when the handle is not registered,
// which is the stale target case and is otherwise ignored.
func (e *Engine) To(id Handle, spec TweenSpec) bool {
	el, ok := e.elements[id]
	if !ok {
		slog.Debug("Dropping tween for stale handle", slog.String("handle", string(id)))
		return false
	}

	fn, err := EaseByName(spec.Ease)
	if err != nil {
		slog.Warn("Falling back to linear ease", slog.Any("Error", err))
		fn = ease.Linear
	}

	issued := e.now()
	for _, p := range slices.Sorted(maps.Keys(spec.Values)) {
		e.start(&tween{
			el:       el,
			prop:     p,
			from:     el.values[p],
			to:       spec.Values[p],
			duration: spec.Duration,
			ease:     fn,
			snap:     spec.Snap,
		}, spec.Ease, issued)
	}
	for _, p := range slices.Sorted(maps.Keys(spec.Colors)) {
		e.start(&tween{
			el:       el,
			prop:     p,
			isColor:  true,
			fromC:    el.colors[p],
			toC:      spec.Colors[p],
			duration: spec.Duration,
			ease:     fn,
		}, spec.Ease, issued)
	}
	return true
}

func (e *Engine) start(tw *tween, easeName string, issued time.Time) {
	k := tweenKey{handle: tw.el.ID, prop: tw.prop}
	_, retarget := e.tweens[k]
	delete(e.tweens, k)

	e.seq++
	cmd := Ct.TweenCommand{
		Seq:      e.seq,
		Handle:   string(tw.el.ID),
		Property: tw.prop,
		Duration: tw.duration,
		Ease:     easeName,
		Retarget: retarget,
		Issued:   issued,
	}
	if tw.isColor {
		cmd.FromColor = tw.fromC.Hex()
		cmd.ToColor = tw.toC.Hex()
	} else {
		cmd.From = tw.from
		cmd.To = tw.to
	}

	if tw.duration <= 0 {
		tw.apply(1)
	} else {
		e.tweens[k] = tw
	}

	for _, sink := range e.sinks {
		sink(cmd)
	}
}

// Step moves every in-flight tween forward by dt
func (e *Engine) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	for k, tw := range e.tweens {
		tw.elapsed += dt
		p := float64(tw.elapsed) / float64(tw.duration)
		if p >= 1 {
			tw.apply(1)
			delete(e.tweens, k)
			continue
		}
		tw.apply(p)
	}
}

// Kill stops every tween on a handle, leaving values where they are
func (e *Engine) Kill(id Handle) {
	for k := range e.tweens {
		if k.handle == id {
			delete(e.tweens, k)
		}
	}
}

func (e *Engine) KillAll() {
	clear(e.tweens)
}

func (e *Engine) InFlight() int {
	return len(e.tweens)
}

// Animating reports whether a property on a handle has a tween running
func (e *Engine) Animating(id Handle, p Ct.Property) bool {
	_, ok := e.tweens[tweenKey{handle: id, prop: p}]
	return ok
}

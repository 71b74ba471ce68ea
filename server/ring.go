package cyclorama

import (
	"fmt"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"

	Ct "github.com/maroda/cyclorama/types"
)

const ringHandle Handle = "ring"

func pointHandle(i int) Handle { return Handle(fmt.Sprintf("point/%d", i)) }
func labelHandle(i int) Handle { return Handle(fmt.Sprintf("label/%d", i)) }

// RingController owns the point visuals and the ring rotation.
// Each point has two handles: the circle (radius, fill, stroke)
// and its label group (ordinal font size, title opacity, counter-rotation).
type RingController struct {
	theme   Theme
	engine  *Engine
	periods []Ct.Period
	anchors []Ct.Anchor
	hovered []bool
	active  int // -1 until mounted
	mounted bool
}

func NewRingController(theme Theme, engine *Engine, periods []Ct.Period) *RingController {
	anchors := make([]Ct.Anchor, len(periods))
	for i, p := range periods {
		anchors[i] = ResolveAnchor(p.Count)
	}
	return &RingController{
		theme:   theme,
		engine:  engine,
		periods: periods,
		anchors: anchors,
		hovered: make([]bool, len(periods)),
		active:  -1,
	}
}

// Mount registers every handle in its resting, inactive state
func (rc *RingController) Mount() {
	ring := NewElement(ringHandle)
	ring.Set(Ct.PropRotation, 0)
	rc.engine.Register(ring)

	for i := range rc.periods {
		pt := NewElement(pointHandle(i))
		pt.Set(Ct.PropRadius, rc.theme.DefaultRadius)
		pt.SetColor(Ct.PropFill, rc.theme.Color(rc.theme.Colors.Secondary))
		pt.SetColor(Ct.PropStroke, rc.theme.Color(rc.theme.Colors.Secondary))
		pt.Set(Ct.PropStrokeOpacity, 0)
		rc.engine.Register(pt)

		lb := NewElement(labelHandle(i))
		lb.Set(Ct.PropFontSize, 0)
		lb.Set(Ct.PropLabelOpacity, 0)
		lb.Set(Ct.PropRotation, 0)
		rc.engine.Register(lb)
	}
	rc.mounted = true
}

// Unmount cancels in-flight tweens and drops every handle
func (rc *RingController) Unmount() {
	rc.engine.Unregister(ringHandle)
	for i := range rc.periods {
		rc.engine.Unregister(pointHandle(i))
		rc.engine.Unregister(labelHandle(i))
	}
	rc.mounted = false
	rc.active = -1
	clear(rc.hovered)
}

// Activate issues the whole batch for a new active index in one turn:
// every other point shrinks, the new one expands, the ring rotates,
// and each label counter-rotates about its own anchor.
func (rc *RingController) Activate(index int) {
	rc.active = index
	th := rc.theme
	bg := th.Color(th.Colors.Background)
	sec := th.Color(th.Colors.Secondary)

	for i := range rc.periods {
		if i == index {
			continue
		}
		rc.engine.To(pointHandle(i), TweenSpec{
			Values:   map[Ct.Property]float64{Ct.PropRadius: th.DefaultRadius, Ct.PropStrokeOpacity: 0},
			Colors:   map[Ct.Property]colorful.Color{Ct.PropFill: sec},
			Duration: th.Duration,
			Ease:     th.PointEase,
		})
		rc.engine.To(labelHandle(i), TweenSpec{
			Values:   map[Ct.Property]float64{Ct.PropFontSize: 0, Ct.PropLabelOpacity: 0},
			Duration: th.Duration,
			Ease:     th.PointEase,
		})
	}

	rc.engine.To(pointHandle(index), TweenSpec{
		Values:   map[Ct.Property]float64{Ct.PropRadius: th.ExpandedRadius, Ct.PropStrokeOpacity: th.HoverStroke},
		Colors:   map[Ct.Property]colorful.Color{Ct.PropFill: bg},
		Duration: th.Duration,
		Ease:     th.PointEase,
	})
	rc.engine.To(labelHandle(index), TweenSpec{
		Values:   map[Ct.Property]float64{Ct.PropFontSize: th.LabelFontSize, Ct.PropLabelOpacity: 1},
		Duration: th.Duration,
		Ease:     th.PointEase,
	})

	rc.rotate(index)
}

func (rc *RingController) rotate(index int) {
	th := rc.theme
	rc.engine.To(ringHandle, TweenSpec{
		Values:   map[Ct.Property]float64{Ct.PropRotation: RotationAngle(index)},
		Duration: th.Duration,
		Ease:     th.RotationEase,
	})
	for i := range rc.periods {
		rc.engine.To(labelHandle(i), TweenSpec{
			Values:   map[Ct.Property]float64{Ct.PropRotation: LabelRotation(index)},
			Duration: th.Duration,
			Ease:     th.RotationEase,
		})
	}
}

// Hover emphasizes a non-active point. The active point ignores hover
// so the two animations never fight over the same properties.
func (rc *RingController) Hover(index int, on bool) {
	if index < 0 || index >= len(rc.periods) {
		return
	}
	rc.hovered[index] = on
	if index == rc.active {
		return
	}

	th := rc.theme
	if on {
		rc.engine.To(pointHandle(index), TweenSpec{
			Values:   map[Ct.Property]float64{Ct.PropRadius: th.HoverRadius, Ct.PropStrokeOpacity: th.HoverStroke},
			Colors:   map[Ct.Property]colorful.Color{Ct.PropFill: th.Color(th.Colors.Background)},
			Duration: th.Duration,
			Ease:     th.PointEase,
		})
		rc.engine.To(labelHandle(index), TweenSpec{
			Values:   map[Ct.Property]float64{Ct.PropFontSize: th.LabelFontSize},
			Duration: th.Duration,
			Ease:     th.PointEase,
		})
		return
	}

	rc.engine.To(pointHandle(index), TweenSpec{
		Values:   map[Ct.Property]float64{Ct.PropRadius: th.DefaultRadius, Ct.PropStrokeOpacity: 0},
		Colors:   map[Ct.Property]colorful.Color{Ct.PropFill: th.Color(th.Colors.Secondary)},
		Duration: th.Duration,
		Ease:     th.PointEase,
	})
	rc.engine.To(labelHandle(index), TweenSpec{
		Values:   map[Ct.Property]float64{Ct.PropFontSize: 0},
		Duration: th.Duration,
		Ease:     th.PointEase,
	})
}

func (rc *RingController) Active() int { return rc.active }

// Rotation is the current (possibly mid-tween) ring rotation
func (rc *RingController) Rotation() float64 {
	ring, ok := rc.engine.Lookup(ringHandle)
	if !ok {
		return 0
	}
	return ring.Value(Ct.PropRotation)
}

func (rc *RingController) Points() []Ct.RingPoint {
	points := make([]Ct.RingPoint, len(rc.periods))
	for i, p := range rc.periods {
		points[i] = Ct.RingPoint{
			Ordinal:   p.Count,
			Anchor:    rc.anchors[i],
			IsActive:  i == rc.active,
			IsHovered: rc.hovered[i],
		}
	}
	return points
}

// Frames reads the current presentation values of every point.
// Points whose handles are gone are skipped.
func (rc *RingController) Frames() []Ct.PointFrame {
	frames := make([]Ct.PointFrame, 0, len(rc.periods))
	for i, p := range rc.periods {
		pt, ok := rc.engine.Lookup(pointHandle(i))
		if !ok {
			continue
		}
		lb, ok := rc.engine.Lookup(labelHandle(i))
		if !ok {
			slog.Debug("Label handle missing", slog.Int("index", i))
			continue
		}
		rot := lb.Value(Ct.PropRotation)
		frames = append(frames, Ct.PointFrame{
			Ordinal:        p.Count,
			Title:          p.Title,
			AnchorX:        rc.anchors[i].X,
			AnchorY:        rc.anchors[i].Y,
			Radius:         pt.Value(Ct.PropRadius),
			FillColor:      pt.Hex(Ct.PropFill),
			StrokeColor:    pt.Hex(Ct.PropStroke),
			StrokeOpacity:  pt.Value(Ct.PropStrokeOpacity),
			LabelFontSize:  lb.Value(Ct.PropFontSize),
			LabelOpacity:   lb.Value(Ct.PropLabelOpacity),
			LabelRotation:  rot,
			LabelTransform: LabelTransform(rot, rc.anchors[i]),
			IsActive:       i == rc.active,
			IsHovered:      rc.hovered[i],
		})
	}
	return frames
}

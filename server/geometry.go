package cyclorama

import (
	"fmt"
	"math"

	Ct "github.com/maroda/cyclorama/types"
)

const (
	// RotationStep is the fixed ring rotation per slide, in degrees
	RotationStep = 60.0

	// Ring viewbox and outline
	ViewBoxW   = 536.0
	ViewBoxH   = 530.0
	RingRadius = 264.5
)

// RingCenter is also the fallback anchor for ordinals outside the table
var RingCenter = Ct.Anchor{X: 268, Y: 265}

// Canonical anchors for the six ring positions, starting at the top right
var ringAnchors = map[int]Ct.Anchor{
	1: {X: 400, Y: 34},
	2: {X: 533, Y: 265},
	3: {X: 402, Y: 492},
	4: {X: 126, Y: 489},
	5: {X: 3, Y: 265},
	6: {X: 138, Y: 34},
}

// ResolveAnchor maps a 1-based ordinal to its fixed ring position.
// Anything not in the table (0, negative, >6) lands on the ring center.
func ResolveAnchor(ordinal int) Ct.Anchor {
	if a, ok := ringAnchors[ordinal]; ok {
		return a
	}
	return RingCenter
}

// RotationAngle is the whole-ring rotation for an active index
func RotationAngle(index int) float64 {
	return -RotationStep * float64(index)
}

// LabelRotation cancels the ring rotation so labels stay upright
func LabelRotation(index int) float64 {
	return -RotationAngle(index)
}

// LabelTransform renders an SVG style rotation about the label's own anchor
func LabelTransform(degrees float64, a Ct.Anchor) string {
	return fmt.Sprintf("rotate(%g %g %g)", degrees, a.X, a.Y)
}

// RotateAround rotates p by deg (clockwise in screen space, y down) around center
func RotateAround(p, center Ct.Anchor, deg float64) Ct.Anchor {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Ct.Anchor{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

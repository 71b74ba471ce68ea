package types

/*

	These are the "immutable" core types of Cyclorama,
	provided for cross-package use (e.g. Plugins) and testing.

	There are no functions defined here.
	Struct constructors are housed in their own packages.

*/

import "time"

// Period is one stop on the ring.
// Count is the 1-based ordinal of the ring point, not a slice index.
type Period struct {
	ID     string  `json:"id" yaml:"id"`
	Count  int     `json:"count" yaml:"count"`
	Title  string  `json:"title" yaml:"title"`
	Events []Event `json:"events" yaml:"events"`
}

// Event is a single dated entry inside a Period.
// The first and last Events give the Period its displayed year range.
type Event struct {
	ID   string `json:"id" yaml:"id"`
	Year int    `json:"year" yaml:"year"`
	Text string `json:"text" yaml:"text"`
}

// Anchor is a fixed position in ring coordinates (the 536x530 viewbox)
type Anchor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RingPoint is derived from the Period list and the active index
type RingPoint struct {
	Ordinal   int    `json:"ordinal"`
	Anchor    Anchor `json:"anchor"`
	IsActive  bool   `json:"isActive"`
	IsHovered bool   `json:"isHovered"`
}

// Property names an animatable value on a handle
type Property string

const (
	PropRadius        Property = "r"
	PropFill          Property = "fill"
	PropStroke        Property = "stroke"
	PropStrokeOpacity Property = "strokeOpacity"
	PropFontSize      Property = "fontSize"
	PropLabelOpacity  Property = "labelOpacity"
	PropRotation      Property = "rotation"
	PropText          Property = "textContent"
)

// TweenCommand is the record of one property tween issued to the engine.
// Color tweens carry hex strings, numeric tweens carry From/To.
type TweenCommand struct {
	Seq       uint64
	Handle    string
	Property  Property
	From      float64
	To        float64
	FromColor string
	ToColor   string
	Duration  time.Duration
	Ease      string
	Retarget  bool // replaced an in-flight tween on the same property
	Issued    time.Time
}

// PointFrame is what the rendering layer reads for one ring point
type PointFrame struct {
	Ordinal        int     `json:"ordinal"`
	Title          string  `json:"title"`
	AnchorX        float64 `json:"anchorX"`
	AnchorY        float64 `json:"anchorY"`
	Radius         float64 `json:"radius"`
	FillColor      string  `json:"fillColor"`
	StrokeColor    string  `json:"strokeColor"`
	StrokeOpacity  float64 `json:"strokeOpacity"`
	LabelFontSize  float64 `json:"labelFontSize"`
	LabelOpacity   float64 `json:"labelOpacity"`
	LabelRotation  float64 `json:"labelRotation"`
	LabelTransform string  `json:"labelTransform"`
	IsActive       bool    `json:"isActive"`
	IsHovered      bool    `json:"isHovered"`
}

// NavState mirrors the TransitionLock for the outer prev/next buttons
type NavState struct {
	PrevEnabled bool `json:"prevEnabled"`
	NextEnabled bool `json:"nextEnabled"`
}

// StripFrame is the inner events slider for the active period
type StripFrame struct {
	Position    int     `json:"position"`
	Events      []Event `json:"events"`
	PrevEnabled bool    `json:"prevEnabled"`
	NextEnabled bool    `json:"nextEnabled"`
}

// Frame is a read-only snapshot of everything the view draws
type Frame struct {
	Active          int          `json:"active"`
	Total           int          `json:"total"`
	Pagination      string       `json:"pagination"`
	RotationDegrees float64      `json:"rotationDegrees"`
	Points          []PointFrame `json:"points"`
	FirstYear       int          `json:"firstYear"`
	LastYear        int          `json:"lastYear"`
	Nav             NavState     `json:"nav"`
	Locked          bool         `json:"locked"`
	Strip           StripFrame   `json:"strip"`
}

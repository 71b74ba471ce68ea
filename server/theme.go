package cyclorama

import (
	"errors"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrBadColor    = errors.New("invalid color")
	ErrUnknownEase = errors.New("unknown ease")
)

// Colors is the palette, as hex strings
type Colors struct {
	Background string `json:"background"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Blue       string `json:"blue"`
	Fuschia100 string `json:"fuschia100"`
	Iris100    string `json:"iris100"`
	White      string `json:"white"`
	Line       string `json:"line"`
}

// Theme is passed by value into every controller at construction.
// Nothing reads colors or durations from anywhere else.
type Theme struct {
	Colors         Colors
	Duration       time.Duration
	DefaultRadius  float64
	ExpandedRadius float64
	HoverRadius    float64
	HoverStroke    float64 // stroke opacity while hovered or active
	LabelFontSize  float64
	PointEase      string
	RotationEase   string
	CounterEase    string
}

// DefaultTheme carries the stock palette and a 0.8s transition
func DefaultTheme() Theme {
	return Theme{
		Colors: Colors{
			Background: "#f4f5f9",
			Primary:    "#42567a",
			Secondary:  "#42567a",
			Blue:       "#3877ee",
			Fuschia100: "#ef5da8",
			Iris100:    "#5d5fef",
			White:      "#ffffff",
			Line:       "#d7d9e0",
		},
		Duration:       800 * time.Millisecond,
		DefaultRadius:  3,
		ExpandedRadius: 28,
		HoverRadius:    28,
		HoverStroke:    0.5,
		LabelFontSize:  20,
		PointEase:      "power2.out",
		RotationEase:   "power1.inOut",
		CounterEase:    "power1.out",
	}
}

// Validate checks every color parses and every ease is known
func (t Theme) Validate() error {
	named := map[string]string{
		"background": t.Colors.Background,
		"primary":    t.Colors.Primary,
		"secondary":  t.Colors.Secondary,
		"blue":       t.Colors.Blue,
		"fuschia100": t.Colors.Fuschia100,
		"iris100":    t.Colors.Iris100,
		"white":      t.Colors.White,
		"line":       t.Colors.Line,
	}
	for name, hex := range named {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: %s=%q", ErrBadColor, name, hex)
		}
	}

	for _, e := range []string{t.PointEase, t.RotationEase, t.CounterEase} {
		if _, err := EaseByName(e); err != nil {
			return err
		}
	}

	if t.Duration < 0 {
		return fmt.Errorf("negative duration: %s", t.Duration)
	}
	return nil
}

// Color parses one palette entry; invalid entries come back black.
// Validate is the place that reports them.
func (t Theme) Color(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

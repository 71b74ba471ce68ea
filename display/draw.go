package cyclorama

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	Cs "github.com/maroda/cyclorama/server"
	Ct "github.com/maroda/cyclorama/types"
)

const (
	footerRows  = 5 // pagination, strip, spacer, help, border
	titleMargin = 24
	ringDots    = 72
)

// layout maps ring viewbox units onto terminal cells.
// Cells are about twice as tall as they are wide, so sx = 2*sy.
type layout struct {
	ox, oy int
	sx, sy float64
}

// rect is a clickable screen region, inclusive
type rect struct {
	x1, y1, x2, y2 int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x1 && x <= r.x2 && y >= r.y1 && y <= r.y2
}

// calcLayout fits the ring into the space above the footer
func calcLayout(width, height int) layout {
	rows := float64(height - footerRows - 2)
	if rows < 4 {
		rows = 4
	}
	sy := rows / Cs.ViewBoxH
	if maxCols := float64(width - titleMargin - 4); Cs.ViewBoxW*2*sy > maxCols && maxCols > 0 {
		sy = maxCols / (Cs.ViewBoxW * 2)
	}
	return layout{ox: 2, oy: 1, sx: 2 * sy, sy: sy}
}

func (l layout) cell(a Ct.Anchor) (int, int) {
	return l.ox + int(math.Round(a.X*l.sx)), l.oy + int(math.Round(a.Y*l.sy))
}

// pointCell is where a point sits once the ring rotation is applied
func (l layout) pointCell(pf Ct.PointFrame, rotation float64) (int, int) {
	p := Cs.RotateAround(Ct.Anchor{X: pf.AnchorX, Y: pf.AnchorY}, Cs.RingCenter, rotation)
	return l.cell(p)
}

// tcellColor converts through go-colorful so blended values survive
func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// fade blends from the background toward hex by amount [0,1]
func (v *View) fade(hex string, amount float64) tcell.Color {
	th := v.Timeline.Theme()
	amount = math.Max(0, math.Min(1, amount))
	return tcellColor(th.Color(th.Colors.Background).BlendRgb(th.Color(hex), amount))
}

func (v *View) baseStyle() tcell.Style {
	th := v.Timeline.Theme()
	return tcell.StyleDefault.
		Background(tcellColor(th.Color(th.Colors.Background))).
		Foreground(tcellColor(th.Color(th.Colors.Primary)))
}

// DrawText displays the text string at the given (x1, y1) with box size (x2, y2)
func (v *View) DrawText(x1, y1, x2, y2 int, text string, style tcell.Style) {
	row := y1
	col := x1
	for _, r := range text {
		v.Screen.SetContent(col, row, r, nil, style)
		col++
		if col >= x2 {
			row++
			col = x1
		}
		if row > y2 {
			break
		}
	}
}

// DrawViewBorder displays the outline of the View
func (v *View) DrawViewBorder(width, height int) {
	th := v.Timeline.Theme()
	hvStyle := v.baseStyle().Foreground(tcellColor(th.Color(th.Colors.Line)))
	v.Screen.SetContent(0, 0, tcell.RuneULCorner, nil, hvStyle)
	for i := 1; i < width; i++ {
		v.Screen.SetContent(i, 0, tcell.RuneHLine, nil, hvStyle)
		v.Screen.SetContent(i, height, tcell.RuneHLine, nil, hvStyle)
	}
	v.Screen.SetContent(width, 0, tcell.RuneURCorner, nil, hvStyle)

	for i := 1; i < height; i++ {
		v.Screen.SetContent(0, i, tcell.RuneVLine, nil, hvStyle)
		v.Screen.SetContent(width, i, tcell.RuneVLine, nil, hvStyle)
	}

	v.Screen.SetContent(0, height, tcell.RuneLLCorner, nil, hvStyle)
	v.Screen.SetContent(width, height, tcell.RuneLRCorner, nil, hvStyle)
}

// drawRing traces the ring outline, it does not rotate
func (v *View) drawRing(l layout) {
	th := v.Timeline.Theme()
	style := v.baseStyle().Foreground(tcellColor(th.Color(th.Colors.Line)))
	for i := range ringDots {
		rad := float64(i) * 2 * math.Pi / ringDots
		p := Ct.Anchor{
			X: Cs.RingCenter.X + Cs.RingRadius*math.Cos(rad),
			Y: Cs.RingCenter.Y + Cs.RingRadius*math.Sin(rad),
		}
		x, y := l.cell(p)
		v.Screen.SetContent(x, y, '·', nil, style)
	}
}

// drawPoint renders one ring point from its presentation values
func (v *View) drawPoint(l layout, pf Ct.PointFrame, rotation float64) {
	th := v.Timeline.Theme()
	cx, cy := l.pointCell(pf, rotation)

	// Outline once the circle is bigger than a cell
	if pf.Radius*l.sy >= 1 && pf.StrokeOpacity > 0 {
		style := v.baseStyle().Foreground(v.fade(pf.StrokeColor, pf.StrokeOpacity*2))
		for a := 0; a < 360; a += 20 {
			rad := float64(a) * math.Pi / 180
			x := cx + int(math.Round(math.Cos(rad)*pf.Radius*l.sx))
			y := cy + int(math.Round(math.Sin(rad)*pf.Radius*l.sy))
			v.Screen.SetContent(x, y, '∙', nil, style)
		}
	}

	// Ordinal shows once the label has grown past half size
	if pf.LabelFontSize >= th.LabelFontSize/2 {
		num := fmt.Sprintf("%d", pf.Ordinal)
		v.DrawText(cx-len(num)/2, cy, cx+len(num), cy, num, v.baseStyle().Bold(true))
	} else {
		fill := v.baseStyle().Foreground(tcellColor(th.Color(pf.FillColor)))
		v.Screen.SetContent(cx, cy, '●', nil, fill)
	}

	if pf.LabelOpacity > 0.05 && pf.Title != "" {
		x := cx + int(math.Ceil(pf.Radius*l.sx)) + 2
		style := v.baseStyle().Foreground(v.fade(th.Colors.Primary, pf.LabelOpacity)).Bold(true)
		v.DrawText(x, cy, x+titleMargin, cy, pf.Title, style)
	}
}

// drawCounters puts the two years in the middle of the ring
func (v *View) drawCounters(l layout, f Ct.Frame) {
	th := v.Timeline.Theme()
	cx, cy := l.cell(Cs.RingCenter)
	first := fmt.Sprintf("%d", f.FirstYear)
	last := fmt.Sprintf("%d", f.LastYear)
	x := cx - (len(first)+len(last)+2)/2

	iris := v.baseStyle().Foreground(tcellColor(th.Color(th.Colors.Iris100))).Bold(true)
	fusc := v.baseStyle().Foreground(tcellColor(th.Color(th.Colors.Fuschia100))).Bold(true)
	v.DrawText(x, cy, x+len(first), cy, first, iris)
	x += len(first) + 2
	v.DrawText(x, cy, x+len(last), cy, last, fusc)
}

// navStyle dims an affordance that is disabled
func (v *View) navStyle(enabled bool) tcell.Style {
	th := v.Timeline.Theme()
	if enabled {
		return v.baseStyle().Foreground(tcellColor(th.Color(th.Colors.Primary))).Bold(true)
	}
	return v.baseStyle().Foreground(tcellColor(th.Color(th.Colors.Line))).Dim(true)
}

// drawFooter draws pagination, the period buttons and the event strip,
// and records where the buttons landed for hit testing
func (v *View) drawFooter(width, height int, f Ct.Frame) {
	th := v.Timeline.Theme()
	row := height - footerRows + 1

	v.DrawText(2, row, 8, row, f.Pagination, v.baseStyle())
	v.navPrev = rect{x1: 9, y1: row, x2: 11, y2: row}
	v.navNext = rect{x1: 13, y1: row, x2: 15, y2: row}
	v.DrawText(9, row, 12, row, "(‹)", v.navStyle(f.Nav.PrevEnabled && f.Active > 0))
	v.DrawText(13, row, 16, row, "(›)", v.navStyle(f.Nav.NextEnabled && f.Active < f.Total-1))

	row++
	s := f.Strip
	v.evPrev = rect{x1: 2, y1: row, x2: 2, y2: row}
	v.evNext = rect{x1: width - 3, y1: row, x2: width - 3, y2: row}
	v.Screen.SetContent(2, row, '‹', nil, v.navStyle(s.PrevEnabled))
	v.Screen.SetContent(width-3, row, '›', nil, v.navStyle(s.NextEnabled))

	blue := v.baseStyle().Foreground(tcellColor(th.Color(th.Colors.Blue))).Bold(true)
	x := 4
	for i := s.Position; i < len(s.Events) && i <= s.Position+1; i++ {
		ev := s.Events[i]
		year := fmt.Sprintf("%d", ev.Year)
		v.DrawText(x, row, x+len(year), row, year, blue)
		x += len(year) + 1
		limit := min(x+(width-12)/2-len(year), width-5)
		v.DrawText(x, row, limit, row, ev.Text, v.baseStyle())
		x = limit + 2
	}
}

// DrawTimelineView draws one frame of the whole timeline
func (v *View) DrawTimelineView() {
	width, height := v.GetScreenSize()
	f := v.Timeline.Frame()
	l := calcLayout(width, height)

	v.DrawViewBorder(width-1, height-1)
	v.drawRing(l)
	for _, pf := range f.Points {
		v.drawPoint(l, pf, f.RotationDegrees)
	}
	v.drawCounters(l, f)
	v.drawFooter(width, height, f)

	help := "/←→/ periods | /↑↓/ events | /1-6/ select | /ESC/ to quit"
	v.DrawText(2, height-2, width-14, height-2, help, v.navStyle(false))
	v.DrawText(width-12, height-2, width, height-2, "CYCLORAMA", v.baseStyle())
}

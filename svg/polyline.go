package svg

import (
	"errors"
	"fmt"

	mt "github.com/rustyoz/Mtransform"
)

// PolyLine is an SVG polyline or polygon element: a set of connected
// line segments, closed for polygons.
type PolyLine struct {
	attrs
	Points string `xml:"points,attr"`

	closed bool
}

// Paths implements the Element interface
func (pl *PolyLine) Paths(parent mt.Transform) ([]*Path, error) {
	pts, err := parseNumberList(pl.Points)
	if err != nil {
		return nil, fmt.Errorf("polyline %q: %w", pl.ID, err)
	}
	if len(pts)%2 != 0 {
		return nil, fmt.Errorf("polyline %q: %w", pl.ID, errors.New("odd number of coordinates"))
	}
	if len(pts) < 4 {
		return nil, nil
	}
	instrs := []*DrawingInstruction{MoveTo(pts[0], pts[1])}
	for i := 2; i < len(pts); i += 2 {
		instrs = append(instrs, LineTo(pts[i], pts[i+1]))
	}
	if pl.closed {
		instrs = append(instrs, ClosePath())
	}
	return pl.toPath(parent, instrs)
}

// Line is an SVG line element
type Line struct {
	attrs
	X1 string `xml:"x1,attr"`
	Y1 string `xml:"y1,attr"`
	X2 string `xml:"x2,attr"`
	Y2 string `xml:"y2,attr"`

	owner *Svg
}

// Paths implements the Element interface
func (l *Line) Paths(parent mt.Transform) ([]*Path, error) {
	var x1, y1, x2, y2 float64
	err := l.owner.lengths(
		length{l.X1, &x1, horizontal},
		length{l.Y1, &y1, vertical},
		length{l.X2, &x2, horizontal},
		length{l.Y2, &y2, vertical},
	)
	if err != nil {
		return nil, fmt.Errorf("line %q: %w", l.ID, err)
	}
	return l.toPath(parent, []*DrawingInstruction{MoveTo(x1, y1), LineTo(x2, y2)})
}

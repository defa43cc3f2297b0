package svg

import (
	"fmt"

	mt "github.com/rustyoz/Mtransform"
)

// kappa places the control points of a cubic Bézier approximating a
// quarter circle of radius 1.
const kappa = 0.5522847498307936

// Circle is an SVG circle element. Ellipse elements decode into the same
// type, with Rx and Ry set instead of Radius.
type Circle struct {
	attrs
	Cx     string `xml:"cx,attr"`
	Cy     string `xml:"cy,attr"`
	Radius string `xml:"r,attr"`
	Rx     string `xml:"rx,attr"`
	Ry     string `xml:"ry,attr"`

	owner *Svg
}

// Paths implements the Element interface
func (c *Circle) Paths(parent mt.Transform) ([]*Path, error) {
	var cx, cy, r, rx, ry float64
	err := c.owner.lengths(
		length{c.Cx, &cx, horizontal},
		length{c.Cy, &cy, vertical},
		length{c.Radius, &r, diagonal},
		length{c.Rx, &rx, horizontal},
		length{c.Ry, &ry, vertical},
	)
	if err != nil {
		return nil, fmt.Errorf("circle %q: %w", c.ID, err)
	}
	switch {
	case c.Radius != "":
		rx, ry = r, r
	case c.Rx == "":
		rx = ry
	case c.Ry == "":
		ry = rx
	}
	if rx <= 0 || ry <= 0 {
		// not drawn, but not an error
		return nil, nil
	}
	return c.toPath(parent, ellipse(cx, cy, rx, ry))
}

// ellipse returns a closed path of four cubic arcs, starting at the
// rightmost point and running clockwise in a y-down space.
func ellipse(cx, cy, rx, ry float64) []*DrawingInstruction {
	kx, ky := rx*kappa, ry*kappa
	return []*DrawingInstruction{
		MoveTo(cx+rx, cy),
		CurveTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry),
		CurveTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy),
		CurveTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry),
		CurveTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy),
		ClosePath(),
	}
}

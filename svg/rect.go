package svg

import (
	"fmt"
	"math"

	mt "github.com/rustyoz/Mtransform"
)

// Rect is an SVG rect element
type Rect struct {
	attrs
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	Rx     string `xml:"rx,attr"`
	Ry     string `xml:"ry,attr"`

	owner *Svg
}

// Paths implements the Element interface
func (r *Rect) Paths(parent mt.Transform) ([]*Path, error) {
	var x, y, w, h, rx, ry float64
	err := r.owner.lengths(
		length{r.X, &x, horizontal},
		length{r.Y, &y, vertical},
		length{r.Width, &w, horizontal},
		length{r.Height, &h, vertical},
		length{r.Rx, &rx, horizontal},
		length{r.Ry, &ry, vertical},
	)
	if err != nil {
		return nil, fmt.Errorf("rect %q: %w", r.ID, err)
	}
	if w <= 0 || h <= 0 {
		return nil, nil
	}
	// a single given radius applies to both axes
	if r.Rx == "" {
		rx = ry
	}
	if r.Ry == "" {
		ry = rx
	}
	rx = math.Min(math.Max(rx, 0), w/2)
	ry = math.Min(math.Max(ry, 0), h/2)

	if rx == 0 || ry == 0 {
		return r.toPath(parent, []*DrawingInstruction{
			MoveTo(x, y),
			LineTo(x+w, y),
			LineTo(x+w, y+h),
			LineTo(x, y+h),
			ClosePath(),
		})
	}

	kx, ky := rx*kappa, ry*kappa
	return r.toPath(parent, []*DrawingInstruction{
		MoveTo(x+rx, y),
		LineTo(x+w-rx, y),
		CurveTo(x+w-rx+kx, y, x+w, y+ry-ky, x+w, y+ry),
		LineTo(x+w, y+h-ry),
		CurveTo(x+w, y+h-ry+ky, x+w-rx+kx, y+h, x+w-rx, y+h),
		LineTo(x+rx, y+h),
		CurveTo(x+rx-kx, y+h, x, y+h-ry+ky, x, y+h-ry),
		LineTo(x, y+ry),
		CurveTo(x, y+ry-ky, x+rx-kx, y, x+rx, y),
		ClosePath(),
	})
}

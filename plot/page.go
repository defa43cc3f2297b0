package plot

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/vasalvit/svgplot/svg"
)

// Page is the drawable area. SVG user space has y pointing down, so LLx,LLy
// hold the top-left corner and URx,URy the bottom-right corner.
type Page struct {
	rect.Rect
}

// NewPage returns the page covering the given viewBox.
func NewPage(vb svg.ViewBox) Page {
	return Page{rect.Rect{
		LLx: vb.Left,
		LLy: vb.Top,
		URx: vb.Right(),
		URy: vb.Bottom(),
	}}
}

func (p Page) Left() float64   { return p.LLx }
func (p Page) Top() float64    { return p.LLy }
func (p Page) Right() float64  { return p.URx }
func (p Page) Bottom() float64 { return p.URy }

// Clamp moves v to the nearest point inside the page.
func (p Page) Clamp(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: math.Min(p.Right(), math.Max(p.Left(), v.X)),
		Y: math.Min(p.Bottom(), math.Max(p.Top(), v.Y)),
	}
}

// Corners returns the border trace: top-left, bottom-left, bottom-right,
// top-right and top-left again.
func (p Page) Corners() []vec.Vec2 {
	return []vec.Vec2{
		{X: p.Left(), Y: p.Top()},
		{X: p.Left(), Y: p.Bottom()},
		{X: p.Right(), Y: p.Bottom()},
		{X: p.Right(), Y: p.Top()},
		{X: p.Left(), Y: p.Top()},
	}
}

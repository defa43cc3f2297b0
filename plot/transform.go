package plot

import (
	mt "github.com/rustyoz/Mtransform"
	"seehuhn.de/go/geom/vec"

	"github.com/vasalvit/svgplot/svg"
)

// applyTransform maps a point from a path's local space into user space.
func applyTransform(t mt.Transform, p *svg.Tuple) vec.Vec2 {
	x, y := t.Apply(p[0], p[1])
	return vec.Vec2{X: x, Y: y}
}

package plot

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

const (
	// arcLengthAccuracy is the absolute error allowed when measuring a curve.
	arcLengthAccuracy = 0.01
	// segmentsPerUnit is the number of line segments per whole unit of
	// curve length.
	segmentsPerUnit = 10
	// minCurveSegments is the fewest segments any curve is split into.
	minCurveSegments = 4

	maxSubdivision = 16
)

// cubic is a cubic Bézier curve in user space.
type cubic struct {
	P0, P1, P2, P3 vec.Vec2
}

// eval returns the point at parameter t in [0,1].
func (c cubic) eval(t float64) vec.Vec2 {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return vec.Vec2{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// split divides c at t=0.5.
func (c cubic) split() (cubic, cubic) {
	mid := func(a, b vec.Vec2) vec.Vec2 { return a.Add(b).Mul(0.5) }
	p01 := mid(c.P0, c.P1)
	p12 := mid(c.P1, c.P2)
	p23 := mid(c.P2, c.P3)
	p012 := mid(p01, p12)
	p123 := mid(p12, p23)
	m := mid(p012, p123)
	return cubic{c.P0, p01, p012, m}, cubic{m, p123, p23, c.P3}
}

// arcLength estimates the length of c to within accuracy. The length lies
// between the chord and the control polygon; halves are measured
// separately until the two are close enough.
func (c cubic) arcLength(accuracy float64) float64 {
	return c.arcLengthRec(accuracy, 0)
}

func (c cubic) arcLengthRec(accuracy float64, depth int) float64 {
	chord := c.P3.Sub(c.P0).Length()
	poly := c.P1.Sub(c.P0).Length() + c.P2.Sub(c.P1).Length() + c.P3.Sub(c.P2).Length()
	if poly-chord <= accuracy || depth >= maxSubdivision {
		return (chord + poly) / 2
	}
	l, r := c.split()
	return l.arcLengthRec(accuracy/2, depth+1) + r.arcLengthRec(accuracy/2, depth+1)
}

// segmentCount returns the number of line segments c is drawn with.
func (c cubic) segmentCount() int {
	n := int(math.Floor(c.arcLength(arcLengthAccuracy))) * segmentsPerUnit
	if n < minCurveSegments {
		n = minCurveSegments
	}
	return n
}

// flatten returns the end points of the line segments approximating c,
// sampled at t = i/n for i = 1..n. The start point is not included.
func (c cubic) flatten() []vec.Vec2 {
	n := c.segmentCount()
	pts := make([]vec.Vec2, 0, n)
	for i := 1; i <= n; i++ {
		pts = append(pts, c.eval(float64(i)/float64(n)))
	}
	return pts
}

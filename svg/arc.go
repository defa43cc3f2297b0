package svg

import "math"

// arcToCubics approximates an SVG elliptical arc from start to end by
// cubic Béziers, one per quarter turn at most. Each returned triple is
// (control 1, control 2, end point). ok is false when a radius is zero,
// in which case the arc is a straight line. Coincident end points yield
// no curves at all.
func arcToCubics(start Tuple, rx, ry, phiDeg float64, largeArc, sweep bool, end Tuple) (curves [][3]Tuple, ok bool) {
	if start == end {
		return nil, true
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return nil, false
	}

	sinPhi, cosPhi := math.Sincos(phiDeg * math.Pi / 180)
	dx2 := (start[0] - end[0]) / 2
	dy2 := (start[1] - end[1]) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// scale up radii that are too small to span the end points
	if lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := math.Sqrt(math.Max(0, num/den))
	if largeArc == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	cx := cosPhi*cxp - sinPhi*cyp + (start[0]+end[0])/2
	cy := sinPhi*cxp + cosPhi*cyp + (start[1]+end[1])/2

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry
	theta := math.Atan2(uy, ux)
	delta := math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta)/(math.Pi/2) - 1e-9))
	if n < 1 {
		n = 1
	}
	step := delta / float64(n)
	k := 4.0 / 3 * math.Tan(step/4)

	toUser := func(ux, uy float64) Tuple {
		return Tuple{
			cx + rx*cosPhi*ux - ry*sinPhi*uy,
			cy + rx*sinPhi*ux + ry*cosPhi*uy,
		}
	}

	curves = make([][3]Tuple, 0, n)
	for i := 0; i < n; i++ {
		a1 := theta + float64(i)*step
		a2 := a1 + step
		s1, c1 := math.Sincos(a1)
		s2, c2 := math.Sincos(a2)
		p := [3]Tuple{
			toUser(c1-k*s1, s1+k*c1),
			toUser(c2+k*s2, s2-k*c2),
			toUser(c2, s2),
		}
		if i == n-1 {
			p[2] = end
		}
		curves = append(curves, p)
	}
	return curves, true
}

package plot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

func TestSegmentCount(t *testing.T) {
	line := cubic{vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 2, Y: 0}, vec.Vec2{X: 3, Y: 0}}
	require.InDelta(t, 3, line.arcLength(arcLengthAccuracy), 1e-9)
	require.Equal(t, 30, line.segmentCount())

	short := cubic{vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 0.1, Y: 0}, vec.Vec2{X: 0.2, Y: 0}, vec.Vec2{X: 0.3, Y: 0}}
	require.Equal(t, minCurveSegments, short.segmentCount())

	point := cubic{}
	require.Equal(t, minCurveSegments, point.segmentCount())
}

func TestArcLength(t *testing.T) {
	const r = 10
	k := r * 0.5522847498307936
	quarter := cubic{vec.Vec2{X: r, Y: 0}, vec.Vec2{X: r, Y: k}, vec.Vec2{X: k, Y: r}, vec.Vec2{X: 0, Y: r}}
	require.InDelta(t, math.Pi*r/2, quarter.arcLength(arcLengthAccuracy), 0.02)
}

func TestFlatten(t *testing.T) {
	c := cubic{vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 0, Y: 5}, vec.Vec2{X: 5, Y: 5}, vec.Vec2{X: 5, Y: 0}}
	pts := c.flatten()
	require.Len(t, pts, c.segmentCount())
	require.Equal(t, c.P3, pts[len(pts)-1])
	require.Equal(t, c.eval(1/float64(len(pts))), pts[0])
	require.Equal(t, c.P0, c.eval(0))
}

func TestFormatNumber(t *testing.T) {
	require.Equal(t, "100", formatNumber(100.0))
	require.Equal(t, "0.1", formatNumber(0.1))
	require.Equal(t, "-2.5", formatNumber(-2.5))
	require.Equal(t, "0", formatNumber(math.Copysign(0, -1)))
	require.Equal(t, "1000000", formatNumber(1e6))
}

package plot

import "seehuhn.de/go/geom/vec"

type penState int

const (
	penUp penState = iota
	penDown
)

func (s penState) String() string {
	if s == penDown {
		return "down"
	}
	return "up"
}

// liftPen raises the pen unless it is already up.
func (e *emitter) liftPen() {
	if e.pen == penUp {
		return
	}
	e.program.penHeight(e.params.PenUpHeight)
	e.pen = penUp
	e.stats.PenLifts++
}

// dropPen lowers the pen unless it is already down. Lowering starts a new
// polyline at the current position.
func (e *emitter) dropPen() {
	if e.pen == penDown {
		return
	}
	e.program.penHeight(e.params.PenDownHeight)
	e.pen = penDown
	e.stats.PenDrops++
	e.polylines = append(e.polylines, []vec.Vec2{e.pos})
}

package plot

import (
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

const (
	// dwellSeconds is how long the plotter waits after the border trace.
	dwellSeconds = 3
	// fullPenUp is the servo position that lifts the pen all the way. It
	// opens and closes every program, whatever the configured pen-up height.
	fullPenUp = 0
)

// program accumulates motion commands, one per line.
type program struct {
	b strings.Builder
}

func (p *program) line(fields ...string) {
	p.b.WriteString(strings.Join(fields, " "))
	p.b.WriteByte('\n')
}

// penHeight sets the servo position: M3 S<h>.
func (p *program) penHeight(h float64) {
	p.line("M3", "S"+formatNumber(h))
}

// rapid is a pen-up positioning move: G0 X<x> Y<y>.
func (p *program) rapid(v vec.Vec2) {
	p.line("G0", "X"+formatNumber(v.X), "Y"+formatNumber(v.Y))
}

// feed is a drawing move at the given rate: G1 X<x> Y<y> F<f>.
func (p *program) feed(v vec.Vec2, speed float64) {
	p.line("G1", "X"+formatNumber(v.X), "Y"+formatNumber(v.Y), "F"+formatNumber(speed))
}

// dwell pauses: G4 P<s>.
func (p *program) dwell(seconds float64) {
	p.line("G4", "P"+formatNumber(seconds))
}

func (p *program) String() string {
	return p.b.String()
}

// formatNumber writes v in the shortest form that reads back exactly, with
// no exponent and no trailing zeros.
func formatNumber(v float64) string {
	if v == 0 {
		// avoid "-0"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Package plot turns a parsed SVG document into a pen plotter program.
//
// Paths are walked in document order. Every point is transformed into
// user space, curves are flattened into line segments and every emitted
// point is clamped to the page. The same points are written both to the
// G-code program and to a normalized SVG drawing, so the drawing shows
// exactly what the plotter will do.
package plot

import (
	"errors"
	"fmt"
	"time"

	"seehuhn.de/go/geom/vec"

	"github.com/vasalvit/svgplot/svg"
)

var (
	// ErrUnsupportedSegment is returned for instruction kinds other than
	// move, line, curve and close.
	ErrUnsupportedSegment = errors.New("unsupported segment")

	// ErrMalformedSegment is returned for instructions missing coordinates.
	ErrMalformedSegment = errors.New("malformed segment")
)

// Stats summarizes a converted document.
type Stats struct {
	Paths        int
	RapidMoves   int
	DrawMoves    int
	PenLifts     int
	PenDrops     int
	DrawnLength  float64
	TravelLength float64
}

// DrawTime estimates the time spent on drawing moves at the given feed
// rate in units per minute.
func (s Stats) DrawTime(speed float64) time.Duration {
	if speed <= 0 {
		return 0
	}
	return time.Duration(s.DrawnLength / speed * float64(time.Minute))
}

// Result holds both outputs of a conversion and the geometry behind them.
type Result struct {
	// Drawing is the normalized SVG document.
	Drawing string
	// Program is the G-code, one command per line.
	Program string

	Page   Page
	Width  float64
	Height float64
	// Border is the outline traced before drawing.
	Border []vec.Vec2
	// Polylines are the strokes drawn with the pen down, in order.
	Polylines [][]vec.Vec2

	Stats Stats
}

// emitter is the state of one conversion.
type emitter struct {
	params  Params
	page    Page
	program program
	drawing *drawing

	pos          vec.Vec2
	pen          penState
	subpathStart *vec.Vec2
	data         pathData

	border    []vec.Vec2
	polylines [][]vec.Vec2
	stats     Stats
}

// Convert walks doc once and returns the plotter program together with the
// normalized drawing. It does no I/O and never modifies doc.
func Convert(doc *svg.Document, p Params) (*Result, error) {
	e := &emitter{
		params:  p,
		page:    NewPage(doc.ViewBox),
		drawing: newDrawing(doc.ViewBox, doc.Width, doc.Height),
	}

	e.traceBorder()
	// the current position is the origin until the first move
	e.pos = vec.Vec2{}

	for _, path := range doc.Paths {
		if path == nil {
			continue
		}
		if err := e.walk(path); err != nil {
			return nil, err
		}
	}

	e.program.penHeight(fullPenUp)
	e.program.rapid(vec.Vec2{})
	e.stats.RapidMoves++

	drawing, err := e.drawing.String()
	if err != nil {
		return nil, fmt.Errorf("writing drawing: %w", err)
	}
	return &Result{
		Drawing:   drawing,
		Program:   e.program.String(),
		Page:      e.page,
		Width:     doc.Width,
		Height:    doc.Height,
		Border:    e.border,
		Polylines: e.polylines,
		Stats:     e.stats,
	}, nil
}

func (e *emitter) walk(path *svg.Path) error {
	e.data.reset()
	for i, di := range path.Instructions {
		if err := e.segment(path, di); err != nil {
			return fmt.Errorf("path %q segment %d: %w", path.ID, i, err)
		}
	}
	e.subpathStart = nil
	e.drawing.path(path.ID, e.data.String())
	e.stats.Paths++
	return nil
}

func (e *emitter) segment(path *svg.Path, di *svg.DrawingInstruction) error {
	if di == nil {
		return ErrMalformedSegment
	}
	switch di.Kind {
	case svg.MoveInstruction:
		if di.M == nil {
			return fmt.Errorf("%w: %s without point", ErrMalformedSegment, di.Kind)
		}
		e.moveTo(applyTransform(path.Transform, di.M))
	case svg.LineInstruction:
		if di.M == nil {
			return fmt.Errorf("%w: %s without point", ErrMalformedSegment, di.Kind)
		}
		e.lineTo(applyTransform(path.Transform, di.M))
	case svg.CurveInstruction:
		if di.C1 == nil || di.C2 == nil || di.T == nil {
			return fmt.Errorf("%w: %s without control points", ErrMalformedSegment, di.Kind)
		}
		e.curveTo(
			applyTransform(path.Transform, di.C1),
			applyTransform(path.Transform, di.C2),
			applyTransform(path.Transform, di.T),
		)
	case svg.CloseInstruction:
		e.closePath()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedSegment, di.Kind)
	}
	return nil
}

func (e *emitter) moveTo(v vec.Vec2) {
	e.liftPen()
	v = e.page.Clamp(v)
	e.subpathStart = &v
	e.program.rapid(v)
	e.data.moveTo(v)
	e.stats.RapidMoves++
	e.stats.TravelLength += v.Sub(e.pos).Length()
	e.pos = v
}

func (e *emitter) lineTo(v vec.Vec2) {
	e.dropPen()
	if e.data.empty() {
		// a path that starts drawing without a move still needs a start
		// point in the drawing; the plotter is already there
		e.data.moveTo(e.pos)
	}
	v = e.page.Clamp(v)
	e.program.feed(v, e.params.MaxLineSpeed)
	e.data.lineTo(v)
	e.stats.DrawMoves++
	e.stats.DrawnLength += v.Sub(e.pos).Length()
	last := len(e.polylines) - 1
	e.polylines[last] = append(e.polylines[last], v)
	e.pos = v
}

// curveTo draws a cubic starting at the current position. The control
// points are not clamped; only the sampled points are.
func (e *emitter) curveTo(c1, c2, end vec.Vec2) {
	c := cubic{e.pos, c1, c2, end}
	for _, v := range c.flatten() {
		e.lineTo(v)
	}
}

func (e *emitter) closePath() {
	if e.subpathStart == nil {
		return
	}
	e.lineTo(*e.subpathStart)
	e.subpathStart = nil
}

package plot

// traceBorder lifts the pen, runs it around the page with rapid moves and
// pauses so the operator can check the paper position. The outline is
// mirrored in red into the drawing.
func (e *emitter) traceBorder() {
	e.program.penHeight(fullPenUp)
	e.pen = penUp

	var d pathData
	corners := e.page.Corners()
	d.moveTo(corners[0])
	for _, c := range corners {
		e.program.rapid(c)
		e.stats.RapidMoves++
		d.lineTo(c)
	}
	e.program.dwell(dwellSeconds)
	e.drawing.border(d.String())

	e.pos = corners[len(corners)-1]
	e.border = corners
}

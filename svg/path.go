package svg

import (
	"fmt"

	mt "github.com/rustyoz/Mtransform"
	gl "github.com/rustyoz/genericlexer"
)

// Path is an SVG XML path element. After Paths has been called,
// Instructions holds its segments in local coordinates and Transform the
// transform that maps them into the document's user space.
type Path struct {
	ID              string `xml:"id,attr"`
	D               string `xml:"d,attr"`
	Style           string `xml:"style,attr"`
	Display         string `xml:"display,attr"`
	TransformString string `xml:"transform,attr"`

	Transform    mt.Transform          `xml:"-"`
	Instructions []*DrawingInstruction `xml:"-"`
}

// Paths implements the Element interface
func (p *Path) Paths(parent mt.Transform) ([]*Path, error) {
	if hidden(p.Display, p.Style) {
		return nil, nil
	}
	t, err := compose(parent, p.TransformString)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", p.ID, err)
	}
	instrs, err := parsePathData(p.ID, p.D)
	if err != nil {
		return nil, err
	}
	if len(instrs) == 0 {
		return nil, nil
	}
	p.Transform = t
	p.Instructions = instrs
	return []*Path{p}, nil
}

// NewPath returns a path with the given instructions and the identity
// transform.
func NewPath(id string, instrs ...*DrawingInstruction) *Path {
	return &Path{ID: id, Transform: mt.Identity(), Instructions: instrs}
}

// number of arguments each path command consumes per repetition
var commandArity = map[byte]int{
	'M': 2, 'L': 2, 'T': 2,
	'H': 1, 'V': 1,
	'C': 6,
	'S': 4, 'Q': 4,
	'A': 7,
	'Z': 0,
}

type pathDescriptionParser struct {
	id             string
	lex            *gl.Lexer
	x, y           float64 // current point
	startX, startY float64 // start of the current subpath
	closed         bool    // the last segment was a close
	prev           byte    // 'C' or 'Q' when the last segment may be smoothly continued
	lastControl    Tuple
	instructions   []*DrawingInstruction
}

// parsePathData interprets a path description and returns it as
// absolute move, line, cubic and close instructions.
func parsePathData(id, d string) ([]*DrawingInstruction, error) {
	l, _ := gl.Lex(fmt.Sprint(id), d)
	pdp := &pathDescriptionParser{id: id, lex: l}
	for {
		i := pdp.lex.NextItem()
		switch {
		case i.Type == gl.ItemError:
			return nil, fmt.Errorf("path %q: lexing path data: %s", id, i.Value)
		case i.Type == gl.ItemEOS:
			return pdp.instructions, nil
		case i.Type == gl.ItemLetter:
			if err := pdp.parseCommand(i); err != nil {
				return nil, fmt.Errorf("path %q: %w", id, err)
			}
		case i.Type == gl.ItemNumber:
			return nil, fmt.Errorf("path %q: number %s outside of a command", id, i.Value)
		default:
		}
	}
}

func (pdp *pathDescriptionParser) skipSeparators() {
	pdp.lex.ConsumeWhiteSpace()
	pdp.lex.ConsumeComma()
	pdp.lex.ConsumeWhiteSpace()
}

func (pdp *pathDescriptionParser) parseArgs() ([]float64, error) {
	var args []float64
	pdp.skipSeparators()
	for pdp.lex.PeekItem().Type == gl.ItemNumber {
		n, err := parseNumber(pdp.lex.NextItem())
		if err != nil {
			return nil, err
		}
		args = append(args, n)
		pdp.skipSeparators()
	}
	return args, nil
}

func (pdp *pathDescriptionParser) parseCommand(i gl.Item) error {
	if len(i.Value) != 1 {
		return fmt.Errorf("unknown path command %q", i.Value)
	}
	cmd := i.Value[0]
	rel := cmd >= 'a' && cmd <= 'z'
	if rel {
		cmd -= 'a' - 'A'
	}
	arity, ok := commandArity[cmd]
	if !ok {
		return fmt.Errorf("unknown path command %q", i.Value)
	}

	args, err := pdp.parseArgs()
	if err != nil {
		return fmt.Errorf("command %s: %w", i.Value, err)
	}
	if arity == 0 {
		if len(args) != 0 {
			return fmt.Errorf("command %s takes no arguments, got %d", i.Value, len(args))
		}
		pdp.closePath()
		return nil
	}
	if len(args) == 0 || len(args)%arity != 0 {
		return fmt.Errorf("command %s expects a multiple of %d arguments, got %d", i.Value, arity, len(args))
	}

	for j := 0; j < len(args); j += arity {
		a := args[j : j+arity]
		var ox, oy float64
		if rel {
			ox, oy = pdp.x, pdp.y
		}
		switch cmd {
		case 'M':
			if j == 0 {
				pdp.moveTo(a[0]+ox, a[1]+oy)
			} else {
				// subsequent pairs are implicit lineto commands
				pdp.lineTo(a[0]+ox, a[1]+oy)
			}
		case 'L':
			pdp.lineTo(a[0]+ox, a[1]+oy)
		case 'H':
			pdp.lineTo(a[0]+ox, pdp.y)
		case 'V':
			pdp.lineTo(pdp.x, a[0]+oy)
		case 'C':
			pdp.curveTo(Tuple{a[0] + ox, a[1] + oy}, Tuple{a[2] + ox, a[3] + oy}, Tuple{a[4] + ox, a[5] + oy})
		case 'S':
			c1 := pdp.reflect('C')
			pdp.curveTo(c1, Tuple{a[0] + ox, a[1] + oy}, Tuple{a[2] + ox, a[3] + oy})
		case 'Q':
			pdp.quadTo(Tuple{a[0] + ox, a[1] + oy}, Tuple{a[2] + ox, a[3] + oy})
		case 'T':
			q := pdp.reflect('Q')
			pdp.quadTo(q, Tuple{a[0] + ox, a[1] + oy})
		case 'A':
			pdp.arcTo(a[0], a[1], a[2], a[3] != 0, a[4] != 0, Tuple{a[5] + ox, a[6] + oy})
		}
	}
	return nil
}

// reflect returns the reflection of the previous control point about the
// current point if the previous segment was of the given kind, and the
// current point otherwise.
func (pdp *pathDescriptionParser) reflect(kind byte) Tuple {
	if pdp.prev != kind {
		return Tuple{pdp.x, pdp.y}
	}
	return Tuple{2*pdp.x - pdp.lastControl[0], 2*pdp.y - pdp.lastControl[1]}
}

func (pdp *pathDescriptionParser) emit(di *DrawingInstruction) {
	pdp.instructions = append(pdp.instructions, di)
}

// reopen starts a new subpath at the previous subpath's start when a
// drawing command follows a close without an intervening move.
func (pdp *pathDescriptionParser) reopen() {
	if pdp.closed {
		pdp.closed = false
		pdp.emit(MoveTo(pdp.startX, pdp.startY))
	}
}

func (pdp *pathDescriptionParser) moveTo(x, y float64) {
	pdp.closed = false
	pdp.prev = 0
	pdp.x, pdp.y = x, y
	pdp.startX, pdp.startY = x, y
	pdp.emit(MoveTo(x, y))
}

func (pdp *pathDescriptionParser) lineTo(x, y float64) {
	pdp.reopen()
	pdp.prev = 0
	pdp.x, pdp.y = x, y
	pdp.emit(LineTo(x, y))
}

func (pdp *pathDescriptionParser) curveTo(c1, c2, end Tuple) {
	pdp.reopen()
	pdp.prev = 'C'
	pdp.lastControl = c2
	pdp.x, pdp.y = end[0], end[1]
	pdp.emit(CurveTo(c1[0], c1[1], c2[0], c2[1], end[0], end[1]))
}

// quadTo elevates a quadratic Bézier to the equivalent cubic.
func (pdp *pathDescriptionParser) quadTo(q, end Tuple) {
	x0, y0 := pdp.x, pdp.y
	c1 := Tuple{x0 + 2.0/3*(q[0]-x0), y0 + 2.0/3*(q[1]-y0)}
	c2 := Tuple{end[0] + 2.0/3*(q[0]-end[0]), end[1] + 2.0/3*(q[1]-end[1])}
	pdp.curveTo(c1, c2, end)
	pdp.prev = 'Q'
	pdp.lastControl = q
}

func (pdp *pathDescriptionParser) arcTo(rx, ry, phi float64, largeArc, sweep bool, end Tuple) {
	curves, ok := arcToCubics(Tuple{pdp.x, pdp.y}, rx, ry, phi, largeArc, sweep, end)
	if !ok {
		pdp.lineTo(end[0], end[1])
		return
	}
	for _, c := range curves {
		pdp.curveTo(c[0], c[1], c[2])
	}
	pdp.prev = 0
}

func (pdp *pathDescriptionParser) closePath() {
	if len(pdp.instructions) == 0 {
		return
	}
	pdp.prev = 0
	pdp.closed = true
	pdp.x, pdp.y = pdp.startX, pdp.startY
	pdp.emit(ClosePath())
}

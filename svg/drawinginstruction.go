package svg

import "fmt"

// InstructionType tells the consumer which kind of segment a
// DrawingInstruction describes.
type InstructionType int

// These are the only instruction types the parser produces. Every other
// path command is rewritten into one of them.
const (
	MoveInstruction InstructionType = iota
	LineInstruction
	CurveInstruction
	CloseInstruction
)

func (k InstructionType) String() string {
	switch k {
	case MoveInstruction:
		return "MoveTo"
	case LineInstruction:
		return "LineTo"
	case CurveInstruction:
		return "CurveTo"
	case CloseInstruction:
		return "ClosePath"
	default:
		return fmt.Sprintf("InstructionType(%d)", int(k))
	}
}

// DrawingInstruction is one segment of a path in the path's local
// coordinate space. Move and Line instructions use M. Curve instructions
// use C1, C2 (control points) and T (end point). Close instructions carry
// no coordinates.
type DrawingInstruction struct {
	Kind InstructionType
	M    *Tuple
	C1   *Tuple
	C2   *Tuple
	T    *Tuple
}

// MoveTo returns a move instruction to (x, y).
func MoveTo(x, y float64) *DrawingInstruction {
	return &DrawingInstruction{Kind: MoveInstruction, M: &Tuple{x, y}}
}

// LineTo returns a line instruction to (x, y).
func LineTo(x, y float64) *DrawingInstruction {
	return &DrawingInstruction{Kind: LineInstruction, M: &Tuple{x, y}}
}

// CurveTo returns a cubic Bézier instruction with control points (x1, y1)
// and (x2, y2), ending at (x, y).
func CurveTo(x1, y1, x2, y2, x, y float64) *DrawingInstruction {
	return &DrawingInstruction{
		Kind: CurveInstruction,
		C1:   &Tuple{x1, y1},
		C2:   &Tuple{x2, y2},
		T:    &Tuple{x, y},
	}
}

// ClosePath returns a close instruction.
func ClosePath() *DrawingInstruction {
	return &DrawingInstruction{Kind: CloseInstruction}
}

func (di *DrawingInstruction) String() string {
	switch di.Kind {
	case MoveInstruction, LineInstruction:
		if di.M != nil {
			return fmt.Sprintf("%s(%g, %g)", di.Kind, di.M[0], di.M[1])
		}
	case CurveInstruction:
		if di.C1 != nil && di.C2 != nil && di.T != nil {
			return fmt.Sprintf("%s(%g, %g, %g, %g, %g, %g)", di.Kind,
				di.C1[0], di.C1[1], di.C2[0], di.C2[1], di.T[0], di.T[1])
		}
	}
	return di.Kind.String()
}

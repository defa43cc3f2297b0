package svg

import (
	"fmt"
	"math"
	"strings"

	mt "github.com/rustyoz/Mtransform"
)

// parseTransform interprets the value of a transform attribute. The
// individual transforms are composed left to right, as SVG requires.
func parseTransform(v string) (mt.Transform, error) {
	t := mt.Identity()
	for _, part := range strings.Split(v, ")") {
		part = strings.TrimSpace(strings.TrimLeft(part, ", \t\r\n"))
		if part == "" {
			continue
		}
		d := strings.Split(part, "(")
		if len(d) != 2 {
			return t, fmt.Errorf("badly formed transform %q", part)
		}
		args, err := parseNumberList(d[1])
		if err != nil {
			return t, fmt.Errorf("transform %q: %w", part, err)
		}
		next, err := transformFor(strings.TrimSpace(d[0]), args)
		if err != nil {
			return t, err
		}
		t = mt.MultiplyTransforms(t, next)
	}
	return t, nil
}

func transformFor(name string, a []float64) (mt.Transform, error) {
	t := mt.Identity()
	switch {
	case name == "matrix" && len(a) == 6:
		return newMatrix(a[0], a[1], a[2], a[3], a[4], a[5]), nil
	case name == "translate" && len(a) == 1:
		return newMatrix(1, 0, 0, 1, a[0], 0), nil
	case name == "translate" && len(a) == 2:
		return newMatrix(1, 0, 0, 1, a[0], a[1]), nil
	case name == "scale" && len(a) == 1:
		return newMatrix(a[0], 0, 0, a[0], 0, 0), nil
	case name == "scale" && len(a) == 2:
		return newMatrix(a[0], 0, 0, a[1], 0, 0), nil
	case name == "rotate" && len(a) == 1:
		return rotation(a[0]), nil
	case name == "rotate" && len(a) == 3:
		t = mt.MultiplyTransforms(newMatrix(1, 0, 0, 1, a[1], a[2]), rotation(a[0]))
		return mt.MultiplyTransforms(t, newMatrix(1, 0, 0, 1, -a[1], -a[2])), nil
	case name == "skewX" && len(a) == 1:
		return newMatrix(1, 0, math.Tan(a[0]*math.Pi/180), 1, 0, 0), nil
	case name == "skewY" && len(a) == 1:
		return newMatrix(1, math.Tan(a[0]*math.Pi/180), 0, 1, 0, 0), nil
	}
	return t, fmt.Errorf("unsupported transform %s with %d arguments", name, len(a))
}

// newMatrix builds a transform from the six values of an SVG matrix(a b c d e f).
func newMatrix(a, b, c, d, e, f float64) mt.Transform {
	t := mt.Identity()
	t[0][0], t[0][1], t[0][2] = a, c, e
	t[1][0], t[1][1], t[1][2] = b, d, f
	return t
}

func rotation(deg float64) mt.Transform {
	s, c := math.Sincos(deg * math.Pi / 180)
	return newMatrix(c, s, -s, c, 0, 0)
}

// compose returns the transform of an element whose own transform
// attribute is own, nested inside an element with transform parent.
func compose(parent mt.Transform, own string) (mt.Transform, error) {
	if strings.TrimSpace(own) == "" {
		return parent, nil
	}
	t, err := parseTransform(own)
	if err != nil {
		return parent, err
	}
	return mt.MultiplyTransforms(parent, t), nil
}

package svg

import (
	"fmt"
	"strconv"
	"strings"

	gl "github.com/rustyoz/genericlexer"
)

// Tuple is an X,Y coordinate
type Tuple [2]float64

func parseNumber(i gl.Item) (float64, error) {
	if i.Type != gl.ItemNumber {
		return 0, fmt.Errorf("expected number, got %q", i.Value)
	}
	n, err := strconv.ParseFloat(i.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing number %q: %w", i.Value, err)
	}
	return n, nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input
// on comma and whitespace delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

func parseNumberList(s string) ([]float64, error) {
	fields := splitOnCommaOrSpace(s)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}

// pixels per unit, at the CSS resolution of 96 dpi
var unitScale = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96.0 / 72,
	"pc": 16,
	"mm": 96 / 25.4,
	"cm": 96 / 2.54,
	"in": 96,
}

// parseLength parses an SVG length such as "210mm" or "595.2px" and
// returns it in user units (px). Percentages are resolved against ref.
func parseLength(v string, ref float64) (float64, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid length %q", v)
		}
		return f / 100 * ref, nil
	}
	end := len(v)
	for end > 0 && (v[end-1] >= 'a' && v[end-1] <= 'z' || v[end-1] >= 'A' && v[end-1] <= 'Z') {
		end--
	}
	scale, ok := unitScale[strings.ToLower(v[end:])]
	if !ok {
		return 0, fmt.Errorf("unsupported unit in length %q", v)
	}
	f, err := strconv.ParseFloat(v[:end], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", v)
	}
	return f * scale, nil
}

// Package svg parses SVG documents into an ordered list of paths made of
// move, line, cubic curve and close instructions, each with the affine
// transform that maps it into the document's user space.
//
// Shapes (rect, circle, ellipse, line, polyline, polygon) are converted to
// paths. Quadratic curves and elliptical arcs in path data are converted
// to cubic curves, so consumers only ever see the four instruction kinds.
package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	mt "github.com/rustyoz/Mtransform"
	"golang.org/x/net/html/charset"
)

const svgNamespace = "http://www.w3.org/2000/svg"

var (
	// ErrNoSize is returned for documents with neither a usable viewBox nor
	// a width and height.
	ErrNoSize = errors.New("svg has no viewBox and no size")

	// ErrUnsupportedElement is returned in StrictErrorMode for elements the
	// parser cannot turn into paths.
	ErrUnsupportedElement = errors.New("cannot process svg element")
)

// ErrorMode determines if the parser ignores, logs a warning or fails on
// an element it does not handle.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota
	WarnErrorMode
	StrictErrorMode
)

// ParseErrorMode returns the ErrorMode named by s: "ignore", "warn" or
// "strict".
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore":
		return IgnoreErrorMode, nil
	case "warn", "":
		return WarnErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	}
	return WarnErrorMode, fmt.Errorf("unknown error mode %q", s)
}

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	}
	return fmt.Sprintf("ErrorMode(%d)", m)
}

// Element is implemented by every SVG element the parser turns into
// paths. parent is the transform accumulated from the element's
// ancestors.
type Element interface {
	Paths(parent mt.Transform) ([]*Path, error)
}

// ViewBox is the rectangle of user space mapped onto the page.
type ViewBox struct {
	Left, Top, Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (v ViewBox) Right() float64 { return v.Left + v.Width }

// Bottom returns the y coordinate of the bottom edge.
func (v ViewBox) Bottom() float64 { return v.Top + v.Height }

func (v ViewBox) String() string {
	return fmt.Sprintf("%g %g %g %g", v.Left, v.Top, v.Width, v.Height)
}

// Document is a parsed SVG file reduced to what a plotter needs: the page
// rectangle, the nominal output size and the paths in drawing order.
type Document struct {
	Name    string
	ViewBox ViewBox
	Width   float64
	Height  float64
	Paths   []*Path
}

// Svg represents the element tree of an SVG file
type Svg struct {
	Name            string
	ViewBox         ViewBox
	Width, Height   float64
	TransformString string
	Elements        []Element

	errorMode ErrorMode
}

// Group represents an SVG group (usually located in a 'g' XML element)
type Group struct {
	attrs
	Elements []Element

	owner *Svg
}

// attrs are the attributes shared by all drawable elements.
type attrs struct {
	ID              string `xml:"id,attr"`
	Style           string `xml:"style,attr"`
	Display         string `xml:"display,attr"`
	TransformString string `xml:"transform,attr"`
}

func (a *attrs) readAttr(attr xml.Attr) {
	switch attr.Name.Local {
	case "id":
		a.ID = attr.Value
	case "style":
		a.Style = attr.Value
	case "display":
		a.Display = attr.Value
	case "transform":
		a.TransformString = attr.Value
	}
}

// toPath wraps instructions built by a shape into a Path carrying the
// shape's transform.
func (a *attrs) toPath(parent mt.Transform, instrs []*DrawingInstruction) ([]*Path, error) {
	if hidden(a.Display, a.Style) {
		return nil, nil
	}
	t, err := compose(parent, a.TransformString)
	if err != nil {
		return nil, fmt.Errorf("element %q: %w", a.ID, err)
	}
	return []*Path{{ID: a.ID, Transform: t, Instructions: instrs}}, nil
}

// Paths implements the Element interface
func (g *Group) Paths(parent mt.Transform) ([]*Path, error) {
	if hidden(g.Display, g.Style) {
		return nil, nil
	}
	t, err := compose(parent, g.TransformString)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", g.ID, err)
	}
	var paths []*Path
	for _, e := range g.Elements {
		ps, err := e.Paths(t)
		if err != nil {
			return nil, err
		}
		paths = append(paths, ps...)
	}
	return paths, nil
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (g *Group) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		g.readAttr(attr)
	}
	return g.owner.decodeChildren(decoder, &g.Elements)
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (s *Svg) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	if start.Name.Local != "svg" {
		return fmt.Errorf("root element is %s, not svg", start.Name.Local)
	}
	var viewBox, width, height string
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "viewBox":
			viewBox = attr.Value
		case "width":
			width = attr.Value
		case "height":
			height = attr.Value
		case "transform":
			s.TransformString = attr.Value
		}
	}
	if err := s.setSize(viewBox, width, height); err != nil {
		return err
	}
	return s.decodeChildren(decoder, &s.Elements)
}

func (s *Svg) setSize(viewBox, width, height string) error {
	hasViewBox := false
	if strings.TrimSpace(viewBox) != "" {
		v, err := parseNumberList(viewBox)
		if err != nil {
			return fmt.Errorf("viewBox: %w", err)
		}
		if len(v) != 4 {
			return fmt.Errorf("viewBox: expected 4 numbers, got %d", len(v))
		}
		s.ViewBox = ViewBox{v[0], v[1], v[2], v[3]}
		hasViewBox = s.ViewBox.Width > 0 && s.ViewBox.Height > 0
	}

	var err error
	s.Width, s.Height = s.ViewBox.Width, s.ViewBox.Height
	if width != "" {
		if s.Width, err = parseLength(width, s.ViewBox.Width); err != nil {
			return fmt.Errorf("width: %w", err)
		}
	}
	if height != "" {
		if s.Height, err = parseLength(height, s.ViewBox.Height); err != nil {
			return fmt.Errorf("height: %w", err)
		}
	}
	if !hasViewBox {
		s.ViewBox = ViewBox{0, 0, s.Width, s.Height}
	}
	if s.ViewBox.Width <= 0 || s.ViewBox.Height <= 0 {
		return ErrNoSize
	}
	return nil
}

// decodeChildren decodes the child elements of the element being
// unmarshalled, up to and including its end tag.
func (s *Svg) decodeChildren(decoder *xml.Decoder, elements *[]Element) error {
	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			el, err := s.newElement(tok.Name)
			if err != nil {
				return err
			}
			if el == nil {
				if err := decoder.Skip(); err != nil {
					return err
				}
				continue
			}
			if err := decoder.DecodeElement(el, &tok); err != nil {
				return fmt.Errorf("error decoding %s element: %w", tok.Name.Local, err)
			}
			*elements = append(*elements, el)

		case xml.EndElement:
			return nil
		}
	}
}

// elements that never produce drawing output
var nonDrawing = map[string]bool{
	"defs": true, "title": true, "desc": true, "metadata": true,
	"style": true, "script": true, "clipPath": true, "mask": true,
	"pattern": true, "symbol": true, "marker": true, "filter": true,
	"linearGradient": true, "radialGradient": true,
}

// newElement returns the element to decode a start tag into, or nil if
// the tag is to be skipped.
func (s *Svg) newElement(name xml.Name) (Element, error) {
	if name.Space != "" && name.Space != svgNamespace {
		// editor metadata such as sodipodi:namedview
		return nil, nil
	}
	switch name.Local {
	case "g", "a", "switch":
		return &Group{owner: s}, nil
	case "path":
		return &Path{}, nil
	case "rect":
		return &Rect{owner: s}, nil
	case "circle", "ellipse":
		return &Circle{owner: s}, nil
	case "line":
		return &Line{owner: s}, nil
	case "polyline":
		return &PolyLine{}, nil
	case "polygon":
		return &PolyLine{closed: true}, nil
	}
	if nonDrawing[name.Local] {
		return nil, nil
	}
	switch s.errorMode {
	case StrictErrorMode:
		return nil, fmt.Errorf("%w %s", ErrUnsupportedElement, name.Local)
	case WarnErrorMode:
		log.Printf("%s: cannot process svg element %s", s.Name, name.Local)
	}
	return nil, nil
}

// Document resolves the element tree into the paths to draw, in document
// order.
func (s *Svg) Document() (*Document, error) {
	root, err := compose(mt.Identity(), s.TransformString)
	if err != nil {
		return nil, fmt.Errorf("svg: %w", err)
	}
	doc := &Document{
		Name:    s.Name,
		ViewBox: s.ViewBox,
		Width:   s.Width,
		Height:  s.Height,
	}
	for _, e := range s.Elements {
		ps, err := e.Paths(root)
		if err != nil {
			return nil, err
		}
		doc.Paths = append(doc.Paths, ps...)
	}
	return doc, nil
}

// ParseSvg parses an SVG string into a Document
func ParseSvg(str string, name string, mode ErrorMode) (*Document, error) {
	return ParseSvgFromReader(strings.NewReader(str), name, mode)
}

// ParseSvgFromReader parses a Document from an io.Reader
func ParseSvgFromReader(r io.Reader, name string, mode ErrorMode) (*Document, error) {
	svg := &Svg{Name: name, errorMode: mode}

	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	decoder.Entity = xml.HTMLEntity
	if err := decoder.Decode(svg); err != nil {
		return nil, fmt.Errorf("ParseSvg %s: %w", name, err)
	}
	doc, err := svg.Document()
	if err != nil {
		return nil, fmt.Errorf("ParseSvg %s: %w", name, err)
	}
	return doc, nil
}

func splitStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		kv := strings.SplitN(decl, ":", 2)
		if len(kv) != 2 {
			continue
		}
		props[strings.ToLower(strings.TrimSpace(kv[0]))] = strings.TrimSpace(kv[1])
	}
	return props
}

func hidden(display, style string) bool {
	if strings.TrimSpace(display) == "none" {
		return true
	}
	return splitStyle(style)["display"] == "none"
}

type axis int

const (
	horizontal axis = iota
	vertical
	diagonal
)

// length binds an attribute value to its destination. Empty values leave
// the destination untouched.
type length struct {
	value string
	dst   *float64
	axis  axis
}

// lengths parses shape attributes, resolving percentages against the
// viewBox of s. s may be nil for elements built outside a document.
func (s *Svg) lengths(ls ...length) error {
	var w, h float64
	if s != nil {
		w, h = s.ViewBox.Width, s.ViewBox.Height
	}
	for _, l := range ls {
		if l.value == "" {
			continue
		}
		ref := w
		switch l.axis {
		case vertical:
			ref = h
		case diagonal:
			ref = math.Sqrt(w*w+h*h) / math.Sqrt2
		}
		v, err := parseLength(l.value, ref)
		if err != nil {
			return err
		}
		*l.dst = v
	}
	return nil
}

package plot

import (
	"strings"

	"github.com/beevik/etree"
	"seehuhn.de/go/geom/vec"

	"github.com/vasalvit/svgplot/svg"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// drawing builds the normalized SVG that shows what the plotter draws.
type drawing struct {
	doc  *etree.Document
	root *etree.Element
}

func newDrawing(vb svg.ViewBox, width, height float64) *drawing {
	doc := etree.NewDocument()
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", svgNamespace)
	root.CreateAttr("viewBox", strings.Join([]string{
		formatNumber(vb.Left),
		formatNumber(vb.Top),
		formatNumber(vb.Width),
		formatNumber(vb.Height),
	}, " "))
	root.CreateAttr("width", formatNumber(width))
	root.CreateAttr("height", formatNumber(height))
	return &drawing{doc: doc, root: root}
}

// border adds the red outline of the page.
func (d *drawing) border(data string) {
	p := d.root.CreateElement("path")
	p.CreateAttr("stroke", "red")
	p.CreateAttr("fill", "none")
	p.CreateAttr("d", data)
}

// path adds one plotted path.
func (d *drawing) path(id, data string) {
	p := d.root.CreateElement("path")
	if id != "" {
		p.CreateAttr("id", id)
	}
	p.CreateAttr("stroke-width", "0.1")
	p.CreateAttr("stroke", "black")
	p.CreateAttr("fill", "none")
	p.CreateAttr("d", data)
}

func (d *drawing) String() (string, error) {
	d.doc.Indent(4)
	return d.doc.WriteToString()
}

// pathData accumulates the d attribute of a path.
type pathData struct {
	b strings.Builder
}

func (pd *pathData) add(cmd string, v vec.Vec2) {
	if pd.b.Len() > 0 {
		pd.b.WriteByte(' ')
	}
	pd.b.WriteString(cmd)
	pd.b.WriteByte(' ')
	pd.b.WriteString(formatNumber(v.X))
	pd.b.WriteByte(' ')
	pd.b.WriteString(formatNumber(v.Y))
}

func (pd *pathData) moveTo(v vec.Vec2) { pd.add("M", v) }
func (pd *pathData) lineTo(v vec.Vec2) { pd.add("L", v) }

func (pd *pathData) String() string { return pd.b.String() }

func (pd *pathData) reset() { pd.b.Reset() }

func (pd *pathData) empty() bool { return pd.b.Len() == 0 }

// Package preview rasterizes a conversion result so it can be checked
// without a plotter: the page border in red and every pen-down stroke in
// black on white.
package preview

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/vec"

	"github.com/vasalvit/svgplot/plot"
)

const (
	strokeWidth = 1.5
	borderWidth = 1.0
)

var (
	borderColor = color.RGBA{R: 0xff, A: 0xff}
	strokeColor = color.Black
)

// Render draws res into a new image width pixels wide. The height follows
// the page's aspect ratio.
func Render(res *plot.Result, width int) (*image.RGBA, error) {
	pw := res.Page.Right() - res.Page.Left()
	ph := res.Page.Bottom() - res.Page.Top()
	if width <= 0 || pw <= 0 || ph <= 0 {
		return nil, errors.New("preview: empty page")
	}
	scale := float64(width) / pw
	height := int(math.Max(1, math.Round(ph*scale)))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	r := &rasterizer{
		dasher: rasterx.NewDasher(width, height, rasterx.NewScannerGV(width, height, img, img.Bounds())),
		origin: vec.Vec2{X: res.Page.Left(), Y: res.Page.Top()},
		scale:  scale,
	}
	r.stroke([][]vec.Vec2{res.Border}, borderWidth, borderColor)
	r.stroke(res.Polylines, strokeWidth, strokeColor)
	return img, nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

type rasterizer struct {
	dasher *rasterx.Dasher
	origin vec.Vec2
	scale  float64
}

func (r *rasterizer) toFixed(v vec.Vec2) fixed.Point26_6 {
	p := v.Sub(r.origin).Mul(r.scale)
	return rasterx.ToFixedP(p.X, p.Y)
}

func (r *rasterizer) stroke(lines [][]vec.Vec2, width float64, c color.Color) {
	r.dasher.Clear()
	r.dasher.SetStroke(fixed.Int26_6(width*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	r.dasher.SetColor(c)
	for _, pl := range lines {
		if len(pl) < 2 {
			continue
		}
		r.dasher.Start(r.toFixed(pl[0]))
		for _, v := range pl[1:] {
			r.dasher.Line(r.toFixed(v))
		}
		r.dasher.Stop(false)
	}
	r.dasher.Draw()
}

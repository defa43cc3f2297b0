package preview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/cheekybits/is"

	"github.com/vasalvit/svgplot/plot"
	"github.com/vasalvit/svgplot/svg"
)

func TestRender(t *testing.T) {
	is := is.New(t)

	doc := &svg.Document{
		ViewBox: svg.ViewBox{Width: 100, Height: 50},
		Width:   100,
		Height:  50,
		Paths:   []*svg.Path{svg.NewPath("a", svg.MoveTo(10, 25), svg.LineTo(90, 25))},
	}
	res, err := plot.Convert(doc, plot.DefaultParams())
	is.NoErr(err)

	img, err := Render(res, 200)
	is.NoErr(err)
	is.Equal(img.Bounds().Dx(), 200)
	is.Equal(img.Bounds().Dy(), 100)

	// the middle of the stroke is dark, the empty page is white
	r, g, b, _ := img.At(100, 50).RGBA()
	is.True(r < 0x8000 && g < 0x8000 && b < 0x8000)
	r, g, b, _ = img.At(100, 80).RGBA()
	is.Equal([]uint32{r, g, b}, []uint32{0xffff, 0xffff, 0xffff})

	var buf bytes.Buffer
	is.NoErr(Encode(&buf, img))
	decoded, err := png.Decode(&buf)
	is.NoErr(err)
	is.Equal(decoded.Bounds(), img.Bounds())
}

func TestRenderEmptyPage(t *testing.T) {
	is := is.New(t)

	_, err := Render(&plot.Result{}, 100)
	is.Err(err)
}

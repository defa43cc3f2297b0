package svg

import (
	"errors"
	"strings"
	"testing"

	"github.com/cheekybits/is"
)

const testSvg = `<?xml version="1.0" encoding="utf-8"?>
<!-- Generator: Adobe Illustrator 15.0.2, SVG Export Plug-In . SVG Version: 6.00 Build 0)  -->
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg version="1.1" id="Layer_1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" x="0px" y="0px"
	 width="595.201px" height="841.922px" viewBox="0 0 595.201 841.922" enable-background="new 0 0 595.201 841.922"
	 xml:space="preserve">
<rect x="207" y="53" fill="#009FE3" width="181.667" height="85.333"/>
<text transform="matrix(1 0 0 1 232.3306 107.5952)" fill="#FFFFFF" font-family="'ArialMT'" font-size="31.9752">PODIUM</text>
</svg>`

func TestParse(t *testing.T) {
	is := is.New(t)

	doc, err := ParseSvg(testSvg, "test", IgnoreErrorMode)
	is.NoErr(err)
	is.NotNil(doc)
	is.Equal(doc.ViewBox, ViewBox{0, 0, 595.201, 841.922})
	is.Equal(len(doc.Paths), 1)

	doc, err = ParseSvgFromReader(strings.NewReader(testSvg), "test", WarnErrorMode)
	is.NoErr(err)
	is.NotNil(doc)
	is.Equal(len(doc.Paths), 1)
}

func TestParseStrict(t *testing.T) {
	is := is.New(t)

	_, err := ParseSvg(testSvg, "test", StrictErrorMode)
	is.Err(err)
	is.True(errors.Is(err, ErrUnsupportedElement))
}

func TestParseNoSize(t *testing.T) {
	is := is.New(t)

	_, err := ParseSvg(`<svg><path d="M0 0 L1 1"/></svg>`, "test", IgnoreErrorMode)
	is.True(errors.Is(err, ErrNoSize))

	doc, err := ParseSvg(`<svg width="20mm" height="10mm"><path d="M0 0 L1 1"/></svg>`, "test", IgnoreErrorMode)
	is.NoErr(err)
	is.Equal(doc.ViewBox.Left, 0.0)
	is.True(doc.ViewBox.Width > 75 && doc.ViewBox.Width < 76)
}

func TestParseNotSvg(t *testing.T) {
	is := is.New(t)

	_, err := ParseSvg(`<html></html>`, "test", IgnoreErrorMode)
	is.Err(err)
}

func TestParseCharset(t *testing.T) {
	is := is.New(t)

	src := `<?xml version="1.0" encoding="ISO-8859-1"?>` +
		`<svg viewBox="0 0 10 10"><title>caf` + "\xe9" + `</title><path id="p" d="M1 1 L2 2"/></svg>`
	doc, err := ParseSvg(src, "latin1", StrictErrorMode)
	is.NoErr(err)
	is.Equal(len(doc.Paths), 1)
	is.Equal(doc.Paths[0].ID, "p")
}

func TestParseSkipsForeignAndHidden(t *testing.T) {
	is := is.New(t)

	src := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:sodipodi="http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd" viewBox="0 0 10 10">
	<sodipodi:namedview id="nv"/>
	<defs><path id="hiddenInDefs" d="M0 0 L5 5"/></defs>
	<g style="display: none"><path id="a" d="M0 0 L5 5"/></g>
	<path id="b" display="none" d="M0 0 L5 5"/>
	<path id="c" d="M0 0 L5 5"/>
</svg>`
	doc, err := ParseSvg(src, "test", StrictErrorMode)
	is.NoErr(err)
	is.Equal(len(doc.Paths), 1)
	is.Equal(doc.Paths[0].ID, "c")
}

func TestDocumentOrder(t *testing.T) {
	is := is.New(t)

	src := `<svg viewBox="0 0 10 10">
	<path id="one" d="M0 0 L1 1"/>
	<g><path id="two" d="M0 0 L1 1"/><rect id="three" width="1" height="1"/></g>
	<circle id="four" r="1"/>
	<line id="five" x2="1" y2="1"/>
	<polygon id="six" points="0,0 1,0 1,1"/>
</svg>`
	doc, err := ParseSvg(src, "test", StrictErrorMode)
	is.NoErr(err)
	var ids []string
	for _, p := range doc.Paths {
		ids = append(ids, p.ID)
	}
	is.Equal(strings.Join(ids, ","), "one,two,three,four,five,six")
}

func TestParseErrorMode(t *testing.T) {
	is := is.New(t)

	m, err := ParseErrorMode("Strict")
	is.NoErr(err)
	is.Equal(m, StrictErrorMode)
	m, err = ParseErrorMode("")
	is.NoErr(err)
	is.Equal(m, WarnErrorMode)
	_, err = ParseErrorMode("loud")
	is.Err(err)
	is.Equal(IgnoreErrorMode.String(), "ignore")
}

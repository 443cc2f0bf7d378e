package export

import (
	"fmt"
	"image"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Sections are rasterized at twice the logical resolution so text stays
// crisp when the bitmap is scaled onto the PDF page.
const rasterScale = 2

// rasterWidth is the bitmap width in pixels (logical 700px upscaled).
const rasterWidth = 700 * rasterScale

// bodyFontPx maps the font-size choice to a pixel size at raster scale.
var bodyFontPx = map[FontSize]float64{
	FontSmall:  12 * rasterScale,
	FontMedium: 14 * rasterScale,
	FontLarge:  16 * rasterScale,
}

const lineSpacing = 1.45

var (
	regularFont *truetype.Font
	boldFont    *truetype.Font
)

func init() {
	// The Go fonts cover Latin Extended-A, which Lithuanian needs.
	regularFont, _ = truetype.Parse(goregular.TTF)
	boldFont, _ = truetype.Parse(gobold.TTF)
}

func newFace(f *truetype.Font, px float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: px, DPI: 72})
}

// renderSection rasterizes one section to a bitmap: title in bold, a
// rule under it, then the word-wrapped body. Compact layout shrinks the
// padding around the text.
func renderSection(sec Section, size FontSize, compact bool) (image.Image, error) {
	if regularFont == nil || boldFont == nil {
		return nil, fmt.Errorf("render %s: fonts unavailable", sec.ID)
	}

	bodyPx, ok := bodyFontPx[size]
	if !ok {
		bodyPx = bodyFontPx[FontMedium]
	}
	titlePx := bodyPx + 6*rasterScale

	pad := 24.0 * rasterScale
	if compact {
		pad = 12.0 * rasterScale
	}
	textWidth := float64(rasterWidth) - 2*pad

	titleFace := newFace(boldFont, titlePx)
	bodyFace := newFace(regularFont, bodyPx)

	// Measure first with a throwaway context, then draw for real.
	measure := gg.NewContext(1, 1)

	measure.SetFontFace(titleFace)
	titleLines := measure.WordWrap(sec.Title, textWidth)
	titleLineH := titlePx * lineSpacing

	measure.SetFontFace(bodyFace)
	bodyLines := wrapBody(measure, sec.Body, textWidth)
	bodyLineH := bodyPx * lineSpacing

	ruleGap := 10.0 * rasterScale
	height := pad +
		float64(len(titleLines))*titleLineH +
		ruleGap +
		float64(len(bodyLines))*bodyLineH +
		pad

	dc := gg.NewContext(rasterWidth, int(height+0.5))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	y := pad
	dc.SetRGB255(30, 41, 59)
	dc.SetFontFace(titleFace)
	for _, line := range titleLines {
		y += titleLineH
		dc.DrawString(line, pad, y-titlePx*0.3)
	}

	// Rule under the title.
	y += ruleGap / 2
	dc.SetRGB255(148, 163, 184)
	dc.SetLineWidth(1.5 * rasterScale)
	dc.DrawLine(pad, y, float64(rasterWidth)-pad, y)
	dc.Stroke()
	y += ruleGap / 2

	dc.SetRGB255(15, 23, 42)
	dc.SetFontFace(bodyFace)
	for _, line := range bodyLines {
		y += bodyLineH
		if line != "" {
			dc.DrawString(line, pad, y-bodyPx*0.3)
		}
	}

	return dc.Image(), nil
}

// wrapBody word-wraps each paragraph and keeps blank lines between them.
func wrapBody(dc *gg.Context, body string, width float64) []string {
	var out []string
	for i, para := range strings.Split(body, "\n") {
		if i > 0 {
			out = append(out, "")
		}
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		out = append(out, dc.WordWrap(para, width)...)
	}
	return out
}

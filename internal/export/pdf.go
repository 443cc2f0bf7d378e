package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
)

// ErrNothingToExport is returned when every section is excluded (or the
// plan has no renderable content). The export is refused outright rather
// than producing an empty document.
var ErrNothingToExport = errors.New("no sections selected for export")

// A4 page geometry in millimeters.
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
)

func pageMarginMM(compact bool) float64 {
	if compact {
		return 8.0
	}
	return 15.0
}

func sectionGapMM(compact bool) float64 {
	if compact {
		return 3.0
	}
	return 6.0
}

// Result describes a completed export.
type Result struct {
	Path     string
	Pages    int
	Sections int
}

// Export rasterizes the included sections and assembles them into a
// paginated PDF at path. Any rasterization or assembly failure aborts
// the whole export; a partial file is never written.
func Export(sections []Section, cfg Config, path string) (*Result, error) {
	var buf bytes.Buffer
	pages, count, err := assemble(sections, cfg, &buf)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	return &Result{Path: path, Pages: pages, Sections: count}, nil
}

// assemble renders the document into w and reports page/section counts.
func assemble(sections []Section, cfg Config, w *bytes.Buffer) (pages, count int, err error) {
	included := make([]Section, 0, len(sections))
	for _, sec := range sections {
		if cfg.Include[sec.ID] {
			included = append(included, sec)
		}
	}
	if len(included) == 0 {
		return 0, 0, ErrNothingToExport
	}

	margin := pageMarginMM(cfg.Compact)
	gap := sectionGapMM(cfg.Compact)
	contentW := pageWidthMM - 2*margin

	// Rasterize everything up front so a late failure cannot leave a
	// half-assembled document behind.
	imgs := make([]image.Image, len(included))
	heights := make([]float64, len(included))
	for i, sec := range included {
		img, rerr := renderSection(sec, cfg.FontSizeFor(sec.ID), cfg.Compact)
		if rerr != nil {
			return 0, 0, rerr
		}
		imgs[i] = img
		heights[i] = imageHeightMM(img, contentW)
	}

	layout := Paginate(heights, pageHeightMM, margin, gap)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for _, pageIdxs := range layout {
		pdf.AddPage()
		y := margin
		for _, i := range pageIdxs {
			name := fmt.Sprintf("section-%d", i)
			var pngBuf bytes.Buffer
			if err := png.Encode(&pngBuf, imgs[i]); err != nil {
				return 0, 0, fmt.Errorf("encode %s: %w", included[i].ID, err)
			}

			opts := fpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader(name, opts, &pngBuf)
			pdf.ImageOptions(name, margin, y, contentW, heights[i], false, opts, 0, "")

			y += heights[i] + gap
		}
	}

	if err := pdf.Error(); err != nil {
		return 0, 0, fmt.Errorf("assemble document: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return 0, 0, fmt.Errorf("emit document: %w", err)
	}

	return len(layout), len(included), nil
}

// Paginate computes which sections land on which page for the given
// heights: a new page starts whenever the next section would overflow
// the remaining vertical space, unless it is the first section on that
// page — a single oversized section is placed whole, never split.
func Paginate(heights []float64, pageH, margin, gap float64) [][]int {
	var pages [][]int
	var current []int
	y := margin

	for i, h := range heights {
		if y > margin && y+h > pageH-margin {
			pages = append(pages, current)
			current = nil
			y = margin
		}
		current = append(current, i)
		y += h + gap
	}
	if len(current) > 0 {
		pages = append(pages, current)
	}
	return pages
}

func imageHeightMM(img image.Image, widthMM float64) float64 {
	b := img.Bounds()
	if b.Dx() == 0 {
		return 0
	}
	return widthMM * float64(b.Dy()) / float64(b.Dx())
}

// Filename derives the output file name from a plan topic: lowercased,
// runs of non-alphanumeric characters collapsed to single hyphens.
func Filename(topic string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(topic) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "pamokos-planas"
	}
	return name + ".pdf"
}

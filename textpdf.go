package pdfoutline

import (
	"os"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// TextSource is a pure-Go GlyphSource backed by ledongthuc/pdf, for
// environments where the pdfium wasm runtime is unavailable. Character
// boxes are synthesized from the library's positioned text runs, so the
// geometry is coarser than pdfium's; it provides no exclusion regions.
type TextSource struct {
	file      *os.File
	reader    *pdflib.Reader
	pageCount int
}

// OpenTextSource opens a PDF file as a TextSource. Close must be called
// when done.
func OpenTextSource(path string) (*TextSource, error) {
	file, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}

	return &TextSource{
		file:      file,
		reader:    reader,
		pageCount: reader.NumPage(),
	}, nil
}

// Close releases the underlying file handle.
func (s *TextSource) Close() error {
	return s.file.Close()
}

// PageCount returns the number of pages in the document.
func (s *TextSource) PageCount() int {
	return s.pageCount
}

// PageDimensions returns the page size from its MediaBox, falling back to
// US Letter when the box is missing or malformed.
func (s *TextSource) PageDimensions(index int) (float64, float64, error) {
	page := s.reader.Page(index + 1)
	if page.V.IsNull() {
		return 0, 0, errors.Errorf("page %d not found", index+1)
	}

	mediaBox := page.V.Key("MediaBox")
	if mediaBox.IsNull() || mediaBox.Kind() != pdflib.Array || mediaBox.Len() != 4 {
		return 612, 792, nil
	}

	coords := make([]float64, 4)
	for i := 0; i < 4; i++ {
		val := mediaBox.Index(i)
		switch val.Kind() {
		case pdflib.Integer:
			coords[i] = float64(val.Int64())
		case pdflib.Real:
			coords[i] = val.Float64()
		default:
			return 612, 792, nil
		}
	}

	return coords[2] - coords[0], coords[3] - coords[1], nil
}

// PageGlyphs returns per-character glyphs for a page. The library yields
// positioned text runs with baseline coordinates measured from the page
// bottom; each run is split into characters with the run's width
// distributed evenly, and Y is flipped to top-left origin.
func (s *TextSource) PageGlyphs(index int) ([]Glyph, error) {
	page := s.reader.Page(index + 1)
	if page.V.IsNull() {
		return nil, errors.Errorf("page %d not found", index+1)
	}

	_, pageHeight, err := s.PageDimensions(index)
	if err != nil {
		return nil, err
	}

	content := page.Content()

	var glyphs []Glyph
	for _, t := range content.Text {
		runes := []rune(t.S)
		if len(runes) == 0 {
			continue
		}

		charWidth := t.W / float64(len(runes))
		y1 := pageHeight - t.Y
		y0 := y1 - t.FontSize

		for i, r := range runes {
			x0 := t.X + float64(i)*charWidth
			glyphs = append(glyphs, Glyph{
				Char: r,
				Box: Rect{
					X0: x0,
					Y0: y0,
					X1: x0 + charWidth,
					Y1: y1,
				},
				FontSize: t.FontSize,
				FontName: t.Font,
			})
		}
	}

	return glyphs, nil
}

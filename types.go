package pdfoutline

// Rect represents a bounding box in page coordinates.
// Y increases downward (top-left origin, after conversion from PDF coordinates).
type Rect struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X1 <= other.X0 || other.X1 <= r.X0 || r.Y1 <= other.Y0 || other.Y1 <= r.Y0)
}

// Glyph is a single positioned character with font metadata, the smallest
// unit fed to the pipeline. Glyphs are produced by a GlyphSource and never
// mutated.
type Glyph struct {
	Char     rune
	Box      Rect
	FontSize float64
	FontName string
}

// TextBlock is one reconstructed visual line of text with aggregate
// geometry and a representative style taken from its first glyph.
type TextBlock struct {
	Text string
	Size float64
	Font string
	Page int // zero-based
	BBox Rect
}

// styleKey groups heading candidates by (rounded font size, font name)
// to derive hierarchy levels.
type styleKey struct {
	Size int
	Font string
}

// headingCandidate is a TextBlock that passed heading classification,
// tagged with its style key. The base block stays untouched.
type headingCandidate struct {
	Block TextBlock
	Style styleKey
}

// OutlineEntry is a single heading in the final outline. Page is 1-based.
type OutlineEntry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// DocumentResult is the externally visible output of the pipeline.
type DocumentResult struct {
	Title   string         `json:"title"`
	Outline []OutlineEntry `json:"outline"`
}

// DocumentInfo contains basic information about a PDF document.
type DocumentInfo struct {
	PageCount int
}

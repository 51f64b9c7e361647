package pdfoutline

// GlyphSource provides per-page glyph geometry for one open document.
// Implementations own the underlying document handle; the pipeline only
// reads from the source and never caches across documents.
type GlyphSource interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// PageDimensions returns the width and height of a page.
	PageDimensions(index int) (width, height float64, err error)

	// PageGlyphs returns all glyphs on a page in extraction order.
	// An empty slice is a normal outcome for blank pages.
	PageGlyphs(index int) ([]Glyph, error)
}

// RegionSource provides rectangular exclusion regions (detected tables)
// keyed by zero-based page index. A failed or absent detector degrades to
// zero regions; it must never abort the pipeline.
type RegionSource interface {
	ExclusionRegions() (map[int][]Rect, error)
}

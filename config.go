package pdfoutline

// Config controls outline extraction behavior.
type Config struct {
	// LeftMarginRatio and RightMarginRatio define the central content band.
	// Glyphs starting left of LeftMarginRatio×width or ending right of
	// RightMarginRatio×width are discarded (default: 0.10 / 0.90).
	LeftMarginRatio  float64
	RightMarginRatio float64

	// LineTolerance is the maximum top-y distance for a glyph to join an
	// existing line bucket (default: 2.0).
	LineTolerance float64

	// WordGap is the horizontal gap above which a space is inserted between
	// consecutive glyphs (default: 1.0).
	WordGap float64

	// BoilerplateRatio is the fraction of pages a signature must recur on to
	// be considered boilerplate, with a floor of two occurrences
	// (default: 0.25).
	BoilerplateRatio float64

	// TitleSizeRatio is the minimum font size relative to the anchor line for
	// a block to join a multi-line title (default: 0.75).
	TitleSizeRatio float64

	// TitleProximityRatio is the maximum top-y distance from the anchor,
	// as a fraction of page height, for a block to join the title
	// (default: 0.1).
	TitleProximityRatio float64

	// BoldSizeRatio is the minimum size relative to body text for a
	// bold-fonted line to count as a heading (default: 1.15).
	BoldSizeRatio float64

	// GapHeightRatio is the minimum vertical whitespace below a line,
	// relative to its own height, for the whitespace heading rule
	// (default: 0.5).
	GapHeightRatio float64

	// MaxOutlineDepth is the deepest heading level kept in the outline
	// (default: 4, i.e. H1–H4).
	MaxOutlineDepth int

	// EnableMetricsLogging enables processing time and statistics logging
	// (default: false).
	EnableMetricsLogging bool
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{
		LeftMarginRatio:     0.10,
		RightMarginRatio:    0.90,
		LineTolerance:       2.0,
		WordGap:             1.0,
		BoilerplateRatio:    0.25,
		TitleSizeRatio:      0.75,
		TitleProximityRatio: 0.1,
		BoldSizeRatio:       1.15,
		GapHeightRatio:      0.5,
		MaxOutlineDepth:     4,
	}
}

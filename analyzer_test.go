package pdfoutline

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory GlyphSource for pipeline tests.
type fakeSource struct {
	width  float64
	height float64
	pages  [][]Glyph
}

func (s *fakeSource) PageCount() int {
	return len(s.pages)
}

func (s *fakeSource) PageDimensions(index int) (float64, float64, error) {
	return s.width, s.height, nil
}

func (s *fakeSource) PageGlyphs(index int) ([]Glyph, error) {
	return s.pages[index], nil
}

// fakeRegions is an in-memory RegionSource.
type fakeRegions struct {
	regions map[int][]Rect
	err     error
}

func (r *fakeRegions) ExclusionRegions() (map[int][]Rect, error) {
	return r.regions, r.err
}

// reportSource builds a two-page document with a title, two numbered
// section headings and enough paragraph text to establish the body size.
func reportSource() *fakeSource {
	page0 := lineGlyphs("Annual Report", 150, 80, 24, "Helvetica-Bold")
	page0 = append(page0, lineGlyphs("1. Introduction", 72, 200, 16, "Helvetica-Bold")...)
	page0 = append(page0, lineGlyphs("This report covers the year.", 72, 300, 10, "Helvetica")...)
	page0 = append(page0, lineGlyphs("It was a fine year overall.", 72, 315, 10, "Helvetica")...)

	page1 := lineGlyphs("2. Financials", 72, 100, 16, "Helvetica-Bold")
	page1 = append(page1, lineGlyphs("Revenue grew modestly.", 72, 200, 10, "Helvetica")...)
	page1 = append(page1, lineGlyphs("Costs were held flat.", 72, 215, 10, "Helvetica")...)

	return &fakeSource{
		width:  612,
		height: 792,
		pages:  [][]Glyph{page0, page1},
	}
}

func TestAnalyzer_EndToEnd(t *testing.T) {
	result, err := NewAnalyzer().Analyze(reportSource(), nil)

	require.NoError(t, err)
	assert.Equal(t, "Annual Report", result.Title)

	require.Len(t, result.Outline, 2)
	assert.Equal(t, OutlineEntry{Level: "H1", Text: "1. Introduction", Page: 1}, result.Outline[0])
	assert.Equal(t, OutlineEntry{Level: "H1", Text: "2. Financials", Page: 2}, result.Outline[1])
}

func TestAnalyzer_Metrics(t *testing.T) {
	result, metrics, err := NewAnalyzer().AnalyzeWithMetrics(reportSource(), nil)

	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 2, metrics.Statistics.TotalPages)
	assert.Len(t, metrics.PageExtractions, 2)
	assert.Equal(t, 7, metrics.Statistics.TotalBlocks)
	assert.Equal(t, 0, metrics.Statistics.BoilerplateRemoved)
	assert.Equal(t, 2, metrics.Statistics.OutlineEntries)
}

func TestAnalyzer_BoilerplateCountedInMetrics(t *testing.T) {
	source := reportSource()
	for i := range source.pages {
		source.pages[i] = append(source.pages[i],
			lineGlyphs("ACME Confidential", 250, 760, 8, "Helvetica")...)
	}

	result, metrics, err := NewAnalyzer().AnalyzeWithMetrics(source, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, metrics.Statistics.BoilerplateRemoved)
	for _, entry := range result.Outline {
		assert.NotEqual(t, "ACME Confidential", entry.Text)
	}
}

func TestAnalyzer_RegionSourceFailureDegrades(t *testing.T) {
	regions := &fakeRegions{err: errors.New("table detector crashed")}

	result, err := NewAnalyzer().Analyze(reportSource(), regions)

	require.NoError(t, err)
	assert.Equal(t, "Annual Report", result.Title)
	assert.Len(t, result.Outline, 2)
}

func TestAnalyzer_ExclusionRegionsApplied(t *testing.T) {
	// Mask the second-page heading with an exclusion region.
	regions := &fakeRegions{regions: map[int][]Rect{
		1: {{X0: 60, Y0: 90, X1: 400, Y1: 130}},
	}}

	result, err := NewAnalyzer().Analyze(reportSource(), regions)

	require.NoError(t, err)
	require.Len(t, result.Outline, 1)
	assert.Equal(t, "1. Introduction", result.Outline[0].Text)
}

func TestAnalyzer_EmptyDocument(t *testing.T) {
	source := &fakeSource{width: 612, height: 792}

	result, err := NewAnalyzer().Analyze(source, nil)

	require.NoError(t, err)
	assert.Equal(t, "", result.Title)
	assert.Empty(t, result.Outline)
}

func TestAnalyzer_TitleWithoutHeadings(t *testing.T) {
	// A lone oversized line above plain body text is a title, not a heading.
	page0 := lineGlyphs("Project Plan", 150, 80, 24, "Helvetica-Bold")
	page0 = append(page0, lineGlyphs("The plan spans two quarters.", 72, 200, 12, "Helvetica")...)
	page0 = append(page0, lineGlyphs("Milestones follow in order.", 72, 218, 12, "Helvetica")...)

	source := &fakeSource{width: 612, height: 792, pages: [][]Glyph{page0}}

	result, err := NewAnalyzer().Analyze(source, nil)

	require.NoError(t, err)
	assert.Equal(t, "Project Plan", result.Title)
	assert.Empty(t, result.Outline)
}

func TestAnalyzer_NumberedHeadingOnLaterPage(t *testing.T) {
	pages := make([][]Glyph, 3)
	for i := 0; i < 2; i++ {
		pages[i] = lineGlyphs(fmt.Sprintf("filler text on page %d", i+1), 72, 500, 12, "Helvetica")
		pages[i] = append(pages[i], lineGlyphs(fmt.Sprintf("more filler for page %d", i+1), 72, 518, 12, "Helvetica")...)
	}
	pages[2] = lineGlyphs("2.1 Background", 72, 100, 16, "Helvetica")
	pages[2] = append(pages[2], lineGlyphs("background paragraph text", 72, 500, 12, "Helvetica")...)

	source := &fakeSource{width: 612, height: 792, pages: pages}

	result, err := NewAnalyzer().Analyze(source, nil)

	require.NoError(t, err)
	require.Len(t, result.Outline, 1)
	assert.Equal(t, OutlineEntry{Level: "H1", Text: "2.1 Background", Page: 3}, result.Outline[0])
}

func TestAnalyzer_TitleFallsBackToFirstH1(t *testing.T) {
	// No oversized first-page top text: the title comes from the first H1.
	page0 := lineGlyphs("1. Scope", 72, 500, 16, "Helvetica-Bold")
	page0 = append(page0, lineGlyphs("plain paragraph text here", 72, 550, 10, "Helvetica")...)
	page0 = append(page0, lineGlyphs("more plain paragraph text", 72, 565, 10, "Helvetica")...)
	page0 = append(page0, lineGlyphs("and a third line of it", 72, 580, 10, "Helvetica")...)

	source := &fakeSource{width: 612, height: 792, pages: [][]Glyph{page0}}

	result, err := NewAnalyzer().Analyze(source, nil)

	require.NoError(t, err)
	require.NotEmpty(t, result.Outline)
	assert.Equal(t, "1. Scope", result.Title)
}

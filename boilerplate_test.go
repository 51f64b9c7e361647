package pdfoutline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func footerBlock(page int) TextBlock {
	return TextBlock{
		Text: "ACME Corp Confidential",
		Size: 8,
		Font: "Helvetica",
		Page: page,
		BBox: Rect{X0: 250, Y0: 760, X1: 380, Y1: 768},
	}
}

func TestFilterBoilerplate_RemovesRecurringFooter(t *testing.T) {
	var blocks []TextBlock
	for page := 0; page < 6; page++ {
		blocks = append(blocks, TextBlock{
			Text: fmt.Sprintf("paragraph on page %d", page+1),
			Size: 10,
			Page: page,
			BBox: Rect{X0: 72, Y0: 100, X1: 200, Y1: 110},
		})
		blocks = append(blocks, footerBlock(page))
	}

	// threshold = ceil(6 * 0.25) = 2, footer recurs 6 times.
	filtered := filterBoilerplate(blocks, 6, DefaultConfig())

	require.Len(t, filtered, 6)
	for _, block := range filtered {
		assert.NotEqual(t, "ACME Corp Confidential", block.Text)
	}
}

func TestFilterBoilerplate_ThresholdFloorOfTwo(t *testing.T) {
	// On a one-page document ceil(1 * 0.25) = 1, which would remove every
	// block. The floor of two keeps single occurrences.
	blocks := []TextBlock{
		{Text: "Introduction", Size: 14, Page: 0, BBox: Rect{X0: 72, Y0: 100, X1: 200, Y1: 114}},
		{Text: "Body text", Size: 10, Page: 0, BBox: Rect{X0: 72, Y0: 130, X1: 200, Y1: 140}},
	}

	filtered := filterBoilerplate(blocks, 1, DefaultConfig())

	assert.Len(t, filtered, 2)
}

func TestFilterBoilerplate_ToleratesPositionDrift(t *testing.T) {
	// Same footer text drifting a few points horizontally still shares a
	// signature bucket; a copy far away does not.
	drifted := footerBlock(1)
	drifted.BBox.X0 = 253

	elsewhere := footerBlock(2)
	elsewhere.BBox.X0 = 400

	blocks := []TextBlock{footerBlock(0), drifted, elsewhere}

	filtered := filterBoilerplate(blocks, 8, DefaultConfig())

	require.Len(t, filtered, 1)
	assert.Equal(t, 400.0, filtered[0].BBox.X0)
}

func TestFilterBoilerplate_DistinguishesFontSize(t *testing.T) {
	a := footerBlock(0)
	b := footerBlock(1)
	b.Size = 14

	filtered := filterBoilerplate([]TextBlock{a, b}, 8, DefaultConfig())

	assert.Len(t, filtered, 2)
}

func TestFilterBoilerplate_PreservesOrderAndIsIdempotent(t *testing.T) {
	blocks := []TextBlock{
		{Text: "alpha", Size: 10, Page: 0, BBox: Rect{X0: 72, Y0: 100, X1: 120, Y1: 110}},
		footerBlock(0),
		{Text: "beta", Size: 10, Page: 1, BBox: Rect{X0: 72, Y0: 100, X1: 120, Y1: 110}},
		footerBlock(1),
		{Text: "gamma", Size: 10, Page: 2, BBox: Rect{X0: 72, Y0: 100, X1: 120, Y1: 110}},
		footerBlock(2),
	}

	once := filterBoilerplate(blocks, 12, DefaultConfig())

	require.Len(t, once, 3)
	assert.Equal(t, "alpha", once[0].Text)
	assert.Equal(t, "beta", once[1].Text)
	assert.Equal(t, "gamma", once[2].Text)

	twice := filterBoilerplate(once, 12, DefaultConfig())
	assert.Equal(t, once, twice)
}

package pdfoutline

import (
	"math"
	"sort"
	"strings"
)

// detectTitle identifies the document title from first-page blocks whose
// top edge lies in the upper half of the page. The largest line anchors the
// title; nearby lines of comparable size are gathered so multi-line titles
// stay together. No candidates yields an empty title, not an error.
func detectTitle(blocks []TextBlock, firstPageHeight float64, config Config) string {
	var topBlocks []TextBlock
	for _, block := range blocks {
		if block.Page != 0 {
			continue
		}
		if block.BBox.Y0 < firstPageHeight*0.5 {
			topBlocks = append(topBlocks, block)
		}
	}
	if len(topBlocks) == 0 {
		return ""
	}

	// Ties break by first occurrence; input order is stable.
	anchor := topBlocks[0]
	for _, block := range topBlocks[1:] {
		if block.Size > anchor.Size {
			anchor = block
		}
	}

	titleLines := []TextBlock{anchor}
	for _, block := range topBlocks {
		if block.Text == anchor.Text {
			continue
		}
		isLarge := block.Size >= anchor.Size*config.TitleSizeRatio
		isClose := math.Abs(block.BBox.Y0-anchor.BBox.Y0) < firstPageHeight*config.TitleProximityRatio
		if isLarge && isClose {
			titleLines = append(titleLines, block)
		}
	}

	sort.SliceStable(titleLines, func(i, j int) bool {
		return titleLines[i].BBox.Y0 < titleLines[j].BBox.Y0
	})

	parts := make([]string, len(titleLines))
	for i, line := range titleLines {
		parts[i] = line.Text
	}
	return strings.Join(parts, " ")
}

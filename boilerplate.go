package pdfoutline

import (
	"fmt"
	"math"
)

// signature is a composite key of normalized text, rounded font size and a
// horizontal position bucket. Bucketing x0 to the nearest 10 units
// tolerates small positional drift of running headers between pages.
func signature(block TextBlock) string {
	return fmt.Sprintf("%s|%d|%d", block.Text, int(math.Round(block.Size)), int(math.Round(block.BBox.X0/10)))
}

// filterBoilerplate removes blocks whose signature recurs on at least a
// quarter of pages (minimum two occurrences): running headers, footers and
// page numbers. The floor of two avoids false positives on short documents.
// Surviving blocks keep their order; the filter is idempotent.
func filterBoilerplate(blocks []TextBlock, pageCount int, config Config) []TextBlock {
	counts := make(map[string]int, len(blocks))
	for _, block := range blocks {
		counts[signature(block)]++
	}

	threshold := int(math.Ceil(float64(pageCount) * config.BoilerplateRatio))
	if threshold < 2 {
		threshold = 2
	}

	filtered := make([]TextBlock, 0, len(blocks))
	for _, block := range blocks {
		if counts[signature(block)] >= threshold {
			continue
		}
		filtered = append(filtered, block)
	}
	return filtered
}

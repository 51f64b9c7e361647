package pdfoutline

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// numberedPrefix matches dot-separated section numbers at the start of a
// line, e.g. "2", "2.1", "2.1.3.".
var numberedPrefix = regexp.MustCompile(`^\s*\d+(\.\d+)*\.?`)

// detectBodySize returns the most frequent rounded font size across the
// surviving blocks, taken as the size of ordinary paragraph text. Ties
// break by first-seen size so the result is deterministic; an empty block
// list defaults to 10.
func detectBodySize(blocks []TextBlock) int {
	if len(blocks) == 0 {
		return 10
	}

	counts := make(map[int]int, len(blocks))
	var order []int
	for _, block := range blocks {
		size := int(math.Round(block.Size))
		if counts[size] == 0 {
			order = append(order, size)
		}
		counts[size]++
	}

	bodySize := order[0]
	for _, size := range order[1:] {
		if counts[size] > counts[bodySize] {
			bodySize = size
		}
	}
	return bodySize
}

// detectHeadings classifies blocks into heading candidates, ranks their
// styles into levels and produces the final outline. Two rules apply in
// strict order per block: a numbered prefix with above-body size wins
// outright; otherwise a line qualifies when it is bold and markedly larger
// than body text, or above body size with unusually large whitespace below
// it. The rules are mutually exclusive: a numbered line that fails the
// size check is never reconsidered under the style rule.
func detectHeadings(blocks []TextBlock, title string, config Config) []OutlineEntry {
	bodySize := detectBodySize(blocks)

	var candidates []headingCandidate
	for i, block := range blocks {
		text := strings.TrimSpace(block.Text)
		fontSize := int(math.Round(block.Size))

		if text == "" {
			continue
		}
		if title != "" && strings.Contains(title, text) {
			continue
		}
		// Four or more dots in a row is a table-of-contents leader.
		if strings.Contains(text, "....") {
			continue
		}

		if numberedPrefix.MatchString(text) && fontSize > bodySize {
			candidates = append(candidates, headingCandidate{
				Block: block,
				Style: styleKey{Size: fontSize, Font: block.Font},
			})
			continue
		}

		isBold := strings.Contains(strings.ToLower(block.Font), "bold")
		isBigger := float64(fontSize) > float64(bodySize)*config.BoldSizeRatio

		hasSpaceBelow := false
		if i+1 < len(blocks) && block.Page == blocks[i+1].Page {
			verticalGap := blocks[i+1].BBox.Y0 - block.BBox.Y1
			lineHeight := block.BBox.Height()
			if lineHeight <= 0 {
				lineHeight = 1
			}
			if verticalGap > lineHeight*config.GapHeightRatio {
				hasSpaceBelow = true
			}
		}

		if (isBold && isBigger) || (hasSpaceBelow && fontSize > bodySize) {
			candidates = append(candidates, headingCandidate{
				Block: block,
				Style: styleKey{Size: fontSize, Font: block.Font},
			})
		}
	}

	return rankCandidates(candidates, config)
}

// rankCandidates maps distinct style keys to levels (largest font size is
// H1), drops candidates deeper than the configured maximum, deduplicates
// by (text, page) and orders the outline by page then vertical position.
// Styles with equal size keep first-seen order.
func rankCandidates(candidates []headingCandidate, config Config) []OutlineEntry {
	var styles []styleKey
	seen := make(map[styleKey]bool)
	for _, c := range candidates {
		if !seen[c.Style] {
			seen[c.Style] = true
			styles = append(styles, c.Style)
		}
	}
	sort.SliceStable(styles, func(i, j int) bool {
		return styles[i].Size > styles[j].Size
	})

	levels := make(map[styleKey]int, len(styles))
	for i, style := range styles {
		levels[style] = i + 1
	}

	type outlineItem struct {
		entry OutlineEntry
		y0    float64
	}

	type dedupeKey struct {
		text string
		page int
	}

	// Last-wins by key overwrite; insertion order is kept for stability.
	items := make(map[dedupeKey]outlineItem)
	var keys []dedupeKey
	for _, c := range candidates {
		level := levels[c.Style]
		if level > config.MaxOutlineDepth {
			continue
		}
		key := dedupeKey{text: c.Block.Text, page: c.Block.Page}
		if _, ok := items[key]; !ok {
			keys = append(keys, key)
		}
		items[key] = outlineItem{
			entry: OutlineEntry{
				Level: fmt.Sprintf("H%d", level),
				Text:  c.Block.Text,
				Page:  c.Block.Page + 1,
			},
			y0: c.Block.BBox.Y0,
		}
	}

	ordered := make([]outlineItem, 0, len(keys))
	for _, key := range keys {
		ordered = append(ordered, items[key])
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].entry.Page != ordered[j].entry.Page {
			return ordered[i].entry.Page < ordered[j].entry.Page
		}
		return ordered[i].y0 < ordered[j].y0
	})

	outline := make([]OutlineEntry, 0, len(ordered))
	for _, item := range ordered {
		outline = append(outline, item.entry)
	}
	return outline
}

// fallbackTitle returns the first H1 text when no title was detected,
// the single cross-stage feedback in the pipeline.
func fallbackTitle(title string, outline []OutlineEntry) string {
	if title != "" {
		return title
	}
	for _, entry := range outline {
		if entry.Level == "H1" {
			return entry.Text
		}
	}
	return ""
}

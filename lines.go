package pdfoutline

import (
	"math"
	"sort"
	"strings"
)

// lineBucket collects glyphs sharing (approximately) one top-y coordinate.
// Buckets are scanned linearly with a tolerance comparison rather than
// hashed exactly: glyph baselines jitter by a point or two within a single
// visual line, and exact-key grouping would split such lines.
type lineBucket struct {
	key    float64
	glyphs []Glyph
}

// buildPageBlocks converts one page's glyph stream into ordered TextBlocks,
// excluding table regions, the page margins, and whitespace glyphs.
// Blocks are emitted top-to-bottom; a page with no surviving glyphs
// contributes no blocks.
func buildPageBlocks(glyphs []Glyph, exclusions []Rect, pageWidth float64, pageIndex int, config Config) []TextBlock {
	marginX0 := pageWidth * config.LeftMarginRatio
	marginX1 := pageWidth * config.RightMarginRatio

	var survivors []Glyph
	for _, g := range glyphs {
		if strings.TrimSpace(string(g.Char)) == "" {
			continue
		}
		if g.Box.X0 < marginX0 || g.Box.X1 > marginX1 {
			continue
		}
		inTable := false
		for _, region := range exclusions {
			if g.Box.Intersects(region) {
				inTable = true
				break
			}
		}
		if inTable {
			continue
		}
		survivors = append(survivors, g)
	}

	if len(survivors) == 0 {
		return nil
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		if survivors[i].Box.Y0 != survivors[j].Box.Y0 {
			return survivors[i].Box.Y0 < survivors[j].Box.Y0
		}
		return survivors[i].Box.X0 < survivors[j].Box.X0
	})

	var buckets []lineBucket
	for _, g := range survivors {
		y0 := math.Round(g.Box.Y0)
		placed := false
		for i := range buckets {
			if math.Abs(buckets[i].key-y0) < config.LineTolerance {
				buckets[i].glyphs = append(buckets[i].glyphs, g)
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, lineBucket{key: y0, glyphs: []Glyph{g}})
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].key < buckets[j].key
	})

	blocks := make([]TextBlock, 0, len(buckets))
	for _, bucket := range buckets {
		line := bucket.glyphs
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].Box.X0 < line[j].Box.X0
		})

		var sb strings.Builder
		for i, g := range line {
			sb.WriteRune(g.Char)
			if i < len(line)-1 {
				gap := line[i+1].Box.X0 - g.Box.X1
				if gap > config.WordGap {
					sb.WriteByte(' ')
				}
			}
		}

		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}

		first := line[0]
		last := line[len(line)-1]
		blocks = append(blocks, TextBlock{
			Text: text,
			Size: first.FontSize,
			Font: first.FontName,
			Page: pageIndex,
			BBox: Rect{X0: first.Box.X0, Y0: first.Box.Y0, X1: last.Box.X1, Y1: last.Box.Y1},
		})
	}

	return blocks
}

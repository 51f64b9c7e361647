package pdfoutline

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ivanvanderbyl/markdown"
)

// ToMarkdown renders the document result as a markdown table of contents:
// the title as an H1 followed by the outline entries at their heading
// levels, each annotated with its page number.
func (r *DocumentResult) ToMarkdown() string {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	if r.Title != "" {
		md.H1(r.Title)
		md.LF()
	}

	for _, entry := range r.Outline {
		text := fmt.Sprintf("%s (p. %d)", entry.Text, entry.Page)
		switch outlineLevel(entry.Level) {
		case 1:
			md.H2(text)
		case 2:
			md.H3(text)
		case 3:
			md.H4(text)
		default:
			md.H5(text)
		}
	}

	if err := md.Build(); err != nil {
		return ""
	}

	return buf.String()
}

// outlineLevel parses an "H2"-style level label into its numeric level.
func outlineLevel(label string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(label, "H"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

package pdfoutline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func TestToMarkdown(t *testing.T) {
	result := &DocumentResult{
		Title: "Annual Report",
		Outline: []OutlineEntry{
			{Level: "H1", Text: "Introduction", Page: 1},
			{Level: "H2", Text: "Scope", Page: 2},
			{Level: "H3", Text: "Definitions", Page: 2},
			{Level: "H4", Text: "Acronyms", Page: 3},
		},
	}

	md := result.ToMarkdown()

	assert.Contains(t, md, "# Annual Report")
	assert.Contains(t, md, "## Introduction (p. 1)")
	assert.Contains(t, md, "### Scope (p. 2)")
	assert.Contains(t, md, "#### Definitions (p. 2)")
	assert.Contains(t, md, "##### Acronyms (p. 3)")
}

func TestToMarkdown_RendersAsValidMarkdown(t *testing.T) {
	result := &DocumentResult{
		Title: "Annual Report",
		Outline: []OutlineEntry{
			{Level: "H1", Text: "Introduction", Page: 1},
		},
	}

	var html bytes.Buffer
	err := goldmark.New().Convert([]byte(result.ToMarkdown()), &html)

	require.NoError(t, err)
	assert.Contains(t, html.String(), "<h1>Annual Report</h1>")
	assert.Contains(t, html.String(), "<h2>Introduction (p. 1)</h2>")
}

func TestToMarkdown_NoTitle(t *testing.T) {
	result := &DocumentResult{
		Outline: []OutlineEntry{
			{Level: "H1", Text: "Only Heading", Page: 1},
		},
	}

	md := result.ToMarkdown()

	assert.False(t, strings.HasPrefix(md, "# "))
	assert.Contains(t, md, "## Only Heading (p. 1)")
}

func TestToMarkdown_EmptyResult(t *testing.T) {
	result := &DocumentResult{}

	assert.Equal(t, "", strings.TrimSpace(result.ToMarkdown()))
}

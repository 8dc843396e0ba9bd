package toc

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/Sriram-PR/nbtoc/pkg/utils"
)

// Format selects how a table of contents is rendered
type Format string

const (
	FormatHTML         Format = "html"          // Nested <ol> markup
	FormatMarkdown     Format = "markdown"      // Indented markdown bullet list
	FormatMarkdownHTML Format = "markdown-html" // Markdown bullet list converted to HTML
)

// Formats lists the supported output formats.
var Formats = []Format{FormatHTML, FormatMarkdown, FormatMarkdownHTML}

// ParseFormat validates a format name. An empty name selects FormatHTML.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatHTML, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: html, markdown, markdown-html)", utils.ErrUnknownFormat, name)
}

// Render builds nested ordered-list markup for headings.
//
// A heading deeper than its predecessor opens exactly one nested list and a
// shallower one closes exactly one, however far the level jumps. Lists
// still open after the last heading are closed at the end.
func Render(headings []Heading) string {
	var b strings.Builder
	b.WriteString("<ol>")
	open := 1
	oldLv := MinLevel
	for _, h := range headings {
		if h.Level > oldLv {
			b.WriteString("<ol>")
			open++
		}
		if h.Level < oldLv {
			b.WriteString("</ol>")
			open--
		}
		fmt.Fprintf(&b, `<li><a href="#%s">%s</a></li>`, html.EscapeString(h.Anchor), html.EscapeString(h.Text))
		oldLv = h.Level
	}
	for ; open > 0; open-- {
		b.WriteString("</ol>")
	}
	return b.String()
}

// RenderMarkdown builds a markdown bullet list, indenting two spaces per level.
func RenderMarkdown(headings []Heading) string {
	lines := make([]string, 0, len(headings))
	for _, h := range headings {
		indent := strings.Repeat(" ", (h.Level-1)*2)
		lines = append(lines, fmt.Sprintf("%s* [%s](#%s)", indent, h.Text, h.Anchor))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdownHTML converts the RenderMarkdown output to HTML with goldmark.
func RenderMarkdownHTML(headings []Heading) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(RenderMarkdown(headings)), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

// RenderFormat renders headings in the requested format.
func RenderFormat(format Format, headings []Heading) (string, error) {
	switch format {
	case FormatHTML, "":
		return Render(headings), nil
	case FormatMarkdown:
		return RenderMarkdown(headings), nil
	case FormatMarkdownHTML:
		return RenderMarkdownHTML(headings)
	default:
		return "", fmt.Errorf("%w: %q", utils.ErrUnknownFormat, format)
	}
}

package toc

import (
	"strings"

	"github.com/Sriram-PR/nbtoc/pkg/notebook"
)

const (
	// MinLevel is the shallowest heading level included in a table of contents.
	MinLevel = 1
	// MaxLevel caps the leading '#' count; deeper markers classify as MaxLevel.
	MaxLevel = 4
	// DefaultMaxDepth is used when a request does not name a depth.
	DefaultMaxDepth = 2
)

// Heading is one table-of-contents entry derived from a markdown cell.
type Heading struct {
	Level  int    `json:"level"`
	Text   string `json:"text"`
	Anchor string `json:"anchor"`
}

// Extract returns the headings of doc whose level lies in [MinLevel, maxDepth],
// in cell order. Only the first source line of each markdown cell is inspected.
func Extract(doc *notebook.Document, maxDepth int) []Heading {
	var headings []Heading
	if doc == nil {
		return headings
	}
	for _, cell := range doc.Cells {
		if !cell.IsMarkdown() {
			continue
		}
		line, ok := cell.FirstLine()
		if !ok {
			continue
		}
		if h, ok := ParseHeading(line, MinLevel, maxDepth); ok {
			headings = append(headings, h)
		}
	}
	return headings
}

// ParseHeading classifies line and builds its Heading when the level falls
// inside [lo, hi].
func ParseHeading(line string, lo, hi int) (Heading, bool) {
	lv := HeadingLevel(line)
	if lv == 0 || lv < lo || lv > hi {
		return Heading{}, false
	}
	text := strings.TrimSpace(strings.TrimLeft(line, "#"))
	return Heading{
		Level:  lv,
		Text:   text,
		Anchor: Anchor(text),
	}, true
}

// HeadingLevel counts leading '#' characters, capped at MaxLevel.
// Zero means the line is not a heading.
func HeadingLevel(line string) int {
	lv := 0
	for lv < len(line) && line[lv] == '#' {
		lv++
	}
	if lv > MaxLevel {
		return MaxLevel
	}
	return lv
}

// Anchor derives the link fragment for a heading text.
func Anchor(text string) string {
	return strings.ReplaceAll(text, " ", "-")
}

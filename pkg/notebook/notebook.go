package notebook

import (
	"encoding/json"
	"errors"
	"strings"
)

// Cell types defined by nbformat
const (
	CellTypeMarkdown = "markdown"
	CellTypeCode     = "code"
	CellTypeRaw      = "raw"
)

// Document is a decoded notebook (.ipynb)
type Document struct {
	Cells         []Cell                 `json:"cells"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	NBFormat      int                    `json:"nbformat,omitempty"`
	NBFormatMinor int                    `json:"nbformat_minor,omitempty"`
}

// Cell is a single notebook cell. Only the fields needed for heading detection are decoded.
type Cell struct {
	CellType string `json:"cell_type"`
	Source   Source `json:"source"`
}

// IsMarkdown reports whether the cell holds markdown text.
func (c Cell) IsMarkdown() bool {
	return c.CellType == CellTypeMarkdown
}

// FirstLine returns source[0] and false when the source is empty.
func (c Cell) FirstLine() (string, bool) {
	if len(c.Source) == 0 {
		return "", false
	}
	return c.Source[0], true
}

// Source holds the lines of a cell. nbformat stores it either as a list of
// strings or as one multi-line string; both decode to the same line list.
type Source []string

var errSourceType = errors.New("cell source must be a string or a list of strings")

// UnmarshalJSON accepts both nbformat source encodings.
func (s *Source) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		*s = lines
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return errSourceType
	}
	*s = SplitLines(text)
	return nil
}

// SplitLines splits text after each newline, keeping the newline on every
// line like nbformat does. An empty string yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

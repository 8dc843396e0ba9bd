package notebook

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Sriram-PR/nbtoc/pkg/utils"
)

// Load reads and decodes the notebook at path.
// The file is closed before Load returns.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", utils.ErrNotFound, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", utils.ErrNotFound, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", utils.ErrNotFound, path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", utils.ErrNotFound, path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode reads a whole notebook from r.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read notebook: %w", err)
	}
	return Parse(data)
}

// Parse decodes notebook JSON. A document without a cells field is rejected.
func Parse(data []byte) (*Document, error) {
	var probe struct {
		Cells json.RawMessage `json:"cells"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", utils.ErrParsing, err)
	}
	if len(probe.Cells) == 0 || string(probe.Cells) == "null" {
		return nil, fmt.Errorf("%w: document has no cells field", utils.ErrParsing)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON cells: %v", utils.ErrParsing, err)
	}
	return &doc, nil
}

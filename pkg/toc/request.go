package toc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Sriram-PR/nbtoc/pkg/utils"
)

// Request is a parsed print_toc argument line: "<ipynb>[, MAX]".
type Request struct {
	Path     string
	MaxDepth int
}

// ParseRequest splits line on its first comma into a notebook path and an
// optional integer depth. defaultDepth applies when no depth is given.
func ParseRequest(line string, defaultDepth int) (Request, error) {
	path, depthStr, hasDepth := strings.Cut(line, ",")
	req := Request{
		Path:     strings.TrimSpace(path),
		MaxDepth: defaultDepth,
	}
	if req.Path == "" {
		return Request{}, fmt.Errorf("%w: a notebook path is required (usage: <ipynb>[, MAX])", utils.ErrInvalidValue)
	}

	if hasDepth {
		depthStr = strings.TrimSpace(depthStr)
		depth, err := strconv.Atoi(depthStr)
		if err != nil {
			return Request{}, fmt.Errorf("%w: max depth %q is not an integer", utils.ErrInvalidValue, depthStr)
		}
		req.MaxDepth = depth
	}

	if req.MaxDepth < MinLevel {
		return Request{}, fmt.Errorf("%w: max depth must be >= %d, got %d", utils.ErrInvalidValue, MinLevel, req.MaxDepth)
	}
	return req, nil
}

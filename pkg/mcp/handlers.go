package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Sriram-PR/nbtoc/pkg/toc"
	"github.com/Sriram-PR/nbtoc/pkg/utils"
)

// handlePrintTOC handles the print_toc tool
func (s *Server) handlePrintTOC(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, errResult := s.tocRequest(request)
	if errResult != nil {
		return errResult, nil
	}

	format, err := toc.ParseFormat(request.GetString("format", string(s.cfg.AppConfig.GetEffectiveFormat())))
	if err != nil {
		return toolError(err), nil
	}

	headings, err := s.ext.Headings(req)
	if err != nil {
		return toolError(err), nil
	}

	markup, err := toc.RenderFormat(format, headings)
	if err != nil {
		return toolError(err), nil
	}

	return mcp.NewToolResultText(markup), nil
}

// handleExtractHeadings handles the extract_headings tool
func (s *Server) handleExtractHeadings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, errResult := s.tocRequest(request)
	if errResult != nil {
		return errResult, nil
	}

	headings, err := s.ext.Headings(req)
	if err != nil {
		return toolError(err), nil
	}
	if headings == nil {
		headings = []toc.Heading{}
	}

	result := map[string]interface{}{
		"path":      req.Path,
		"max_depth": req.MaxDepth,
		"headings":  headings,
		"total":     len(headings),
	}

	return mcp.NewToolResultText(formatJSON(result)), nil
}

// tocRequest reads the path and max_depth arguments shared by both tools
func (s *Server) tocRequest(request mcp.CallToolRequest) (toc.Request, *mcp.CallToolResult) {
	path := strings.TrimSpace(request.GetString("path", ""))
	if path == "" {
		return toc.Request{}, mcp.NewToolResultError("path parameter is required")
	}

	depth, err := depthArgument(request.GetArguments(), s.ext.DefaultMaxDepth())
	if err != nil {
		return toc.Request{}, toolError(err)
	}

	return toc.Request{Path: path, MaxDepth: depth}, nil
}

// depthArgument converts the optional max_depth argument. A value that is
// present but not an integer is an error rather than a silent default.
func depthArgument(args map[string]any, defaultDepth int) (int, error) {
	raw, ok := args["max_depth"]
	if !ok || raw == nil {
		return defaultDepth, nil
	}

	var depth int
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: max_depth %v is not an integer", utils.ErrInvalidValue, v)
		}
		depth = int(v)
	case int:
		depth = v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: max_depth %q is not an integer", utils.ErrInvalidValue, v)
		}
		depth = n
	default:
		return 0, fmt.Errorf("%w: max_depth has unsupported type %T", utils.ErrInvalidValue, raw)
	}

	if depth < toc.MinLevel {
		return 0, fmt.Errorf("%w: max_depth must be >= %d, got %d", utils.ErrInvalidValue, toc.MinLevel, depth)
	}
	return depth, nil
}

// toolError reports err to the client with its category
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("[%s] %v", utils.CategorizeError(err), err))
}

// formatJSON formats data as an indented JSON string
func formatJSON(data map[string]interface{}) string {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("{\"error\": %q}", err.Error())
	}
	return string(b)
}

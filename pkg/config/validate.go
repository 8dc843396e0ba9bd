package config

import (
	"fmt"

	"github.com/Sriram-PR/nbtoc/pkg/toc"
	"github.com/Sriram-PR/nbtoc/pkg/utils"
)

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	// MaxDepth
	if c.MaxDepth < toc.MinLevel {
		if c.MaxDepth != 0 {
			warnings = append(warnings, fmt.Sprintf("max_depth should be >= %d, defaulting to %d", toc.MinLevel, toc.DefaultMaxDepth))
		}
		c.MaxDepth = toc.DefaultMaxDepth
	}
	if c.MaxDepth > toc.MaxLevel {
		warnings = append(warnings, fmt.Sprintf(
			"max_depth %d exceeds the deepest detected level (%d); deeper headings classify as level %d",
			c.MaxDepth, toc.MaxLevel, toc.MaxLevel))
	}

	// Format
	if c.Format == "" {
		c.Format = string(toc.FormatHTML)
	}
	if _, err := toc.ParseFormat(c.Format); err != nil {
		return warnings, fmt.Errorf("%w: %v", utils.ErrConfigValidation, err)
	}

	// MCP transport
	switch c.MCP.Transport {
	case "":
		c.MCP.Transport = DefaultTransport
	case "stdio", "sse":
	default:
		return warnings, fmt.Errorf("%w: unknown mcp.transport %q (supported: stdio, sse)", utils.ErrConfigValidation, c.MCP.Transport)
	}

	// MCP port
	if c.MCP.Port <= 0 {
		if c.MCP.Port < 0 {
			warnings = append(warnings, fmt.Sprintf("mcp.port cannot be negative, defaulting to %d", DefaultPort))
		}
		c.MCP.Port = DefaultPort
	}

	return warnings, nil
}

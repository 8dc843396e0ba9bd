package mcp

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriram-PR/nbtoc/pkg/config"
	"github.com/Sriram-PR/nbtoc/pkg/utils"
)

const testNotebook = `{"cells": [
  {"cell_type": "markdown", "source": ["# A\n"]},
  {"cell_type": "markdown", "source": ["## Sub Section"]},
  {"cell_type": "markdown", "source": ["### C"]},
  {"cell_type": "code", "source": ["# not a heading"]}
]}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s, err := NewServer(&ServerConfig{
		AppConfig: config.Default(),
		Transport: "stdio",
		Logger:    logger,
	})
	require.NoError(t, err)
	return s
}

func writeNotebook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nb.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(testNotebook), 0644))
	return path
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Request: mcp.Request{Method: "tools/call"},
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestNewServer_RequiresAppConfig(t *testing.T) {
	_, err := NewServer(&ServerConfig{})
	assert.Error(t, err)
}

func TestHandlePrintTOC(t *testing.T) {
	s := newTestServer(t)
	path := writeNotebook(t)

	tests := []struct {
		name     string
		args     map[string]any
		expected string
	}{
		{
			name:     "default depth",
			args:     map[string]any{"path": path},
			expected: `<ol><li><a href="#A">A</a></li><ol><li><a href="#Sub-Section">Sub Section</a></li></ol></ol>`,
		},
		{
			name:     "depth one",
			args:     map[string]any{"path": path, "max_depth": float64(1)},
			expected: `<ol><li><a href="#A">A</a></li></ol>`,
		},
		{
			name:     "depth as string",
			args:     map[string]any{"path": path, "max_depth": "1"},
			expected: `<ol><li><a href="#A">A</a></li></ol>`,
		},
		{
			name:     "markdown format",
			args:     map[string]any{"path": path, "max_depth": float64(3), "format": "markdown"},
			expected: "* [A](#A)\n  * [Sub Section](#Sub-Section)\n    * [C](#C)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handlePrintTOC(context.Background(), callRequest("print_toc", tt.args))
			require.NoError(t, err)
			assert.False(t, result.IsError)
			assert.Equal(t, tt.expected, resultText(t, result))
		})
	}
}

func TestHandlePrintTOC_Errors(t *testing.T) {
	s := newTestServer(t)
	path := writeNotebook(t)

	tests := []struct {
		name    string
		args    map[string]any
		wantMsg string
	}{
		{"missing path", map[string]any{}, "path parameter is required"},
		{"file not found", map[string]any{"path": filepath.Join(t.TempDir(), "nope.ipynb")}, "Input_NotExist"},
		{"non-numeric depth", map[string]any{"path": path, "max_depth": "x"}, "Request_InvalidValue"},
		{"fractional depth", map[string]any{"path": path, "max_depth": 1.5}, "Request_InvalidValue"},
		{"zero depth", map[string]any{"path": path, "max_depth": float64(0)}, "Request_InvalidValue"},
		{"unknown format", map[string]any{"path": path, "format": "pdf"}, "Request_UnknownFormat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handlePrintTOC(context.Background(), callRequest("print_toc", tt.args))
			require.NoError(t, err, "tool errors must not surface as protocol errors")
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.wantMsg)
		})
	}
}

func TestHandleExtractHeadings(t *testing.T) {
	s := newTestServer(t)
	path := writeNotebook(t)

	result, err := s.handleExtractHeadings(context.Background(),
		callRequest("extract_headings", map[string]any{"path": path, "max_depth": float64(4)}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Path     string `json:"path"`
		MaxDepth int    `json:"max_depth"`
		Total    int    `json:"total"`
		Headings []struct {
			Level  int    `json:"level"`
			Text   string `json:"text"`
			Anchor string `json:"anchor"`
		} `json:"headings"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))

	assert.Equal(t, path, payload.Path)
	assert.Equal(t, 4, payload.MaxDepth)
	assert.Equal(t, 3, payload.Total)
	require.Len(t, payload.Headings, 3)
	assert.Equal(t, 2, payload.Headings[1].Level)
	assert.Equal(t, "Sub Section", payload.Headings[1].Text)
	assert.Equal(t, "Sub-Section", payload.Headings[1].Anchor)
}

func TestHandleExtractHeadings_EmptyNotebook(t *testing.T) {
	s := newTestServer(t)
	path := filepath.Join(t.TempDir(), "empty.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(`{"cells": []}`), 0644))

	result, err := s.handleExtractHeadings(context.Background(),
		callRequest("extract_headings", map[string]any{"path": path}))
	require.NoError(t, err)

	assert.Contains(t, resultText(t, result), `"headings": []`)
	assert.Contains(t, resultText(t, result), `"total": 0`)
}

func TestDepthArgument(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    int
		wantErr bool
	}{
		{"absent uses default", map[string]any{}, 2, false},
		{"nil uses default", map[string]any{"max_depth": nil}, 2, false},
		{"float", map[string]any{"max_depth": float64(3)}, 3, false},
		{"int", map[string]any{"max_depth": 4}, 4, false},
		{"string", map[string]any{"max_depth": " 3 "}, 3, false},
		{"bad string", map[string]any{"max_depth": "three"}, 0, true},
		{"bool", map[string]any{"max_depth": true}, 0, true},
		{"negative", map[string]any{"max_depth": -2}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := depthArgument(tt.args, 2)
			if tt.wantErr {
				assert.ErrorIs(t, err, utils.ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_UnknownTransport(t *testing.T) {
	s := newTestServer(t)
	s.cfg.Transport = "carrier-pigeon"

	assert.ErrorContains(t, s.Run(), "unknown transport")
}

func TestShutdown_NoSSE(t *testing.T) {
	s := newTestServer(t)

	assert.NoError(t, s.Shutdown(context.Background()))
}

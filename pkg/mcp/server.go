package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/nbtoc/pkg/config"
	"github.com/Sriram-PR/nbtoc/pkg/toc"
)

const (
	serverName    = "nbtoc"
	serverVersion = "0.2.0"
)

// ServerConfig holds configuration for the MCP server
type ServerConfig struct {
	AppConfig *config.AppConfig
	Transport string // "stdio" or "sse"
	Port      int
	Logger    *logrus.Logger
}

// Server exposes the print_toc extension as MCP tools
type Server struct {
	mcpServer *server.MCPServer
	cfg       *ServerConfig
	log       *logrus.Entry
	ext       *toc.Extension
	sse       *server.SSEServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *ServerConfig) (*Server, error) {
	if cfg.AppConfig == nil {
		return nil, fmt.Errorf("AppConfig is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	log := cfg.Logger.WithField("component", "mcp")
	s := &Server{
		mcpServer: mcpServer,
		cfg:       cfg,
		log:       log,
		ext:       toc.NewExtension(cfg.AppConfig.ExtensionOptions(), log),
	}

	if cfg.Transport == "sse" {
		s.sse = server.NewSSEServer(mcpServer)
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// print_toc - Render a table of contents for a notebook
	printTOCTool := mcp.NewTool(toc.PrintTOCMagic,
		mcp.WithDescription("Render a nested table of contents (with anchor links) for the markdown headings of a notebook (.ipynb)"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the .ipynb file"),
		),
		mcp.WithNumber("max_depth",
			mcp.Description(fmt.Sprintf("Deepest heading level to include (default: %d)", s.cfg.AppConfig.MaxDepth)),
		),
		mcp.WithString("format",
			mcp.Description("Output format: html, markdown or markdown-html (default: "+string(s.cfg.AppConfig.GetEffectiveFormat())+")"),
		),
	)
	s.mcpServer.AddTool(printTOCTool, s.handlePrintTOC)

	// extract_headings - Return the headings as JSON
	extractTool := mcp.NewTool("extract_headings",
		mcp.WithDescription("List the markdown headings of a notebook (.ipynb) with their level and anchor"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the .ipynb file"),
		),
		mcp.WithNumber("max_depth",
			mcp.Description(fmt.Sprintf("Deepest heading level to include (default: %d)", s.cfg.AppConfig.MaxDepth)),
		),
	)
	s.mcpServer.AddTool(extractTool, s.handleExtractHeadings)

	s.log.Infof("Registered %d MCP tools", 2)
}

// Run starts the MCP server with the configured transport
func (s *Server) Run() error {
	switch s.cfg.Transport {
	case "stdio":
		s.log.Info("Starting MCP server with stdio transport")
		return server.ServeStdio(s.mcpServer)
	case "sse":
		addr := fmt.Sprintf(":%d", s.cfg.Port)
		s.log.Infof("Starting MCP server with SSE transport on %s", addr)
		return s.sse.Start(addr)
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", s.cfg.Transport)
	}
}

// Shutdown stops the SSE listener. The stdio transport handles its own signals.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.sse == nil {
		return nil
	}
	s.log.Info("Shutting down MCP server...")
	return s.sse.Shutdown(ctx)
}

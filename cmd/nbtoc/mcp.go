package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sriram-PR/nbtoc/pkg/mcp"
)

// runMcpServer handles the mcp-server subcommand
func runMcpServer(args []string) {
	fs := flag.NewFlagSet("mcp-server", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to YAML config file (optional)")
	transport := fs.String("transport", "", "Transport type (stdio, sse; default from config, else stdio)")
	port := fs.Int("port", 0, "HTTP port for sse transport (default from config, else 8080)")
	logLevel := fs.String("loglevel", "", "Log level (debug, info, warn, error)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: nbtoc mcp-server [options]

Start an MCP (Model Context Protocol) server exposing notebook table-of-contents tools.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Start with stdio transport (for Claude Desktop)
  nbtoc mcp-server

  # Start with SSE transport on port 8080
  nbtoc mcp-server -transport sse -port 8080

Available MCP Tools:
  print_toc         Render the table of contents of a notebook
  extract_headings  List a notebook's headings as JSON
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	exitCode := doMcpServer(*configFile, *transport, *port, *logLevel, os.Stderr)
	os.Exit(exitCode)
}

// doMcpServer is the testable implementation of the MCP server.
// MCP protocol uses stdout, so everything else goes to stderr.
func doMcpServer(configPath, transport string, port int, logLevel string, stderr io.Writer) int {
	appCfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if transport != "" {
		appCfg.MCP.Transport = transport
	}
	if port > 0 {
		appCfg.MCP.Port = port
	}

	log := newLogger(appCfg.GetEffectiveLogLevel(logLevel), stderr)

	warnings, err := appCfg.Validate()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	for _, w := range warnings {
		log.Warn(w)
	}

	serverCfg := &mcp.ServerConfig{
		AppConfig: appCfg,
		Transport: appCfg.MCP.Transport,
		Port:      appCfg.MCP.Port,
		Logger:    log,
	}

	server, err := mcp.NewServer(serverCfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating MCP server: %v\n", err)
		return 1
	}

	if serverCfg.Transport == "sse" {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			sig := <-sigChan
			log.Warnf("Received signal %v, shutting down...", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				log.Errorf("MCP server shutdown error: %v", err)
			}
		}()
	}

	log.Infof("Starting MCP server (transport: %s)", serverCfg.Transport)

	if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(stderr, "MCP server error: %v\n", err)
		return 1
	}

	return 0
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Sriram-PR/nbtoc/pkg/config"
	nblog "github.com/Sriram-PR/nbtoc/pkg/log"
	"github.com/Sriram-PR/nbtoc/pkg/magic"
	"github.com/Sriram-PR/nbtoc/pkg/toc"
	"github.com/Sriram-PR/nbtoc/pkg/utils"
)

const version = "0.2.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "print":
		runPrint(os.Args[2:])
	case "shell":
		runShell(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "mcp-server":
		runMcpServer(os.Args[2:])
	case "version":
		fmt.Printf("nbtoc %s\n", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printUsageTo(os.Stdout)
}

// printUsageTo writes usage information to the provided writer.
func printUsageTo(w io.Writer) {
	fmt.Fprintln(w, `nbtoc - Table of contents for notebook (.ipynb) files

Usage:
  nbtoc <command> [options]

Commands:
  print       Print a table of contents: nbtoc print <ipynb>[, MAX]
  shell       Read magic lines (%load_ext nbtoc, %print_toc ...) from stdin
  validate    Validate configuration file
  mcp-server  Start MCP server for AI tool integration
  version     Show version info

Run 'nbtoc <command> -h' for command-specific help.`)
}

// loadConfig loads and parses the config file. An empty path yields the defaults.
func loadConfig(path string) (*config.AppConfig, error) {
	if path == "" {
		return &config.AppConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg config.AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// setup loads and validates the config and builds the logger.
// Problems are written to stderr; ok is false when the command should exit 1.
func setup(configPath, logLevel string, stderr io.Writer) (cfg *config.AppConfig, log *logrus.Logger, ok bool) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, nil, false
	}

	warnings, err := cfg.Validate()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, nil, false
	}

	log = newLogger(cfg.GetEffectiveLogLevel(logLevel), stderr)
	for _, w := range warnings {
		log.Warn(w)
	}

	return cfg, log, true
}

// newLogger builds the stderr logger. An invalid level is warned about and
// falls back to info.
func newLogger(level string, stderr io.Writer) *logrus.Logger {
	log, err := nblog.New(stderr, level)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", level, err)
	}
	return log
}

// runPrint handles the print subcommand
func runPrint(args []string) {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to YAML config file (optional)")
	format := fs.String("format", "", "Output format: html, markdown, markdown-html (default from config, else html)")
	logLevel := fs.String("loglevel", "", "Log level (debug, info, warn, error)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nbtoc print [options] <ipynb>[, MAX]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nbtoc print welcome.ipynb\n")
		fmt.Fprintf(os.Stderr, "  nbtoc print welcome.ipynb, 3\n")
		fmt.Fprintf(os.Stderr, "  nbtoc print -format markdown \"my notes.ipynb, 4\"\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a notebook path is required")
		fs.Usage()
		os.Exit(1)
	}

	exitCode := doPrint(*configFile, *format, *logLevel, strings.Join(fs.Args(), " "), os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doPrint renders the table of contents for request ("<ipynb>[, MAX]").
// Returns exit code (0 = success, 1 = error).
func doPrint(configPath, formatName, logLevel, request string, stdout, stderr io.Writer) int {
	cfg, log, ok := setup(configPath, logLevel, stderr)
	if !ok {
		return 1
	}

	format := cfg.GetEffectiveFormat()
	if formatName != "" {
		f, err := toc.ParseFormat(formatName)
		if err != nil {
			fmt.Fprintf(stderr, "Error [%s]: %v\n", utils.CategorizeError(err), err)
			return 1
		}
		format = f
	}

	ext := toc.NewExtension(cfg.ExtensionOptions(), nblog.Component(log, "print"))
	out, err := ext.PrintTOCFormat(request, format)
	if err != nil {
		fmt.Fprintf(stderr, "Error [%s]: %v\n", utils.CategorizeError(err), err)
		return 1
	}

	fmt.Fprintln(stdout, out)
	return 0
}

// runShell handles the shell subcommand
func runShell(args []string) {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to YAML config file (optional)")
	logLevel := fs.String("loglevel", "", "Log level (debug, info, warn, error)")
	autoload := fs.Bool("autoload", false, "Load the nbtoc extension at startup")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nbtoc shell [options] < magics.txt\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nSession lines:\n")
		fmt.Fprintf(os.Stderr, "  %%load_ext nbtoc\n")
		fmt.Fprintf(os.Stderr, "  %%print_toc welcome.ipynb, 3\n")
		fmt.Fprintf(os.Stderr, "  %%lsmagic\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	exitCode := doShell(*configFile, *logLevel, *autoload, os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doShell runs a magic session over stdin.
// Returns exit code (0 = success, 1 = error). Failed magic lines do not end the session.
func doShell(configPath, logLevel string, autoload bool, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, log, ok := setup(configPath, logLevel, stderr)
	if !ok {
		return 1
	}

	session := newSession(cfg, log)
	if autoload {
		if _, err := session.LoadExtension(toc.ExtensionName); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if err := session.Run(stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newSession creates a host session with the nbtoc extension available to %load_ext.
func newSession(cfg *config.AppConfig, log *logrus.Logger) *magic.Session {
	session := magic.NewSession(magic.NewRegistry(), log.WithField("component", "shell"))
	ext := toc.NewExtension(cfg.ExtensionOptions(), nblog.Component(log, toc.ExtensionName))
	// Fresh session: the only possible error is a duplicate name.
	_ = session.AddExtension(toc.ExtensionName, toc.Loader(ext))
	return session
}

// runValidate handles the validate subcommand
func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nbtoc validate [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	exitCode := doValidate(*configFile, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doValidate performs validation and writes output to provided writers.
// Returns exit code (0 = success, 1 = error).
func doValidate(configPath string, stdout, stderr io.Writer) int {
	appCfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	warnings, err := appCfg.Validate()
	for _, w := range warnings {
		fmt.Fprintf(stdout, "WARN: %s\n", w)
	}
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "OK: max_depth=%d format=%s mcp.transport=%s mcp.port=%d\n",
		appCfg.MaxDepth, appCfg.Format, appCfg.MCP.Transport, appCfg.MCP.Port)
	fmt.Fprintln(stdout, "\nConfiguration valid.")
	return 0
}

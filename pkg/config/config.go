package config

import "github.com/Sriram-PR/nbtoc/pkg/toc"

const (
	DefaultTransport = "stdio"
	DefaultPort      = 8080
	DefaultLogLevel  = "info"
)

// AppConfig holds the application configuration loaded from YAML
type AppConfig struct {
	MaxDepth int       `yaml:"max_depth"`           // Default heading depth when a request names none
	Format   string    `yaml:"format,omitempty"`    // html, markdown or markdown-html
	LogLevel string    `yaml:"log_level,omitempty"` // Used when no -loglevel flag is given
	MCP      MCPConfig `yaml:"mcp,omitempty"`
}

// MCPConfig holds settings for the MCP server subcommand
type MCPConfig struct {
	Transport string `yaml:"transport,omitempty"` // "stdio" or "sse"
	Port      int    `yaml:"port,omitempty"`      // HTTP port for sse transport
}

// Default returns a validated configuration with every default applied.
func Default() *AppConfig {
	cfg := &AppConfig{}
	_, _ = cfg.Validate()
	return cfg
}

// GetEffectiveFormat returns the configured output format, falling back to html.
// Validate must have accepted the config first.
func (c *AppConfig) GetEffectiveFormat() toc.Format {
	f, err := toc.ParseFormat(c.Format)
	if err != nil {
		return toc.FormatHTML
	}
	return f
}

// GetEffectiveLogLevel returns the flag value when set, else the configured level.
func (c *AppConfig) GetEffectiveLogLevel(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return DefaultLogLevel
}

// ExtensionOptions maps the config onto print_toc defaults.
func (c *AppConfig) ExtensionOptions() toc.Options {
	return toc.Options{
		DefaultMaxDepth: c.MaxDepth,
		Format:          c.GetEffectiveFormat(),
	}
}

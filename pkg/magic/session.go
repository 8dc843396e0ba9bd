package magic

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/nbtoc/pkg/utils"
)

// Built-in session magics
const (
	LoadExtMagic = "load_ext"
	LsMagic      = "lsmagic"
)

// Loader installs an extension's magics into the registry it is handed.
type Loader func(reg *Registry) error

// Session is an interactive host: it owns a Registry, knows which
// extensions can be loaded, and dispatches magic lines one at a time.
// A Session is not safe for concurrent use.
type Session struct {
	registry   *Registry
	extensions map[string]Loader
	loaded     map[string]bool
	log        *logrus.Entry
}

// NewSession creates a session around reg. A nil reg gets a fresh registry.
func NewSession(reg *Registry, log *logrus.Entry) *Session {
	if reg == nil {
		reg = NewRegistry()
	}
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	return &Session{
		registry:   reg,
		extensions: make(map[string]Loader),
		loaded:     make(map[string]bool),
		log:        log.WithField("component", "session"),
	}
}

// Registry returns the session's magic registry.
func (s *Session) Registry() *Registry {
	return s.registry
}

// AddExtension makes an extension available to %load_ext.
func (s *Session) AddExtension(name string, loader Loader) error {
	if name == "" || loader == nil {
		return fmt.Errorf("session: extension name and loader are required")
	}
	if _, exists := s.extensions[name]; exists {
		return fmt.Errorf("session: extension %s already added", name)
	}
	s.extensions[name] = loader
	return nil
}

// LoadExtension runs the named extension's loader once per session.
// It reports whether the extension was already loaded.
func (s *Session) LoadExtension(name string) (alreadyLoaded bool, err error) {
	if s.loaded[name] {
		return true, nil
	}
	loader, ok := s.extensions[name]
	if !ok {
		return false, fmt.Errorf("%w: %s (available: %s)", utils.ErrUnknownExtension, name, strings.Join(s.extensionNames(), ", "))
	}
	if err := loader(s.registry); err != nil {
		return false, fmt.Errorf("load extension %s: %w", name, err)
	}
	s.loaded[name] = true
	s.log.Debugf("Loaded extension %s, magics now: %v", name, s.registry.Names())
	return false, nil
}

// Execute runs a single magic line and returns its display output.
func (s *Session) Execute(line string) (string, error) {
	name, args, err := SplitLine(line)
	if err != nil {
		return "", err
	}

	switch name {
	case LoadExtMagic:
		if args == "" {
			return "", fmt.Errorf("%w: usage: %s%s <extension>", utils.ErrInvalidValue, Prefix, LoadExtMagic)
		}
		already, err := s.LoadExtension(args)
		if err != nil {
			return "", err
		}
		if already {
			return fmt.Sprintf("The %s extension is already loaded.", args), nil
		}
		return "", nil
	case LsMagic:
		names := append([]string{LoadExtMagic, LsMagic}, s.registry.Names()...)
		for i, n := range names {
			names[i] = Prefix + n
		}
		return "Available line magics:\n" + strings.Join(names, "  "), nil
	}

	s.log.Debugf("Dispatching %s%s %q", Prefix, name, args)
	return s.registry.Call(name, args)
}

// Run executes every non-blank line from in. Output goes to stdout; a failed
// line is reported on stderr with its error category and the session moves on.
func (s *Session) Run(in io.Reader, stdout, stderr io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out, err := s.Execute(line)
		if err != nil {
			fmt.Fprintf(stderr, "ERROR [%s]: %v\n", utils.CategorizeError(err), err)
			continue
		}
		if out != "" {
			fmt.Fprintln(stdout, out)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read session input: %w", err)
	}
	return nil
}

func (s *Session) extensionNames() []string {
	names := make([]string, 0, len(s.extensions))
	for name := range s.extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

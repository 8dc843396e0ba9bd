package magic

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Sriram-PR/nbtoc/pkg/utils"
)

// Prefix marks a line magic invocation, e.g. "%print_toc nb.ipynb, 3".
const Prefix = "%"

// Handler runs a line magic with the text following its name and returns
// markup for the host to display.
type Handler func(line string) (string, error)

// Registry maintains the line magics available to a host session.
// Registration is one-way; there is no unregister.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{}}
}

// Register installs a line magic. Returns an error if the name already exists.
func (r *Registry) Register(name string, handler Handler) error {
	if name == "" {
		return fmt.Errorf("magic: name is required")
	}
	if strings.ContainsAny(name, " \t"+Prefix) {
		return fmt.Errorf("magic: invalid name %q", name)
	}
	if handler == nil {
		return fmt.Errorf("magic: handler is required for %s", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("magic: %s already registered", name)
	}
	r.handlers[name] = handler
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(name string, handler Handler) {
	if err := r.Register(name, handler); err != nil {
		panic(err)
	}
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns a sorted list of registered magic names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs the magic registered under name with args.
func (r *Registry) Call(name, args string) (string, error) {
	h, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s%s", utils.ErrUnknownMagic, Prefix, name)
	}
	return h(args)
}

// Run parses "%name args" and dispatches it.
func (r *Registry) Run(line string) (string, error) {
	name, args, err := SplitLine(line)
	if err != nil {
		return "", err
	}
	return r.Call(name, args)
}

// SplitLine separates a magic line into its name and trimmed argument text.
func SplitLine(line string) (name, args string, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, Prefix) {
		return "", "", fmt.Errorf("%w: %q is not a magic command (expected %sname)", utils.ErrUnknownMagic, line, Prefix)
	}
	line = strings.TrimPrefix(line, Prefix)
	name = line
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		name, args = line[:i], line[i+1:]
	}
	if name == "" {
		return "", "", fmt.Errorf("%w: missing magic name", utils.ErrUnknownMagic)
	}
	return name, strings.TrimSpace(args), nil
}

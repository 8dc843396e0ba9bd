package toc

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/nbtoc/pkg/magic"
	"github.com/Sriram-PR/nbtoc/pkg/notebook"
)

const (
	// ExtensionName is the name hosts load this extension under.
	ExtensionName = "nbtoc"
	// PrintTOCMagic prints a table of contents for a notebook file.
	PrintTOCMagic = "print_toc"
)

// Registrar is the part of a host registry the extension needs.
type Registrar interface {
	Register(name string, handler magic.Handler) error
}

// Options controls the defaults of an Extension.
type Options struct {
	DefaultMaxDepth int
	Format          Format
}

// Extension serves the print_toc magic.
type Extension struct {
	opts Options
	log  *logrus.Entry
}

// NewExtension creates an Extension. Zero-valued options fall back to
// DefaultMaxDepth and FormatHTML.
func NewExtension(opts Options, log *logrus.Entry) *Extension {
	if opts.DefaultMaxDepth < MinLevel {
		opts.DefaultMaxDepth = DefaultMaxDepth
	}
	if opts.Format == "" {
		opts.Format = FormatHTML
	}
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	return &Extension{
		opts: opts,
		log:  log.WithField("component", ExtensionName),
	}
}

// Register installs the extension's magics into reg.
func Register(reg Registrar, ext *Extension) error {
	if ext == nil {
		return fmt.Errorf("%s: extension is required", ExtensionName)
	}
	return reg.Register(PrintTOCMagic, ext.PrintTOC)
}

// Loader adapts Register to a session's extension loader.
func Loader(ext *Extension) magic.Loader {
	return func(reg *magic.Registry) error {
		return Register(reg, ext)
	}
}

// PrintTOC handles "%print_toc <ipynb>[, MAX]" and returns rendered markup.
func (e *Extension) PrintTOC(line string) (string, error) {
	return e.PrintTOCFormat(line, e.opts.Format)
}

// PrintTOCFormat is PrintTOC with an explicit output format.
func (e *Extension) PrintTOCFormat(line string, format Format) (string, error) {
	req, err := ParseRequest(line, e.opts.DefaultMaxDepth)
	if err != nil {
		return "", err
	}
	headings, err := e.Headings(req)
	if err != nil {
		return "", err
	}
	return RenderFormat(format, headings)
}

// Headings loads the requested notebook and extracts its headings.
func (e *Extension) Headings(req Request) ([]Heading, error) {
	doc, err := notebook.Load(req.Path)
	if err != nil {
		return nil, err
	}
	headings := Extract(doc, req.MaxDepth)
	e.log.WithFields(logrus.Fields{
		"path":      req.Path,
		"max_depth": req.MaxDepth,
		"cells":     len(doc.Cells),
	}).Debugf("Extracted %d headings", len(headings))
	return headings, nil
}

// DefaultMaxDepth returns the depth used when a request names none.
func (e *Extension) DefaultMaxDepth() int {
	return e.opts.DefaultMaxDepth
}

package toc

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriram-PR/nbtoc/pkg/magic"
	"github.com/Sriram-PR/nbtoc/pkg/utils"
)

const testNotebook = `{"cells": [
  {"cell_type": "markdown", "source": ["# A\n"]},
  {"cell_type": "markdown", "source": ["## B\n", "body"]},
  {"cell_type": "markdown", "source": ["### C"]},
  {"cell_type": "code", "source": ["x=1"]}
]}`

func newDiscardEntry() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func writeTestNotebook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nb.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(testNotebook), 0644))
	return path
}

func TestNewExtension_Defaults(t *testing.T) {
	ext := NewExtension(Options{}, nil)

	assert.Equal(t, DefaultMaxDepth, ext.DefaultMaxDepth())
	assert.Equal(t, FormatHTML, ext.opts.Format)
}

func TestPrintTOC_DefaultDepth(t *testing.T) {
	ext := NewExtension(Options{}, newDiscardEntry())

	got, err := ext.PrintTOC(writeTestNotebook(t))

	require.NoError(t, err)
	assert.Equal(t, `<ol><li><a href="#A">A</a></li><ol><li><a href="#B">B</a></li></ol></ol>`, got)
}

func TestPrintTOC_ExplicitDepth(t *testing.T) {
	ext := NewExtension(Options{}, newDiscardEntry())

	got, err := ext.PrintTOC(writeTestNotebook(t) + ", 3")

	require.NoError(t, err)
	assert.Contains(t, got, `<li><a href="#C">C</a></li>`)
}

func TestPrintTOC_ConfiguredFormat(t *testing.T) {
	ext := NewExtension(Options{DefaultMaxDepth: 1, Format: FormatMarkdown}, newDiscardEntry())

	got, err := ext.PrintTOC(writeTestNotebook(t))

	require.NoError(t, err)
	assert.Equal(t, "* [A](#A)", got)
}

func TestPrintTOC_Errors(t *testing.T) {
	ext := NewExtension(Options{}, newDiscardEntry())
	badJSON := filepath.Join(t.TempDir(), "bad.ipynb")
	require.NoError(t, os.WriteFile(badJSON, []byte("not json"), 0644))

	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{"missing file", filepath.Join(t.TempDir(), "missing.ipynb"), utils.ErrNotFound},
		{"invalid JSON", badJSON, utils.ErrParsing},
		{"non-numeric depth", writeTestNotebook(t) + ", x", utils.ErrInvalidValue},
		{"non-numeric depth on missing file", "missing.ipynb, x", utils.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ext.PrintTOC(tt.line)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, got)
		})
	}
}

func TestRegister_IntoRegistry(t *testing.T) {
	reg := magic.NewRegistry()
	ext := NewExtension(Options{}, newDiscardEntry())

	require.NoError(t, Register(reg, ext))
	assert.Equal(t, []string{PrintTOCMagic}, reg.Names())

	got, err := reg.Run("%print_toc " + writeTestNotebook(t) + ", 1")
	require.NoError(t, err)
	assert.Equal(t, `<ol><li><a href="#A">A</a></li></ol>`, got)

	// second registration is rejected by the registry
	assert.Error(t, Register(reg, ext))
}

func TestRegister_NilExtension(t *testing.T) {
	assert.Error(t, Register(magic.NewRegistry(), nil))
}

func TestLoader_ThroughSession(t *testing.T) {
	session := magic.NewSession(nil, newDiscardEntry())
	require.NoError(t, session.AddExtension(ExtensionName, Loader(NewExtension(Options{}, newDiscardEntry()))))

	_, err := session.Execute("%print_toc nb.ipynb")
	assert.ErrorIs(t, err, utils.ErrUnknownMagic)

	_, err = session.Execute("%load_ext nbtoc")
	require.NoError(t, err)

	got, err := session.Execute("%print_toc " + writeTestNotebook(t))
	require.NoError(t, err)
	assert.Contains(t, got, `<a href="#B">B</a>`)
}

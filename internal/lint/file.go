package lint

import (
	"bytes"

	"github.com/jeduden/tidyscript/internal/syntax"
)

// File holds a parsed script source unit. For code extracted from a
// Markdown document, LineOffset shifts reported line numbers to the
// enclosing document's coordinates.
type File struct {
	Path       string
	Source     []byte
	Lines      [][]byte
	Tokens     []syntax.Token
	Program    *syntax.Program
	LineOffset int
}

// NewFile tokenizes and parses source and returns a File. Parsing is
// done once here; rules share the resulting tree and never mutate it.
func NewFile(path string, source []byte) (*File, error) {
	toks, err := syntax.Scan(source)
	if err != nil {
		return nil, err
	}
	prog, err := syntax.ParseTokens(toks)
	if err != nil {
		return nil, err
	}

	return &File{
		Path:    path,
		Source:  source,
		Lines:   bytes.Split(source, []byte("\n")),
		Tokens:  toks,
		Program: prog,
	}, nil
}

// AdjustDiagnostics shifts diagnostic line numbers by LineOffset.
func (f *File) AdjustDiagnostics(diags []Diagnostic) {
	if f.LineOffset == 0 {
		return
	}
	for i := range diags {
		diags[i].Line += f.LineOffset
	}
}

// LineOfOffset converts a byte offset in Source to a 1-based line number.
func (f *File) LineOfOffset(offset int) int {
	line := 1
	for i := 0; i < offset && i < len(f.Source); i++ {
		if f.Source[i] == '\n' {
			line++
		}
	}
	return line
}

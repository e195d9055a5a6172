package read

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is the top-level production for both grammars: a flat sequence of
// forms. pamela.ebnf's file is the ordinary case; magic.ebnf additionally
// constrains each form to an lvar-ctor list, which internal/magic.Load
// verifies structurally after ParseMagic has read the file (participle
// itself only enforces the shared reader syntax).
type File struct {
	Forms []*Datum `@@*`
}

// Failure carries a parse error's source position alongside its message, the
// structured detail the magic pre-parser and the CLI error taxonomy need
// (spec §4.2, §7) rather than a bare error string.
type Failure struct {
	Filename string
	Pos      lexer.Position
	Message  string
}

func (f *Failure) Error() string {
	if f.Filename == "" {
		return fmt.Sprintf("%d:%d: %s", f.Pos.Line, f.Pos.Column, f.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", f.Filename, f.Pos.Line, f.Pos.Column, f.Message)
}

func asFailure(filename string, err error) error {
	if err == nil {
		return nil
	}
	if perr, ok := err.(participle.Error); ok {
		return &Failure{Filename: filename, Pos: perr.Position(), Message: perr.Message()}
	}
	return &Failure{Filename: filename, Message: err.Error()}
}

// Parse reads a full PAMELA source file into its top-level forms (spec
// §4.1). The grammar loader is built once per compile and reused across
// both Parse and ParseMagic calls within the same compile (SPEC_FULL §4.1).
func Parse(g *Grammars, filename string) ([]*Datum, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read: opening %s: %w", filename, err)
	}
	return ParseSource(g, filename, src)
}

// ParseSource parses PAMELA source already read into memory, for callers
// (tests, the CLI's stdin mode) that do not have it on disk.
func ParseSource(g *Grammars, filename string, src []byte) ([]*Datum, error) {
	file, err := g.Pamela.ParseBytes(filename, src)
	if err != nil {
		return nil, asFailure(filename, err)
	}
	return file.Forms, nil
}

// ParseMagic reads a magic sidecar file and returns its top-level forms
// unvalidated; internal/magic.Load is responsible for checking each form is
// a well-formed lvar-ctor list and for turning the sequence into a
// map[string]ir.LvarDefault (spec §4.2).
func ParseMagic(g *Grammars, filename string) ([]*Datum, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read: opening magic file %s: %w", filename, err)
	}
	file, err := g.Magic.ParseBytes(filename, src)
	if err != nil {
		return nil, asFailure(filename, err)
	}
	return file.Forms, nil
}

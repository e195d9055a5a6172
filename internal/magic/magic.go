// Package magic implements the magic pre-parser and writer (spec §4.2,
// §6): parsing a sidecar lvar-defaults file into a mapping, and emitting one
// back out after a compile discovers new lvars.
package magic

import (
	"fmt"
	"os"
	"strings"

	"github.com/pamela-lang/pamela/internal/ir"
	"github.com/pamela-lang/pamela/internal/read"
)

// ErrAmbiguous is returned when the magic grammar admits more than one
// derivation for a file — structurally unreachable with participle's
// deterministic parser, but kept as a named error so the contract in spec
// §4.2 ("require exactly one derivation, else 'grammar is ambiguous'") has
// somewhere to surface if a future grammar change introduces real ambiguity.
var ErrAmbiguous = fmt.Errorf("magic: grammar is ambiguous")

// Load parses the magic file at path and returns name -> default mapping
// (spec §4.2). A path that cannot be read or parsed is an error; an existing
// but empty file yields an empty mapping and no error (spec §8 row 8). The
// decision to skip Load when no magic file is given belongs to the caller
// (internal/compile).
func Load(g *read.Grammars, path string) (map[string]ir.LvarDefault, error) {
	forms, err := read.ParseMagic(g, path)
	if err != nil {
		return nil, fmt.Errorf("magic: parsing %s: %w", path, err)
	}

	out := make(map[string]ir.LvarDefault, len(forms))
	for _, form := range forms {
		name, def, err := lvarCtor(form)
		if err != nil {
			return nil, fmt.Errorf("magic: %s: %w", path, err)
		}
		out[name] = def
	}
	return out, nil
}

// lvarCtor transforms one top-level form into name/default, applying the
// magic-IR rule fold-default ?? :unset (spec §4.2): a two-item lvar-ctor
// list has no default and folds to :unset, and an explicit :unset default
// (as Write emits for an unset lvar) reads back as the same sentinel.
func lvarCtor(form *read.Datum) (string, ir.LvarDefault, error) {
	name, rest, ok := form.Head()
	if !ok || name != "lvar" {
		return "", ir.LvarDefault{}, fmt.Errorf("expected (lvar \"name\" default?), got a non-lvar form")
	}
	if len(rest) != 1 && len(rest) != 2 {
		return "", ir.LvarDefault{}, fmt.Errorf("lvar form takes 1 or 2 arguments, got %d", len(rest))
	}

	lvarName, isStr := rest[0].Str, rest[0].Str != nil
	if !isStr {
		return "", ir.LvarDefault{}, fmt.Errorf("lvar name must be a string literal")
	}

	if len(rest) == 1 {
		return *lvarName, ir.LvarDefault{Unset: true}, nil
	}

	value, err := literalOf(rest[1])
	if err != nil {
		return "", ir.LvarDefault{}, fmt.Errorf("lvar %q default: %w", *lvarName, err)
	}
	if value.Kind == ir.LitKeyword && value.S == "unset" {
		return *lvarName, ir.LvarDefault{Unset: true}, nil
	}
	return *lvarName, ir.LvarDefault{Value: value}, nil
}

// literalOf converts a reader datum into an ir.LiteralValue, the only shape
// a magic default may take (spec §4.2: integer, float, boolean, string, or
// keyword). Booleans read as the single-element [:TRUE]/[:FALSE] vector
// form (spec §4.3).
func literalOf(d *read.Datum) (ir.LiteralValue, error) {
	switch {
	case d.Int != nil:
		return ir.IntLiteral(*d.Int), nil
	case d.Float != nil:
		return ir.FloatLiteral(*d.Float), nil
	case d.Str != nil:
		return ir.StringLiteral(*d.Str), nil
	case d.Keyword != nil:
		return ir.KeywordLiteral(*d.Keyword), nil
	}
	if items, isVec := d.IsVector(); isVec && len(items) == 1 {
		if kw, isKw := items[0].IsKeyword(); isKw {
			switch kw {
			case "TRUE":
				return ir.BoolLiteral(true), nil
			case "FALSE":
				return ir.BoolLiteral(false), nil
			}
		}
	}
	return ir.LiteralValue{}, fmt.Errorf("not a literal (integer, float, boolean, string, or keyword)")
}

// Write emits a magic file for table at path, in first-insertion order, with
// the header format spec §6 documents. inputs names the compiled input
// paths, recorded in the header's "corresponding to" comment.
func Write(path string, table *ir.LvarTable, inputs []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, ";; -*- Mode: clojure; coding: utf-8  -*-\n")
	fmt.Fprintf(&b, ";; magic file corresponding to: %s\n", strings.Join(inputs, ", "))

	for _, name := range table.OrderedNames() {
		def, _ := table.Lookup(name)
		fmt.Fprintf(&b, "(lvar %q %s)\n", name, renderDefault(def))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("magic: writing %s: %w", path, err)
	}
	return nil
}

func renderDefault(def ir.LvarDefault) string {
	if def.Unset {
		return ":unset"
	}
	v := def.Value
	switch v.Kind {
	case ir.LitInt:
		return fmt.Sprintf("%d", v.I)
	case ir.LitFloat:
		return fmt.Sprintf("%g", v.F)
	case ir.LitBool:
		if v.B {
			return "[:TRUE]"
		}
		return "[:FALSE]"
	case ir.LitString:
		return fmt.Sprintf("%q", v.S)
	case ir.LitKeyword:
		return ":" + v.S
	}
	return ":unset"
}

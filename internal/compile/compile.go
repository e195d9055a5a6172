// Package compile wires the four-stage core pipeline (spec §2): grammar
// loader, magic pre-parser, IR builder, and semantic validator. It is the
// compile entry point external collaborators (the CLI) call.
package compile

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pamela-lang/pamela/internal/build"
	"github.com/pamela-lang/pamela/internal/ir"
	"github.com/pamela-lang/pamela/internal/magic"
	"github.com/pamela-lang/pamela/internal/read"
	"github.com/pamela-lang/pamela/internal/validate"
)

// Options are the compile options consumed by the core (spec §6).
type Options struct {
	// Input is the ordered list of input paths. Each must carry the
	// ".pamela" extension.
	Input []string
	// Magic is an optional path to a magic sidecar file.
	Magic string
	// OutputMagic is an optional output path; when set and any lvars were
	// discovered, the regenerated magic file is written here.
	OutputMagic string
	// CheckOnly, when true, skips semantic validation and returns the raw
	// parse tree instead of the validated IR.
	CheckOnly bool
}

// Result is the compile entry point's return shape (spec §6). Exactly one
// of IR or Tree is populated, depending on Options.CheckOnly.
type Result struct {
	IR   ir.IR
	Tree map[string][]*read.Datum
}

// Error is the one-line-message error record every compile failure takes
// the shape of (spec §6, §7): "{error: message}". Wrapping stops at the
// first producer — Compile never batches multiple errors.
type Error struct {
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.cause }

func fail(cause error, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), cause: cause}
}

// Compile runs the full pipeline over opts.Input (spec §5: "one compile =
// one sequential pass"). Every input shares one set of grammar objects, one
// lvar table (seeded from opts.Magic, if any), and accumulates into one IR;
// a failure on any input aborts the whole compile and returns its error,
// matching the "no recovery, no multi-error batching" propagation policy
// (spec §7).
func Compile(opts Options) (*Result, error) {
	if len(opts.Input) == 0 {
		return nil, fail(nil, "parse: no input files given")
	}
	for _, path := range opts.Input {
		if !strings.HasSuffix(path, ".pamela") {
			err := fail(nil, "parse: input file does not have .pamela extension: %s", path)
			slog.Error("compile rejected input", "path", path, "error", err)
			return nil, err
		}
	}

	grammars, err := read.LoadGrammars()
	if err != nil {
		return nil, fail(err, "parse: failed to load grammars: %v", err)
	}

	lvars := ir.NewLvarTable()
	if opts.Magic != "" {
		defaults, err := magic.Load(grammars, opts.Magic)
		if err != nil {
			slog.Error("magic pre-parse failed", "path", opts.Magic, "error", err)
			return nil, fail(err, "parse: failed to load magic file: PATH %s", opts.Magic)
		}
		lvars.Seed(defaults)
	}

	if opts.CheckOnly {
		tree := make(map[string][]*read.Datum, len(opts.Input))
		for _, path := range opts.Input {
			forms, err := read.Parse(grammars, path)
			if err != nil {
				if isNotExist(err) {
					slog.Error("input file not found", "path", path)
					return nil, fail(err, "parse: input file not found: %s", path)
				}
				slog.Error("parse failed", "path", path, "error", err)
				return nil, fail(err, "parse: invalid input file: %s", path)
			}
			tree[path] = forms
		}
		return &Result{Tree: tree}, nil
	}

	merged := make(ir.IR)
	var order []ir.Symbol
	for _, path := range opts.Input {
		forms, err := read.Parse(grammars, path)
		if err != nil {
			if isNotExist(err) {
				slog.Error("input file not found", "path", path)
				return nil, fail(err, "parse: input file not found: %s", path)
			}
			slog.Error("parse failed", "path", path, "error", err)
			return nil, fail(err, "parse: invalid input file: %s", path)
		}

		built, err := build.Build(forms, lvars)
		if err != nil {
			slog.Error("IR build failed", "path", path, "error", err)
			return nil, fail(err, "%s", err.Error())
		}
		for _, name := range built.Order {
			if _, dup := merged[name]; dup {
				err := fail(nil, "build: duplicate pclass name %q", name)
				slog.Error("duplicate pclass across inputs", "pclass", name, "path", path)
				return nil, err
			}
			merged[name] = built.IR[name]
			order = append(order, name)
		}
	}
	if lvars.Len() > 0 {
		merged[ir.LvarsKey] = &ir.LvarsEntry{Lvars: lvars.Snapshot()}
	}

	validated, err := validate.Validate(&build.Result{IR: merged, Order: order})
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			slog.Error("semantic validation failed", "pclass", verr.Pclass, "context", strings.Join(verr.Context, " "), "message", verr.Message)
		} else {
			slog.Error("semantic validation failed", "error", err)
		}
		return nil, fail(err, "%s", err.Error())
	}

	if opts.OutputMagic != "" && lvars.Len() > 0 {
		if err := magic.Write(opts.OutputMagic, lvars, opts.Input); err != nil {
			slog.Error("writing magic file failed", "path", opts.OutputMagic, "error", err)
			return nil, fail(err, "%s", err.Error())
		}
	}

	return &Result{IR: validated}, nil
}

func isNotExist(err error) bool {
	var failure *read.Failure
	if errors.As(err, &failure) {
		return false
	}
	return strings.Contains(err.Error(), "opening")
}

// Package build implements the IR builder (spec §4.3): a bottom-up tree
// transform over the parse tree produced by internal/read, dispatching each
// non-terminal (by the leading symbol of a list form) to a builder function
// that receives its already-transformed children. The output is the raw IR
// — pclass records whose conditions are CUnresolved placeholders and whose
// plant-fn calls are SPlantFnSymbol nodes — which internal/validate then
// disambiguates.
package build

import (
	"fmt"

	"github.com/pamela-lang/pamela/internal/ir"
	"github.com/pamela-lang/pamela/internal/read"
)

// Result is the raw IR builder output: the pclass mapping plus the
// declaration order of its pclass entries. The IR's data model (spec §3) is
// a plain mapping, but the validator must process pclasses "in source
// order" (spec §4.4) and report the first error encountered in that order,
// which an unordered Go map cannot preserve on its own.
type Result struct {
	IR    ir.IR
	Order []ir.Symbol
}

// Build transforms every top-level form into the IR, threading lvars (the
// lvar interning table, already seeded from any magic file) through the
// builders that intern lvar-ctors (spec §3.8, §5).
func Build(forms []*read.Datum, lvars *ir.LvarTable) (*Result, error) {
	out := make(ir.IR)
	var order []ir.Symbol
	for _, form := range forms {
		name, rest, ok := form.Head()
		if !ok {
			return nil, fmt.Errorf("build: top-level form must be a list, got an atom")
		}
		switch name {
		case "defpclass":
			sym, pclass, err := buildDefpclass(rest, lvars)
			if err != nil {
				return nil, err
			}
			if _, dup := out[sym]; dup {
				return nil, fmt.Errorf("build: duplicate pclass name %q", sym)
			}
			out[sym] = pclass
			order = append(order, sym)
		default:
			return nil, fmt.Errorf("build: unrecognized top-level form %q", name)
		}
	}
	if lvars.Len() > 0 {
		out[ir.LvarsKey] = &ir.LvarsEntry{Lvars: lvars.Snapshot()}
	}
	return &Result{IR: out, Order: order}, nil
}

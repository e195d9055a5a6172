package build

import (
	"github.com/pamela-lang/pamela/internal/ir"
	"github.com/pamela-lang/pamela/internal/read"
)

// buildCondition builds a raw condition (spec §3.4, §4.3): the logical
// connectives and :equal recurse, literals wrap as CLiteral, and every bare
// symbol or keyword becomes a CUnresolved placeholder for the validator to
// disambiguate (spec §4.4.4). The builder itself never fails on an
// unrecognized identifier — only the validator errors on one.
func buildCondition(d *read.Datum) ir.Condition {
	if sym, ok := d.IsSymbol(); ok {
		return ir.CUnresolved{Name: ir.Symbol(sym)}
	}
	if kw, ok := d.IsKeyword(); ok {
		return ir.CUnresolved{Keyword: true, Name: ir.Symbol(kw)}
	}
	if lit, ok := literalOf(d); ok {
		return ir.CLiteral{Value: lit}
	}
	if items, ok := d.IsList(); ok && len(items) > 0 {
		if head, isSym := items[0].IsSymbol(); isSym {
			args := make([]ir.Condition, 0, len(items)-1)
			for _, arg := range items[1:] {
				args = append(args, buildCondition(arg))
			}
			switch head {
			case "and":
				return ir.CAnd{Args: args}
			case "or":
				return ir.COr{Args: args}
			case "not":
				return ir.CNot{Args: args}
			case "implies":
				return ir.CImplies{Args: args}
			case "=":
				return ir.CEqual{Args: args}
			}
		}
	}
	// Unrecognized shape: fall back to a literal-false placeholder; the
	// validator has no repair for a malformed condition tree, but the
	// builder itself is not the layer that reports this failure (spec
	// §4.3 builders do not themselves emit semantic errors).
	return ir.LiteralFalse
}

package validate

import "github.com/pamela-lang/pamela/internal/ir"

func (v *validator) hasField(name ir.Symbol) bool {
	_, ok := v.pclass.Fields[name]
	return ok
}

func (v *validator) hasMode(name ir.Symbol) bool {
	_, ok := v.pclass.Modes[name]
	return ok
}

func (v *validator) hasArg(name ir.Symbol) bool {
	for _, a := range v.pclass.Args {
		if a == name {
			return true
		}
	}
	return false
}

func (v *validator) hasMethodArg(name ir.Symbol) bool {
	if v.methodArgs == nil {
		return false
	}
	_, ok := v.methodArgs[name]
	return ok
}

func withMethodArgs(args []ir.Symbol) map[ir.Symbol]struct{} {
	m := make(map[ir.Symbol]struct{}, len(args))
	for _, a := range args {
		m[a] = struct{}{}
	}
	return m
}

// pclassOf looks up another pclass by name for the qualified legacy
// "field.:member" reference form and for mode qualification (spec §4.4.4).
func (v *validator) pclassOf(name ir.Symbol) (*ir.Pclass, bool) {
	p, ok := v.tree[name].(*ir.Pclass)
	return p, ok
}

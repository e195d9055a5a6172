package validate

import (
	"sort"

	"github.com/pamela-lang/pamela/internal/ir"
)

// validateFields implements spec §4.4.1: for each field with a
// :pclass-ctor initializer, every positional argument must be either a
// reserved option keyword, a symbol naming another field of the enclosing
// pclass (not itself), or a symbol naming a formal argument. A field
// initialized by a bare symbol-reference must name a formal argument or
// another field.
func (v *validator) validateFields() error {
	for _, name := range sortedFieldNames(v.pclass.Fields) {
		field := v.pclass.Fields[name]
		ctx := []string{":field", string(name)}

		switch init := field.Initial.(type) {
		case nil:
			// no initializer, nothing to validate.
		case *ir.VPclassCtor:
			for _, arg := range init.Args {
				if arg.Keyword {
					if !isPclassCtorOption(arg.Name) {
						return v.fail(ctx, "pclass-ctor argument :%s is not a recognized option", arg.Name)
					}
					continue
				}
				if arg.Name == name {
					return v.fail(ctx, "pclass-ctor argument %q may not reference the field itself", arg.Name)
				}
				if !v.hasField(arg.Name) && !v.hasArg(arg.Name) {
					return v.fail(ctx, "pclass-ctor argument %q is neither a field nor a formal argument of %s", arg.Name, v.self)
				}
			}
			if init.Initial != nil {
				if err := v.validateInitialMode(init, ctx); err != nil {
					return err
				}
			}
		case ir.VSymbolRef:
			if !v.hasArg(init.Name) && !v.hasField(init.Name) {
				return v.fail(ctx, "symbol-reference %q is neither a formal argument nor a field of %s", init.Name, v.self)
			}
		}
	}
	return nil
}

// validateInitialMode checks the :initial option of a pclass-ctor field
// initializer names one of the target pclass's declared modes (spec §8
// boundary scenario 7).
func (v *validator) validateInitialMode(ctor *ir.VPclassCtor, ctx []string) error {
	target, ok := v.pclassOf(ctor.Pclass)
	if !ok {
		return v.fail(ctx, "pclass-ctor constructs undeclared pclass %q", ctor.Pclass)
	}
	if _, ok := target.Modes[*ctor.Initial]; ok {
		return nil
	}
	return v.fail(ctx, "pclass :initial mode :%s is not one of the defined modes: [%s]", *ctor.Initial, formatModeList(target.ModeOrder))
}

func formatModeList(modes []ir.Symbol) string {
	s := ""
	for i, m := range modes {
		if i > 0 {
			s += " "
		}
		s += ":" + string(m)
	}
	return s
}

func isPclassCtorOption(name ir.Symbol) bool {
	switch name {
	case "id", "interface", "plant-part", "initial":
		return true
	default:
		return false
	}
}

// sortedFieldNames returns field names in a deterministic order so that
// validation errors are reproducible across runs (spec §4.4: "first error
// encountered" must be stable).
func sortedFieldNames(fields map[ir.Symbol]*ir.Field) []ir.Symbol {
	names := make([]ir.Symbol, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

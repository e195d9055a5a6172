package validate

import (
	"log/slog"
	"strings"

	"github.com/pamela-lang/pamela/internal/ir"
)

// validateCondition implements disambiguation (spec §4.4.4). Logical
// connectives recurse with the context extended by their own tag; :equal
// additionally runs the mode-qualification second pass after per-operand
// resolution; every other already-resolved or literal shape passes through
// unchanged.
func (v *validator) validateCondition(c ir.Condition, ctx []string) (ir.Condition, error) {
	switch cond := c.(type) {
	case ir.CUnresolved:
		return v.resolveUnresolved(cond, ctx)

	case ir.CAnd:
		args, err := v.validateConditionArgs(cond.Args, append(ctx, ":and"))
		if err != nil {
			return nil, err
		}
		return ir.CAnd{Args: args}, nil

	case ir.COr:
		args, err := v.validateConditionArgs(cond.Args, append(ctx, ":or"))
		if err != nil {
			return nil, err
		}
		return ir.COr{Args: args}, nil

	case ir.CNot:
		args, err := v.validateConditionArgs(cond.Args, append(ctx, ":not"))
		if err != nil {
			return nil, err
		}
		return ir.CNot{Args: args}, nil

	case ir.CImplies:
		args, err := v.validateConditionArgs(cond.Args, append(ctx, ":implies"))
		if err != nil {
			return nil, err
		}
		return ir.CImplies{Args: args}, nil

	case ir.CEqual:
		args, err := v.validateConditionArgs(cond.Args, append(ctx, ":equal"))
		if err != nil {
			return nil, err
		}
		return ir.CEqual{Args: v.qualifyEqualsModes(args)}, nil

	default:
		return c, nil
	}
}

func (v *validator) validateConditionArgs(args []ir.Condition, ctx []string) ([]ir.Condition, error) {
	out := make([]ir.Condition, len(args))
	for i, a := range args {
		resolved, err := v.validateCondition(a, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}

// resolveUnresolved disambiguates one bare symbol or keyword by the
// priority order of spec §4.4.4: field, mode, method-arg, pclass-arg,
// state-variable; an unresolved keyword that matches none of those is
// wrapped as a literal with a warning rather than promoted to a state
// variable, since state variables name dynamically-bound symbols, not
// keywords.
func (v *validator) resolveUnresolved(u ir.CUnresolved, ctx []string) (ir.Condition, error) {
	if !u.Keyword {
		if field, member, ok := splitQualifiedReference(u.Name); ok {
			return v.resolveQualifiedFieldReference(field, member, ctx)
		}
	}

	if u.Keyword {
		switch {
		case v.hasField(u.Name):
			return ir.CFieldReference{Pclass: ir.This, Field: u.Name}, nil
		case v.hasMode(u.Name):
			return ir.CModeReference{Pclass: ir.This, Mode: u.Name}, nil
		case v.hasMethodArg(u.Name):
			return ir.CMethodArgReference{Arg: u.Name}, nil
		case v.hasArg(u.Name):
			return ir.CArgReference{Arg: u.Name}, nil
		}
		slog.Warn("condition keyword did not resolve to a field, mode or argument; treating as a literal",
			"pclass", v.self, "keyword", u.Name, "context", strings.Join(ctx, " "))
		return ir.CLiteral{Value: ir.KeywordLiteral(string(u.Name))}, nil
	}

	switch {
	case v.hasField(u.Name):
		return ir.CFieldReference{Pclass: ir.This, Field: u.Name}, nil
	case v.hasMode(u.Name):
		return ir.CModeReference{Pclass: ir.This, Mode: u.Name}, nil
	case v.hasMethodArg(u.Name):
		return ir.CMethodArgReference{Arg: u.Name}, nil
	case v.hasArg(u.Name):
		return ir.CArgReference{Arg: u.Name}, nil
	default:
		v.stateVars.intern(u.Name)
		return ir.CStateVariable{Name: u.Name}, nil
	}
}

// splitQualifiedReference recognizes the legacy "field.member" qualified
// reference form (spec §4.4.4 item 1): this grammar lexes the dot as an
// ordinary symbol character, so the qualified form is a single Symbol token
// containing exactly one '.'.
func splitQualifiedReference(name ir.Symbol) (field, member ir.Symbol, ok bool) {
	s := string(name)
	i := strings.IndexByte(s, '.')
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return ir.Symbol(s[:i]), ir.Symbol(s[i+1:]), true
}

func (v *validator) resolveQualifiedFieldReference(field, member ir.Symbol, ctx []string) (ir.Condition, error) {
	fieldRec, ok := v.pclass.Fields[field]
	if !ok {
		return nil, v.fail(ctx, "qualified reference %s.%s: %q is not a field of %s", field, member, field, v.self)
	}
	ctor, ok := fieldRec.Initial.(*ir.VPclassCtor)
	if !ok {
		return nil, v.fail(ctx, "qualified reference %s.%s: field %q has no pclass-ctor initializer", field, member, field)
	}
	target, ok := v.pclassOf(ctor.Pclass)
	if !ok {
		return nil, v.fail(ctx, "qualified reference %s.%s: pclass %q is not declared", field, member, ctor.Pclass)
	}
	if _, ok := target.Fields[member]; ok {
		return ir.CFieldReferenceField{Pclass: ctor.Pclass, Field: field, Member: member}, nil
	}
	if _, ok := target.Modes[member]; ok {
		return ir.CFieldReferenceMode{Pclass: ctor.Pclass, Field: field, Mode: member}, nil
	}
	return nil, v.fail(ctx, "qualified reference %s.%s: %q is neither a field nor a mode of %s", field, member, member, ctor.Pclass)
}

// qualifyEqualsModes performs the second pass over a resolved :equal's
// operands (spec §4.4.4): when one operand is a field-reference whose
// field has a direct pclass-ctor initializer to pclass P, a sibling
// literal-keyword operand matching one of P's declared modes is rewritten
// to a mode-reference against P.
func (v *validator) qualifyEqualsModes(args []ir.Condition) []ir.Condition {
	target, ok := v.equalsTargetPclass(args)
	if !ok {
		return args
	}

	out := make([]ir.Condition, len(args))
	copy(out, args)
	for i, a := range out {
		lit, ok := a.(ir.CLiteral)
		if !ok || lit.Value.Kind != ir.LitKeyword {
			continue
		}
		mode := ir.Symbol(lit.Value.S)
		if _, isMode := target.pclass.Modes[mode]; isMode {
			out[i] = ir.CModeReference{Pclass: target.name, Mode: mode}
		}
	}
	return out
}

type qualificationTarget struct {
	name   ir.Symbol
	pclass *ir.Pclass
}

func (v *validator) equalsTargetPclass(args []ir.Condition) (qualificationTarget, bool) {
	for _, a := range args {
		var field ir.Symbol
		switch ref := a.(type) {
		case ir.CFieldReference:
			field = ref.Field
		case ir.CFieldReferenceField:
			field = ref.Field
		default:
			continue
		}
		fieldRec, ok := v.pclass.Fields[field]
		if !ok {
			continue
		}
		ctor, ok := fieldRec.Initial.(*ir.VPclassCtor)
		if !ok {
			continue
		}
		target, ok := v.pclassOf(ctor.Pclass)
		if !ok {
			continue
		}
		return qualificationTarget{name: ctor.Pclass, pclass: target}, true
	}
	return qualificationTarget{}, false
}

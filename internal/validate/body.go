package validate

import (
	"fmt"

	"github.com/pamela-lang/pamela/internal/ir"
)

// validateStmt implements body validation and arity checking (spec
// §4.4.5): conditions and sub-bodies recurse through the same validator
// with appropriately extended context; :plant-fn-symbol nodes are resolved
// against the enclosing pclass's scope and rewritten.
func (v *validator) validateStmt(s ir.Stmt, ctx []string) (ir.Stmt, error) {
	switch stmt := s.(type) {
	case ir.SSequence:
		dec, err := v.validateDecorations(stmt.Decorations, ctx)
		if err != nil {
			return nil, err
		}
		return ir.SSequence{Decorations: dec}, nil

	case ir.SParallel:
		dec, err := v.validateDecorations(stmt.Decorations, ctx)
		if err != nil {
			return nil, err
		}
		return ir.SParallel{Decorations: dec}, nil

	case ir.SChoose:
		dec, err := v.validateDecorations(stmt.Decorations, ctx)
		if err != nil {
			return nil, err
		}
		return ir.SChoose{Decorations: dec}, nil

	case ir.SChooseWhenever:
		dec, err := v.validateDecorations(stmt.Decorations, ctx)
		if err != nil {
			return nil, err
		}
		return ir.SChooseWhenever{Decorations: dec}, nil

	case ir.SChoice:
		dec, err := v.validateDecorations(stmt.Decorations, ctx)
		if err != nil {
			return nil, err
		}
		guard := stmt.Guard
		if guard != nil {
			guard, err = v.validateCondition(guard, append(ctx, ":guard"))
			if err != nil {
				return nil, err
			}
		}
		enter, err := v.validateStmtList(stmt.Enter, append(ctx, ":enter"))
		if err != nil {
			return nil, err
		}
		leave, err := v.validateStmtList(stmt.Leave, append(ctx, ":leave"))
		if err != nil {
			return nil, err
		}
		return ir.SChoice{Decorations: dec, Guard: guard, Enter: enter, Leave: leave}, nil

	case ir.SDelay:
		dec, err := v.validateDecorations(stmt.Decorations, ctx)
		if err != nil {
			return nil, err
		}
		return ir.SDelay{Decorations: dec}, nil

	case ir.SAsk:
		dec, err := v.validateConditionalDecorations(stmt.Decorations, ctx)
		if err != nil {
			return nil, err
		}
		return ir.SAsk{Decorations: dec}, nil

	case ir.STell:
		dec, err := v.validateConditionalDecorations(stmt.Decorations, ctx)
		if err != nil {
			return nil, err
		}
		return ir.STell{Decorations: dec}, nil

	case ir.SAssert:
		dec, err := v.validateConditionalDecorations(stmt.Decorations, ctx)
		if err != nil {
			return nil, err
		}
		return ir.SAssert{Decorations: dec}, nil

	case ir.SMaintain:
		dec, err := v.validateConditionalDecorations(stmt.Decorations, ctx)
		if err != nil {
			return nil, err
		}
		return ir.SMaintain{Decorations: dec}, nil

	case ir.SUnless:
		dec, err := v.validateConditionalDecorations(stmt.Decorations, append(ctx, ":unless"))
		if err != nil {
			return nil, err
		}
		return ir.SUnless{Decorations: dec}, nil

	case ir.SWhen:
		dec, err := v.validateConditionalDecorations(stmt.Decorations, append(ctx, ":when"))
		if err != nil {
			return nil, err
		}
		return ir.SWhen{Decorations: dec}, nil

	case ir.SWhenever:
		dec, err := v.validateConditionalDecorations(stmt.Decorations, append(ctx, ":whenever"))
		if err != nil {
			return nil, err
		}
		return ir.SWhenever{Decorations: dec}, nil

	case ir.STry:
		dec, err := v.validateDecorations(stmt.Decorations, ctx)
		if err != nil {
			return nil, err
		}
		catch, err := v.validateStmtList(stmt.Catch, append(ctx, ":catch"))
		if err != nil {
			return nil, err
		}
		return ir.STry{Decorations: dec, Catch: catch}, nil

	case ir.SBetween, ir.SBetweenStarts, ir.SBetweenEnds:
		return stmt, nil

	case ir.SPlantFnSymbol:
		return v.resolvePlantFn(stmt, ctx)

	case ir.SPlantFn, ir.SPlantFnField:
		return stmt, nil

	default:
		return nil, v.fail(ctx, "unrecognized body statement kind %T", s)
	}
}

func (v *validator) validateStmtList(stmts []ir.Stmt, ctx []string) ([]ir.Stmt, error) {
	if stmts == nil {
		return nil, nil
	}
	out := make([]ir.Stmt, len(stmts))
	for i, s := range stmts {
		resolved, err := v.validateStmt(s, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}

func (v *validator) validateDecorations(dec ir.Decorations, ctx []string) (ir.Decorations, error) {
	body, err := v.validateStmtList(dec.Body, ctx)
	if err != nil {
		return dec, err
	}
	dec.Body = body
	return dec, nil
}

func (v *validator) validateConditionalDecorations(dec ir.Decorations, ctx []string) (ir.Decorations, error) {
	if dec.Condition != nil {
		resolved, err := v.validateCondition(dec.Condition, append(ctx, ":condition"))
		if err != nil {
			return dec, err
		}
		dec.Condition = resolved
	}
	return v.validateDecorations(dec, ctx)
}

// resolvePlantFn implements the plant-fn resolution cases of spec §4.4.5.
func (v *validator) resolvePlantFn(pf ir.SPlantFnSymbol, ctx []string) (ir.Stmt, error) {
	name := pf.Name

	if name == ir.This {
		if err := v.resolveArity(v.pclass, pf.Method, len(pf.CallArgs), ctx); err != nil {
			return nil, err
		}
		return ir.SPlantFn{Decorations: pf.Decorations, Name: name, Method: pf.Method, CallArgs: pf.CallArgs}, nil
	}

	if v.hasMethodArg(name) || v.hasArg(name) {
		// Arity unchecked at this stage; deferred to root-task resolution
		// (out of scope, spec §4.4.5).
		return ir.SPlantFn{Decorations: pf.Decorations, Name: name, Method: pf.Method, CallArgs: pf.CallArgs}, nil
	}

	if v.hasField(name) {
		field := v.pclass.Fields[name]
		ctor, isCtor := field.Initial.(*ir.VPclassCtor)
		if !isCtor {
			// Field initializer is not a direct constructor (e.g. an
			// arg-reference): accept, defer arity check.
			return ir.SPlantFnField{Decorations: pf.Decorations, Field: name, Method: pf.Method, CallArgs: pf.CallArgs}, nil
		}
		target, ok := v.pclassOf(ctor.Pclass)
		if !ok {
			return nil, v.fail(ctx, "plant field %q constructs undeclared pclass %q", name, ctor.Pclass)
		}
		if err := v.resolveArityIn(target, pf.Method, len(pf.CallArgs), ctx); err != nil {
			return nil, err
		}
		return ir.SPlantFnField{Decorations: pf.Decorations, Field: name, Method: pf.Method, CallArgs: pf.CallArgs}, nil
	}

	return nil, v.fail(ctx, "plant name %q used in method is not defined in the pclass %s", name, v.self)
}

func (v *validator) resolveArity(pclass *ir.Pclass, method ir.Symbol, argc int, ctx []string) error {
	return v.resolveArityIn(pclass, method, argc, ctx)
}

// resolveArityIn implements spec §4.4.5's arity resolution: collect
// overloads of method in the target pclass, keep those matching argc;
// exactly one match succeeds, zero matches fails with the arities the
// method does accept, and more than one match (an ambiguous arity) fails
// listing the available arities.
func (v *validator) resolveArityIn(target *ir.Pclass, method ir.Symbol, argc int, ctx []string) error {
	overloads, ok := target.Methods[method]
	if !ok || len(overloads) == 0 {
		return v.fail(ctx, "method %q not defined", method)
	}

	var matches int
	arities := make([]int, 0, len(overloads))
	for _, o := range overloads {
		arities = append(arities, len(o.Args))
		if len(o.Args) == argc {
			matches++
		}
	}

	switch matches {
	case 1:
		return nil
	case 0:
		return v.fail(ctx, "method %q has %d args, but expects %s arg(s)", method, argc, formatArities(arities))
	default:
		return v.fail(ctx, "method %q call with %d args is ambiguous across overloads %s", method, argc, formatArities(arities))
	}
}

func formatArities(arities []int) string {
	s := ""
	for i, a := range arities {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(a)
	}
	return s
}

package validate

import (
	"fmt"
	"sort"

	"github.com/pamela-lang/pamela/internal/ir"
)

// validateMethods implements spec §4.4.3: for each overload, indexed by
// position, pre-condition, post-condition, and body are validated in
// order, with context [:method name index :pre|:post|:body].
func (v *validator) validateMethods() error {
	for _, name := range sortedMethodNames(v.pclass.Methods) {
		overloads := v.pclass.Methods[name]
		for idx, def := range overloads {
			v.methodArgs = withMethodArgs(def.Args)

			preCtx := []string{":method", string(name), fmt.Sprint(idx), ":pre"}
			resolvedPre, err := v.validateCondition(def.Pre, preCtx)
			if err != nil {
				return err
			}
			def.Pre = resolvedPre

			postCtx := []string{":method", string(name), fmt.Sprint(idx), ":post"}
			resolvedPost, err := v.validateCondition(def.Post, postCtx)
			if err != nil {
				return err
			}
			def.Post = resolvedPost

			bodyCtx := []string{":method", string(name), fmt.Sprint(idx), ":body"}
			for i, stmt := range def.Body {
				resolved, err := v.validateStmt(stmt, bodyCtx)
				if err != nil {
					return err
				}
				def.Body[i] = resolved
			}

			if err := v.validateBetweens(def, name); err != nil {
				return err
			}
		}
		v.methodArgs = nil
	}
	return nil
}

// validateBetweens lightly checks each between-statement's endpoints name
// methods of the enclosing pclass; arity is not checked (spec §4.4.5 notes
// root-task resolution, which covers cross-method temporal references, is
// out of scope).
func (v *validator) validateBetweens(def *ir.MethodDef, owner ir.Symbol) error {
	ctx := []string{":method", string(owner), ":between"}
	for _, b := range def.Betweens {
		var from, to ir.Symbol
		switch bt := b.(type) {
		case ir.SBetween:
			from, to = bt.From, bt.To
		case ir.SBetweenStarts:
			from, to = bt.From, bt.To
		case ir.SBetweenEnds:
			from, to = bt.From, bt.To
		default:
			continue
		}
		if _, ok := v.pclass.Methods[from]; !ok {
			return v.fail(ctx, "between references undefined method %q", from)
		}
		if _, ok := v.pclass.Methods[to]; !ok {
			return v.fail(ctx, "between references undefined method %q", to)
		}
	}
	return nil
}

func sortedMethodNames(methods map[ir.Symbol][]*ir.MethodDef) []ir.Symbol {
	names := make([]ir.Symbol, 0, len(methods))
	for n := range methods {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

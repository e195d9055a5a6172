// Package validate implements the semantic validator (spec §4.4): per
// pclass, in source order, four gated stages (fields, modes & transitions,
// methods, and — as an enrichment beyond the distilled contract — an
// inheritance cycle check) that disambiguate bare identifiers against
// lexical scope, check plant-fn call arity, and hoist newly discovered
// state variables. Validation is deterministic and stops at the first
// error encountered in pclass declaration order (spec §4.4).
package validate

import (
	"fmt"

	"github.com/pamela-lang/pamela/internal/build"
	"github.com/pamela-lang/pamela/internal/ir"
)

// Error is the first-error record the validator returns on failure (spec
// §4.4: "Output is either the validated IR ... or {error: message} on the
// first failure").
type Error struct {
	Pclass  ir.Symbol
	Context []string
	Message string
}

func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("%s: %s", e.Pclass, e.Message)
	}
	ctx := e.Context[0]
	for _, c := range e.Context[1:] {
		ctx += " " + c
	}
	return fmt.Sprintf("%s [%s]: %s", e.Pclass, ctx, e.Message)
}

// stateVars is the side table state-variable discovery accumulates into
// (spec §4.4.6): monotonic insert-if-absent, merged into the IR after every
// pclass validates successfully.
type stateVars struct {
	seen  map[ir.Symbol]struct{}
	order []ir.Symbol
}

func newStateVars() *stateVars { return &stateVars{seen: make(map[ir.Symbol]struct{})} }

func (s *stateVars) intern(name ir.Symbol) {
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.order = append(s.order, name)
}

// Validate runs the semantic validator over a freshly built IR (spec
// §4.4). It processes pclasses in declaration order and returns a *Error on
// the first failure.
func Validate(result *build.Result) (ir.IR, error) {
	tree := result.IR
	sv := newStateVars()

	if err := checkInheritanceCycles(tree, result.Order); err != nil {
		return nil, err
	}

	for _, name := range result.Order {
		pclass, ok := tree[name].(*ir.Pclass)
		if !ok {
			continue
		}
		v := &validator{tree: tree, self: name, pclass: pclass, stateVars: sv}
		if err := v.validatePclass(); err != nil {
			return nil, err
		}
	}

	for _, name := range sv.order {
		if _, exists := tree[name]; !exists {
			tree[name] = ir.StateVariableEntry{}
		}
	}
	return tree, nil
}

// validator holds the state threaded through one pclass's validation pass.
type validator struct {
	tree      ir.IR
	self      ir.Symbol
	pclass    *ir.Pclass
	stateVars *stateVars

	// methodArgs is non-nil while validating a method body/condition,
	// giving condition disambiguation access to the method's formal args
	// (spec §4.4.3 "this context lets condition validation consult the
	// current method's formal args").
	methodArgs map[ir.Symbol]struct{}
}

func (v *validator) fail(context []string, format string, args ...any) error {
	return &Error{Pclass: v.self, Context: context, Message: fmt.Sprintf(format, args...)}
}

func (v *validator) validatePclass() error {
	if err := v.validateDepends(); err != nil {
		return err
	}
	if err := v.validateFields(); err != nil {
		return err
	}
	if err := v.validateModes(); err != nil {
		return err
	}
	if err := v.validateTransitions(); err != nil {
		return err
	}
	if err := v.validateMethods(); err != nil {
		return err
	}
	return nil
}

package validate

import (
	"sort"

	"github.com/pamela-lang/pamela/internal/ir"
)

// validateModes implements spec §4.4.2's mode half: each mode's condition
// is validated in the same way any other condition would be (modes are
// always the literal-true condition by construction, so this mainly
// confirms the invariant that every mode-enum entry maps to literal-true,
// and gives mode conditions the same disambiguation pass other conditions
// get for forward compatibility with hand-built IR).
func (v *validator) validateModes() error {
	for _, mode := range v.pclass.ModeOrder {
		cond := v.pclass.Modes[mode]
		ctx := []string{":mode", string(mode)}
		resolved, err := v.validateCondition(cond, ctx)
		if err != nil {
			return err
		}
		v.pclass.Modes[mode] = resolved
	}
	return nil
}

// validateTransitions implements spec §4.4.2's transition half: splits
// each "from:to" key (already split at build time into Transition.From/To),
// enforces that from/to name declared modes or the wildcard,
// and validates pre/post in context [:transition "from:to" :pre|:post].
func (v *validator) validateTransitions() error {
	for _, key := range sortedTransitionKeys(v.pclass.Transitions) {
		t := v.pclass.Transitions[key]

		if t.From != ir.Wildcard && !v.hasMode(t.From) {
			return v.fail([]string{":transition", key}, "transition source %q is not a declared mode of %s", t.From, v.self)
		}
		if t.To != ir.Wildcard && !v.hasMode(t.To) {
			return v.fail([]string{":transition", key}, "transition target %q is not a declared mode of %s", t.To, v.self)
		}

		if t.Pre != nil {
			resolved, err := v.validateCondition(t.Pre, []string{":transition", key, ":pre"})
			if err != nil {
				return err
			}
			t.Pre = resolved
		}
		if t.Post != nil {
			resolved, err := v.validateCondition(t.Post, []string{":transition", key, ":post"})
			if err != nil {
				return err
			}
			t.Post = resolved
		}
	}
	return nil
}

func sortedTransitionKeys(transitions map[string]*ir.Transition) []string {
	keys := make([]string, 0, len(transitions))
	for k := range transitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

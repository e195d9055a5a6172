package build

import (
	"fmt"

	"github.com/pamela-lang/pamela/internal/ir"
	"github.com/pamela-lang/pamela/internal/read"
)

// buildStmt builds one method-body node (spec §3.5, §4.3 "fn combinators").
// Every combinator list may open with an option map consumed into
// Decorations before its condition/body arguments; unrecognized leading
// symbols are treated as plant-fn calls (spec §4.3, final paragraph).
func buildStmt(d *read.Datum, lvars *ir.LvarTable) (ir.Stmt, error) {
	head, rest, ok := d.Head()
	if !ok {
		return nil, fmt.Errorf("build: expected a body form, got an atom or non-list")
	}

	var dec ir.Decorations
	var choiceEntries []*read.MapEntry
	if len(rest) > 0 {
		if entries, isMap := rest[0].IsMap(); isMap {
			if head == "choice" {
				choiceEntries = entries
			} else if err := applyDecorations(&dec, entries); err != nil {
				return nil, fmt.Errorf("build: %s: %w", head, err)
			}
			rest = rest[1:]
		}
	}

	switch head {
	case "sequence":
		body, err := buildBodyList(rest, lvars)
		if err != nil {
			return nil, err
		}
		dec.Body = body
		return ir.SSequence{Decorations: dec}, nil

	case "parallel":
		body, err := buildBodyList(rest, lvars)
		if err != nil {
			return nil, err
		}
		dec.Body = body
		return ir.SParallel{Decorations: dec}, nil

	case "slack-sequence":
		body, err := buildBodyList(rest, lvars)
		if err != nil {
			return nil, err
		}
		dec.Body = rewriteSlackSequence(body)
		return ir.SSequence{Decorations: dec}, nil

	case "slack-parallel":
		body, err := buildBodyList(rest, lvars)
		if err != nil {
			return nil, err
		}
		members := make([]ir.Stmt, 0, len(body))
		for _, stmt := range body {
			members = append(members, ir.SSequence{Decorations: ir.Decorations{Body: rewriteSlackSequence([]ir.Stmt{stmt})}})
		}
		dec.Body = members
		return ir.SParallel{Decorations: dec}, nil

	case "optional":
		body, err := buildBodyList(rest, lvars)
		if err != nil {
			return nil, err
		}
		dec.Body = rewriteOptional(body)
		return ir.SChoose{Decorations: dec}, nil

	case "soft-sequence":
		body, err := buildBodyList(rest, lvars)
		if err != nil {
			return nil, err
		}
		seqBody := make([]ir.Stmt, 0, len(body))
		for _, stmt := range body {
			seqBody = append(seqBody, ir.SChoose{Decorations: ir.Decorations{Body: rewriteOptional([]ir.Stmt{stmt})}})
		}
		dec.Body = seqBody
		return ir.SSequence{Decorations: dec}, nil

	case "soft-parallel":
		body, err := buildBodyList(rest, lvars)
		if err != nil {
			return nil, err
		}
		parBody := make([]ir.Stmt, 0, len(body))
		for _, stmt := range body {
			parBody = append(parBody, ir.SChoose{Decorations: ir.Decorations{Body: rewriteOptional([]ir.Stmt{stmt})}})
		}
		dec.Body = parBody
		return ir.SParallel{Decorations: dec}, nil

	case "dotimes":
		return buildDotimes(rest, dec, lvars)

	case "delay":
		return ir.SDelay{Decorations: dec}, nil

	case "ask", "tell", "assert", "maintain", "unless", "when", "whenever":
		if len(rest) < 1 {
			return nil, fmt.Errorf("build: %s requires a condition", head)
		}
		dec.Condition = buildCondition(rest[0])
		body, err := buildBodyList(rest[1:], lvars)
		if err != nil {
			return nil, err
		}
		dec.Body = body
		return dispatchConditional(head, dec), nil

	case "choose":
		body, err := buildBodyList(rest, lvars)
		if err != nil {
			return nil, err
		}
		dec.Body = body
		return ir.SChoose{Decorations: dec}, nil

	case "choose-whenever":
		body, err := buildBodyList(rest, lvars)
		if err != nil {
			return nil, err
		}
		dec.Body = body
		return ir.SChooseWhenever{Decorations: dec}, nil

	case "choice":
		return buildChoice(rest, dec, choiceEntries, lvars)

	case "try":
		return buildTry(rest, dec, lvars)

	case "between", "between-starts", "between-ends":
		return nil, fmt.Errorf("build: %s is a method-level declaration, not a body statement", head)

	default:
		return buildPlantFnCall(head, rest, dec, lvars)
	}
}

func dispatchConditional(head string, dec ir.Decorations) ir.Stmt {
	switch head {
	case "ask":
		return ir.SAsk{Decorations: dec}
	case "tell":
		return ir.STell{Decorations: dec}
	case "assert":
		return ir.SAssert{Decorations: dec}
	case "maintain":
		return ir.SMaintain{Decorations: dec}
	case "unless":
		return ir.SUnless{Decorations: dec}
	case "when":
		return ir.SWhen{Decorations: dec}
	default: // whenever
		return ir.SWhenever{Decorations: dec}
	}
}

func buildBodyList(items []*read.Datum, lvars *ir.LvarTable) ([]ir.Stmt, error) {
	out := make([]ir.Stmt, 0, len(items))
	for _, item := range items {
		stmt, err := buildStmt(item, lvars)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

// rewriteSlackSequence interposes a default-delay (bounds [0, infinity))
// before, between, and after every element of body (spec §4.3
// "slack-sequence(body) -> sequence([default-delay, body[0], default-delay,
// ...])").
func rewriteSlackSequence(body []ir.Stmt) []ir.Stmt {
	out := make([]ir.Stmt, 0, 2*len(body)+1)
	defaultDelay := func() ir.Stmt {
		return ir.SDelay{Decorations: ir.Decorations{TemporalConstraints: []ir.Bounds{ir.DefaultBounds}}}
	}
	out = append(out, defaultDelay())
	for _, stmt := range body {
		out = append(out, stmt, defaultDelay())
	}
	return out
}

// rewriteOptional builds optional(body) -> choose([choice([zero-delay]),
// choice(body)]) (spec §4.3).
func rewriteOptional(body []ir.Stmt) []ir.Stmt {
	zeroDelay := ir.SDelay{Decorations: ir.Decorations{TemporalConstraints: []ir.Bounds{ir.ZeroBounds}}}
	return []ir.Stmt{
		ir.SChoice{Decorations: ir.Decorations{Body: []ir.Stmt{zeroDelay}}},
		ir.SChoice{Decorations: ir.Decorations{Body: body}},
	}
}

// buildDotimes builds (dotimes n f) -> sequence([f repeated n times]) (spec
// §4.3). n must be a literal integer; the port does not support a
// dynamically-bound repeat count.
func buildDotimes(rest []*read.Datum, dec ir.Decorations, lvars *ir.LvarTable) (ir.Stmt, error) {
	if len(rest) != 2 {
		return nil, fmt.Errorf("build: dotimes requires exactly (dotimes n f)")
	}
	n, ok := intOf(rest[0])
	if !ok || n < 0 {
		return nil, fmt.Errorf("build: dotimes count must be a non-negative integer literal")
	}
	body := make([]ir.Stmt, 0, n)
	for i := int64(0); i < n; i++ {
		stmt, err := buildStmt(rest[1], lvars)
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	dec.Body = body
	return ir.SSequence{Decorations: dec}, nil
}

// buildChoice builds (choice {:guard c :enter [...] :leave [...]}? body...)
// (spec §3.5, §4.3).
func buildChoice(rest []*read.Datum, dec ir.Decorations, entries []*read.MapEntry, lvars *ir.LvarTable) (ir.Stmt, error) {
	choice := ir.SChoice{Decorations: dec}
	for _, e := range entries {
		kw, isKw := e.Key.IsKeyword()
		if !isKw {
			continue
		}
		switch kw {
		case "guard":
			choice.Guard = buildCondition(e.Value)
		case "enter":
			items, isVec := e.Value.IsVector()
			if !isVec {
				return nil, fmt.Errorf("build: choice :enter must be a vector of body forms")
			}
			enter, err := buildBodyList(items, lvars)
			if err != nil {
				return nil, err
			}
			choice.Enter = enter
		case "leave":
			items, isVec := e.Value.IsVector()
			if !isVec {
				return nil, fmt.Errorf("build: choice :leave must be a vector of body forms")
			}
			leave, err := buildBodyList(items, lvars)
			if err != nil {
				return nil, err
			}
			choice.Leave = leave
		}
	}
	body, err := buildBodyList(rest, lvars)
	if err != nil {
		return nil, err
	}
	choice.Body = body
	return choice, nil
}

// buildTry builds (try body... [:CATCH] catch-body...) (spec §4.3
// "try/catch": a child equal to [:CATCH] switches accumulation from body to
// catch-body).
func buildTry(rest []*read.Datum, dec ir.Decorations, lvars *ir.LvarTable) (ir.Stmt, error) {
	var body, catch []ir.Stmt
	inCatch := false
	for _, item := range rest {
		if isCatchMarker(item) {
			inCatch = true
			continue
		}
		stmt, err := buildStmt(item, lvars)
		if err != nil {
			return nil, err
		}
		if inCatch {
			catch = append(catch, stmt)
		} else {
			body = append(body, stmt)
		}
	}
	dec.Body = body
	return ir.STry{Decorations: dec, Catch: catch}, nil
}

func isCatchMarker(d *read.Datum) bool {
	items, isVec := d.IsVector()
	if !isVec || len(items) != 1 {
		return false
	}
	kw, isKw := items[0].IsKeyword()
	return isKw && kw == "CATCH"
}

// buildPlantFnCall builds a plant-function call as a pre-validation
// SPlantFnSymbol node (spec §4.3, final paragraph; §4.4.5): (name method
// arg...). The validator later resolves name against the enclosing
// pclass's scope and rewrites this node.
func buildPlantFnCall(name string, rest []*read.Datum, dec ir.Decorations, lvars *ir.LvarTable) (ir.Stmt, error) {
	if len(rest) < 1 {
		return nil, fmt.Errorf("build: plant-fn call %q requires a method name", name)
	}
	method, isSym := rest[0].IsSymbol()
	if !isSym {
		return nil, fmt.Errorf("build: plant-fn call %q: method must be a symbol", name)
	}
	args := make([]ir.ValueExpr, 0, len(rest)-1)
	for _, arg := range rest[1:] {
		args = append(args, buildFieldTypeValue(arg, lvars))
	}
	return ir.SPlantFnSymbol{
		Decorations: dec,
		Name:        ir.Symbol(name),
		Method:      ir.Symbol(method),
		CallArgs:    args,
	}, nil
}

// applyDecorations reads the shared option-map keys onto dec (spec §3.5):
// :label, :cost<=, :reward>=, :probability, :controllable,
// :temporal-constraints, :min, :max, :exactly.
func applyDecorations(dec *ir.Decorations, entries []*read.MapEntry) error {
	for _, e := range entries {
		kw, isKw := e.Key.IsKeyword()
		if !isKw {
			return fmt.Errorf("decoration keys must be keywords")
		}
		switch kw {
		case "label":
			if e.Value.Str != nil {
				dec.Label, dec.HasLabel = *e.Value.Str, true
			}
		case "cost<=":
			if v, ok := floatOf(e.Value); ok {
				dec.CostLE, dec.HasCostLE = v, true
			}
		case "reward>=":
			if v, ok := floatOf(e.Value); ok {
				dec.RewardGE, dec.HasRewardGE = v, true
			}
		case "probability":
			if v, ok := floatOf(e.Value); ok {
				dec.Probability, dec.HasProbability = v, true
			}
		case "controllable":
			if lit, ok := literalOf(e.Value); ok && lit.Kind == ir.LitBool {
				dec.Controllable, dec.HasControllable = lit.B, true
			}
		case "temporal-constraints":
			bounds, err := buildBoundsVector(e.Value)
			if err != nil {
				return fmt.Errorf(":temporal-constraints: %w", err)
			}
			dec.TemporalConstraints = bounds
		case "min":
			if n, ok := intOf(e.Value); ok {
				dec.Min, dec.HasMin = int(n), true
			}
		case "max":
			if n, ok := intOf(e.Value); ok {
				dec.Max, dec.HasMax = int(n), true
			}
		case "exactly":
			if n, ok := intOf(e.Value); ok {
				dec.Exactly, dec.HasExactly = int(n), true
			}
		}
	}
	return nil
}

func floatOf(d *read.Datum) (float64, bool) {
	if d.Float != nil {
		return *d.Float, true
	}
	if d.Int != nil {
		return float64(*d.Int), true
	}
	return 0, false
}

package ir

import "encoding/json"

// This file implements json.Marshaler for every sealed-interface variant so
// that the wire/canonical representation matches the tagged-map shape
// described in spec §3.4/§3.5/§3.2 exactly: {"kind": "...", ...}. Decoding
// back from JSON is not supported (and not needed) — canonical JSON here
// exists purely for golden snapshots and content hashing (§8, SPEC_FULL §6).

func (v LiteralValue) MarshalJSON() ([]byte, error) {
	m := map[string]any{"kind": "literal"}
	switch v.Kind {
	case LitInt:
		m["value"] = v.I
	case LitFloat:
		m["value"] = v.F
	case LitBool:
		m["value"] = v.B
	case LitString:
		m["value"] = normalizeString(v.S)
	case LitKeyword:
		m["value"] = ":" + normalizeString(v.S)
	}
	return json.Marshal(m)
}

func (b Bounds) MarshalJSON() ([]byte, error) {
	upper := any(b.Upper)
	if b.UpperInfinite {
		upper = "infinity"
	}
	return json.Marshal(map[string]any{
		"kind":  "bounds",
		"value": []any{b.Lower, upper},
	})
}

// --- Condition ---

func (c CLiteral) MarshalJSON() ([]byte, error) { return json.Marshal(c.Value) }

func (c CAnd) MarshalJSON() ([]byte, error)     { return marshalConnective("and", c.Args) }
func (c COr) MarshalJSON() ([]byte, error)      { return marshalConnective("or", c.Args) }
func (c CNot) MarshalJSON() ([]byte, error)     { return marshalConnective("not", c.Args) }
func (c CImplies) MarshalJSON() ([]byte, error) { return marshalConnective("implies", c.Args) }
func (c CEqual) MarshalJSON() ([]byte, error)   { return marshalConnective("equal", c.Args) }

func marshalConnective(kind string, args []Condition) ([]byte, error) {
	return json.Marshal(map[string]any{"kind": kind, "args": args})
}

func (c CUnresolved) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"kind": "unresolved", "keyword": c.Keyword, "name": c.Name})
}

func (c CFieldReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"kind": "field-reference", "pclass": c.Pclass, "field": c.Field})
}

func (c CFieldReferenceField) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"kind": "field-reference-field", "pclass": c.Pclass, "field": c.Field, "member": c.Member,
	})
}

func (c CFieldReferenceMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"kind": "field-reference-mode", "pclass": c.Pclass, "field": c.Field, "mode": c.Mode,
	})
}

func (c CModeReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"kind": "mode-reference", "pclass": c.Pclass, "mode": c.Mode})
}

func (c CArgReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"kind": "arg-reference", "arg": c.Arg})
}

func (c CMethodArgReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"kind": "method-arg-reference", "arg": c.Arg})
}

func (c CStateVariable) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"kind": "state-variable", "name": c.Name})
}

// --- ValueExpr ---

func (v VLiteral) MarshalJSON() ([]byte, error) { return json.Marshal(v.Value) }

func (v VLvarRef) MarshalJSON() ([]byte, error) {
	m := map[string]any{"kind": "lvar", "name": v.Name}
	if !v.Default.Unset {
		m["default"] = v.Default.Value
	}
	return json.Marshal(m)
}

func (v *VPclassCtor) MarshalJSON() ([]byte, error) {
	m := map[string]any{"kind": "pclass-ctor", "pclass": v.Pclass, "args": v.Args}
	if v.ID != nil {
		m["id"] = *v.ID
	}
	if v.Interface != nil {
		m["interface"] = *v.Interface
	}
	if v.PlantPart != nil {
		m["plant-part"] = *v.PlantPart
	}
	if v.Initial != nil {
		m["initial"] = *v.Initial
	}
	return json.Marshal(m)
}

func (a CtorArg) MarshalJSON() ([]byte, error) {
	if a.Keyword {
		return json.Marshal(":" + string(a.Name))
	}
	return json.Marshal(a.Name)
}

func (v VModeRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"kind": "mode-expr", "mode": v.Mode})
}

func (v VSymbolRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"kind": "symbol-reference", "name": v.Name})
}

// --- Stmt ---

func (d Decorations) marshalMap(kind string) map[string]any {
	m := map[string]any{"kind": kind}
	if d.Body != nil {
		m["body"] = d.Body
	}
	if len(d.TemporalConstraints) > 0 {
		m["temporal-constraints"] = d.TemporalConstraints
	}
	if d.HasLabel {
		m["label"] = d.Label
	}
	if d.HasCostLE {
		m["cost<="] = d.CostLE
	}
	if d.HasRewardGE {
		m["reward>="] = d.RewardGE
	}
	if d.HasProbability {
		m["probability"] = d.Probability
	}
	if d.HasControllable {
		m["controllable"] = d.Controllable
	}
	if d.Condition != nil {
		m["condition"] = d.Condition
	}
	if d.HasMin {
		m["min"] = d.Min
	}
	if d.HasMax {
		m["max"] = d.Max
	}
	if d.HasExactly {
		m["exactly"] = d.Exactly
	}
	return m
}

func (s SSequence) MarshalJSON() ([]byte, error)       { return json.Marshal(s.marshalMap("sequence")) }
func (s SParallel) MarshalJSON() ([]byte, error)       { return json.Marshal(s.marshalMap("parallel")) }
func (s SChoose) MarshalJSON() ([]byte, error)         { return json.Marshal(s.marshalMap("choose")) }
func (s SChooseWhenever) MarshalJSON() ([]byte, error) { return json.Marshal(s.marshalMap("choose-whenever")) }
func (s SDelay) MarshalJSON() ([]byte, error)          { return json.Marshal(s.marshalMap("delay")) }
func (s SAsk) MarshalJSON() ([]byte, error)            { return json.Marshal(s.marshalMap("ask")) }
func (s STell) MarshalJSON() ([]byte, error)           { return json.Marshal(s.marshalMap("tell")) }
func (s SAssert) MarshalJSON() ([]byte, error)         { return json.Marshal(s.marshalMap("assert")) }
func (s SMaintain) MarshalJSON() ([]byte, error)       { return json.Marshal(s.marshalMap("maintain")) }
func (s SUnless) MarshalJSON() ([]byte, error)         { return json.Marshal(s.marshalMap("unless")) }
func (s SWhen) MarshalJSON() ([]byte, error)           { return json.Marshal(s.marshalMap("when")) }
func (s SWhenever) MarshalJSON() ([]byte, error)       { return json.Marshal(s.marshalMap("whenever")) }

func (s SChoice) MarshalJSON() ([]byte, error) {
	m := s.marshalMap("choice")
	if s.Guard != nil {
		m["guard"] = s.Guard
	}
	if s.Enter != nil {
		m["enter"] = s.Enter
	}
	if s.Leave != nil {
		m["leave"] = s.Leave
	}
	return json.Marshal(m)
}

func (s STry) MarshalJSON() ([]byte, error) {
	m := s.marshalMap("try")
	if s.Catch != nil {
		m["catch"] = s.Catch
	}
	return json.Marshal(m)
}

func (s SBetween) MarshalJSON() ([]byte, error) {
	m := s.marshalMap("between")
	m["from"], m["to"] = s.From, s.To
	return json.Marshal(m)
}

func (s SBetweenStarts) MarshalJSON() ([]byte, error) {
	m := s.marshalMap("between-starts")
	m["from"], m["to"] = s.From, s.To
	return json.Marshal(m)
}

func (s SBetweenEnds) MarshalJSON() ([]byte, error) {
	m := s.marshalMap("between-ends")
	m["from"], m["to"] = s.From, s.To
	return json.Marshal(m)
}

func (s SPlantFnSymbol) MarshalJSON() ([]byte, error) {
	m := s.marshalMap("plant-fn-symbol")
	m["name"], m["method"], m["args"] = s.Name, s.Method, s.CallArgs
	return json.Marshal(m)
}

func (s SPlantFn) MarshalJSON() ([]byte, error) {
	m := s.marshalMap("plant-fn")
	m["name"], m["method"], m["args"] = s.Name, s.Method, s.CallArgs
	return json.Marshal(m)
}

func (s SPlantFnField) MarshalJSON() ([]byte, error) {
	m := s.marshalMap("plant-fn-field")
	m["field"], m["method"], m["args"] = s.Field, s.Method, s.CallArgs
	return json.Marshal(m)
}

// --- top-level entries ---

func (p *Pclass) MarshalJSON() ([]byte, error) {
	m := map[string]any{"kind": "pclass"}
	if len(p.Args) > 0 {
		m["args"] = p.Args
	}
	m["meta"] = p.Meta
	if len(p.Inherit) > 0 {
		m["inherit"] = p.Inherit
	}
	if len(p.Fields) > 0 {
		m["fields"] = p.Fields
	}
	if len(p.Modes) > 0 {
		m["modes"] = p.Modes
	}
	if len(p.Transitions) > 0 {
		m["transitions"] = p.Transitions
	}
	if len(p.Methods) > 0 {
		m["methods"] = p.Methods
	}
	return json.Marshal(m)
}

func (m Meta) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	if m.HasVersion {
		out["version"] = m.Version
	}
	if m.HasDoc {
		out["doc"] = m.Doc
	}
	if len(m.Depends) > 0 {
		out["depends"] = m.Depends
	}
	if m.HasIcon {
		out["icon"] = m.Icon
	}
	return json.Marshal(out)
}

func (d Dependency) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{d.Name, d.Version})
}

func (f *Field) MarshalJSON() ([]byte, error) {
	access := "private"
	if f.Access == AccessPublic {
		access = "public"
	}
	m := map[string]any{"access": access, "observable": f.Observable}
	if f.Initial != nil {
		m["initial"] = f.Initial
	}
	return json.Marshal(m)
}

func (t *Transition) MarshalJSON() ([]byte, error) {
	m := map[string]any{"from": t.From, "to": t.To}
	if t.Pre != nil {
		m["pre"] = t.Pre
	}
	if t.Post != nil {
		m["post"] = t.Post
	}
	if t.Probability != nil {
		m["probability"] = *t.Probability
	}
	return json.Marshal(m)
}

func (md *MethodDef) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"args":         md.Args,
		"cost":         md.Cost,
		"reward":       md.Reward,
		"controllable": md.Controllable,
		"primitive":    md.Primitive,
	}
	if md.Pre != nil {
		m["pre"] = md.Pre
	}
	if md.Post != nil {
		m["post"] = md.Post
	}
	if len(md.TemporalConstraints) > 0 {
		m["temporal-constraints"] = md.TemporalConstraints
	}
	if md.HasDisplayName {
		m["display-name"] = md.DisplayName
	}
	if md.Body != nil {
		m["body"] = md.Body
	}
	if len(md.Betweens) > 0 {
		m["betweens"] = md.Betweens
	}
	return json.Marshal(m)
}

func (e *LvarsEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"kind": "lvars", "lvars": e.Lvars})
}

func (d LvarDefault) MarshalJSON() ([]byte, error) {
	if d.Unset {
		return json.Marshal(":unset")
	}
	return json.Marshal(d.Value)
}

func (StateVariableEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"kind": "state-variable"})
}

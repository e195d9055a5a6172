package build

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pamela-lang/pamela/internal/ir"
	"github.com/pamela-lang/pamela/internal/read"
)

// buildDefpclass builds (defpclass name [args...] decl*) (spec §4.3
// "defpclass"). decl is one of: (:meta {...}), (:inherit [parents...]),
// (:field name type-or-opts...), (:modes [mode...]), (:transitions
// ("from:to" opts...)+), or (defpmethod ...).
func buildDefpclass(items []*read.Datum, lvars *ir.LvarTable) (ir.Symbol, *ir.Pclass, error) {
	if len(items) < 2 {
		return "", nil, fmt.Errorf("build: defpclass requires a name and an args vector")
	}
	name, isSym := items[0].IsSymbol()
	if !isSym {
		return "", nil, fmt.Errorf("build: defpclass name must be a symbol")
	}
	argItems, isVec := items[1].IsVector()
	if !isVec {
		return "", nil, fmt.Errorf("build: defpclass expects a vector of args")
	}
	args, err := symbolVector(argItems)
	if err != nil {
		return "", nil, fmt.Errorf("build: defpclass %q: all defpclass args must be symbols", name)
	}

	pclass := &ir.Pclass{
		Args:        args,
		Fields:      make(map[ir.Symbol]*ir.Field),
		Modes:       make(map[ir.Symbol]ir.Condition),
		Transitions: make(map[string]*ir.Transition),
		Methods:     make(map[ir.Symbol][]*ir.MethodDef),
	}

	for _, decl := range items[2:] {
		if entries, isMap := decl.IsMap(); isMap {
			for _, e := range entries {
				kw, isKw := e.Key.IsKeyword()
				if !isKw {
					return "", nil, fmt.Errorf("build: defpclass %q: map-decl keys must be keywords", name)
				}
				if err := applyPclassOption(pclass, kw, []*read.Datum{e.Value}, lvars); err != nil {
					return "", nil, fmt.Errorf("build: defpclass %q: %w", name, err)
				}
			}
			continue
		}
		declItems, isList := decl.IsList()
		if !isList || len(declItems) == 0 {
			return "", nil, fmt.Errorf("build: defpclass %q: malformed declaration", name)
		}
		head := declItems[0]
		if kw, isKw := head.IsKeyword(); isKw {
			if err := applyPclassOption(pclass, kw, declItems[1:], lvars); err != nil {
				return "", nil, fmt.Errorf("build: defpclass %q: %w", name, err)
			}
			continue
		}
		sym, isSym := head.IsSymbol()
		if !isSym {
			return "", nil, fmt.Errorf("build: defpclass %q: declaration must start with a keyword or symbol", name)
		}
		switch sym {
		case "defpmethod":
			mname, def, err := buildDefpmethod(declItems[1:], lvars)
			if err != nil {
				return "", nil, fmt.Errorf("build: defpclass %q: %w", name, err)
			}
			pclass.Methods[mname] = append(pclass.Methods[mname], def)
		default:
			return "", nil, fmt.Errorf("build: defpclass %q: unrecognized declaration %q", name, sym)
		}
	}

	return ir.Symbol(name), pclass, nil
}

func applyPclassOption(pclass *ir.Pclass, kw string, rest []*read.Datum, lvars *ir.LvarTable) error {
	switch kw {
	case "meta":
		if len(rest) != 1 {
			return fmt.Errorf(":meta takes exactly one map")
		}
		meta, err := buildMeta(rest[0])
		if err != nil {
			return fmt.Errorf(":meta: %w", err)
		}
		pclass.Meta = meta
	case "inherit":
		if len(rest) != 1 {
			return fmt.Errorf(":inherit takes exactly one vector")
		}
		items, isVec := rest[0].IsVector()
		if !isVec {
			return fmt.Errorf(":inherit must be a vector of pclass symbols")
		}
		parents, err := symbolVector(items)
		if err != nil {
			return fmt.Errorf(":inherit: %w", err)
		}
		pclass.Inherit = parents
	case "field":
		fname, field, err := buildField(rest, lvars)
		if err != nil {
			return fmt.Errorf(":field: %w", err)
		}
		if _, dup := pclass.Fields[fname]; dup {
			return fmt.Errorf("duplicate field %q", fname)
		}
		pclass.Fields[fname] = field
	case "modes":
		if len(rest) != 1 {
			return fmt.Errorf(":modes takes exactly one vector")
		}
		items, isVec := rest[0].IsVector()
		if !isVec {
			return fmt.Errorf(":modes must be a vector of mode keywords")
		}
		for _, item := range items {
			mode, isKw := item.IsKeyword()
			if !isKw {
				return fmt.Errorf(":modes entries must be keywords")
			}
			modeSym := ir.Symbol(mode)
			pclass.Modes[modeSym] = ir.LiteralTrue
			pclass.ModeOrder = append(pclass.ModeOrder, modeSym)
		}
	case "transitions":
		for _, item := range rest {
			if err := buildTransition(pclass, item); err != nil {
				return fmt.Errorf(":transitions: %w", err)
			}
		}
	default:
		return fmt.Errorf("unrecognized pclass option :%s", kw)
	}
	return nil
}

func buildTransition(pclass *ir.Pclass, item *read.Datum) error {
	items, isList := item.IsList()
	if !isList || len(items) < 1 {
		return fmt.Errorf("malformed transition entry")
	}
	key, isStr := items[0].Str, items[0].Str != nil
	if !isStr {
		return fmt.Errorf("transition key must be a \"from:to\" string")
	}
	from, to, err := splitTransitionKey(*key)
	if err != nil {
		return err
	}
	t := &ir.Transition{From: from, To: to}

	opts, err := keywordOptionMap(items[1:])
	if err != nil {
		return err
	}
	if pre, ok := opts[":pre"]; ok {
		t.Pre = buildCondition(pre)
	}
	if post, ok := opts[":post"]; ok {
		t.Post = buildCondition(post)
	}
	if prob, ok := opts[":probability"]; ok && prob.Float != nil {
		t.Probability = prob.Float
	}
	pclass.Transitions[t.Key()] = t
	return nil
}

func splitTransitionKey(key string) (from, to ir.Symbol, err error) {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return ir.Symbol(key[:i]), ir.Symbol(key[i+1:]), nil
		}
	}
	return "", "", fmt.Errorf("transition key %q is not of the form \"from:to\"", key)
}

func symbolVector(items []*read.Datum) ([]ir.Symbol, error) {
	out := make([]ir.Symbol, 0, len(items))
	for _, item := range items {
		sym, isSym := item.IsSymbol()
		if !isSym {
			return nil, fmt.Errorf("expected a symbol, got a non-symbol form")
		}
		out = append(out, ir.Symbol(sym))
	}
	return out, nil
}

// keywordOptionMap groups a flat :key value :key value ... list into a map
// keyed by the keyword's literal text (including the leading colon, to
// match callers' lookups). Used for the small inline option lists (field
// decl, transition decl) that are not themselves MapForm braces.
func keywordOptionMap(items []*read.Datum) (map[string]*read.Datum, error) {
	if len(items)%2 != 0 {
		return nil, fmt.Errorf("option list must alternate keyword and value")
	}
	out := make(map[string]*read.Datum, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		kw, isKw := items[i].IsKeyword()
		if !isKw {
			return nil, fmt.Errorf("expected a keyword option name")
		}
		out[":"+kw] = items[i+1]
	}
	return out, nil
}

func buildMeta(d *read.Datum) (ir.Meta, error) {
	entries, isMap := d.IsMap()
	if !isMap {
		return ir.Meta{}, fmt.Errorf("must be a map")
	}
	var m ir.Meta
	for _, e := range entries {
		kw, isKw := e.Key.IsKeyword()
		if !isKw {
			return ir.Meta{}, fmt.Errorf("meta keys must be keywords")
		}
		switch kw {
		case "version":
			if e.Value.Str == nil {
				return ir.Meta{}, fmt.Errorf("defpclass meta :version must be a string (not %q)", renderDatum(e.Value))
			}
			m.Version, m.HasVersion = *e.Value.Str, true
		case "doc":
			if e.Value.Str != nil {
				m.Doc, m.HasDoc = *e.Value.Str, true
			}
		case "icon":
			if e.Value.Str != nil {
				m.Icon, m.HasIcon = *e.Value.Str, true
			}
		case "depends":
			items, isVec := e.Value.IsVector()
			if !isVec {
				return ir.Meta{}, fmt.Errorf(":depends must be a vector of [pclass version] pairs")
			}
			for _, dep := range items {
				pair, isVec := dep.IsVector()
				if !isVec || len(pair) != 2 {
					return ir.Meta{}, fmt.Errorf(":depends entries must be [pclass-symbol version-string]")
				}
				sym, isSym := pair[0].IsSymbol()
				if !isSym || pair[1].Str == nil {
					return ir.Meta{}, fmt.Errorf(":depends entry malformed")
				}
				m.Depends = append(m.Depends, ir.Dependency{Name: ir.Symbol(sym), Version: *pair[1].Str})
			}
		default:
			return ir.Meta{}, fmt.Errorf("defpclass meta key \":%s\" invalid", kw)
		}
	}
	return m, nil
}

// renderDatum renders a non-string meta value the way spec error messages
// quote it (e.g. a bare float 1.0 as "1.0"), for the :version type-mismatch
// message.
func renderDatum(d *read.Datum) string {
	switch {
	case d.Float != nil:
		s := strconv.FormatFloat(*d.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s
	case d.Int != nil:
		return fmt.Sprintf("%d", *d.Int)
	case d.Keyword != nil:
		return ":" + *d.Keyword
	case d.Str != nil:
		return *d.Str
	default:
		return "?"
	}
}

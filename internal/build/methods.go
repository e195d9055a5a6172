package build

import (
	"fmt"

	"github.com/pamela-lang/pamela/internal/ir"
	"github.com/pamela-lang/pamela/internal/read"
)

// buildDefpmethod builds (defpmethod name {condition-map}? [args...]
// body-form? between-form*) (spec §4.3 "defpmethod"). The condition map, if
// present, supplies :pre/:post/:cost/:reward/:controllable/:primitive/
// :display-name; unset entries take the canonical defaults (literal-true
// pre/post, zero cost/reward).
func buildDefpmethod(rest []*read.Datum, lvars *ir.LvarTable) (ir.Symbol, *ir.MethodDef, error) {
	if len(rest) < 1 {
		return "", nil, fmt.Errorf("defpmethod requires a name")
	}
	name, isSym := rest[0].IsSymbol()
	if !isSym {
		return "", nil, fmt.Errorf("defpmethod name must be a symbol")
	}

	def := &ir.MethodDef{Pre: ir.LiteralTrue, Post: ir.LiteralTrue}
	idx := 1
	var primitiveVal bool

	if idx < len(rest) {
		if entries, isMap := rest[idx].IsMap(); isMap {
			for _, e := range entries {
				kw, isKw := e.Key.IsKeyword()
				if !isKw {
					continue
				}
				switch kw {
				case "pre":
					def.Pre = buildCondition(e.Value)
				case "post":
					def.Post = buildCondition(e.Value)
				case "cost":
					if e.Value.Float != nil {
						def.Cost = *e.Value.Float
					} else if e.Value.Int != nil {
						def.Cost = float64(*e.Value.Int)
					}
				case "reward":
					if e.Value.Float != nil {
						def.Reward = *e.Value.Float
					} else if e.Value.Int != nil {
						def.Reward = float64(*e.Value.Int)
					}
				case "controllable":
					if lit, ok := literalOf(e.Value); ok && lit.Kind == ir.LitBool {
						def.Controllable = lit.B
					}
				case "primitive":
					if lit, ok := literalOf(e.Value); ok && lit.Kind == ir.LitBool {
						primitiveVal = lit.B
					}
				case "display-name":
					if e.Value.Str != nil {
						def.DisplayName, def.HasDisplayName = *e.Value.Str, true
					}
				case "temporal-constraints":
					bounds, err := buildBoundsVector(e.Value)
					if err != nil {
						return "", nil, fmt.Errorf("defpmethod %q :temporal-constraints: %w", name, err)
					}
					def.TemporalConstraints = bounds
				}
			}
			idx++
		}
	}

	if idx >= len(rest) {
		return "", nil, fmt.Errorf("defpmethod %q requires an args vector", name)
	}
	argItems, isVec := rest[idx].IsVector()
	if !isVec {
		return "", nil, fmt.Errorf("defpmethod %q: expected an args vector", name)
	}
	args, err := symbolVector(argItems)
	if err != nil {
		return "", nil, fmt.Errorf("defpmethod %q args: %w", name, err)
	}
	def.Args = args
	idx++

	var bodyForm *read.Datum
	for _, item := range rest[idx:] {
		if head, hrest, ok := item.Head(); ok && isBetweenKind(head) {
			st, err := buildBetween(head, hrest)
			if err != nil {
				return "", nil, fmt.Errorf("defpmethod %q: %w", name, err)
			}
			def.Betweens = append(def.Betweens, st)
			continue
		}
		if bodyForm != nil {
			return "", nil, fmt.Errorf("defpmethod %q: more than one body form given", name)
		}
		bodyForm = item
	}

	if bodyForm != nil {
		stmt, err := buildStmt(bodyForm, lvars)
		if err != nil {
			return "", nil, fmt.Errorf("defpmethod %q body: %w", name, err)
		}
		def.Body = []ir.Stmt{stmt}
	}
	if bodyForm == nil {
		def.Primitive = true
	} else {
		def.Primitive = primitiveVal
	}

	return ir.Symbol(name), def, nil
}

func isBetweenKind(head string) bool {
	switch head {
	case "between", "between-starts", "between-ends":
		return true
	default:
		return false
	}
}

func buildBetween(head string, rest []*read.Datum) (ir.Stmt, error) {
	if len(rest) < 2 {
		return nil, fmt.Errorf("%s requires a from and to method symbol", head)
	}
	from, isSym1 := rest[0].IsSymbol()
	to, isSym2 := rest[1].IsSymbol()
	if !isSym1 || !isSym2 {
		return nil, fmt.Errorf("%s: from/to must be symbols", head)
	}
	switch head {
	case "between":
		return ir.SBetween{From: ir.Symbol(from), To: ir.Symbol(to)}, nil
	case "between-starts":
		return ir.SBetweenStarts{From: ir.Symbol(from), To: ir.Symbol(to)}, nil
	default:
		return ir.SBetweenEnds{From: ir.Symbol(from), To: ir.Symbol(to)}, nil
	}
}

func buildBoundsVector(d *read.Datum) ([]ir.Bounds, error) {
	items, isVec := d.IsVector()
	if !isVec {
		return nil, fmt.Errorf("must be a vector of bounds pairs")
	}
	out := make([]ir.Bounds, 0, len(items))
	for _, item := range items {
		b, err := buildBounds(item)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func buildBounds(d *read.Datum) (ir.Bounds, error) {
	items, isVec := d.IsVector()
	if !isVec || len(items) != 2 {
		return ir.Bounds{}, fmt.Errorf("bounds must be a [lower upper] vector")
	}
	lower, ok := intOf(items[0])
	if !ok {
		return ir.Bounds{}, fmt.Errorf("bounds lower must be an integer")
	}
	if kw, isKw := items[1].IsKeyword(); isKw && kw == "infinity" {
		return ir.Bounds{Lower: lower, UpperInfinite: true}, nil
	}
	upper, ok := intOf(items[1])
	if !ok {
		return ir.Bounds{}, fmt.Errorf("bounds upper must be an integer or :infinity")
	}
	return ir.Bounds{Lower: lower, Upper: upper}, nil
}

func intOf(d *read.Datum) (int64, bool) {
	if d.Int != nil {
		return *d.Int, true
	}
	return 0, false
}

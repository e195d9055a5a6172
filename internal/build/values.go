package build

import (
	"fmt"

	"github.com/pamela-lang/pamela/internal/ir"
	"github.com/pamela-lang/pamela/internal/read"
)

// literalOf decodes d as a bare literal atom (spec §4.3 "Literals"):
// integers as signed 64-bit, floats as double, booleans from the
// [:TRUE]/[:FALSE] single-keyword vector, keywords with the leading colon
// stripped, strings passed through. Reports ok=false for anything else
// (lists, maps, symbols), which callers handle as non-literal shapes.
func literalOf(d *read.Datum) (ir.LiteralValue, bool) {
	switch {
	case d.Int != nil:
		return ir.IntLiteral(*d.Int), true
	case d.Float != nil:
		return ir.FloatLiteral(*d.Float), true
	case d.Str != nil:
		return ir.StringLiteral(*d.Str), true
	case d.Keyword != nil:
		return ir.KeywordLiteral(*d.Keyword), true
	}
	if items, isVec := d.IsVector(); isVec && len(items) == 1 {
		if kw, isKw := items[0].IsKeyword(); isKw {
			switch kw {
			case "TRUE":
				return ir.BoolLiteral(true), true
			case "FALSE":
				return ir.BoolLiteral(false), true
			}
		}
	}
	return ir.LiteralValue{}, false
}

// buildField builds (:field name type-or-opts...) (spec §4.3 "field",
// "field-type"). A bare field-type form ("(:field name type)") is treated as
// ":initial"; a form with an inline option list ("(:field name (:initial v)
// (:access :public) (:observable [:TRUE]))") reads :initial/:access/
// :observable explicitly. Default access is private, default observable is
// false.
func buildField(rest []*read.Datum, lvars *ir.LvarTable) (ir.Symbol, *ir.Field, error) {
	if len(rest) < 1 {
		return "", nil, fmt.Errorf("requires a field name")
	}
	name, isSym := rest[0].IsSymbol()
	if !isSym {
		return "", nil, fmt.Errorf("field name must be a symbol")
	}
	field := &ir.Field{Access: ir.AccessPrivate}

	if len(rest) == 1 {
		return ir.Symbol(name), field, nil
	}

	// A single remaining bare (non-option-list) form is the short "bare
	// field-type" case; anything shaped as (:initial ...)/(:access
	// ...)/(:observable ...) option forms is the long case.
	if len(rest) == 2 && !isFieldOptionForm(rest[1]) {
		field.Initial = buildFieldTypeValue(rest[1], lvars)
		return ir.Symbol(name), field, nil
	}

	for _, opt := range rest[1:] {
		items, isList := opt.IsList()
		if !isList || len(items) < 1 {
			return "", nil, fmt.Errorf("field option must be a (:keyword ...) list")
		}
		kw, isKw := items[0].IsKeyword()
		if !isKw {
			return "", nil, fmt.Errorf("field option must start with a keyword")
		}
		switch kw {
		case "initial":
			if len(items) != 2 {
				return "", nil, fmt.Errorf(":initial takes exactly one value")
			}
			field.Initial = buildFieldTypeValue(items[1], lvars)
		case "access":
			if len(items) != 2 {
				return "", nil, fmt.Errorf(":access takes exactly one keyword")
			}
			accessKw, isKw := items[1].IsKeyword()
			if !isKw {
				return "", nil, fmt.Errorf(":access value must be a keyword")
			}
			switch accessKw {
			case "public":
				field.Access = ir.AccessPublic
			case "private":
				field.Access = ir.AccessPrivate
			default:
				return "", nil, fmt.Errorf(":access must be :public or :private, got %q", accessKw)
			}
		case "observable":
			if len(items) != 2 {
				return "", nil, fmt.Errorf(":observable takes exactly one boolean")
			}
			lit, ok := literalOf(items[1])
			if !ok || lit.Kind != ir.LitBool {
				return "", nil, fmt.Errorf(":observable value must be a boolean literal")
			}
			field.Observable = lit.B
		default:
			return "", nil, fmt.Errorf("unrecognized field option :%s", kw)
		}
	}
	return ir.Symbol(name), field, nil
}

// isFieldOptionForm reports whether d looks like a (:initial ...),
// (:access ...) or (:observable ...) option form rather than a bare
// field-type value.
func isFieldOptionForm(d *read.Datum) bool {
	items, isList := d.IsList()
	if !isList || len(items) == 0 {
		return false
	}
	kw, isKw := items[0].IsKeyword()
	if !isKw {
		return false
	}
	switch kw {
	case "initial", "access", "observable":
		return true
	default:
		return false
	}
}

// buildFieldTypeValue builds a field-type form (spec §4.3 "field-type"): a
// literal atom (including a bare keyword) wraps as {kind: :literal, value};
// an (lvar ...) form is an lvar-reference; a pclass-ctor list is a
// constructor value; a bare symbol is a symbol-reference. Because
// literalOf accepts keywords, the VModeRef branch below is never reached.
func buildFieldTypeValue(d *read.Datum, lvars *ir.LvarTable) ir.ValueExpr {
	if lit, ok := literalOf(d); ok {
		return ir.VLiteral{Value: lit}
	}
	if kw, ok := d.IsKeyword(); ok {
		return ir.VModeRef{Mode: ir.Symbol(kw)}
	}
	if sym, ok := d.IsSymbol(); ok {
		return ir.VSymbolRef{Name: ir.Symbol(sym)}
	}
	if head, rest, ok := d.Head(); ok {
		switch head {
		case "lvar":
			return buildLvarCtor(rest, lvars)
		default:
			return buildPclassCtor(head, rest)
		}
	}
	return ir.VLiteral{Value: ir.LiteralValue{}}
}

// buildLvarCtor builds (lvar "name" default?) (spec §4.3 "lvar-ctor"):
// side-effect-interns into lvars if absent, and produces an lvar-reference
// value expression.
func buildLvarCtor(rest []*read.Datum, lvars *ir.LvarTable) ir.ValueExpr {
	if len(rest) < 1 || rest[0].Str == nil {
		return ir.VLvarRef{HasGensymName: true}
	}
	name := *rest[0].Str
	var def ir.LvarDefault
	if len(rest) >= 2 {
		if lit, ok := literalOf(rest[1]); ok {
			def = ir.LvarDefault{Value: lit}
		} else {
			def = ir.LvarDefault{Unset: true}
		}
	} else {
		def = ir.LvarDefault{Unset: true}
	}
	lvars.InsertIfAbsent(name, def)
	recorded, _ := lvars.Lookup(name)
	return ir.VLvarRef{Name: name, Default: recorded}
}

// buildPclassCtor builds a pclass-ctor value expression (spec §4.3
// "pclass-ctor"): accumulates positional args (bare option keywords or
// field/arg-referencing symbols) and merges :id/:interface/:plant-part/
// :initial options into the result, either from an inline option-map or
// from the flat "keyword value" pairing the e2e example uses (spec §8:
// "`(pwrvals :initial :none)`").
func buildPclassCtor(pclassName string, rest []*read.Datum) *ir.VPclassCtor {
	ctor := &ir.VPclassCtor{Pclass: ir.Symbol(pclassName)}
	for i := 0; i < len(rest); i++ {
		item := rest[i]
		if entries, isMap := item.IsMap(); isMap {
			applyCtorOptions(ctor, entries)
			continue
		}
		if kw, isKw := item.IsKeyword(); isKw {
			if isCtorOptionKey(kw) && i+1 < len(rest) {
				applyCtorOption(ctor, kw, rest[i+1])
				i++
				continue
			}
			ctor.Args = append(ctor.Args, ir.CtorArg{Keyword: true, Name: ir.Symbol(kw)})
			continue
		}
		if sym, isSym := item.IsSymbol(); isSym {
			ctor.Args = append(ctor.Args, ir.CtorArg{Name: ir.Symbol(sym)})
		}
	}
	return ctor
}

func isCtorOptionKey(kw string) bool {
	switch kw {
	case "id", "interface", "plant-part", "initial":
		return true
	default:
		return false
	}
}

func applyCtorOptions(ctor *ir.VPclassCtor, entries []*read.MapEntry) {
	for _, e := range entries {
		kw, isKw := e.Key.IsKeyword()
		if !isKw {
			continue
		}
		applyCtorOption(ctor, kw, e.Value)
	}
}

func applyCtorOption(ctor *ir.VPclassCtor, kw string, value *read.Datum) {
	switch kw {
	case "id":
		if value.Str != nil {
			ctor.ID = value.Str
		}
	case "interface":
		if sym, ok := value.IsSymbol(); ok {
			s := ir.Symbol(sym)
			ctor.Interface = &s
		}
	case "plant-part":
		if value.Str != nil {
			ctor.PlantPart = value.Str
		}
	case "initial":
		if mkw, ok := value.IsKeyword(); ok {
			s := ir.Symbol(mkw)
			ctor.Initial = &s
		}
	}
}

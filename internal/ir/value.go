package ir

// ValueExpr is the sealed interface for a field's initial value (spec §3.2):
// literal, lvar-reference, pclass-constructor, mode-reference, or
// symbol-reference.
type ValueExpr interface {
	valueExpr()
}

// VLiteral wraps a plain literal value.
type VLiteral struct {
	Value LiteralValue
}

func (VLiteral) valueExpr() {}

// VLvarRef is an lvar reference produced by an lvar-ctor (spec §4.3).
type VLvarRef struct {
	Name    string
	Default LvarDefault
	HasGensymName bool // true when the grammar omitted a name and one was gensym'd
}

func (VLvarRef) valueExpr() {}

// CtorArg is one raw positional argument of a pclass-ctor, prior to
// validation (spec §4.4.1): either a bare option keyword (:id, :interface,
// :plant-part, ...) or a symbol naming a field/formal-argument.
type CtorArg struct {
	Keyword bool
	Name    Symbol
}

// VPclassCtor is a pclass-constructor value expression (spec §3.2, §4.3).
type VPclassCtor struct {
	Pclass     Symbol
	Args       []CtorArg
	ID         *string
	Interface  *Symbol
	PlantPart  *string
	Initial    *Symbol // mode keyword from the :initial option, if given
}

func (*VPclassCtor) valueExpr() {}

// VModeRef is a bare mode-expr value expression.
type VModeRef struct {
	Mode Symbol
}

func (VModeRef) valueExpr() {}

// VSymbolRef is a field initialized to a bare symbol reference (another
// field, or a formal argument of the enclosing pclass).
type VSymbolRef struct {
	Name Symbol
}

func (VSymbolRef) valueExpr() {}

package ir

// Condition is the sealed interface over condition nodes (spec §3.4): a
// tagged sum of the literal, logical-connective and reference variants. The
// grammar only ever produces CLiteral, CAnd, COr, CNot, CImplies, CEqual and
// CUnresolved; every reference variant is produced exclusively by the
// validator (spec §4.4.4).
type Condition interface {
	condition()
}

// LiteralTrue and LiteralFalse are the canonical boolean literal conditions.
// The source grammar this compiler is modeled on defines true-type and
// false-type identically as {kind: :literal, value: true} (spec §9 open
// question); this implementation keeps them distinct.
var (
	LiteralTrue  = CLiteral{Value: BoolLiteral(true)}
	LiteralFalse = CLiteral{Value: BoolLiteral(false)}
)

// CLiteral is a literal condition value.
type CLiteral struct {
	Value LiteralValue
}

func (CLiteral) condition() {}

// CAnd, COr, CNot, CImplies are the logical connectives. Args holds the
// connective's operands in source order. CNot's Args holds whatever operands
// the source form gave; neither the builder nor the validator checks that
// there is exactly one.
type CAnd struct{ Args []Condition }
type COr struct{ Args []Condition }
type CNot struct{ Args []Condition }
type CImplies struct{ Args []Condition }

func (CAnd) condition()      {}
func (COr) condition()       {}
func (CNot) condition()      {}
func (CImplies) condition()  {}

// CEqual is the (= a b ...) condition. After per-operand disambiguation the
// validator performs a second mode-qualification pass over Args (spec
// §4.4.4).
type CEqual struct{ Args []Condition }

func (CEqual) condition() {}

// CUnresolved is a bare symbol or keyword occurring in a condition, prior to
// validator disambiguation. The grammar (builder stage, §4.3) only ever
// produces this placeholder for identifiers; the validator rewrites it into
// one of the reference variants below, or errors.
type CUnresolved struct {
	Keyword bool
	Name    Symbol
}

func (CUnresolved) condition() {}

// CFieldReference resolves a bare symbol to a field of the enclosing pclass
// (or, for the qualified legacy form, of Pclass).
type CFieldReference struct {
	Pclass Symbol // This for the common, unqualified case
	Field  Symbol
}

func (CFieldReference) condition() {}

// CFieldReferenceField is the qualified legacy "field.:member" form where
// member names a field of the referenced field's pclass (spec §4.4.4).
type CFieldReferenceField struct {
	Pclass Symbol
	Field  Symbol
	Member Symbol
}

func (CFieldReferenceField) condition() {}

// CFieldReferenceMode is the qualified legacy "field.:member" form where
// member names a mode of the referenced field's pclass.
type CFieldReferenceMode struct {
	Pclass Symbol
	Field  Symbol
	Mode   Symbol
}

func (CFieldReferenceMode) condition() {}

// CModeReference resolves a bare symbol to a mode of the enclosing pclass,
// or (after mode qualification of an = condition) of a referenced pclass.
type CModeReference struct {
	Pclass Symbol
	Mode   Symbol
}

func (CModeReference) condition() {}

// CArgReference resolves a bare symbol to a formal argument of the
// enclosing pclass.
type CArgReference struct {
	Arg Symbol
}

func (CArgReference) condition() {}

// CMethodArgReference resolves a bare symbol to a formal argument of the
// method currently being validated.
type CMethodArgReference struct {
	Arg Symbol
}

func (CMethodArgReference) condition() {}

// CStateVariable is a free identifier hoisted to a top-level state variable
// (spec §4.4.4 step 5, §4.4.6).
type CStateVariable struct {
	Name Symbol
}

func (CStateVariable) condition() {}

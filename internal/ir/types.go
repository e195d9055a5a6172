package ir

// Symbol is an interned PAMELA identifier (a pclass name, field name, mode
// keyword, method name, or argument name).
type Symbol string

// This is the reserved symbol used to address the enclosing pclass itself in
// a plant-fn call, e.g. (this tell-me args...).
const This Symbol = "this"

// Wildcard is the transition "*" sentinel (spec §3.7).
const Wildcard Symbol = "*"

// IR is the top-level compilation result: a mapping from pclass symbol to
// pclass record, plus the distinguished entries described in spec §3.
type IR map[Symbol]Entry

// Entry is the sealed interface over top-level IR values.
type Entry interface {
	irEntry()
}

// Pclass is the canonical record for a declared pclass (spec §3.1).
type Pclass struct {
	Args        []Symbol
	Meta        Meta
	Inherit     []Symbol
	Fields      map[Symbol]*Field
	Modes       map[Symbol]Condition // mode keyword -> literal-true condition
	ModeOrder   []Symbol             // declaration order, for diagnostics
	Transitions map[string]*Transition
	Methods     map[Symbol][]*MethodDef
}

func (*Pclass) irEntry() {}

// LvarsEntry is the "pamela/lvars" top-level entry, present iff any lvars
// were encountered while building the IR (spec §3).
type LvarsEntry struct {
	Lvars map[string]LvarDefault
}

func (*LvarsEntry) irEntry() {}

// StateVariableEntry marks a hoisted state variable (spec §4.4.6).
type StateVariableEntry struct{}

func (StateVariableEntry) irEntry() {}

// LvarsKey is the reserved symbol used for the lvars entry.
const LvarsKey Symbol = "pamela/lvars"

// Meta holds the optional :meta map of a defpclass (spec §3.1).
type Meta struct {
	Version    string
	HasVersion bool
	Doc        string
	HasDoc     bool
	Depends    []Dependency
	Icon       string
	HasIcon    bool
}

// Dependency is one entry of a :depends meta list: [pclass-symbol, version].
type Dependency struct {
	Name    Symbol
	Version string
}

// Access controls field visibility (spec §3.2).
type Access int

const (
	AccessPrivate Access = iota
	AccessPublic
)

// Field is the canonical record for a single field declaration (spec §3.2).
type Field struct {
	Access     Access
	Observable bool
	Initial    ValueExpr // nil if the field has no initializer
}

// Transition is a canonical "from:to" transition record (spec §3.1, §3.7).
type Transition struct {
	From, To     Symbol
	Pre, Post    Condition
	Probability  *float64
}

// Key returns the canonical "from:to" transition key.
func (t *Transition) Key() string {
	return string(t.From) + ":" + string(t.To)
}

// MethodDef is one overload of a method (spec §3.3).
type MethodDef struct {
	Args                []Symbol
	Pre, Post           Condition
	Cost, Reward        float64
	Controllable        bool
	TemporalConstraints []Bounds
	Primitive           bool
	DisplayName         string
	HasDisplayName      bool
	Body                []Stmt // nil implies Primitive; a method with a body is primitive only if its :primitive option says so
	Betweens            []Stmt
}

// Bounds is an inclusive-lower, possibly-infinite-upper time interval
// (spec §3.6).
type Bounds struct {
	Lower         int64
	Upper         int64
	UpperInfinite bool
}

// DefaultBounds is the canonical [0, infinity) bound.
var DefaultBounds = Bounds{Lower: 0, UpperInfinite: true}

// ZeroBounds is the canonical [0, 0] bound used by optional's zero-delay
// choice (slack-sequence's interposed delays use DefaultBounds).
var ZeroBounds = Bounds{Lower: 0, Upper: 0}

// LiteralKind tags the payload carried by a LiteralValue.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitString
	LitKeyword
)

// LiteralValue is the decoded payload of a grammar literal (spec §4.3):
// integers decode as signed 64-bit, floats as double, booleans from the
// [:TRUE]/[:FALSE] vector literals, keywords with the leading colon
// stripped, strings passed through.
type LiteralValue struct {
	Kind LiteralKind
	I    int64
	F    float64
	B    bool
	S    string // string text, or keyword text without the leading colon
}

func IntLiteral(i int64) LiteralValue      { return LiteralValue{Kind: LitInt, I: i} }
func FloatLiteral(f float64) LiteralValue  { return LiteralValue{Kind: LitFloat, F: f} }
func BoolLiteral(b bool) LiteralValue      { return LiteralValue{Kind: LitBool, B: b} }
func StringLiteral(s string) LiteralValue  { return LiteralValue{Kind: LitString, S: s} }
func KeywordLiteral(s string) LiteralValue { return LiteralValue{Kind: LitKeyword, S: s} }

// LvarDefault is the default value recorded for an lvar (spec §4.2): either
// a literal, or the distinguished :unset sentinel.
type LvarDefault struct {
	Unset bool
	Value LiteralValue
}

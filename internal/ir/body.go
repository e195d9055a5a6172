package ir

// Stmt is the sealed interface over method-body nodes (spec §3.5).
type Stmt interface {
	stmt()
}

// Decorations holds the optional per-node decorations shared across body
// statement kinds (spec §3.5): a nested body, temporal constraints, label,
// cost/reward bounds, probability, controllability, and the condition/guard
// used by conditional and choice forms. Embedding Decorations in every Stmt
// variant both supplies the sealed marker method and avoids repeating this
// field set across fourteen-odd node kinds.
type Decorations struct {
	Body                []Stmt
	TemporalConstraints []Bounds
	Label               string
	HasLabel            bool
	CostLE              float64
	HasCostLE           bool
	RewardGE            float64
	HasRewardGE         bool
	Probability         float64
	HasProbability      bool
	Controllable        bool
	HasControllable     bool
	Condition           Condition // :when/:unless/:whenever/:ask/:tell/:assert/:maintain guard
	Min, Max, Exactly   int
	HasMin, HasMax, HasExactly bool
}

func (Decorations) stmt() {}

// SSequence is an ordered composition of Body (spec §3.5).
type SSequence struct{ Decorations }

// SParallel is an unordered composition of Body.
type SParallel struct{ Decorations }

// SChoose is a probabilistic/cardinality choice among Body, each of which is
// normally an SChoice node (spec §4.3 fn combinators).
type SChoose struct{ Decorations }

// SChooseWhenever is the reactive variant of choose.
type SChooseWhenever struct{ Decorations }

// SChoice is a single alternative of a choose, carrying its own optional
// Guard/Enter/Leave hooks in addition to Body.
type SChoice struct {
	Decorations
	Guard Condition
	Enter []Stmt
	Leave []Stmt
}

// SDelay is a bounded wait with no body; its duration lives in
// TemporalConstraints.
type SDelay struct{ Decorations }

// SAsk waits for Condition to hold.
type SAsk struct{ Decorations }

// STell asserts Condition immediately.
type STell struct{ Decorations }

// SAssert is a hard invariant check of Condition.
type SAssert struct{ Decorations }

// SMaintain holds Condition true for the duration of Body.
type SMaintain struct{ Decorations }

// SUnless runs Body unless Condition holds.
type SUnless struct{ Decorations }

// SWhen runs Body when Condition holds.
type SWhen struct{ Decorations }

// SWhenever reactively runs Body whenever Condition holds.
type SWhenever struct{ Decorations }

// STry runs Body, falling back to Catch if it fails.
type STry struct {
	Decorations
	Catch []Stmt
}

// SBetween, SBetweenStarts, SBetweenEnds declare an inter-method temporal
// constraint; these are accumulated into the enclosing MethodDef.Betweens,
// never into a statement Body (spec §4.3).
type SBetween struct {
	Decorations
	From, To Symbol
}
type SBetweenStarts struct {
	Decorations
	From, To Symbol
}
type SBetweenEnds struct {
	Decorations
	From, To Symbol
}

// SPlantFnSymbol is a plant-function call as produced by the IR builder,
// before the validator has resolved Name against the enclosing pclass's
// scope (spec §4.3, §4.4.5).
type SPlantFnSymbol struct {
	Decorations
	Name     Symbol
	Method   Symbol
	CallArgs []ValueExpr
}

// SPlantFn is a plant-function call whose Name resolved to "this", a
// method-arg, or a pclass-arg. Calls on "this" are arity-checked against the
// enclosing pclass; for a method-arg or pclass-arg the arity is left
// unchecked, deferred to root-task resolution which is out of scope per spec
// §4.4.5.
type SPlantFn struct {
	Decorations
	Name     Symbol
	Method   Symbol
	CallArgs []ValueExpr
}

// SPlantFnField is a plant-function call whose Name resolved to a field of
// the enclosing pclass with a direct :pclass-ctor initializer; the
// validator rewrites SPlantFnSymbol into this form (spec §4.4.5).
type SPlantFnField struct {
	Decorations
	Field    Symbol
	Method   Symbol
	CallArgs []ValueExpr
}

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pamela-lang/pamela/internal/build"
	"github.com/pamela-lang/pamela/internal/ir"
	"github.com/pamela-lang/pamela/internal/read"
	"github.com/pamela-lang/pamela/internal/validate"
)

func mustValidate(t *testing.T, src string) (ir.IR, error) {
	t.Helper()
	g, err := read.LoadGrammars()
	require.NoError(t, err)
	forms, err := read.ParseSource(g, "test.pamela", []byte(src))
	require.NoError(t, err)
	built, err := build.Build(forms, ir.NewLvarTable())
	require.NoError(t, err)
	return validate.Validate(built)
}

func TestValidateFieldCtorArgMustBeFieldOrArg(t *testing.T) {
	_, err := mustValidate(t, `
(defpclass child [])
(defpclass parent []
  (:field c (child undeclared-name)))`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither a field nor a formal argument")
}

func TestValidateTransitionUnknownModeErrors(t *testing.T) {
	_, err := mustValidate(t, `
(defpclass p []
  (:modes [:on :off])
  (:transitions
    ("on:bogus")))`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a declared mode")
}

func TestConditionDisambiguationPriorityField(t *testing.T) {
	out, err := mustValidate(t, `
(defpclass p [speed]
  (:field speed 10)
  (defpmethod m {:pre (= speed 10)} []
    (sequence)))`)
	require.NoError(t, err)
	p := out["p"].(*ir.Pclass)
	pre := p.Methods["m"][0].Pre.(ir.CEqual)
	ref, ok := pre.Args[0].(ir.CFieldReference)
	require.True(t, ok, "expected field resolution to take priority over the pclass arg of the same name")
	assert.Equal(t, ir.Symbol("speed"), ref.Field)
}

func TestConditionDisambiguationFallsBackToStateVariable(t *testing.T) {
	out, err := mustValidate(t, `
(defpclass p []
  (defpmethod m {:pre (= free-floating 1)} []
    (sequence)))`)
	require.NoError(t, err)
	p := out["p"].(*ir.Pclass)
	pre := p.Methods["m"][0].Pre.(ir.CEqual)
	_, ok := pre.Args[0].(ir.CStateVariable)
	require.True(t, ok)
	_, hoisted := out["free-floating"]
	assert.True(t, hoisted, "state variable should be hoisted to a top-level IR entry")
}

func TestModeQualificationRewritesLiteralKeyword(t *testing.T) {
	out, err := mustValidate(t, `
(defpclass pwrvals [] (:modes [:high :none]))
(defpclass p []
  (:field pwr (pwrvals :initial :none))
  (defpmethod m {:pre (= pwr :high)} []
    (sequence)))`)
	require.NoError(t, err)
	p := out["p"].(*ir.Pclass)
	pre := p.Methods["m"][0].Pre.(ir.CEqual)
	mode, ok := pre.Args[1].(ir.CModeReference)
	require.True(t, ok, "literal keyword operand should be qualified into a mode-reference")
	assert.Equal(t, ir.Symbol("pwrvals"), mode.Pclass)
	assert.Equal(t, ir.Symbol("high"), mode.Mode)
}

func TestPlantFnArityZeroMatches(t *testing.T) {
	_, err := mustValidate(t, `
(defpclass p []
  (defpmethod m [x] (sequence))
  (defpmethod caller [] (sequence (this m))))`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 0 args")
}

func TestPlantFnArityMultipleMatchesIsAmbiguous(t *testing.T) {
	_, err := mustValidate(t, `
(defpclass p []
  (defpmethod m [x] (sequence))
  (defpmethod m [y] (sequence))
  (defpmethod caller [a] (sequence (this m a))))`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestPlantFnFieldResolvesAgainstTargetPclass(t *testing.T) {
	out, err := mustValidate(t, `
(defpclass child []
  (defpmethod go [x] (sequence)))
(defpclass parent []
  (:field c (child))
  (defpmethod run [] (sequence (c go 1))))`)
	require.NoError(t, err)
	p := out["parent"].(*ir.Pclass)
	body := p.Methods["run"][0].Body
	_, ok := body[0].(ir.SPlantFnField)
	require.True(t, ok)
}

func TestPlantFnUndefinedNameErrors(t *testing.T) {
	_, err := mustValidate(t, `
(defpclass p []
  (defpmethod run [] (sequence (nobody go))))`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not defined in the pclass")
}

func TestInheritanceCycleIsHardError(t *testing.T) {
	_, err := mustValidate(t, `
(defpclass a [] (:inherit [b]))
(defpclass b [] (:inherit [a]))`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inheritance cycle")
}

func TestInheritanceSelfLoopIsHardError(t *testing.T) {
	_, err := mustValidate(t, `(defpclass a [] (:inherit [a]))`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inheritance cycle")
}

func TestDependsOnNonexistentPclassErrors(t *testing.T) {
	_, err := mustValidate(t, `
(defpclass p [] (:meta {:depends [[nobody "1.0"]]}))`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-existent model")
}

func TestQualifiedFieldReferenceResolvesMember(t *testing.T) {
	out, err := mustValidate(t, `
(defpclass child [] (:field temp 10))
(defpclass parent []
  (:field c (child))
  (defpmethod m {:pre (= c.temp 10)} [] (sequence)))`)
	require.NoError(t, err)
	p := out["parent"].(*ir.Pclass)
	pre := p.Methods["m"][0].Pre.(ir.CEqual)
	ref, ok := pre.Args[0].(ir.CFieldReferenceField)
	require.True(t, ok)
	assert.Equal(t, ir.Symbol("temp"), ref.Member)
}

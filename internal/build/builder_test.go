package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pamela-lang/pamela/internal/ir"
	"github.com/pamela-lang/pamela/internal/read"
)

func mustParse(t *testing.T, src string) []*read.Datum {
	t.Helper()
	g, err := read.LoadGrammars()
	require.NoError(t, err)
	forms, err := read.ParseSource(g, "test.pamela", []byte(src))
	require.NoError(t, err)
	return forms
}

func TestBuildSimplePclass(t *testing.T) {
	src := `(defpclass robot [speed]
	  {:meta {:doc "a robot"}}
	  (:field energy 100)
	  (:field target speed)
	  (:modes [:idle :moving])
	  (:transitions ("idle:moving" :pre (= energy 1)))
	  (defpmethod go-to
	    {:cost 1.0 :reward 2.0}
	    [dest]
	    (sequence
	      (assert (= energy 1))
	      (this move dest))))`

	forms := mustParse(t, src)
	lvars := ir.NewLvarTable()
	result, err := Build(forms, lvars)
	require.NoError(t, err)

	require.Contains(t, result.IR, ir.Symbol("robot"))
	pclass := result.IR["robot"].(*ir.Pclass)
	assert.Equal(t, []ir.Symbol{"speed"}, pclass.Args)
	assert.True(t, pclass.Meta.HasDoc)
	assert.Equal(t, "a robot", pclass.Meta.Doc)
	assert.Contains(t, pclass.Fields, ir.Symbol("energy"))
	assert.Contains(t, pclass.Fields, ir.Symbol("target"))
	assert.Contains(t, pclass.Modes, ir.Symbol("idle"))
	assert.Contains(t, pclass.Transitions, "idle:moving")
	require.Contains(t, pclass.Methods, ir.Symbol("go-to"))
	overload := pclass.Methods["go-to"][0]
	assert.Equal(t, []ir.Symbol{"dest"}, overload.Args)
	assert.False(t, overload.Primitive)
	assert.Equal(t, 1.0, overload.Cost)
	require.Len(t, overload.Body, 1)

	seq, ok := overload.Body[0].(ir.SSequence)
	require.True(t, ok)
	require.Len(t, seq.Body, 2)

	_, isAssert := seq.Body[0].(ir.SAssert)
	assert.True(t, isAssert)
	plantFn, isPlantFn := seq.Body[1].(ir.SPlantFnSymbol)
	require.True(t, isPlantFn)
	assert.Equal(t, ir.This, plantFn.Name)
	assert.Equal(t, ir.Symbol("move"), plantFn.Method)
}

func TestBuildPrimitiveMethodHasNilBody(t *testing.T) {
	src := `(defpclass robot []
	  (defpmethod ping {} []))`

	forms := mustParse(t, src)
	result, err := Build(forms, ir.NewLvarTable())
	require.NoError(t, err)

	overload := result.IR["robot"].(*ir.Pclass).Methods["ping"][0]
	assert.True(t, overload.Primitive)
	assert.Nil(t, overload.Body)
}

func TestBuildSlackSequenceInterposesDefaultDelays(t *testing.T) {
	src := `(defpclass robot []
	  (defpmethod m {} []
	    (slack-sequence (this a b) (this c d))))`

	forms := mustParse(t, src)
	result, err := Build(forms, ir.NewLvarTable())
	require.NoError(t, err)

	body := result.IR["robot"].(*ir.Pclass).Methods["m"][0].Body
	seq := body[0].(ir.SSequence)
	require.Len(t, seq.Body, 5)
	_, isDelay := seq.Body[0].(ir.SDelay)
	assert.True(t, isDelay)
	_, isDelay = seq.Body[2].(ir.SDelay)
	assert.True(t, isDelay)
	_, isDelay = seq.Body[4].(ir.SDelay)
	assert.True(t, isDelay)
}

func TestBuildOptionalDesugarsToChooseOfTwoChoices(t *testing.T) {
	src := `(defpclass robot []
	  (defpmethod m {} []
	    (optional (this a b))))`

	forms := mustParse(t, src)
	result, err := Build(forms, ir.NewLvarTable())
	require.NoError(t, err)

	body := result.IR["robot"].(*ir.Pclass).Methods["m"][0].Body
	choose := body[0].(ir.SChoose)
	require.Len(t, choose.Body, 2)
	zeroChoice := choose.Body[0].(ir.SChoice)
	require.Len(t, zeroChoice.Body, 1)
	delay := zeroChoice.Body[0].(ir.SDelay)
	require.Len(t, delay.TemporalConstraints, 1)
	assert.Equal(t, ir.ZeroBounds, delay.TemporalConstraints[0])
}

func TestBuildTrySplitsOnCatchMarker(t *testing.T) {
	src := `(defpclass robot []
	  (defpmethod m {} []
	    (try (this a b) [:CATCH] (this c d))))`

	forms := mustParse(t, src)
	result, err := Build(forms, ir.NewLvarTable())
	require.NoError(t, err)

	body := result.IR["robot"].(*ir.Pclass).Methods["m"][0].Body
	try := body[0].(ir.STry)
	require.Len(t, try.Body, 1)
	require.Len(t, try.Catch, 1)
}

func TestBuildLvarCtorInternsIntoTable(t *testing.T) {
	src := `(defpclass robot []
	  (:field speed (lvar "speed" 10)))`

	forms := mustParse(t, src)
	lvars := ir.NewLvarTable()
	result, err := Build(forms, lvars)
	require.NoError(t, err)

	assert.Equal(t, 1, lvars.Len())
	def, ok := lvars.Lookup("speed")
	require.True(t, ok)
	assert.Equal(t, ir.IntLiteral(10), def.Value)

	field := result.IR["robot"].(*ir.Pclass).Fields["speed"]
	ref, ok := field.Initial.(ir.VLvarRef)
	require.True(t, ok)
	assert.Equal(t, "speed", ref.Name)

	lvarsEntry := result.IR[ir.LvarsKey].(*ir.LvarsEntry)
	assert.Len(t, lvarsEntry.Lvars, 1)
}

func TestBuildDuplicatePclassNameFails(t *testing.T) {
	src := `(defpclass robot []) (defpclass robot [])`
	forms := mustParse(t, src)
	_, err := Build(forms, ir.NewLvarTable())
	require.Error(t, err)
}

package read

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrammars(t *testing.T) *Grammars {
	t.Helper()
	g, err := LoadGrammars()
	require.NoError(t, err)
	return g
}

func TestParseSourceAtoms(t *testing.T) {
	g := mustGrammars(t)

	forms, err := ParseSource(g, "atoms.pamela", []byte(`42 -3.5 :high "a string" sym-bol`))
	require.NoError(t, err)
	require.Len(t, forms, 5)

	assert.Equal(t, int64(42), *forms[0].Int)
	assert.Equal(t, -3.5, *forms[1].Float)
	assert.Equal(t, "high", *forms[2].Keyword)
	assert.Equal(t, "a string", *forms[3].Str)
	assert.Equal(t, "sym-bol", *forms[4].Sym)
}

func TestParseSourceNestedForms(t *testing.T) {
	g := mustGrammars(t)

	src := `(defpclass foo [a b]
	  {:meta {:doc "hi"}}
	  (:field x [:integer] :default 0))`

	forms, err := ParseSource(g, "nested.pamela", []byte(src))
	require.NoError(t, err)
	require.Len(t, forms, 1)

	name, rest, ok := forms[0].Head()
	require.True(t, ok)
	assert.Equal(t, "defpclass", name)
	require.Len(t, rest, 4)

	argsVec, isVec := rest[1].IsVector()
	require.True(t, isVec)
	require.Len(t, argsVec, 2)
}

func TestParseSourceCommentsAndCommasAreElided(t *testing.T) {
	g := mustGrammars(t)

	src := "; a leading comment\n(a, b, c) ; trailing comment"
	forms, err := ParseSource(g, "comments.pamela", []byte(src))
	require.NoError(t, err)
	require.Len(t, forms, 1)

	items, ok := forms[0].IsList()
	require.True(t, ok)
	require.Len(t, items, 3)
}

func TestParseSourceUnbalancedParenIsFailure(t *testing.T) {
	g := mustGrammars(t)

	_, err := ParseSource(g, "broken.pamela", []byte(`(defpclass foo [a]`))
	require.Error(t, err)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "broken.pamela", failure.Filename)
}

func TestParseMagicRoundTripsLvarCtor(t *testing.T) {
	g := mustGrammars(t)

	src := `;; -*- Mode: clojure; coding: utf-8 -*-
(lvar "max-speed" 10.0)
(lvar "label" :fast)`

	forms, err := ParseMagic(g, writeTemp(t, "magic.lisp", src))
	require.NoError(t, err)
	require.Len(t, forms, 2)

	name, rest, ok := forms[0].Head()
	require.True(t, ok)
	assert.Equal(t, "lvar", name)
	require.Len(t, rest, 2)
	assert.Equal(t, "max-speed", *rest[0].Str)
	assert.Equal(t, 10.0, *rest[1].Float)
}

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := t.TempDir() + "/" + name
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

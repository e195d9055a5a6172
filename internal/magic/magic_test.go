package magic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pamela-lang/pamela/internal/ir"
	"github.com/pamela-lang/pamela/internal/read"
)

func mustGrammars(t *testing.T) *read.Grammars {
	t.Helper()
	g, err := read.LoadGrammars()
	require.NoError(t, err)
	return g
}

func writeMagic(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.lisp")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadParsesEachLiteralKind(t *testing.T) {
	g := mustGrammars(t)
	path := writeMagic(t, `;; -*- Mode: clojure; coding: utf-8  -*-
(lvar "speed" 10)
(lvar "ratio" 1.5)
(lvar "enabled" [:TRUE])
(lvar "label" "hello")
(lvar "mode" :fast)
(lvar "unspecified")
`)

	table, err := Load(g, path)
	require.NoError(t, err)
	require.Len(t, table, 6)

	assert.Equal(t, ir.IntLiteral(10), table["speed"].Value)
	assert.Equal(t, ir.FloatLiteral(1.5), table["ratio"].Value)
	assert.Equal(t, ir.BoolLiteral(true), table["enabled"].Value)
	assert.Equal(t, ir.StringLiteral("hello"), table["label"].Value)
	assert.Equal(t, ir.KeywordLiteral("fast"), table["mode"].Value)
	assert.True(t, table["unspecified"].Unset)
}

func TestLoadEmptyFileYieldsEmptyTable(t *testing.T) {
	g := mustGrammars(t)
	path := writeMagic(t, ";; -*- Mode: clojure; coding: utf-8  -*-\n")

	table, err := Load(g, path)
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestLoadRejectsNonLvarForm(t *testing.T) {
	g := mustGrammars(t)
	path := writeMagic(t, `(defpclass foo [a])`)

	_, err := Load(g, path)
	require.Error(t, err)
}

func TestWriteThenLoadRoundTrips(t *testing.T) {
	g := mustGrammars(t)

	table := ir.NewLvarTable()
	table.InsertIfAbsent("speed", ir.LvarDefault{Value: ir.IntLiteral(7)})
	table.InsertIfAbsent("label", ir.LvarDefault{Value: ir.KeywordLiteral("fast")})
	table.InsertIfAbsent("unspecified", ir.LvarDefault{Unset: true})

	path := filepath.Join(t.TempDir(), "out.lisp")
	require.NoError(t, Write(path, table, []string{"a.pamela", "b.pamela"}))

	loaded, err := Load(g, path)
	require.NoError(t, err)
	assert.Equal(t, table.Snapshot(), loaded)
}

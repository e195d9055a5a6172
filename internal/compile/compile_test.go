package compile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pamela-lang/pamela/internal/compile"
	"github.com/pamela-lang/pamela/internal/ir"
)

func writePamela(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

// TestBoundaryScenarios covers the seven error rows of spec §8's
// boundary-scenario table: every structural/semantic error is
// one-producer-stops-all. The two non-error rows are covered elsewhere: the
// empty magic file by TestEmptyMagicFileYieldsNoError below, and the
// slack-sequence desugar by internal/build's
// TestBuildSlackSequenceInterposesDefaultDelays.
func TestBoundaryScenarios(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string // substring expected in the error message
	}{
		{
			name:    "bad-args-not-a-vector",
			src:     `(defpclass bad-args :not-a-vector)`,
			wantErr: "args",
		},
		{
			name:    "no-sym-args",
			src:     `(defpclass no-sym-args [:a 123])`,
			wantErr: "symbols",
		},
		{
			name:    "bad-meta-key",
			src:     `(defpclass bad-meta-key [] (:meta {:foo :bar}))`,
			wantErr: "invalid",
		},
		{
			name:    "bad-meta-version",
			src:     `(defpclass bad-meta-ver [] (:meta {:version 1.0}))`,
			wantErr: "version",
		},
		{
			name: "bad-meta-depends-wrong-version",
			src: `(defpclass thing [] (:meta {:version "0.2.0"}))
(defpclass bad-meta-depends-wrong-version [] (:meta {:depends [[thing "1.0"]]}))`,
			wantErr: "available version",
		},
		{
			name: "arity-mismatch",
			src: `(defpclass p []
  (defpmethod m [x] (sequence))
  (defpmethod caller [] (sequence (this m))))`,
			wantErr: "has 0 args",
		},
		{
			name: "bad-initializer-mode",
			src: `(defpclass pwrvals [] (:modes [:high :low]))
(defpclass bad-initializer []
  (:field pwr (pwrvals :initial :medium)))`,
			wantErr: "defined modes",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writePamela(t, dir, "input.pamela", tc.src)

			_, err := compile.Compile(compile.Options{Input: []string{path}})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestEmptyMagicFileYieldsNoError(t *testing.T) {
	dir := t.TempDir()
	magicPath := writePamela(t, dir, "empty.magic", "")
	srcPath := writePamela(t, dir, "input.pamela", `(defpclass p [])`)

	result, err := compile.Compile(compile.Options{Input: []string{srcPath}, Magic: magicPath})
	require.NoError(t, err)
	require.NotNil(t, result)
	_, hasLvars := result.IR[ir.LvarsKey]
	assert.False(t, hasLvars)
}

func TestCheckOnlyReturnsRawTree(t *testing.T) {
	dir := t.TempDir()
	path := writePamela(t, dir, "input.pamela", `(defpclass p [])`)

	result, err := compile.Compile(compile.Options{Input: []string{path}, CheckOnly: true})
	require.NoError(t, err)
	require.Nil(t, result.IR)
	require.Contains(t, result.Tree, path)
	assert.Len(t, result.Tree[path], 1)
}

func TestRejectsNonPamelaExtension(t *testing.T) {
	dir := t.TempDir()
	path := writePamela(t, dir, "input.txt", `(defpclass p [])`)

	_, err := compile.Compile(compile.Options{Input: []string{path}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".pamela extension")
}

func TestMissingInputFile(t *testing.T) {
	_, err := compile.Compile(compile.Options{Input: []string{"/nonexistent/does-not-exist.pamela"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file not found")
}

// TestCompileIsDeterministic covers spec §8's "parsing is deterministic"
// invariant: compiling the same input twice yields identical canonical IR.
func TestCompileIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := writePamela(t, dir, "input.pamela", `(defpclass p [] (:modes [:on :off]))`)

	r1, err := compile.Compile(compile.Options{Input: []string{path}})
	require.NoError(t, err)
	r2, err := compile.Compile(compile.Options{Input: []string{path}})
	require.NoError(t, err)

	j1, err := ir.MarshalCanonical(r1.IR)
	require.NoError(t, err)
	j2, err := ir.MarshalCanonical(r2.IR)
	require.NoError(t, err)
	assert.Equal(t, string(j1), string(j2))
}

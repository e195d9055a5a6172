package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pamela-lang/pamela/internal/cli"
)

func writeFixture(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func runRoot(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	root := cli.NewRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

func TestCompileCommandTextOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "input.pamela", `(defpclass p [] (:modes [:on :off]))`)

	out, err := runRoot(t, "compile", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"p"`)
	assert.Contains(t, out, "modes")
}

func TestCompileCommandJSONOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "input.pamela", `(defpclass p [])`)

	out, err := runRoot(t, "--format", "json", "compile", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`)
}

func TestCompileCommandFailsOnError(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "input.pamela", `(defpclass bad :not-a-vector)`)

	_, err := runRoot(t, "compile", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(err))
}

func TestCompileCommandUsesCacheOnSecondRun(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "input.pamela", `(defpclass p [] (:modes [:on :off]))`)
	cachePath := filepath.Join(dir, "compile.db")

	out1, err := runRoot(t, "compile", "--cache", cachePath, path)
	require.NoError(t, err)
	assert.Contains(t, out1, `"p"`)

	out2, err := runRoot(t, "--verbose", "compile", "--cache", cachePath, path)
	require.NoError(t, err)
	assert.Contains(t, out2, "cache hit")
	assert.Contains(t, out2, `"p"`)
}

func TestCheckCommandReportsFormCounts(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "input.pamela", `(defpclass p [])`)

	out, err := runRoot(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 top-level form")
}

func TestMagicCommandPrintsLvars(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "defaults.magic", `(lvar "speed" 10)`)

	out, err := runRoot(t, "magic", path)
	require.NoError(t, err)
	assert.Contains(t, out, "speed")
}

func TestRootRejectsInvalidFormat(t *testing.T) {
	_, err := runRoot(t, "--format", "xml", "check", "whatever.pamela")
	require.Error(t, err)
}

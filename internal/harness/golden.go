// Package harness provides golden-file snapshot testing for compiled IR,
// adapted from the teacher's internal/harness golden-trace comparison: here
// the snapshot subject is a compile.Result's canonical IR rather than a
// scenario's execution trace.
package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/pamela-lang/pamela/internal/ir"
)

// AssertGoldenIR compares tree's canonical JSON serialization against the
// golden file testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./... -run TestGolden -update
func AssertGoldenIR(t *testing.T, name string, tree ir.IR) {
	t.Helper()

	data, err := ir.MarshalCanonical(tree)
	if err != nil {
		t.Fatalf("marshaling canonical IR for golden %q: %v", name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

package harness_test

import (
	"testing"

	"github.com/pamela-lang/pamela/internal/harness"
	"github.com/pamela-lang/pamela/internal/ir"
)

func TestAssertGoldenIRStateVariable(t *testing.T) {
	tree := ir.IR{"x": ir.StateVariableEntry{}}
	harness.AssertGoldenIR(t, "state-variable-hoist", tree)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pamela-lang/pamela/internal/compile"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
}

// NewCheckCommand creates the `pamelac check` command: parse-only, no
// build/validate pass (spec §6 CheckOnly).
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "check <file.pamela>...",
		Short:         "Parse PAMELA sources without building or validating",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	return cmd
}

func runCheck(opts *CheckOptions, inputs []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result, err := compile.Compile(compile.Options{Input: inputs, CheckOnly: true})
	if err != nil {
		return outputError(formatter, ClassifyError(err.Error()), err.Error(), ExitFailure)
	}

	counts := make(map[string]int, len(result.Tree))
	for path, forms := range result.Tree {
		counts[path] = len(forms)
	}

	if opts.Format == "json" {
		return formatter.Success(counts)
	}
	for path, n := range counts {
		fmt.Fprintf(formatter.Writer, "%s: %d top-level form(s)\n", path, n)
	}
	return nil
}

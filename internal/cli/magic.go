package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pamela-lang/pamela/internal/magic"
	"github.com/pamela-lang/pamela/internal/read"
)

// NewMagicCommand creates the `pamelac magic` command, which loads a magic
// (lvar-defaults) file on its own and reports its contents — useful for
// inspecting a sidecar file without running a full compile.
func NewMagicCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "magic <file.magic>",
		Short:         "Parse and print a magic (lvar-defaults) file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMagic(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runMagic(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	g, err := read.LoadGrammars()
	if err != nil {
		return outputError(formatter, ErrCodeGeneric, err.Error(), ExitCommandError)
	}

	table, err := magic.Load(g, path)
	if err != nil {
		return outputError(formatter, ClassifyError(err.Error()), err.Error(), ExitFailure)
	}

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	if opts.Format == "json" {
		return formatter.Success(table)
	}
	for _, name := range names {
		def := table[name]
		if def.Unset {
			fmt.Fprintf(formatter.Writer, "%s: :unset\n", name)
			continue
		}
		fmt.Fprintf(formatter.Writer, "%s: %v\n", name, def.Value)
	}
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pamela-lang/pamela/internal/cache"
	"github.com/pamela-lang/pamela/internal/compile"
	"github.com/pamela-lang/pamela/internal/ir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Magic       string
	OutputMagic string
	Output      string
	CacheFile   string
}

// NewCompileCommand creates the `pamelac compile` command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <file.pamela>...",
		Short: "Compile PAMELA sources to validated canonical IR",
		Long: `Compile one or more .pamela sources through the grammar loader, magic
pre-parser, IR builder and semantic validator, producing canonical IR JSON.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Magic, "magic", "", "path to a magic (lvar-defaults) file to seed")
	cmd.Flags().StringVar(&opts.OutputMagic, "output-magic", "", "path to write discovered lvar defaults to")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file for canonical IR JSON")
	cmd.Flags().StringVar(&opts.CacheFile, "cache", "", "SQLite cache file (content-addressed by raw input content)")

	return cmd
}

func runCompile(opts *CompileOptions, inputs []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var c *cache.Cache
	if opts.CacheFile != "" {
		var err error
		c, err = cache.Open(opts.CacheFile)
		if err != nil {
			slog.Error("cache open failed", "path", opts.CacheFile, "error", err)
			return outputError(formatter, ErrCodeIO, err.Error(), ExitCommandError)
		}
		defer c.Close()
	}

	var irJSON []byte

	if c != nil {
		hash, err := rawInputContentHash(inputs, opts.Magic)
		if err != nil {
			return outputError(formatter, ErrCodeIO, err.Error(), ExitCommandError)
		}

		cached, hit, err := c.Lookup(ctx, hash)
		if err != nil {
			slog.Error("cache lookup failed", "hash", hash, "error", err)
			return outputError(formatter, ErrCodeIO, err.Error(), ExitCommandError)
		}
		if hit {
			formatter.VerboseLog("cache hit for content hash %s; skipping grammar/build/validate", hash)
			irJSON = cached
		} else {
			irJSON, err = doCompile(opts, inputs)
			if err != nil {
				return outputError(formatter, ClassifyError(err.Error()), err.Error(), ExitFailure)
			}
			if err := c.Store(ctx, hash, inputs, irJSON); err != nil {
				slog.Error("cache store failed", "hash", hash, "error", err)
				return outputError(formatter, ErrCodeIO, err.Error(), ExitCommandError)
			}
			formatter.VerboseLog("cached under content hash %s", hash)
		}
	} else {
		var err error
		irJSON, err = doCompile(opts, inputs)
		if err != nil {
			return outputError(formatter, ClassifyError(err.Error()), err.Error(), ExitFailure)
		}
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, irJSON, 0o644); err != nil {
			return outputError(formatter, ErrCodeIO, fmt.Sprintf("writing %s: %v", opts.Output, err), ExitCommandError)
		}
	}

	if opts.Format == "json" {
		return formatter.Success(json.RawMessage(irJSON))
	}
	fmt.Fprintln(formatter.Writer, string(irJSON))
	return nil
}

// doCompile runs the full four-stage pipeline and returns the validated
// IR's canonical JSON.
func doCompile(opts *CompileOptions, inputs []string) ([]byte, error) {
	result, err := compile.Compile(compile.Options{
		Input:       inputs,
		Magic:       opts.Magic,
		OutputMagic: opts.OutputMagic,
	})
	if err != nil {
		return nil, err
	}
	return ir.MarshalCanonical(result.IR)
}

// rawInputContentHash hashes the raw bytes of every input file (in sorted
// path order, so argument order doesn't affect the cache key) plus the
// magic file's bytes if given. Computing this before running the pipeline
// is what lets a cache hit skip stages 2-4 entirely.
func rawInputContentHash(inputs []string, magicPath string) (string, error) {
	sorted := append([]string(nil), inputs...)
	sort.Strings(sorted)

	contents := make(map[string]string, len(sorted)+1)
	for _, path := range sorted {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		contents[path] = string(data)
	}
	if magicPath != "" {
		data, err := os.ReadFile(magicPath)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", magicPath, err)
		}
		contents["magic:"+magicPath] = string(data)
	}
	return ir.ContentHash(contents)
}

func outputError(f *OutputFormatter, code, message string, exitCode int) error {
	_ = f.Error(code, message)
	return NewExitError(exitCode, message)
}

// Package main provides the fmschema CLI: it expands a set of markdown
// front-matter documents against a JSON Schema whose x-* keywords describe
// a cross-document transformation, then emits the aggregated result as
// JSON, YAML, or TOML.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.fmschema.dev/fmschema/cliconfig"
	"go.fmschema.dev/fmschema/profile"
	"go.fmschema.dev/fmschema/version"
)

// Exit codes, per the error handling design: 0 success, 1 user error
// (bad args, unreadable schema, zero glob matches, failed --validate),
// 2 pipeline failure (an fmerr.Error surfaced by the core).
const (
	exitOK        = 0
	exitUserError = 1
	exitCoreError = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cliCfg := cliconfig.NewConfig()
	profCfg := profile.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "fmschema <schema-path> <output-path> <input-pattern...>",
		Short: "Aggregate markdown front matter through a schema-directed transformation",
		Long: `fmschema reads a JSON Schema annotated with x-* directives, evaluates every
markdown file matched by the given glob patterns against it, and writes the
aggregated, derived, and rendered result as JSON, YAML, or TOML.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, cliCfg, profCfg, args)
		},
	}

	cliCfg.RegisterFlags(rootCmd.Flags())
	profCfg.RegisterFlags(rootCmd.Flags())
	rootCmd.SetArgs(args)

	if err := cliCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := profCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	rootCmd.AddCommand(newSchemaCmd())

	exitCode := exitOK

	rootCmd.RunE = wrapExit(&exitCode, rootCmd.RunE)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		if exitCode == exitOK {
			exitCode = exitUserError
		}
	}

	return exitCode
}

// wrapExit lets a RunE report which exit code its failure corresponds to,
// without cobra's own error path collapsing every failure to the same code.
func wrapExit(code *int, inner func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := inner(cmd, args)
		if err == nil {
			return nil
		}

		if classified, ok := err.(*exitError); ok {
			*code = classified.code

			return classified.err
		}

		*code = exitCoreError

		return err
	}
}

// exitError pairs an error with the exit code it should produce, so
// user-error and pipeline-failure paths stay distinguishable after
// cobra's Execute unwinds.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

func coreError(err error) error {
	return &exitError{code: exitCoreError, err: err}
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	return slog.New(handler)
}

package cliconfig

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.fmschema.dev/fmschema/pipeline"
)

const defaultMemorySoftLimitBytes = 64 * 1024 * 1024

// Flags holds CLI flag names, allowing callers to customize flag names
// while keeping sensible defaults via [NewConfig].
type Flags struct {
	Verbose         string
	Quiet           string
	DryRun          string
	Parallel        string
	MaxWorkers      string
	Validate        string
	MemorySoftLimit string
	Indent          string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds the flag values that shape one pipeline run: logging
// verbosity, concurrency, schema pre-validation, and output formatting.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewPipelineOptions] to turn the
// parsed flags into a [pipeline.Options], and [Config.LogLevel] to size a
// [log/slog] handler accordingly.
type Config struct {
	Flags Flags

	Verbose         bool
	Quiet           bool
	DryRun          bool
	Parallel        bool
	MaxWorkers      int
	Validate        bool
	MemorySoftLimit int
	Indent          int
}

// NewConfig creates a new [Config] with default flag names and values.
func NewConfig() *Config {
	f := Flags{
		Verbose:         "verbose",
		Quiet:           "quiet",
		DryRun:          "dry-run",
		Parallel:        "parallel",
		MaxWorkers:      "max-workers",
		Validate:        "validate",
		MemorySoftLimit: "memory-soft-limit",
		Indent:          "indent",
	}

	return f.NewConfig()
}

// RegisterFlags adds the pipeline run flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&c.Verbose, c.Flags.Verbose, "v", false,
		"raise logging to debug and print a JSON diagnostic on failure")
	flags.BoolVarP(&c.Quiet, c.Flags.Quiet, "q", false,
		"suppress the one-line summary on success")
	flags.BoolVar(&c.DryRun, c.Flags.DryRun, false,
		"run the pipeline without writing the output file")
	flags.BoolVarP(&c.Parallel, c.Flags.Parallel, "p", false,
		"evaluate independent per-document operations concurrently")
	flags.IntVar(&c.MaxWorkers, c.Flags.MaxWorkers, 0,
		"maximum worker goroutines when --parallel is set (0 = runtime default)")
	flags.BoolVar(&c.Validate, c.Flags.Validate, false,
		"validate each document's front matter against the schema before running the pipeline")
	flags.IntVar(&c.MemorySoftLimit, c.Flags.MemorySoftLimit, defaultMemorySoftLimitBytes,
		"soft memory bound in bytes for aggregation")
	flags.IntVar(&c.Indent, c.Flags.Indent, 2,
		"indentation width for JSON/YAML output")
}

// RegisterCompletions registers shell completions for the pipeline run flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.MaxWorkers, c.Flags.MemorySoftLimit, c.Flags.Indent} {
		err := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// NewPipelineOptions builds a [pipeline.Options] from the parsed flags for
// the given output format.
func (c *Config) NewPipelineOptions(format pipeline.OutputFormat) pipeline.Options {
	return pipeline.Options{
		OutputFormat:         format,
		Indent:               c.Indent,
		Parallel:             c.Parallel,
		MaxWorkers:           c.MaxWorkers,
		MemorySoftLimitBytes: c.MemorySoftLimit,
	}
}

// LogLevel returns the [slog.Level] implied by --verbose/--quiet, with
// --verbose taking priority when both are set.
func (c *Config) LogLevel() slog.Level {
	switch {
	case c.Verbose:
		return slog.LevelDebug
	case c.Quiet:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

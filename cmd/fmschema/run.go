package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"go.fmschema.dev/fmschema/aggregate"
	"go.fmschema.dev/fmschema/cliconfig"
	"go.fmschema.dev/fmschema/fmerr"
	"go.fmschema.dev/fmschema/format"
	"go.fmschema.dev/fmschema/frontmatter"
	"go.fmschema.dev/fmschema/pipeline"
	"go.fmschema.dev/fmschema/profile"
	"go.fmschema.dev/fmschema/schemaref"
)

func runPipeline(cmd *cobra.Command, cliCfg *cliconfig.Config, profCfg *profile.Config, args []string) error {
	schemaPath := args[0]
	outputPath := args[1]
	patterns := args[2:]

	logger := newLogger(cliCfg.LogLevel())

	outputFormat, err := formatForPath(outputPath)
	if err != nil {
		return userError(err)
	}

	profiler := profCfg.NewProfiler()
	if err := profiler.Start(); err != nil {
		return userError(fmt.Errorf("start profiling: %w", err))
	}

	defer func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			fmt.Fprintf(os.Stderr, "stop profiling: %v\n", stopErr)
		}
	}()

	resolved, err := schemaref.Resolve(schemaPath)
	if err != nil {
		return userError(fmt.Errorf("load schema: %w", err))
	}

	paths, err := expandPatterns(patterns)
	if err != nil {
		return userError(err)
	}

	if len(paths) == 0 {
		return userError(fmt.Errorf("no files matched: %s", strings.Join(patterns, ", ")))
	}

	batch, err := loadBatch(paths)
	if err != nil {
		return userError(err)
	}

	if cliCfg.Validate {
		if err := validateBatch(resolved, batch); err != nil {
			return userError(err)
		}
	}

	logger.Debug("pipeline starting", "documents", len(batch), "schema", schemaPath)

	p := pipeline.New()

	result, err := p.Run(cmd.Context(), resolved.Value, batch, cliCfg.NewPipelineOptions(outputFormat))
	if err != nil {
		logFailure(logger, cliCfg.Verbose, err)

		return coreError(err)
	}

	encoded, err := format.Marshal(result.Value, formatPackageFormat(outputFormat), cliCfg.Indent)
	if err != nil {
		logFailure(logger, cliCfg.Verbose, err)

		return coreError(err)
	}

	if cliCfg.DryRun {
		if !cliCfg.Quiet {
			fmt.Fprintf(os.Stdout, "dry run: %d documents, %d bytes would be written to %s\n",
				len(batch), len(encoded), outputPath)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
		return userError(fmt.Errorf("write output: %w", err))
	}

	if !cliCfg.Quiet {
		fmt.Fprintf(os.Stdout, "wrote %s (%d documents, %d bytes)\n", outputPath, len(batch), len(encoded))
	}

	return nil
}

// expandPatterns resolves every glob pattern against the working directory,
// deduplicating matches so overlapping patterns don't double-process a file.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)

	var out []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}

			seen[match] = true

			out = append(out, match)
		}
	}

	sort.Strings(out)

	return out, nil
}

func loadBatch(paths []string) (aggregate.Batch, error) {
	batch := make(aggregate.Batch, 0, len(paths))

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		doc, err := frontmatter.Extract(path, content)
		if err != nil {
			return nil, err
		}

		batch = append(batch, aggregate.Document{SourcePath: doc.SourcePath, Data: doc.Data})
	}

	return batch, nil
}

func validateBatch(resolved schemaref.Resolved, batch aggregate.Batch) error {
	for _, doc := range batch {
		if err := schemaref.Validate(resolved.Schema, doc.Data.ToAny()); err != nil {
			return fmt.Errorf("%s: %w", doc.SourcePath, err)
		}
	}

	return nil
}

func formatForPath(path string) (pipeline.OutputFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return pipeline.FormatJSON, nil
	case ".yml", ".yaml":
		return pipeline.FormatYAML, nil
	case ".toml":
		return pipeline.FormatTOML, nil
	default:
		return "", fmt.Errorf("unrecognized output extension: %s", path)
	}
}

func formatPackageFormat(f pipeline.OutputFormat) format.Format {
	return format.Format(f)
}

func logFailure(logger *slog.Logger, verbose bool, err error) {
	logger.Error("pipeline failed", "error", err)

	if !verbose {
		return
	}

	var ferr *fmerr.Error
	if !errors.As(err, &ferr) {
		return
	}

	diagnostic := struct {
		ErrorType string `json:"error_type"`
		NodePath  string `json:"node_path"`
		Message   string `json:"message"`
	}{
		ErrorType: ferr.Cause.Error(),
		NodePath:  ferr.NodePath,
		Message:   ferr.Error(),
	}

	payload, marshalErr := json.Marshal(diagnostic)
	if marshalErr != nil {
		return
	}

	fmt.Fprintln(os.Stderr, string(payload))
}

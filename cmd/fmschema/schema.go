package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"go.fmschema.dev/fmschema/frontmatter"
	"go.fmschema.dev/fmschema/magicschema"
)

// newSchemaCmd groups schema-authoring subcommands under `fmschema schema`.
func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Generate or inspect schema files",
	}

	cmd.AddCommand(newSchemaInitCmd())

	return cmd
}

// newSchemaInitCmd bootstraps a schema skeleton from one or more sample
// documents' front matter, reusing magicschema's YAML-to-JSON-Schema
// inference. A "x-<name>: <value>" comment on a sample field seeds that
// field's Extra map with a placeholder directive, saving the trip of
// adding it by hand once the shape is right.
func newSchemaInitCmd() *cobra.Command {
	cfg := magicschema.NewConfig()

	cmd := &cobra.Command{
		Use:   "init <sample-file.md> [sample-file2.md ...]",
		Short: "Bootstrap a schema skeleton from sample front-matter documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return schemaInit(cfg, args)
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	if err := cfg.RegisterCompletions(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

func schemaInit(cfg *magicschema.Config, args []string) error {
	gen := cfg.NewGenerator()

	var inputs [][]byte

	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return userError(fmt.Errorf("%w: %w", magicschema.ErrReadInput, err))
		}

		if _, err := frontmatter.Extract(path, content); err != nil {
			return userError(err)
		}

		// Pass the raw front-matter block so comments (x- hints, field
		// descriptions), anchors and merge keys reach the generator.
		header := strings.TrimPrefix(strings.ReplaceAll(string(content), "\r\n", "\n"), "---\n")
		if end := strings.Index(header, "\n---"); end >= 0 {
			header = header[:end+1]
		}

		inputs = append(inputs, []byte(header))
	}

	schema, err := gen.Generate(inputs...)
	if err != nil {
		return userError(err)
	}

	indent := "  "
	if cfg.Indent > 0 {
		indent = ""
		for range cfg.Indent {
			indent += " "
		}
	}

	out, err := json.MarshalIndent(schema, "", indent)
	if err != nil {
		return userError(fmt.Errorf("%w: %w", magicschema.ErrWriteOutput, err))
	}

	out = append(out, '\n')

	if cfg.Output == "" || cfg.Output == "-" {
		if _, err := os.Stdout.Write(out); err != nil {
			return userError(fmt.Errorf("%w: %w", magicschema.ErrWriteOutput, err))
		}

		return nil
	}

	if err := os.WriteFile(cfg.Output, out, 0o644); err != nil {
		return userError(fmt.Errorf("%w: %w", magicschema.ErrWriteOutput, err))
	}

	return nil
}

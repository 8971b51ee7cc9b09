// Package cliconfig holds the CLI flag surface for the pipeline run command:
// a Config struct carrying flag values, a Flags struct carrying flag names
// (so an embedding command can rename them), and a NewPipelineOptions method
// that turns flag values into a [pipeline.Options]. This mirrors the
// Config/Flags split used throughout magicschema and profile.
package cliconfig

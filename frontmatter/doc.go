// Package frontmatter splits a Markdown file into its YAML front-matter
// block and body, and parses the front-matter into a [value.Value]. It is
// upstream of the transformation core: the core only ever sees the parsed
// result, never the raw file.
package frontmatter

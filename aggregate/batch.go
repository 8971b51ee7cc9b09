package aggregate

import "go.fmschema.dev/fmschema/value"

// Document is one front-matter document: its source path (for diagnostics
// and the source manifest) and its parsed front-matter data.
type Document struct {
	SourcePath string
	Data       value.Value
}

// Batch is an ordered sequence of documents. Order is significant: derive
// and merge both fold the batch left to right.
type Batch []Document

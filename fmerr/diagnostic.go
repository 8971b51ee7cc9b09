package fmerr

// Diagnostic is the JSON shape printed on stderr under --verbose: enough
// structure for a caller to act on the failure programmatically, without
// re-parsing Error().
type Diagnostic struct {
	ErrorType string            `json:"error_type"`
	NodePath  string            `json:"node_path,omitempty"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// ToDiagnostic converts e into its JSON diagnostic form. errorType is the
// sentinel's message (e.g. "directive conflict"), used verbatim so the
// diagnostic and [Error.Error] agree.
func (e *Error) ToDiagnostic() Diagnostic {
	return Diagnostic{
		ErrorType: e.Cause.Error(),
		NodePath:  e.NodePath,
		Message:   e.Error(),
		Fields:    e.Fields,
	}
}

package fmerr

import (
	"errors"
	"strconv"
)

// Sentinel errors, one per taxonomy entry in spec §7. Match against these
// with [errors.Is]; use the accompanying constructors to build an [Error]
// carrying the contextual payload.
var (
	// Directive errors.
	ErrDirectiveConflict          = errors.New("directive conflict")
	ErrDirectiveNotApplicable     = errors.New("directive not applicable")
	ErrDirectiveDependencyMissing = errors.New("directive dependency missing")
	ErrInvalidDirectivePayload    = errors.New("invalid directive payload")

	// Evaluator errors.
	ErrJMESPathCompilationFailed = errors.New("jmespath compilation failed")
	ErrJMESPathExecutionFailed   = errors.New("jmespath execution failed")
	ErrInvalidJMESPathResult     = errors.New("invalid jmespath result")

	// Data/path errors.
	ErrPathNotFound   = errors.New("path not found")
	ErrPathOutOfRange = errors.New("path out of range")
	ErrTypeMismatch   = errors.New("type mismatch")

	// Template errors.
	ErrVariableNotFound      = errors.New("variable not found")
	ErrInvalidTemplateFormat = errors.New("invalid template format")

	// Output errors.
	ErrUnsupportedFloat  = errors.New("unsupported float")
	ErrUnsupportedFormat = errors.New("unsupported format")

	// Resource errors.
	ErrMemoryBoundsViolation = errors.New("memory bounds violation")
)

// Error is the structured payload every pipeline component returns. It
// wraps one of the sentinels above and carries the context needed to
// reconstruct a diagnostic without re-running the pipeline.
type Error struct {
	Cause    error
	NodePath string
	Fields   map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Cause.Error()
	if e.NodePath != "" {
		msg += ": at " + e.NodePath
	}

	for _, k := range fieldOrder(e.Fields) {
		msg += ", " + k + "=" + e.Fields[k]
	}

	return msg
}

// Unwrap allows errors.Is(err, fmerr.ErrDirectiveConflict) and friends.
func (e *Error) Unwrap() error { return e.Cause }

// fieldOrder returns a deterministic key order for a Fields map so
// Error() is stable across runs (important for property 7, purity).
func fieldOrder(fields map[string]string) []string {
	order := []string{"directive", "depends_on", "expression", "message", "expected", "got", "reason", "limit_bytes"}

	var out []string

	for _, k := range order {
		if _, ok := fields[k]; ok {
			out = append(out, k)
		}
	}

	return out
}

// DirectiveConflict reports that two directives cannot both attach to the
// same schema node (e.g. x-derived-from and x-merge-arrays together).
func DirectiveConflict(nodePath, reason string) *Error {
	return &Error{Cause: ErrDirectiveConflict, NodePath: nodePath, Fields: map[string]string{"reason": reason}}
}

// DirectiveNotApplicable reports a directive attached to a node of the
// wrong kind (e.g. x-frontmatter-part on a scalar node).
func DirectiveNotApplicable(nodePath, directive string) *Error {
	return &Error{Cause: ErrDirectiveNotApplicable, NodePath: nodePath, Fields: map[string]string{"directive": directive}}
}

// DirectiveDependencyMissing reports that a directive's declared dependency
// is not present on the same node.
func DirectiveDependencyMissing(nodePath, directive, dependsOn string) *Error {
	return &Error{
		Cause:    ErrDirectiveDependencyMissing,
		NodePath: nodePath,
		Fields:   map[string]string{"directive": directive, "depends_on": dependsOn},
	}
}

// InvalidDirectivePayload reports that a directive's configuration could
// not be parsed from the schema value.
func InvalidDirectivePayload(nodePath, directive, reason string) *Error {
	return &Error{
		Cause:    ErrInvalidDirectivePayload,
		NodePath: nodePath,
		Fields:   map[string]string{"directive": directive, "reason": reason},
	}
}

// JMESPathCompilationFailed reports a compile-time failure of a JMESPath
// expression.
func JMESPathCompilationFailed(expression, message string) *Error {
	return &Error{
		Cause:  ErrJMESPathCompilationFailed,
		Fields: map[string]string{"expression": expression, "message": message},
	}
}

// JMESPathExecutionFailed reports a runtime failure evaluating a compiled
// JMESPath expression.
func JMESPathExecutionFailed(expression, message string) *Error {
	return &Error{
		Cause:  ErrJMESPathExecutionFailed,
		Fields: map[string]string{"expression": expression, "message": message},
	}
}

// InvalidJMESPathResult reports that a JMESPath evaluation produced a value
// of a type the call site cannot use (e.g. an object where an array was
// required).
func InvalidJMESPathResult(expression, got string) *Error {
	return &Error{
		Cause:  ErrInvalidJMESPathResult,
		Fields: map[string]string{"expression": expression, "got": got},
	}
}

// PathNotFound reports a required path that resolved to nothing.
func PathNotFound(nodePath string) *Error {
	return &Error{Cause: ErrPathNotFound, NodePath: nodePath}
}

// PathOutOfRange reports an array index write beyond the array's length.
func PathOutOfRange(nodePath string) *Error {
	return &Error{Cause: ErrPathOutOfRange, NodePath: nodePath}
}

// TypeMismatch reports a value of the wrong kind at nodePath.
func TypeMismatch(nodePath, expected, got string) *Error {
	return &Error{
		Cause:    ErrTypeMismatch,
		NodePath: nodePath,
		Fields:   map[string]string{"expected": expected, "got": got},
	}
}

// VariableNotFound reports a required (non-optional) template placeholder
// whose path did not resolve.
func VariableNotFound(nodePath string) *Error {
	return &Error{Cause: ErrVariableNotFound, NodePath: nodePath}
}

// InvalidTemplateFormat reports a template scalar slot that received an
// array or map, which has no defined coercion to string.
func InvalidTemplateFormat(nodePath, reason string) *Error {
	return &Error{Cause: ErrInvalidTemplateFormat, NodePath: nodePath, Fields: map[string]string{"reason": reason}}
}

// UnsupportedFloat reports a non-finite float (NaN or +/-Inf) reaching the
// JSON formatter, which cannot represent it.
func UnsupportedFloat(nodePath string) *Error {
	return &Error{Cause: ErrUnsupportedFloat, NodePath: nodePath}
}

// UnsupportedFormat reports a value shape the selected output format
// cannot represent, e.g. a TOML array of arrays or a map with non-string
// keys.
func UnsupportedFormat(reason string) *Error {
	return &Error{Cause: ErrUnsupportedFormat, Fields: map[string]string{"reason": reason}}
}

// MemoryBoundsViolation reports that an aggregation buffer exceeded its
// configured soft limit.
func MemoryBoundsViolation(nodePath string, limitBytes int) *Error {
	return &Error{
		Cause:    ErrMemoryBoundsViolation,
		NodePath: nodePath,
		Fields:   map[string]string{"limit_bytes": strconv.Itoa(limitBytes)},
	}
}

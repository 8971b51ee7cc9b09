package jmespath

import (
	gojmespath "github.com/jmespath/go-jmespath"

	"go.fmschema.dev/fmschema/fmerr"
	"go.fmschema.dev/fmschema/value"
)

// Evaluator compiles and runs JMESPath expressions over [value.Value]
// trees.
type Evaluator struct{}

// NewEvaluator returns a stateless Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Compiled is a JMESPath expression ready to evaluate. It is safe to share
// across goroutines: go-jmespath's compiled AST is read-only after
// [Evaluator.Compile] returns.
type Compiled struct {
	expression string
	program    *gojmespath.JMESPath
}

// Expression returns the original source text, used in error payloads.
func (c Compiled) Expression() string {
	return c.expression
}

// Compile parses expr into a [Compiled] expression. A syntax error
// produces [fmerr.ErrJMESPathCompilationFailed].
func (e *Evaluator) Compile(expr string) (Compiled, error) {
	program, err := gojmespath.Compile(expr)
	if err != nil {
		return Compiled{}, fmerr.JMESPathCompilationFailed(expr, err.Error())
	}

	return Compiled{expression: expr, program: program}, nil
}

// Evaluate runs c against v. Per the evaluator contract, evaluating against
// [value.Null] always yields [value.Null] rather than an error -- this is
// how "missing optional field" stays a non-fatal outcome upstream. Any
// other runtime failure produces [fmerr.ErrJMESPathExecutionFailed].
func (c Compiled) Evaluate(v value.Value) (value.Value, error) {
	if v.IsNull() {
		return value.Null(), nil
	}

	result, err := c.program.Search(v.ToAny())
	if err != nil {
		return value.Value{}, fmerr.JMESPathExecutionFailed(c.expression, err.Error())
	}

	return value.FromAny(result), nil
}

// EvaluateArray runs c against v and requires the result to be an array,
// as x-jmespath-filter does. A scalar or map result produces
// [fmerr.ErrInvalidJMESPathResult].
func (c Compiled) EvaluateArray(v value.Value) (value.Value, error) {
	result, err := c.Evaluate(v)
	if err != nil {
		return value.Value{}, err
	}

	if result.Kind() != value.KindArray {
		return value.Value{}, fmerr.InvalidJMESPathResult(c.expression, result.Kind().String())
	}

	return result, nil
}

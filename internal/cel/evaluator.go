// Package cel evaluates CEL expressions against the loaded document for
// expression mode: the result of an expression becomes a derived document
// that is re-indexed and explored like any other.
package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
)

// Evaluator compiles and evaluates CEL expressions with the document root
// bound to the variable "_".
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the standard extension libraries
// (strings, encoders, lists, math) enabled.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Evaluate compiles and runs expr against root.
// Example: `_.items.filter(x, x.available)`.
func (e *Evaluator) Evaluate(expr string, root any) (any, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	result, _, err := prg.Eval(map[string]any{"_": root})
	if err != nil {
		return nil, fmt.Errorf("eval error: %w", err)
	}
	return toGo(result), nil
}

// toGo converts a CEL result to native Go values recursively, so the output
// can be fed straight back into the indexer.
func toGo(val ref.Val) any {
	if val == nil {
		return nil
	}
	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	case types.Null:
		return nil
	}

	inner := val.Value()
	switch v := inner.(type) {
	case []ref.Val:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = toGo(elem)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = fromAny(elem)
		}
		return out
	case map[string]any:
		return fromMap(v)
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprintf("%v", k.Value())] = toGo(item)
		}
		return out
	}
	return inner
}

func fromAny(v any) any {
	switch t := v.(type) {
	case ref.Val:
		return toGo(t)
	case map[string]any:
		return fromMap(t)
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = fromAny(elem)
		}
		return out
	default:
		return v
	}
}

func fromMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = fromAny(v)
	}
	return out
}

// Package sorrel provides a public API for embedding the Sorrel language interpreter.
//
// The typical host does:
//
//	result, err := sorrel.Execute(`greeting = "Hello, " greeting << "World"`)
//	if err != nil { ... }
//	text, _ := sorrel.StringValue(result)
package sorrel

import (
	"github.com/sorrel-lang/sorrel/pkg/sorrel/ast"
	serrors "github.com/sorrel-lang/sorrel/pkg/sorrel/errors"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/evaluator"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/lexer"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/parser"
)

// Value is an alias for evaluator.Object, the interface all Sorrel
// values implement.
type Value = evaluator.Object

// Env is an alias for evaluator.Environment for hosts that keep
// bindings alive across calls.
type Env = evaluator.Environment

// NewEnv creates a fresh top-level environment.
func NewEnv() *Env {
	return evaluator.NewEnvironment()
}

// Execute parses and evaluates source in a fresh environment.
// The returned Value is the value of the last statement, or the
// argument of an explicit return. On failure the Value is nil and the
// error is a *errors.SorrelError.
func Execute(source string) (Value, error) {
	return ExecuteIn(source, evaluator.NewEnvironment())
}

// ExecuteIn parses and evaluates source against an existing
// environment. Bindings created by the program persist in env, so
// consecutive calls share state.
func ExecuteIn(source string, env *Env) (Value, error) {
	program, err := parse(source, env.Filename)
	if err != nil {
		return nil, err
	}

	result := evaluator.Eval(program, env)
	if errObj, ok := result.(*evaluator.Error); ok {
		serr := errObj.ToSorrelError()
		if serr.File == "" && env.Filename != "" {
			serr = serr.WithFile(env.Filename)
		}
		return nil, serr
	}
	if result == nil {
		result = evaluator.NIL
	}
	return result, nil
}

// ExecuteFile parses and evaluates source, tagging errors with the
// given filename.
func ExecuteFile(source, filename string) (Value, error) {
	env := evaluator.NewEnvironment()
	env.Filename = filename
	return ExecuteIn(source, env)
}

// Check parses source without evaluating it. A nil error means the
// program is syntactically valid.
func Check(source string) error {
	_, err := parse(source, "")
	return err
}

func parse(source, filename string) (*ast.Program, error) {
	var l *lexer.Lexer
	if filename != "" {
		l = lexer.NewWithFilename(source, filename)
	} else {
		l = lexer.New(source)
	}

	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.StructuredErrors(); len(errs) > 0 {
		serr := errs[0]
		if serr.File == "" && filename != "" {
			serr = serr.WithFile(filename)
		}
		return nil, serr
	}
	return program, nil
}

// StringValue projects a Value to a Go string. Fails with a type-class
// error when the value is not a string.
func StringValue(v Value) (string, error) {
	s, ok := v.(*evaluator.String)
	if !ok {
		return "", serrors.New("TYPE-0001", map[string]any{
			"Expected": "String",
			"Got":      serrors.TypeName(string(v.Type())),
		})
	}
	return s.Value, nil
}

// IntValue projects a Value to a Go int64. Fails with a type-class
// error when the value is not an integer.
func IntValue(v Value) (int64, error) {
	n, ok := v.(*evaluator.Integer)
	if !ok {
		return 0, serrors.New("TYPE-0001", map[string]any{
			"Expected": "Integer",
			"Got":      serrors.TypeName(string(v.Type())),
		})
	}
	return n.Value, nil
}

// BoolValue projects a Value to a Go bool using the language's
// truthiness rule: only false and nil are false.
func BoolValue(v Value) bool {
	switch v {
	case evaluator.FALSE, evaluator.NIL:
		return false
	}
	if b, ok := v.(*evaluator.Boolean); ok {
		return b.Value
	}
	return true
}

// Inspect renders a Value for display, quoting strings.
func Inspect(v Value) string {
	if s, ok := v.(*evaluator.String); ok {
		return "\"" + s.Value + "\""
	}
	return v.Inspect()
}

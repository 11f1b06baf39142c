// eval_errors.go - Error creation helpers for the Sorrel evaluator
//
// All helpers return *Error objects that can be used directly as
// evaluation results.

package evaluator

import (
	"fmt"

	"github.com/sorrel-lang/sorrel/pkg/sorrel/ast"
	serrors "github.com/sorrel-lang/sorrel/pkg/sorrel/errors"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/lexer"
)

// newErrorWithClass creates a simple error with a class (no error code or catalog).
func newErrorWithClass(class ErrorClass, format string, a ...any) *Error {
	return &Error{
		Class:   class,
		Message: fmt.Sprintf(format, a...),
	}
}

// newStructuredError creates a structured error from the catalog.
func newStructuredError(code string, data map[string]any) *Error {
	serr := serrors.New(code, data)
	return &Error{
		Class:   serr.Class,
		Code:    serr.Code,
		Message: serr.Message,
		Hints:   serr.Hints,
		Data:    serr.Data,
	}
}

// newOperatorError creates a structured operator error.
func newOperatorError(code string, data map[string]any) *Error {
	return newStructuredError(code, data)
}

// newOperatorErrorWithPos creates a structured operator error with position.
func newOperatorErrorWithPos(tok lexer.Token, code string, data map[string]any) *Error {
	err := newStructuredError(code, data)
	err.Line = tok.Line
	err.Column = tok.Column
	return err
}

// newTypeError creates a structured type error for a method argument.
func newTypeError(method, expected string, got ObjectType) *Error {
	return newStructuredError("TYPE-0003", map[string]any{
		"Method":   method,
		"Expected": expected,
		"Got":      serrors.TypeName(string(got)),
	})
}

// newConversionError creates the Ruby-style "no implicit conversion" error
// for operator operands of the wrong type.
func newConversionError(expected string, got ObjectType) *Error {
	return newStructuredError("TYPE-0001", map[string]any{
		"Expected": expected,
		"Got":      serrors.TypeName(string(got)),
	})
}

// newComparisonError creates the error for <=> against an incomparable type.
func newComparisonError(left, right Object) *Error {
	return newStructuredError("TYPE-0002", map[string]any{
		"Left":  typeName(left),
		"Right": typeName(right),
	})
}

func newArityError(method string, got, want int) *Error {
	return newStructuredError("ARITY-0001", map[string]any{
		"Method": method,
		"Got":    got,
		"Want":   want,
	})
}

func newArityErrorRange(method string, got, min, max int) *Error {
	return newStructuredError("ARITY-0002", map[string]any{
		"Method": method,
		"Got":    got,
		"Min":    min,
		"Max":    max,
	})
}

func newArityErrorMin(method string, got, min int) *Error {
	return newStructuredError("ARITY-0003", map[string]any{
		"Method": method,
		"Got":    got,
		"Min":    min,
	})
}

// newUndefinedMethodError creates an undefined method error with a
// did-you-mean hint against the type's method set.
func newUndefinedMethodError(method, typeName string, availableMethods []string) *Error {
	serr := serrors.NewUndefinedMethod(method, typeName, availableMethods)
	return &Error{
		Class:   serr.Class,
		Code:    serr.Code,
		Message: serr.Message,
		Hints:   serr.Hints,
		Data:    serr.Data,
	}
}

// newUndefinedVariableError creates an undefined variable error with a
// did-you-mean hint against the bindings in scope.
func newUndefinedVariableError(node *ast.Identifier, env *Environment) *Error {
	serr := serrors.NewUndefinedIdentifier(node.Value, env.Names())
	return &Error{
		Class:   serr.Class,
		Code:    serr.Code,
		Message: serr.Message,
		Hints:   serr.Hints,
		Line:    node.Token.Line,
		Column:  node.Token.Column,
		Data:    serr.Data,
	}
}

// newResourceError creates the stack-depth error.
func newResourceError(limit int) *Error {
	return newStructuredError("RES-0001", map[string]any{"Limit": limit})
}

// withPosition fills in position info on an error result that lacks it.
func withPosition(result Object, tok lexer.Token) Object {
	if err, ok := result.(*Error); ok && err.Line == 0 {
		err.Line = tok.Line
		err.Column = tok.Column
	}
	return result
}

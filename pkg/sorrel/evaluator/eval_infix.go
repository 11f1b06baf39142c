package evaluator

import (
	"strings"

	"github.com/sorrel-lang/sorrel/pkg/sorrel/lexer"
)

// operatorMethods lists the infix operators that desugar to method
// dispatch on the left operand: `a << b` is `a.<<(b)`. The registry
// entry name is the operator literal itself, Ruby-style.
var operatorMethods = map[string]bool{
	"<<":  true,
	"+":   true,
	"<=>": true,
	"*":   true,
}

func evalInfixExpression(tok lexer.Token, operator string, left, right Object, env *Environment) Object {
	if operatorMethods[operator] {
		return evalOperatorDispatch(tok, operator, left, right, env)
	}

	switch {
	case left.Type() == INTEGER_OBJ && right.Type() == INTEGER_OBJ:
		return evalIntegerInfixExpression(tok, operator, left, right)
	case left.Type() == STRING_OBJ && right.Type() == STRING_OBJ:
		return evalStringInfixExpression(tok, operator, left, right)
	case operator == "==":
		return nativeBoolToSorrelBoolean(objectsEqual(left, right))
	case operator == "!=":
		return nativeBoolToSorrelBoolean(!objectsEqual(left, right))
	default:
		return newOperatorErrorWithPos(tok, "OP-0001", map[string]any{
			"LeftType": typeName(left), "Operator": operator, "RightType": typeName(right),
		})
	}
}

// evalOperatorDispatch resolves an operator through the receiver type's
// dispatch table, with the right operand as the sole argument.
func evalOperatorDispatch(tok lexer.Token, operator string, left, right Object, env *Environment) Object {
	registry := GetRegistryForType(typeName(left))
	if registry == nil {
		return newOperatorErrorWithPos(tok, "OP-0001", map[string]any{
			"LeftType": typeName(left), "Operator": operator, "RightType": typeName(right),
		})
	}

	result := dispatchFromRegistry(registry, left, operator, []Object{right}, env)
	if result == nil {
		return newOperatorErrorWithPos(tok, "OP-0001", map[string]any{
			"LeftType": typeName(left), "Operator": operator, "RightType": typeName(right),
		})
	}
	return withPosition(result, tok)
}

func evalIntegerInfixExpression(tok lexer.Token, operator string, left, right Object) Object {
	leftVal := left.(*Integer).Value
	rightVal := right.(*Integer).Value

	switch operator {
	case "-":
		return &Integer{Value: leftVal - rightVal}
	case "/":
		if rightVal == 0 {
			return newOperatorErrorWithPos(tok, "OP-0002", map[string]any{})
		}
		return &Integer{Value: leftVal / rightVal}
	case "%":
		if rightVal == 0 {
			return newOperatorErrorWithPos(tok, "OP-0002", map[string]any{})
		}
		return &Integer{Value: leftVal % rightVal}
	case "<":
		return nativeBoolToSorrelBoolean(leftVal < rightVal)
	case ">":
		return nativeBoolToSorrelBoolean(leftVal > rightVal)
	case "<=":
		return nativeBoolToSorrelBoolean(leftVal <= rightVal)
	case ">=":
		return nativeBoolToSorrelBoolean(leftVal >= rightVal)
	case "==":
		return nativeBoolToSorrelBoolean(leftVal == rightVal)
	case "!=":
		return nativeBoolToSorrelBoolean(leftVal != rightVal)
	default:
		return newOperatorErrorWithPos(tok, "OP-0001", map[string]any{
			"LeftType": "integer", "Operator": operator, "RightType": "integer",
		})
	}
}

func evalStringInfixExpression(tok lexer.Token, operator string, left, right Object) Object {
	leftVal := left.(*String).Value
	rightVal := right.(*String).Value

	switch operator {
	case "==":
		return nativeBoolToSorrelBoolean(leftVal == rightVal)
	case "!=":
		return nativeBoolToSorrelBoolean(leftVal != rightVal)
	case "<":
		return nativeBoolToSorrelBoolean(strings.Compare(leftVal, rightVal) < 0)
	case ">":
		return nativeBoolToSorrelBoolean(strings.Compare(leftVal, rightVal) > 0)
	case "<=":
		return nativeBoolToSorrelBoolean(strings.Compare(leftVal, rightVal) <= 0)
	case ">=":
		return nativeBoolToSorrelBoolean(strings.Compare(leftVal, rightVal) >= 0)
	default:
		return newOperatorErrorWithPos(tok, "OP-0001", map[string]any{
			"LeftType": "string", "Operator": operator, "RightType": "string",
		})
	}
}

// objectsEqual compares two objects by value. Different types are never
// equal.
func objectsEqual(left, right Object) bool {
	if left.Type() != right.Type() {
		return false
	}
	switch left := left.(type) {
	case *Integer:
		return left.Value == right.(*Integer).Value
	case *String:
		return left.Value == right.(*String).Value
	case *Boolean:
		return left.Value == right.(*Boolean).Value
	case *Nil:
		return true
	default:
		return left == right
	}
}

// Package evaluator provides string method implementations via declarative registry.
package evaluator

import (
	"strconv"
	"strings"
)

// StringMethodRegistry defines all methods available on string values,
// including the operator methods `<<`, `+`, `<=>` and `*`.
// Initialized in init() to avoid initialization cycle.
var StringMethodRegistry MethodRegistry

func init() {
	StringMethodRegistry = MethodRegistry{
		"<<": {
			Fn:          stringLshift,
			Arity:       "1",
			Description: "Concatenate, producing a new string",
		},
		"+": {
			Fn:          stringPlus,
			Arity:       "1",
			Description: "Concatenate, producing a new string",
		},
		"<=>": {
			Fn:          stringCmp,
			Arity:       "1",
			Description: "Three-way lexicographic comparison (-1, 0, 1)",
		},
		"*": {
			Fn:          stringRepeat,
			Arity:       "1",
			Description: "Repeat the string n times",
		},
		"to_s": {
			Fn:          stringToS,
			Arity:       "0",
			Description: "Identity conversion",
		},
		"to_str": {
			Fn:          stringToS,
			Arity:       "0",
			Description: "Identity conversion (explicit protocol form)",
		},
		"length": {
			Fn:          stringLength,
			Arity:       "0",
			Description: "Get character count",
		},
		"size": {
			Fn:          stringLength,
			Arity:       "0",
			Description: "Get character count (alias of length)",
		},
		"empty?": {
			Fn:          stringEmpty,
			Arity:       "0",
			Description: "True if the string has no characters",
		},
		"include?": {
			Fn:          stringInclude,
			Arity:       "1",
			Description: "True if the argument occurs in the string",
		},
		"start_with?": {
			Fn:          stringStartWith,
			Arity:       "1+",
			Description: "True if the string starts with any argument",
		},
		"end_with?": {
			Fn:          stringEndWith,
			Arity:       "1+",
			Description: "True if the string ends with any argument",
		},
		"upcase": {
			Fn:          stringUpcase,
			Arity:       "0",
			Description: "Convert to uppercase",
		},
		"downcase": {
			Fn:          stringDowncase,
			Arity:       "0",
			Description: "Convert to lowercase",
		},
		"reverse": {
			Fn:          stringReverse,
			Arity:       "0",
			Description: "Reverse the character sequence",
		},
		"strip": {
			Fn:          stringStrip,
			Arity:       "0",
			Description: "Remove leading/trailing whitespace",
		},
		"inspect": {
			Fn:          stringInspect,
			Arity:       "0",
			Description: "Get quoted representation",
		},
		"display": {
			Fn:          displayValue,
			Arity:       "0",
			Description: "Write to host output",
		},
	}
	RegisterMethodRegistry("string", StringMethodRegistry)
}

// String method implementations

// stringConcat is the single concatenation routine behind both << and +.
// They stay distinct registry entries so their behavior may diverge for
// future receiver types, but for strings both are ordered concatenation
// producing a fresh String.
func stringConcat(method string, receiver Object, args []Object) Object {
	str := receiver.(*String)
	other, ok := args[0].(*String)
	if !ok {
		return newConversionError("String", args[0].Type())
	}
	return &String{Value: str.Value + other.Value}
}

func stringLshift(receiver Object, args []Object, env *Environment) Object {
	return stringConcat("<<", receiver, args)
}

func stringPlus(receiver Object, args []Object, env *Environment) Object {
	return stringConcat("+", receiver, args)
}

// stringCmp compares character sequences position by position: -1 if the
// receiver sorts first, 1 if it sorts last, 0 if equal. A strict prefix
// sorts before the longer string.
func stringCmp(receiver Object, args []Object, env *Environment) Object {
	str := receiver.(*String)
	other, ok := args[0].(*String)
	if !ok {
		return newComparisonError(receiver, args[0])
	}
	return &Integer{Value: int64(strings.Compare(str.Value, other.Value))}
}

func stringRepeat(receiver Object, args []Object, env *Environment) Object {
	str := receiver.(*String)
	count, ok := args[0].(*Integer)
	if !ok {
		return newTypeError("*", "an integer", args[0].Type())
	}
	if count.Value < 0 {
		return newOperatorError("OP-0004", map[string]any{"Operator": "*"})
	}
	return &String{Value: strings.Repeat(str.Value, int(count.Value))}
}

func stringToS(receiver Object, args []Object, env *Environment) Object {
	str := receiver.(*String)
	// Strings are immutable, so the identity conversion can share content
	return &String{Value: str.Value}
}

func stringLength(receiver Object, args []Object, env *Environment) Object {
	str := receiver.(*String)
	// Rune count, not byte count
	return &Integer{Value: int64(len([]rune(str.Value)))}
}

func stringEmpty(receiver Object, args []Object, env *Environment) Object {
	str := receiver.(*String)
	return nativeBoolToSorrelBoolean(len(str.Value) == 0)
}

func stringInclude(receiver Object, args []Object, env *Environment) Object {
	str := receiver.(*String)
	substr, ok := args[0].(*String)
	if !ok {
		return newConversionError("String", args[0].Type())
	}
	return nativeBoolToSorrelBoolean(strings.Contains(str.Value, substr.Value))
}

func stringStartWith(receiver Object, args []Object, env *Environment) Object {
	str := receiver.(*String)
	for _, arg := range args {
		prefix, ok := arg.(*String)
		if !ok {
			return newConversionError("String", arg.Type())
		}
		if strings.HasPrefix(str.Value, prefix.Value) {
			return TRUE
		}
	}
	return FALSE
}

func stringEndWith(receiver Object, args []Object, env *Environment) Object {
	str := receiver.(*String)
	for _, arg := range args {
		suffix, ok := arg.(*String)
		if !ok {
			return newConversionError("String", arg.Type())
		}
		if strings.HasSuffix(str.Value, suffix.Value) {
			return TRUE
		}
	}
	return FALSE
}

func stringUpcase(receiver Object, args []Object, env *Environment) Object {
	str := receiver.(*String)
	return &String{Value: strings.ToUpper(str.Value)}
}

func stringDowncase(receiver Object, args []Object, env *Environment) Object {
	str := receiver.(*String)
	return &String{Value: strings.ToLower(str.Value)}
}

func stringReverse(receiver Object, args []Object, env *Environment) Object {
	str := receiver.(*String)
	runes := []rune(str.Value)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return &String{Value: string(runes)}
}

func stringStrip(receiver Object, args []Object, env *Environment) Object {
	str := receiver.(*String)
	return &String{Value: strings.TrimSpace(str.Value)}
}

func stringInspect(receiver Object, args []Object, env *Environment) Object {
	str := receiver.(*String)
	return &String{Value: strconv.Quote(str.Value)}
}

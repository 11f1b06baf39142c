// Package evaluator provides integer method implementations via declarative registry.
package evaluator

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// IntegerMethodRegistry defines all methods available on integer values.
// Initialized in init() to avoid initialization cycle.
var IntegerMethodRegistry MethodRegistry

func init() {
	IntegerMethodRegistry = MethodRegistry{
		"+": {
			Fn:          integerPlus,
			Arity:       "1",
			Description: "Add",
		},
		"*": {
			Fn:          integerTimes,
			Arity:       "1",
			Description: "Multiply",
		},
		"<<": {
			Fn:          integerLshift,
			Arity:       "1",
			Description: "Shift bits left",
		},
		"<=>": {
			Fn:          integerCmp,
			Arity:       "1",
			Description: "Three-way numeric comparison (-1, 0, 1)",
		},
		"to_s": {
			Fn:          integerToS,
			Arity:       "0-1",
			Description: "Convert to a decimal string, or to the given base (2-36)",
		},
		"abs": {
			Fn:          integerAbs,
			Arity:       "0",
			Description: "Get absolute value",
		},
		"succ": {
			Fn:          integerSucc,
			Arity:       "0",
			Description: "Get the next integer",
		},
		"pred": {
			Fn:          integerPred,
			Arity:       "0",
			Description: "Get the previous integer",
		},
		"zero?": {
			Fn:          integerZero,
			Arity:       "0",
			Description: "True if zero",
		},
		"even?": {
			Fn:          integerEven,
			Arity:       "0",
			Description: "True if evenly divisible by two",
		},
		"odd?": {
			Fn:          integerOdd,
			Arity:       "0",
			Description: "True if not evenly divisible by two",
		},
		"chr": {
			Fn:          integerChr,
			Arity:       "0",
			Description: "Get the character for this code point",
		},
		"format": {
			Fn:          integerFormat,
			Arity:       "0-1",
			Description: "Format with locale-aware digit grouping",
		},
		"inspect": {
			Fn:          integerToS,
			Arity:       "0",
			Description: "Get string representation",
		},
		"display": {
			Fn:          displayValue,
			Arity:       "0",
			Description: "Write to host output",
		},
	}
	RegisterMethodRegistry("integer", IntegerMethodRegistry)
}

// Integer method implementations

func integerPlus(receiver Object, args []Object, env *Environment) Object {
	num := receiver.(*Integer)
	other, ok := args[0].(*Integer)
	if !ok {
		return newConversionError("Integer", args[0].Type())
	}
	return &Integer{Value: num.Value + other.Value}
}

func integerTimes(receiver Object, args []Object, env *Environment) Object {
	num := receiver.(*Integer)
	other, ok := args[0].(*Integer)
	if !ok {
		return newConversionError("Integer", args[0].Type())
	}
	return &Integer{Value: num.Value * other.Value}
}

// integerLshift is a bit shift. The same operator concatenates on
// strings; which meaning applies is decided by the receiver type.
func integerLshift(receiver Object, args []Object, env *Environment) Object {
	num := receiver.(*Integer)
	amount, ok := args[0].(*Integer)
	if !ok {
		return newConversionError("Integer", args[0].Type())
	}
	if amount.Value < 0 {
		return newOperatorError("OP-0004", map[string]any{"Operator": "<<"})
	}
	return &Integer{Value: num.Value << uint(amount.Value)}
}

func integerCmp(receiver Object, args []Object, env *Environment) Object {
	num := receiver.(*Integer)
	other, ok := args[0].(*Integer)
	if !ok {
		return newComparisonError(receiver, args[0])
	}
	switch {
	case num.Value < other.Value:
		return &Integer{Value: -1}
	case num.Value > other.Value:
		return &Integer{Value: 1}
	default:
		return &Integer{Value: 0}
	}
}

func integerToS(receiver Object, args []Object, env *Environment) Object {
	num := receiver.(*Integer)
	if len(args) == 0 {
		return &String{Value: strconv.FormatInt(num.Value, 10)}
	}
	base, ok := args[0].(*Integer)
	if !ok {
		return newTypeError("to_s", "an integer base", args[0].Type())
	}
	if base.Value < 2 || base.Value > 36 {
		return newTypeError("to_s", "a base between 2 and 36", args[0].Type())
	}
	return &String{Value: strconv.FormatInt(num.Value, int(base.Value))}
}

func integerAbs(receiver Object, args []Object, env *Environment) Object {
	num := receiver.(*Integer)
	if num.Value < 0 {
		return &Integer{Value: -num.Value}
	}
	return &Integer{Value: num.Value}
}

func integerSucc(receiver Object, args []Object, env *Environment) Object {
	num := receiver.(*Integer)
	return &Integer{Value: num.Value + 1}
}

func integerPred(receiver Object, args []Object, env *Environment) Object {
	num := receiver.(*Integer)
	return &Integer{Value: num.Value - 1}
}

func integerZero(receiver Object, args []Object, env *Environment) Object {
	num := receiver.(*Integer)
	return nativeBoolToSorrelBoolean(num.Value == 0)
}

func integerEven(receiver Object, args []Object, env *Environment) Object {
	num := receiver.(*Integer)
	return nativeBoolToSorrelBoolean(num.Value%2 == 0)
}

func integerOdd(receiver Object, args []Object, env *Environment) Object {
	num := receiver.(*Integer)
	return nativeBoolToSorrelBoolean(num.Value%2 != 0)
}

func integerChr(receiver Object, args []Object, env *Environment) Object {
	num := receiver.(*Integer)
	if num.Value < 0 || num.Value > 0x10FFFF {
		return newOperatorError("OP-0004", map[string]any{"Operator": "chr"})
	}
	return &String{Value: string(rune(num.Value))}
}

// integerFormat renders the number with locale-appropriate digit grouping,
// e.g. 1234567.format("de-DE") is "1.234.567". Without an argument the
// environment's locale applies.
func integerFormat(receiver Object, args []Object, env *Environment) Object {
	num := receiver.(*Integer)

	localeStr := DefaultLocale
	if env != nil && env.root().Locale != "" {
		localeStr = env.root().Locale
	}
	if len(args) == 1 {
		loc, ok := args[0].(*String)
		if !ok {
			return newTypeError("format", "a locale string", args[0].Type())
		}
		localeStr = loc.Value
	}

	tag, err := language.Parse(localeStr)
	if err != nil {
		return newStructuredError("TYPE-0004", map[string]any{"Locale": localeStr})
	}
	p := message.NewPrinter(tag)
	return &String{Value: p.Sprintf("%v", number.Decimal(num.Value))}
}

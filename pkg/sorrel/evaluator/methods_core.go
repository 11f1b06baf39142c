// methods_core.go - Method registries for boolean and nil values.
//
// Small on purpose: every value answers to_s and inspect so printed
// output and string building work uniformly across types.
package evaluator

// BooleanMethodRegistry defines methods available on boolean values.
var BooleanMethodRegistry MethodRegistry

// NilMethodRegistry defines methods available on nil.
var NilMethodRegistry MethodRegistry

func init() {
	BooleanMethodRegistry = MethodRegistry{
		"to_s": {
			Fn:          booleanToS,
			Arity:       "0",
			Description: "Get \"true\" or \"false\"",
		},
		"inspect": {
			Fn:          booleanToS,
			Arity:       "0",
			Description: "Get string representation",
		},
		"!": {
			Fn:          booleanNot,
			Arity:       "0",
			Description: "Logical negation",
		},
		"display": {
			Fn:          displayValue,
			Arity:       "0",
			Description: "Write to host output",
		},
	}
	RegisterMethodRegistry("boolean", BooleanMethodRegistry)

	NilMethodRegistry = MethodRegistry{
		"to_s": {
			Fn:          nilToS,
			Arity:       "0",
			Description: "Get the empty string",
		},
		"inspect": {
			Fn:          nilInspect,
			Arity:       "0",
			Description: "Get \"nil\"",
		},
		"nil?": {
			Fn:          nilIsNil,
			Arity:       "0",
			Description: "Always true",
		},
		"display": {
			Fn:          displayValue,
			Arity:       "0",
			Description: "Write to host output",
		},
	}
	RegisterMethodRegistry("nil", NilMethodRegistry)
}

func booleanToS(receiver Object, args []Object, env *Environment) Object {
	b := receiver.(*Boolean)
	if b.Value {
		return &String{Value: "true"}
	}
	return &String{Value: "false"}
}

func booleanNot(receiver Object, args []Object, env *Environment) Object {
	b := receiver.(*Boolean)
	return nativeBoolToSorrelBoolean(!b.Value)
}

// nil.to_s is the empty string, matching how nil interpolates into text.
func nilToS(receiver Object, args []Object, env *Environment) Object {
	return &String{Value: ""}
}

func nilInspect(receiver Object, args []Object, env *Environment) Object {
	return &String{Value: "nil"}
}

func nilIsNil(receiver Object, args []Object, env *Environment) Object {
	return TRUE
}

// displayValue writes the receiver to the host logger and evaluates to
// the receiver, so display calls can be chained.
func displayValue(receiver Object, args []Object, env *Environment) Object {
	logger := DefaultLogger
	if env != nil {
		logger = env.logger()
	}
	logger.LogLine(receiver.Inspect())
	return receiver
}

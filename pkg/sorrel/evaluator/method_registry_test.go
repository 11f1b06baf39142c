package evaluator

import (
	"fmt"
	"strings"
	"testing"
)

func TestCheckArity(t *testing.T) {
	tests := []struct {
		spec     string
		got      int
		expected bool
	}{
		{"0", 0, true},
		{"0", 1, false},
		{"1", 1, true},
		{"1", 0, false},
		{"0-1", 0, true},
		{"0-1", 1, true},
		{"0-1", 2, false},
		{"1-2", 1, true},
		{"1-2", 3, false},
		{"1+", 1, true},
		{"1+", 5, true},
		{"1+", 0, false},
		{"0+", 0, true},
		{"bogus", 7, true}, // unknown specs are permissive
	}

	for _, tt := range tests {
		if got := checkArity(tt.spec, tt.got); got != tt.expected {
			t.Errorf("checkArity(%q, %d): expected %v, got %v", tt.spec, tt.got, tt.expected, got)
		}
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	registry := GetRegistryForType("string")
	if registry == nil {
		t.Fatal("string registry not registered")
	}

	names := registry.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}

	for _, required := range []string{"<<", "+", "<=>", "to_s", "length"} {
		found := false
		for _, name := range names {
			if name == required {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("string registry missing %q", required)
		}
	}
}

func TestAllTypesHaveRegistries(t *testing.T) {
	for _, typeName := range []string{"string", "integer", "boolean", "nil"} {
		if GetRegistryForType(typeName) == nil {
			t.Errorf("no registry for type %s", typeName)
		}
	}
	if GetRegistryForType("no_such_type") != nil {
		t.Error("expected nil registry for unknown type")
	}
}

func TestDispatchFromRegistryUnknownMethod(t *testing.T) {
	registry := GetRegistryForType("string")
	result := dispatchFromRegistry(registry, &String{Value: "x"}, "no_such_method", nil, nil)
	if result != nil {
		t.Errorf("expected nil for unknown method, got %v", result)
	}
}

func TestDispatchArityCheck(t *testing.T) {
	registry := GetRegistryForType("string")
	result := dispatchFromRegistry(registry, &String{Value: "x"}, "length", []Object{&Integer{Value: 1}}, nil)
	err, ok := result.(*Error)
	if !ok {
		t.Fatalf("expected arity error, got %v", result)
	}
	if err.Class != ClassArity {
		t.Errorf("expected arity class, got %s", err.Class)
	}
	if !strings.Contains(err.Message, "length") {
		t.Errorf("expected method name in message, got %q", err.Message)
	}
}

func TestOperatorAndMethodFormAgree(t *testing.T) {
	// `a << b` desugars to the same registry entry as a.<<(b) would hit,
	// so operator results and dispatch results must match
	viaOperator := testEval(`"ab" << "cd"`)
	viaDispatch := dispatchFromRegistry(
		GetRegistryForType("string"),
		&String{Value: "ab"}, "<<",
		[]Object{&String{Value: "cd"}},
		nil,
	)

	testStringObject(t, viaOperator, "abcd", "operator form")
	testStringObject(t, viaDispatch, "abcd", "dispatch form")
}

func TestBooleanAndNilMethods(t *testing.T) {
	testStringObject(t, testEval("true.to_s"), "true", "true.to_s")
	testStringObject(t, testEval("false.to_s"), "false", "false.to_s")
	testStringObject(t, testEval("nil.to_s"), "", "nil.to_s")
	testStringObject(t, testEval("nil.inspect"), "nil", "nil.inspect")
	testBooleanObject(t, testEval("nil.nil?"), true, "nil.nil?")
}

// captureLogger records LogLine calls for display tests
type captureLogger struct {
	lines []string
}

func (c *captureLogger) Log(values ...interface{}) {}
func (c *captureLogger) LogLine(values ...interface{}) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	c.lines = append(c.lines, strings.Join(parts, " "))
}

func TestDisplayWritesToEnvironmentLogger(t *testing.T) {
	logger := &captureLogger{}
	env := NewEnvironment()
	env.Logger = logger

	result := evalIn(t, `"hello".display`, env)
	testStringObject(t, result, "hello", "display returns receiver")

	if len(logger.lines) != 1 || logger.lines[0] != "hello" {
		t.Errorf("expected logged line %q, got %v", "hello", logger.lines)
	}
}

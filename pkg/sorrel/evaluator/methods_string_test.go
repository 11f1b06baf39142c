package evaluator

import (
	"strings"
	"testing"
)

func TestStringConcatOperator(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"abc" << "def"`, "abcdef"},
		{`"" << "x"`, "x"},
		{`"x" << ""`, "x"},
		{`"a" << "b" << "c"`, "abc"},
		{`"Hello, " + "World"`, "Hello, World"},
		{`"a" + "b" + "c"`, "abc"},
		{`"a" << "b" + "c"`, "abc"}, // << binds looser than +
	}

	for _, tt := range tests {
		testStringObject(t, testEval(tt.input), tt.expected, tt.input)
	}
}

func TestStringConcatProducesNewString(t *testing.T) {
	input := `a = "start" b = a << "-more" a`
	testStringObject(t, testEval(input), "start", input)

	input = `a = "start" b = a + "-more" b`
	testStringObject(t, testEval(input), "start-more", input)
}

func TestStringConcatTypeErrors(t *testing.T) {
	for _, input := range []string{`"abc" << 1`, `"abc" + 1`, `"abc" << nil`, `"abc" + true`} {
		err := testErrorObject(t, testEval(input), ClassType, input)
		if err == nil {
			continue
		}
		if !strings.Contains(err.Message, "no implicit conversion") {
			t.Errorf("input %q: expected conversion message, got %q", input, err.Message)
		}
	}
}

func TestStringSpaceship(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{`"a" <=> "b"`, -1},
		{`"b" <=> "a"`, 1},
		{`"abc" <=> "abc"`, 0},
		{`"ab" <=> "abc"`, -1}, // strict prefix sorts first
		{`"abc" <=> "ab"`, 1},
		{`"" <=> ""`, 0},
		{`"" <=> "a"`, -1},
		{`"A" <=> "a"`, -1}, // byte order: uppercase first
	}

	for _, tt := range tests {
		testIntegerObject(t, testEval(tt.input), tt.expected, tt.input)
	}
}

func TestStringSpaceshipAgainstNonString(t *testing.T) {
	err := testErrorObject(t, testEval(`'a' <=> 5`), ClassType, `'a' <=> 5`)
	if err == nil {
		return
	}
	if !strings.Contains(err.Message, "comparison of string with integer failed") {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestStringToS(t *testing.T) {
	testStringObject(t, testEval(`"abc".to_s`), "abc", `"abc".to_s`)
	testStringObject(t, testEval(`"".to_s`), "", `"".to_s`)
	testStringObject(t, testEval(`"abc".to_str`), "abc", `"abc".to_str`)
}

func TestStringLength(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{`"".length`, 0},
		{`"abc".length`, 3},
		{`"hello world".length`, 11},
		{`"héllo".length`, 5},  // characters, not bytes
		{`"日本語".length`, 3},
		{`"abc".size`, 3},
	}

	for _, tt := range tests {
		testIntegerObject(t, testEval(tt.input), tt.expected, tt.input)
	}
}

func TestStringPredicates(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{`"".empty?`, true},
		{`"x".empty?`, false},
		{`"hello".include?("ell")`, true},
		{`"hello".include?("xyz")`, false},
		{`"hello".start_with?("he")`, true},
		{`"hello".start_with?("x", "he")`, true},
		{`"hello".start_with?("x", "y")`, false},
		{`"hello".end_with?("lo")`, true},
		{`"hello".end_with?("x")`, false},
	}

	for _, tt := range tests {
		testBooleanObject(t, testEval(tt.input), tt.expected, tt.input)
	}
}

func TestStringTransforms(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello".upcase`, "HELLO"},
		{`"HELLO".downcase`, "hello"},
		{`"abc".reverse`, "cba"},
		{`"héllo".reverse`, "olléh"},
		{`"  pad  ".strip`, "pad"},
		{`"ab" * 3`, "ababab"},
		{`"x" * 0`, ""},
		{`"a\nb".inspect`, `"a\nb"`},
	}

	for _, tt := range tests {
		testStringObject(t, testEval(tt.input), tt.expected, tt.input)
	}
}

func TestStringRepeatErrors(t *testing.T) {
	err := testErrorObject(t, testEval(`"ab" * -1`), ClassOperator, `"ab" * -1`)
	if err != nil && !strings.Contains(err.Message, "negative argument") {
		t.Errorf("unexpected message %q", err.Message)
	}

	testErrorObject(t, testEval(`"ab" * "cd"`), ClassType, `"ab" * "cd"`)
}

func TestStringMethodChaining(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"abc".reverse.upcase`, "CBA"},
		{`("a" << "b").upcase`, "AB"},
		{`"  x  ".strip.upcase`, "X"},
	}

	for _, tt := range tests {
		testStringObject(t, testEval(tt.input), tt.expected, tt.input)
	}
}

func TestStringUndefinedMethod(t *testing.T) {
	err := testErrorObject(t, testEval(`"abc".lenth`), ClassUndefined, `"abc".lenth`)
	if err == nil {
		return
	}
	if !strings.Contains(err.Message, "undefined method `lenth` for string") {
		t.Errorf("unexpected message %q", err.Message)
	}
	if len(err.Hints) == 0 || !strings.Contains(err.Hints[0], "length") {
		t.Errorf("expected did-you-mean length hint, got %v", err.Hints)
	}
}

func TestStringArityErrors(t *testing.T) {
	tests := []struct {
		input string
	}{
		{`"abc".length(1)`},
		{`"abc".include?`},
		{`"abc".include?("a", "b")`},
		{`"abc".start_with?`},
	}

	for _, tt := range tests {
		err := testErrorObject(t, testEval(tt.input), ClassArity, tt.input)
		if err == nil {
			continue
		}
		if !strings.Contains(err.Message, "wrong number of arguments") {
			t.Errorf("input %q: unexpected message %q", tt.input, err.Message)
		}
	}
}

func TestStringOperatorsViaVariables(t *testing.T) {
	input := `
greeting = "Hello"
greeting = greeting << ", " << "World"
greeting.length
`
	testIntegerObject(t, testEval(input), 12, input)
}

package sorrel

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sorrel-lang/sorrel/pkg/sorrel/errors"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/evaluator"
)

func executeString(t *testing.T, source string) string {
	t.Helper()
	result, err := Execute(source)
	if err != nil {
		t.Fatalf("Execute(%q) failed: %v", source, err)
	}
	s, err := StringValue(result)
	if err != nil {
		t.Fatalf("Execute(%q): %v", source, err)
	}
	return s
}

func executeInt(t *testing.T, source string) int64 {
	t.Helper()
	result, err := Execute(source)
	if err != nil {
		t.Fatalf("Execute(%q) failed: %v", source, err)
	}
	n, err := IntValue(result)
	if err != nil {
		t.Fatalf("Execute(%q): %v", source, err)
	}
	return n
}

func executeError(t *testing.T, source string) *errors.SorrelError {
	t.Helper()
	_, err := Execute(source)
	if err == nil {
		t.Fatalf("Execute(%q): expected error, got none", source)
	}
	serr, ok := err.(*errors.SorrelError)
	if !ok {
		t.Fatalf("Execute(%q): expected *SorrelError, got %T", source, err)
	}
	return serr
}

func TestExecuteBasics(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{`"Hello, " << "World"`, "Hello, World"},
		{`"Hello, " + "World"`, "Hello, World"},
		{`greeting = "Hello" greeting << ", World"`, "Hello, World"},
		{`"abc".to_s`, "abc"},
		{`s = "one" s = s << " two" s = s << " three" s`, "one two three"},
	}

	for _, tt := range tests {
		if got := executeString(t, tt.source); got != tt.expected {
			t.Errorf("source %q: expected %q, got %q", tt.source, tt.expected, got)
		}
	}
}

func TestExecuteIntegerResults(t *testing.T) {
	tests := []struct {
		source   string
		expected int64
	}{
		{`"hello".length`, 5},
		{`"".length`, 0},
		{`"a" <=> "b"`, -1},
		{`"b" <=> "a"`, 1},
		{`"same" <=> "same"`, 0},
		{`1 + 2 * 3`, 7},
		{`return 42`, 42},
	}

	for _, tt := range tests {
		if got := executeInt(t, tt.source); got != tt.expected {
			t.Errorf("source %q: expected %d, got %d", tt.source, tt.expected, got)
		}
	}
}

func TestExecuteParseError(t *testing.T) {
	serr := executeError(t, `"unterminated`)
	if !serr.IsParseError() {
		t.Errorf("expected parse error, got class %s", serr.Class)
	}
	if serr.Code != "PARSE-0003" {
		t.Errorf("expected PARSE-0003, got %s", serr.Code)
	}
}

func TestExecuteRuntimeErrors(t *testing.T) {
	tests := []struct {
		source string
		class  errors.ErrorClass
	}{
		{`'a' <=> 5`, errors.ClassType},
		{`"abc" + 1`, errors.ClassType},
		{`"abc".lenth`, errors.ClassUndefined},
		{`missing_var`, errors.ClassUndefined},
		{`1 / 0`, errors.ClassOperator},
		{`"abc".length(1)`, errors.ClassArity},
	}

	for _, tt := range tests {
		serr := executeError(t, tt.source)
		if serr.Class != tt.class {
			t.Errorf("source %q: expected class %s, got %s (%s)",
				tt.source, tt.class, serr.Class, serr.Message)
		}
		if serr.IsParseError() {
			t.Errorf("source %q: runtime error mislabeled as parse error", tt.source)
		}
	}
}

func TestExecuteInSharesBindings(t *testing.T) {
	env := NewEnv()

	if _, err := ExecuteIn(`greeting = "Hello"`, env); err != nil {
		t.Fatal(err)
	}

	result, err := ExecuteIn(`greeting << ", World"`, env)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := StringValue(result)
	if s != "Hello, World" {
		t.Errorf("expected %q, got %q", "Hello, World", s)
	}
}

func TestExecuteFileTagsErrors(t *testing.T) {
	_, err := ExecuteFile(`nope`, "script.sl")
	if err == nil {
		t.Fatal("expected error")
	}
	serr := err.(*errors.SorrelError)
	if serr.File != "script.sl" {
		t.Errorf("expected file script.sl, got %q", serr.File)
	}
}

func TestCheck(t *testing.T) {
	if err := Check(`a = 1 a + 2`); err != nil {
		t.Errorf("expected valid program, got %v", err)
	}
	if err := Check(`(1 + 2`); err == nil {
		t.Error("expected syntax error for unbalanced parens")
	}
}

func TestValueProjections(t *testing.T) {
	strVal, err := Execute(`"abc"`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := IntValue(strVal); err == nil {
		t.Error("expected IntValue to fail on a string")
	}

	intVal, err := Execute(`42`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := StringValue(intVal); err == nil {
		t.Error("expected StringValue to fail on an integer")
	}
}

func TestBoolValueTruthiness(t *testing.T) {
	tests := []struct {
		source   string
		expected bool
	}{
		{"true", true},
		{"false", false},
		{"nil", false},
		{"0", true},
		{`""`, true},
	}

	for _, tt := range tests {
		v, err := Execute(tt.source)
		if err != nil {
			t.Fatal(err)
		}
		if got := BoolValue(v); got != tt.expected {
			t.Errorf("source %q: expected %v, got %v", tt.source, tt.expected, got)
		}
	}
}

func TestInspectQuotesStrings(t *testing.T) {
	v, _ := Execute(`"abc"`)
	if got := Inspect(v); got != `"abc"` {
		t.Errorf("expected quoted string, got %s", got)
	}
	v, _ = Execute(`42`)
	if got := Inspect(v); got != "42" {
		t.Errorf("expected 42, got %s", got)
	}
}

func TestConcatLengthAdditivity(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"a", "b"},
		{"hello", " world"},
		{"héllo", "日本語"},
	}

	for _, pair := range pairs {
		source := fmt.Sprintf(`("%s" << "%s").length`, pair[0], pair[1])
		combined := executeInt(t, source)

		lenA := executeInt(t, fmt.Sprintf(`"%s".length`, pair[0]))
		lenB := executeInt(t, fmt.Sprintf(`"%s".length`, pair[1]))

		if combined != lenA+lenB {
			t.Errorf("length(%q << %q) = %d, want %d", pair[0], pair[1], combined, lenA+lenB)
		}
	}
}

func TestSpaceshipAntisymmetry(t *testing.T) {
	pairs := [][2]string{
		{"a", "b"},
		{"abc", "abd"},
		{"ab", "abc"},
		{"same", "same"},
		{"", "x"},
	}

	for _, pair := range pairs {
		forward := executeInt(t, fmt.Sprintf(`"%s" <=> "%s"`, pair[0], pair[1]))
		backward := executeInt(t, fmt.Sprintf(`"%s" <=> "%s"`, pair[1], pair[0]))

		if forward != -backward {
			t.Errorf("(%q <=> %q) = %d but reversed = %d", pair[0], pair[1], forward, backward)
		}
	}
}

func TestSpaceshipReflexivity(t *testing.T) {
	for _, s := range []string{"", "a", "hello", "日本語"} {
		if got := executeInt(t, fmt.Sprintf(`"%s" <=> "%s"`, s, s)); got != 0 {
			t.Errorf("(%q <=> %q) = %d, want 0", s, s, got)
		}
	}
}

func TestToSIdempotence(t *testing.T) {
	for _, s := range []string{"", "abc", "with space"} {
		once := executeString(t, fmt.Sprintf(`"%s".to_s`, s))
		twice := executeString(t, fmt.Sprintf(`"%s".to_s.to_s`, s))
		if once != s || twice != s {
			t.Errorf("to_s changed %q: once=%q twice=%q", s, once, twice)
		}
	}
}

func TestShiftChainEqualsPlusChain(t *testing.T) {
	viaShift := executeString(t, `"a" << "b" << "c" << "d"`)
	viaPlus := executeString(t, `"a" + "b" + "c" + "d"`)
	if viaShift != viaPlus {
		t.Errorf("<<-chain %q differs from +-chain %q", viaShift, viaPlus)
	}
}

func TestBufferedLoggerCapturesDisplay(t *testing.T) {
	logger := NewBufferedLogger()
	env := NewEnv()
	env.Logger = logger

	if _, err := ExecuteIn(`"captured".display`, env); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(logger.String(), "captured") {
		t.Errorf("expected captured output, got %q", logger.String())
	}
}

func TestExecuteResultNeverNil(t *testing.T) {
	result, err := Execute("")
	if err != nil {
		t.Fatal(err)
	}
	if result == nil {
		t.Fatal("expected non-nil result for empty program")
	}
	if result.Type() != evaluator.NIL_OBJ {
		t.Errorf("expected nil object, got %s", result.Type())
	}
}

package parser

import (
	"strings"
	"testing"

	"github.com/sorrel-lang/sorrel/pkg/sorrel/ast"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	l := lexer.New(input)
	p := New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors for %q: %v", input, errs)
	}
	return program
}

func parseError(t *testing.T, input string) string {
	t.Helper()
	l := lexer.New(input)
	p := New(l)
	p.ParseProgram()
	errs := p.StructuredErrors()
	if len(errs) == 0 {
		t.Fatalf("expected parse error for %q, got none", input)
	}
	return errs[0].Code
}

func TestAssignmentStatements(t *testing.T) {
	program := parseProgram(t, `greeting = "Hello" count = 42`)

	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}

	names := []string{"greeting", "count"}
	for i, want := range names {
		stmt, ok := program.Statements[i].(*ast.AssignmentStatement)
		if !ok {
			t.Fatalf("statement %d: expected AssignmentStatement, got %T", i, program.Statements[i])
		}
		if stmt.Name.Value != want {
			t.Errorf("statement %d: expected name %q, got %q", i, want, stmt.Name.Value)
		}
	}
}

func TestReturnStatement(t *testing.T) {
	program := parseProgram(t, `return 5`)

	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected ReturnStatement, got %T", program.Statements[0])
	}
	lit, ok := stmt.ReturnValue.(*ast.IntegerLiteral)
	if !ok || lit.Value != 5 {
		t.Errorf("expected return value 5, got %v", stmt.ReturnValue)
	}
}

func TestMethodCallExpression(t *testing.T) {
	program := parseProgram(t, `"abc".length`)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.MethodCallExpression)
	if !ok {
		t.Fatalf("expected MethodCallExpression, got %T", stmt.Expression)
	}
	if call.Method != "length" {
		t.Errorf("expected method %q, got %q", "length", call.Method)
	}
	if len(call.Arguments) != 0 {
		t.Errorf("expected 0 arguments, got %d", len(call.Arguments))
	}
	recv, ok := call.Receiver.(*ast.StringLiteral)
	if !ok || recv.Value != "abc" {
		t.Errorf("expected receiver string %q, got %v", "abc", call.Receiver)
	}
}

func TestMethodCallWithArguments(t *testing.T) {
	program := parseProgram(t, `"hello".include?("ell", "lo")`)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	call := stmt.Expression.(*ast.MethodCallExpression)
	if call.Method != "include?" {
		t.Errorf("expected method %q, got %q", "include?", call.Method)
	}
	if len(call.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Arguments))
	}
}

func TestChainedMethodCalls(t *testing.T) {
	program := parseProgram(t, `"abc".reverse.upcase`)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	outer := stmt.Expression.(*ast.MethodCallExpression)
	if outer.Method != "upcase" {
		t.Fatalf("expected outer method upcase, got %q", outer.Method)
	}
	inner, ok := outer.Receiver.(*ast.MethodCallExpression)
	if !ok || inner.Method != "reverse" {
		t.Fatalf("expected inner method reverse, got %v", outer.Receiver)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"-a * b", "((-a) * b)"},
		{"!true == false", "((!true) == false)"},
		{"a + b - c", "((a + b) - c)"},
		{"a << b + c", "(a << (b + c))"},
		{"a << b << c", "((a << b) << c)"},
		{"a <=> b + c", "(a <=> (b + c))"},
		{"a < b <=> c > d", "((a < b) <=> (c > d))"},
		{"a + b.length", "(a + b.length)"},
		{"5 % 2 + 1", "((5 % 2) + 1)"},
		{"a == b <=> c != d", "(((a == b) <=> c) != d)"},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		actual := program.String()
		if actual != tt.expected {
			t.Errorf("input %q: expected %s, got %s", tt.input, tt.expected, actual)
		}
	}
}

func TestIntegerLiteralWithSeparators(t *testing.T) {
	program := parseProgram(t, "1_000_000")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	lit, ok := stmt.Expression.(*ast.IntegerLiteral)
	if !ok || lit.Value != 1000000 {
		t.Errorf("expected 1000000, got %v", stmt.Expression)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input        string
		expectedCode string
	}{
		{`"unterminated`, "PARSE-0003"},
		{`'also unterminated`, "PARSE-0003"},
		{`x = @`, "PARSE-0002"},
		{`1 + `, "PARSE-0005"},
		{`(1 + 2`, "PARSE-0001"},
		{`"abc".5`, "PARSE-0007"},
		{`99999999999999999999`, "PARSE-0004"},
	}

	for _, tt := range tests {
		code := parseError(t, tt.input)
		if code != tt.expectedCode {
			t.Errorf("input %q: expected %s, got %s", tt.input, tt.expectedCode, code)
		}
	}
}

func TestOnlyFirstErrorReported(t *testing.T) {
	l := lexer.New(`x = @ y = @ z = @`)
	p := New(l)
	p.ParseProgram()
	if n := len(p.StructuredErrors()); n != 1 {
		t.Errorf("expected exactly 1 error, got %d", n)
	}
}

func TestDeepNestingLimit(t *testing.T) {
	depth := 2000
	input := strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth)

	l := lexer.New(input)
	p := New(l)
	p.ParseProgram()

	errs := p.StructuredErrors()
	if len(errs) == 0 {
		t.Fatal("expected nesting depth error, got none")
	}
	if errs[0].Code != "PARSE-0006" {
		t.Errorf("expected PARSE-0006, got %s", errs[0].Code)
	}
}

func TestErrorPositions(t *testing.T) {
	l := lexer.New("x = 1\ny = @")
	p := New(l)
	p.ParseProgram()

	errs := p.StructuredErrors()
	if len(errs) == 0 {
		t.Fatal("expected parse error")
	}
	if errs[0].Line != 2 {
		t.Errorf("expected error on line 2, got line %d", errs[0].Line)
	}
}

package evaluator

import (
	"fmt"
	"strconv"

	"github.com/sorrel-lang/sorrel/pkg/sorrel/ast"
	serrors "github.com/sorrel-lang/sorrel/pkg/sorrel/errors"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/lexer"
)

// ObjectType represents the type of objects in our language
type ObjectType string

const (
	INTEGER_OBJ = "INTEGER"
	STRING_OBJ  = "STRING"
	BOOLEAN_OBJ = "BOOLEAN"
	NIL_OBJ     = "NIL"
	RETURN_OBJ  = "RETURN_VALUE"
	ERROR_OBJ   = "ERROR"
)

// Object represents all values in our language
type Object interface {
	Type() ObjectType
	Inspect() string
}

// Integer represents integer objects
type Integer struct {
	Value int64
}

func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) Type() ObjectType { return INTEGER_OBJ }

// String represents string objects. Strings are immutable: every
// string-producing method allocates a new String and never touches the
// receiver, so a String may be freely shared between bindings.
type String struct {
	Value string
}

func (s *String) Inspect() string  { return s.Value }
func (s *String) Type() ObjectType { return STRING_OBJ }

// Boolean represents boolean objects
type Boolean struct {
	Value bool
}

func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }
func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }

// Nil represents the nil object
type Nil struct{}

func (n *Nil) Inspect() string  { return "nil" }
func (n *Nil) Type() ObjectType { return NIL_OBJ }

// ReturnValue wraps other objects when returned
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// ErrorClass categorizes errors for filtering and templating.
type ErrorClass = serrors.ErrorClass

// Error class constants
const (
	ClassParse     = serrors.ClassParse
	ClassType      = serrors.ClassType
	ClassArity     = serrors.ClassArity
	ClassUndefined = serrors.ClassUndefined
	ClassOperator  = serrors.ClassOperator
	ClassResource  = serrors.ClassResource
)

// Error represents error objects with structured error information.
// Errors flow through evaluation as ordinary objects and are converted
// to *serrors.SorrelError at the execution boundary.
type Error struct {
	Message string
	Line    int
	Column  int
	Class   ErrorClass
	Code    string
	Hints   []string
	File    string
	Data    map[string]any
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return "ERROR: " + e.Message
}

// ToSorrelError converts this Error to a SorrelError for structured handling.
func (e *Error) ToSorrelError() *serrors.SorrelError {
	class := e.Class
	if class == "" {
		class = serrors.ClassType
	}
	return &serrors.SorrelError{
		Class:   class,
		Code:    e.Code,
		Message: e.Message,
		Hints:   e.Hints,
		Line:    e.Line,
		Column:  e.Column,
		File:    e.File,
		Data:    e.Data,
	}
}

// Logger interface for host-visible output
type Logger interface {
	Log(values ...interface{})
	LogLine(values ...interface{})
}

// defaultStdoutLogger is the default logger that writes to stdout
type defaultStdoutLogger struct{}

func (l *defaultStdoutLogger) Log(values ...interface{}) {
	for i, v := range values {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(v)
	}
}

func (l *defaultStdoutLogger) LogLine(values ...interface{}) {
	l.Log(values...)
	fmt.Println()
}

// DefaultLogger is the default stdout logger
var DefaultLogger Logger = &defaultStdoutLogger{}

// DefaultMaxDepth bounds Eval recursion per environment
const DefaultMaxDepth = 10000

// DefaultLocale is used by locale-aware formatting methods when the
// environment does not override it
const DefaultLocale = "en-US"

// Environment represents the environment for variable bindings.
// The depth counter lives on the root environment so enclosed scopes
// share one evaluation budget.
type Environment struct {
	store    map[string]Object
	outer    *Environment
	Filename string
	Locale   string // locale tag for format(), e.g. "en-US"
	MaxDepth int    // Eval recursion limit (root environment only)
	Logger   Logger // host-visible output sink (root environment only)
	depth    int
}

// NewEnvironment creates a fresh top-level environment
func NewEnvironment() *Environment {
	return &Environment{
		store:    make(map[string]Object),
		Locale:   DefaultLocale,
		MaxDepth: DefaultMaxDepth,
	}
}

// NewEnclosedEnvironment creates an environment nested inside outer
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{
		store: make(map[string]Object),
		outer: outer,
	}
}

// Get looks a name up through the scope chain
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		return e.outer.Get(name)
	}
	return obj, ok
}

// Set binds a name in this scope
func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

// Names returns the names bound in this scope chain, for did-you-mean hints
func (e *Environment) Names() []string {
	var names []string
	for env := e; env != nil; env = env.outer {
		for name := range env.store {
			names = append(names, name)
		}
	}
	return names
}

// logger returns the root environment's logger, falling back to DefaultLogger
func (e *Environment) logger() Logger {
	if l := e.root().Logger; l != nil {
		return l
	}
	return DefaultLogger
}

func (e *Environment) root() *Environment {
	env := e
	for env.outer != nil {
		env = env.outer
	}
	return env
}

// enterEval charges one level of evaluation depth against the root budget
func (e *Environment) enterEval() bool {
	r := e.root()
	r.depth++
	limit := r.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	return r.depth <= limit
}

func (e *Environment) leaveEval() {
	e.root().depth--
}

// Singleton objects
var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NIL   = &Nil{}
)

// Eval evaluates an AST node and returns the resulting object
func Eval(node ast.Node, env *Environment) Object {
	if env != nil {
		if !env.enterEval() {
			defer env.leaveEval()
			limit := env.root().MaxDepth
			if limit <= 0 {
				limit = DefaultMaxDepth
			}
			return newResourceError(limit)
		}
		defer env.leaveEval()
	}

	switch node := node.(type) {
	// Statements
	case *ast.Program:
		return evalProgram(node, env)

	case *ast.ExpressionStatement:
		return Eval(node.Expression, env)

	case *ast.ReturnStatement:
		val := Eval(node.ReturnValue, env)
		if isError(val) {
			return val
		}
		return &ReturnValue{Value: val}

	case *ast.AssignmentStatement:
		val := Eval(node.Value, env)
		if isError(val) {
			return val
		}
		env.Set(node.Name.Value, val)
		return NIL

	// Expressions
	case *ast.IntegerLiteral:
		return &Integer{Value: node.Value}

	case *ast.StringLiteral:
		return &String{Value: node.Value}

	case *ast.BooleanLiteral:
		return nativeBoolToSorrelBoolean(node.Value)

	case *ast.NilLiteral:
		return NIL

	case *ast.Identifier:
		return evalIdentifier(node, env)

	case *ast.PrefixExpression:
		right := Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return evalPrefixExpression(node.Token, node.Operator, right)

	case *ast.InfixExpression:
		left := Eval(node.Left, env)
		if isError(left) {
			return left
		}
		right := Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return evalInfixExpression(node.Token, node.Operator, left, right, env)

	case *ast.MethodCallExpression:
		return evalMethodCallExpression(node, env)

	case nil:
		return NIL
	}

	return newErrorWithClass(ClassType, "unhandled node type %T", node)
}

// evalProgram evaluates statements in order. The program's value is the
// last statement's value; return short-circuits.
func evalProgram(program *ast.Program, env *Environment) Object {
	var result Object = NIL

	for _, statement := range program.Statements {
		result = Eval(statement, env)

		switch result := result.(type) {
		case *ReturnValue:
			return result.Value
		case *Error:
			return result
		}
	}

	return result
}

func evalIdentifier(node *ast.Identifier, env *Environment) Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}
	return newUndefinedVariableError(node, env)
}

func evalPrefixExpression(tok lexer.Token, operator string, right Object) Object {
	switch operator {
	case "!":
		return evalBangOperatorExpression(right)
	case "-":
		return evalMinusPrefixOperatorExpression(tok, right)
	default:
		return newOperatorErrorWithPos(tok, "OP-0003", map[string]any{
			"Operator": operator,
			"Type":     typeName(right),
		})
	}
}

// evalBangOperatorExpression implements Ruby truthiness: only false and
// nil are falsy.
func evalBangOperatorExpression(right Object) Object {
	switch right {
	case FALSE, NIL:
		return TRUE
	default:
		return FALSE
	}
}

func evalMinusPrefixOperatorExpression(tok lexer.Token, right Object) Object {
	if right.Type() != INTEGER_OBJ {
		return newOperatorErrorWithPos(tok, "OP-0003", map[string]any{
			"Operator": "-",
			"Type":     typeName(right),
		})
	}

	value := right.(*Integer).Value
	return &Integer{Value: -value}
}

// evalMethodCallExpression evaluates receiver and arguments left-to-right,
// then resolves the method through the dispatch table.
func evalMethodCallExpression(node *ast.MethodCallExpression, env *Environment) Object {
	receiver := Eval(node.Receiver, env)
	if isError(receiver) {
		return receiver
	}

	args := make([]Object, 0, len(node.Arguments))
	for _, argExpr := range node.Arguments {
		arg := Eval(argExpr, env)
		if isError(arg) {
			return arg
		}
		args = append(args, arg)
	}

	result := dispatchMethodCall(receiver, node.Method, args, env)
	return withPosition(result, node.Token)
}

// dispatchMethodCall resolves (receiver type, method name) through the
// per-type registries and invokes the implementation.
func dispatchMethodCall(receiver Object, method string, args []Object, env *Environment) Object {
	registry := GetRegistryForType(typeName(receiver))
	if registry == nil {
		return newUndefinedMethodError(method, typeName(receiver), nil)
	}

	result := dispatchFromRegistry(registry, receiver, method, args, env)
	if result == nil {
		return newUndefinedMethodError(method, typeName(receiver), registry.Names())
	}
	return result
}

func nativeBoolToSorrelBoolean(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

// typeName returns the lowercase type tag used for registry keys and
// error messages
func typeName(obj Object) string {
	return serrors.TypeName(string(obj.Type()))
}

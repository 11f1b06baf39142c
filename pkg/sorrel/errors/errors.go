// Package errors provides structured error types for the Sorrel language.
//
// This package defines SorrelError, a unified error type that can represent
// both parser and runtime errors with rich metadata for display and
// programmatic handling.
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// ErrorClass categorizes errors for filtering and templating.
type ErrorClass string

const (
	ClassParse     ErrorClass = "parse"     // Parser/syntax errors
	ClassType      ErrorClass = "type"      // Type mismatches
	ClassArity     ErrorClass = "arity"     // Wrong argument count
	ClassUndefined ErrorClass = "undefined" // Not found/defined
	ClassOperator  ErrorClass = "operator"  // Invalid operations
	ClassResource  ErrorClass = "resource"  // Depth/resource exhaustion
)

// SorrelError represents any error from parsing or evaluation.
type SorrelError struct {
	Class   ErrorClass     `json:"class"`           // Error category
	Code    string         `json:"code"`            // Error code (e.g., "TYPE-0001")
	Message string         `json:"message"`         // Human-readable message
	Hints   []string       `json:"hints,omitempty"` // Suggestions for fixing
	Line    int            `json:"line"`            // 1-based line (0 if unknown)
	Column  int            `json:"column"`          // 1-based column (0 if unknown)
	File    string         `json:"file,omitempty"`  // File path (if known)
	Data    map[string]any `json:"data,omitempty"`  // Template variables
}

// Error implements the error interface.
func (e *SorrelError) Error() string {
	return e.String()
}

// String returns a formatted string representation of the error.
func (e *SorrelError) String() string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(": ")
	}
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d, column %d: ", e.Line, e.Column))
	}

	sb.WriteString(e.Message)

	for _, hint := range e.Hints {
		sb.WriteString("\n  ")
		sb.WriteString(hint)
	}

	return sb.String()
}

// PrettyString returns a multi-line formatted string for display.
func (e *SorrelError) PrettyString() string {
	var sb strings.Builder

	switch e.Class {
	case ClassParse:
		sb.WriteString("Parser error")
	default:
		sb.WriteString("Runtime error")
	}

	if e.File != "" {
		sb.WriteString(":\n  in: ")
		sb.WriteString(e.File)
		if e.Line > 0 {
			sb.WriteString(fmt.Sprintf("\n  at: line %d, column %d", e.Line, e.Column))
		}
		sb.WriteString("\n  ")
	} else if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(": line %d, column %d\n  ", e.Line, e.Column))
	} else {
		sb.WriteString(":\n  ")
	}

	sb.WriteString(e.Message)

	for i, hint := range e.Hints {
		sb.WriteString("\n  ")
		if i == 0 {
			sb.WriteString("Use: ")
		} else {
			sb.WriteString(" or: ")
		}
		sb.WriteString(hint)
	}

	return sb.String()
}

// ToJSON returns the error as JSON bytes.
func (e *SorrelError) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// WithFile returns a copy of the error with the file path set.
func (e *SorrelError) WithFile(file string) *SorrelError {
	copy := *e
	copy.File = file
	return &copy
}

// WithPosition returns a copy of the error with line and column set.
func (e *SorrelError) WithPosition(line, column int) *SorrelError {
	copy := *e
	copy.Line = line
	copy.Column = column
	return &copy
}

// IsParseError returns true if this is a parser error.
func (e *SorrelError) IsParseError() bool {
	return e.Class == ClassParse
}

// IsRuntimeError returns true if this is a runtime error.
func (e *SorrelError) IsRuntimeError() bool {
	return e.Class != ClassParse
}

// ErrorDef defines an error in the catalog.
type ErrorDef struct {
	Class    ErrorClass // Error category
	Template string     // Message template with {{.placeholders}}
	Hints    []string   // Hint templates (may use {{.placeholders}})
}

// ErrorCatalog maps error codes to their definitions.
var ErrorCatalog = map[string]ErrorDef{
	// ========================================
	// Parse errors (PARSE-0xxx)
	// ========================================
	"PARSE-0001": {
		Class:    ClassParse,
		Template: "expected {{.Expected}}, got '{{.Got}}'",
	},
	"PARSE-0002": {
		Class:    ClassParse,
		Template: "unexpected token '{{.Token}}'",
	},
	"PARSE-0003": {
		Class:    ClassParse,
		Template: "unterminated string",
	},
	"PARSE-0004": {
		Class:    ClassParse,
		Template: "invalid integer literal: {{.Literal}}",
	},
	"PARSE-0005": {
		Class:    ClassParse,
		Template: "no parse rule for '{{.Token}}' in expression position",
	},
	"PARSE-0006": {
		Class:    ClassParse,
		Template: "expression nesting too deep (limit {{.Limit}})",
		Hints:    []string{"split the expression into smaller statements"},
	},
	"PARSE-0007": {
		Class:    ClassParse,
		Template: "expected a method name after '.', got '{{.Got}}'",
	},

	// ========================================
	// Type errors (TYPE-0xxx)
	// ========================================
	"TYPE-0001": {
		Class:    ClassType,
		Template: "no implicit conversion of {{.Got}} into {{.Expected}}",
	},
	"TYPE-0002": {
		Class:    ClassType,
		Template: "comparison of {{.Left}} with {{.Right}} failed",
	},
	"TYPE-0003": {
		Class:    ClassType,
		Template: "{{.Method}} expects {{.Expected}}, got {{.Got}}",
	},
	"TYPE-0004": {
		Class:    ClassType,
		Template: "unknown locale: {{.Locale}}",
		Hints:    []string{"use a BCP 47 tag like \"en-US\" or \"de-DE\""},
	},

	// ========================================
	// Arity errors (ARITY-0xxx)
	// ========================================
	"ARITY-0001": {
		Class:    ClassArity,
		Template: "wrong number of arguments for {{.Method}} (given {{.Got}}, expected {{.Want}})",
	},
	"ARITY-0002": {
		Class:    ClassArity,
		Template: "wrong number of arguments for {{.Method}} (given {{.Got}}, expected {{.Min}}..{{.Max}})",
	},
	"ARITY-0003": {
		Class:    ClassArity,
		Template: "wrong number of arguments for {{.Method}} (given {{.Got}}, expected {{.Min}}+)",
	},

	// ========================================
	// Undefined errors (UNDEF-0xxx)
	// ========================================
	"UNDEF-0001": {
		Class:    ClassUndefined,
		Template: "undefined variable `{{.Name}}`",
	},
	"UNDEF-0002": {
		Class:    ClassUndefined,
		Template: "undefined method `{{.Method}}` for {{.Type}}",
	},

	// ========================================
	// Operator errors (OP-0xxx)
	// ========================================
	"OP-0001": {
		Class:    ClassOperator,
		Template: "unknown operator: {{.LeftType}} {{.Operator}} {{.RightType}}",
	},
	"OP-0002": {
		Class:    ClassOperator,
		Template: "divided by 0",
	},
	"OP-0003": {
		Class:    ClassOperator,
		Template: "unknown operator: {{.Operator}}{{.Type}}",
	},
	"OP-0004": {
		Class:    ClassOperator,
		Template: "negative argument for {{.Operator}}",
	},

	// ========================================
	// Resource errors (RES-0xxx)
	// ========================================
	"RES-0001": {
		Class:    ClassResource,
		Template: "stack level too deep (limit {{.Limit}})",
		Hints:    []string{"reduce expression nesting or raise max_depth in .sorrel.yaml"},
	},
}

// New creates a SorrelError from the catalog.
func New(code string, data map[string]any) *SorrelError {
	def, ok := ErrorCatalog[code]
	if !ok {
		// Unknown code - create a generic error
		msg := code
		if data != nil {
			if m, ok := data["message"].(string); ok {
				msg = m
			}
		}
		return &SorrelError{
			Class:   ClassType,
			Code:    code,
			Message: msg,
			Data:    data,
		}
	}

	msg := renderTemplate(def.Template, data)

	var hints []string
	for _, hintTmpl := range def.Hints {
		rendered := renderTemplate(hintTmpl, data)
		if rendered != "" {
			hints = append(hints, rendered)
		}
	}

	return &SorrelError{
		Class:   def.Class,
		Code:    code,
		Message: msg,
		Hints:   hints,
		Data:    data,
	}
}

// NewWithPosition creates a SorrelError with position information.
func NewWithPosition(code string, line, column int, data map[string]any) *SorrelError {
	err := New(code, data)
	err.Line = line
	err.Column = column
	return err
}

// NewSimple creates a simple error without using the catalog.
func NewSimple(class ErrorClass, message string) *SorrelError {
	return &SorrelError{
		Class:   class,
		Message: message,
	}
}

// renderTemplate renders a Go template with the given data.
func renderTemplate(tmplStr string, data map[string]any) string {
	if data == nil {
		return tmplStr
	}

	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return tmplStr
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return tmplStr
	}

	return buf.String()
}

// TypeName returns a lowercase type name for error messages.
// Converts "STRING" to "string", "INTEGER" to "integer", etc.
func TypeName(t string) string {
	return strings.ToLower(t)
}

// ============================================================================
// Fuzzy Matching - "Did you mean?" suggestions
// ============================================================================

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

// fuzzyMatch pairs a candidate with its edit distance.
type fuzzyMatch struct {
	value    string
	distance int
}

// matchThreshold returns the allowed edit distance for an input.
// Short words (1-3): max 1 edit; medium (4-6): 2; longer: 3.
func matchThreshold(input string) int {
	switch {
	case len(input) >= 7:
		return 3
	case len(input) >= 4:
		return 2
	default:
		return 1
	}
}

// FindClosestMatch finds the closest match to the given string from candidates.
// Returns the best match if the distance is within the threshold, otherwise
// the empty string.
func FindClosestMatch(input string, candidates []string) string {
	if len(input) == 0 || len(candidates) == 0 {
		return ""
	}

	inputLower := strings.ToLower(input)

	var bestMatch string
	bestDistance := -1

	for _, candidate := range candidates {
		dist := levenshteinDistance(inputLower, strings.ToLower(candidate))
		if bestDistance == -1 || dist < bestDistance {
			bestDistance = dist
			bestMatch = candidate
		}
	}

	if bestDistance <= 0 || bestDistance > matchThreshold(input) {
		return ""
	}

	return bestMatch
}

// FindTopMatches returns the top N closest matches to the input.
func FindTopMatches(input string, candidates []string, n int) []string {
	if len(input) == 0 || len(candidates) == 0 || n <= 0 {
		return nil
	}

	inputLower := strings.ToLower(input)

	var matches []fuzzyMatch
	for _, candidate := range candidates {
		dist := levenshteinDistance(inputLower, strings.ToLower(candidate))
		if dist > 0 {
			matches = append(matches, fuzzyMatch{value: candidate, distance: dist})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	threshold := matchThreshold(input)

	var result []string
	for i := 0; i < len(matches) && i < n; i++ {
		if matches[i].distance <= threshold {
			result = append(result, matches[i].value)
		}
	}

	return result
}

// NewUndefinedIdentifier creates an undefined identifier error with optional
// fuzzy matching.
func NewUndefinedIdentifier(name string, availableIdentifiers []string) *SorrelError {
	data := map[string]any{"Name": name}
	err := New("UNDEF-0001", data)

	if suggestion := FindClosestMatch(name, availableIdentifiers); suggestion != "" {
		err.Hints = append(err.Hints, "Did you mean `"+suggestion+"`?")
	}

	return err
}

// NewUndefinedMethod creates an undefined method error with optional fuzzy
// matching against the receiver type's method set.
func NewUndefinedMethod(method, typeName string, availableMethods []string) *SorrelError {
	data := map[string]any{
		"Method": method,
		"Type":   typeName,
	}
	err := New("UNDEF-0002", data)

	if suggestion := FindClosestMatch(method, availableMethods); suggestion != "" {
		err.Hints = append(err.Hints, "Did you mean `"+suggestion+"`?")
	}

	return err
}

// SorrelKeywords lists reserved keywords for fuzzy matching against typos.
var SorrelKeywords = []string{
	"return", "true", "false", "nil",
}

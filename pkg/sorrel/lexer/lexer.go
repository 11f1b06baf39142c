package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenType represents different types of tokens
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers and literals
	IDENT  // length, upcase, foo, ...
	INT    // 1343456
	STRING // "foobar" or 'foobar'

	// Operators
	ASSIGN   // =
	PLUS     // +
	MINUS    // -
	BANG     // !
	ASTERISK // *
	SLASH    // /
	PERCENT  // %
	LT       // <
	GT       // >
	LTE      // <=
	GTE      // >=
	EQ       // ==
	NOT_EQ   // !=
	CMP      // <=>
	LSHIFT   // <<

	// Delimiters
	COMMA     // ,
	SEMICOLON // ;
	DOT       // .
	LPAREN    // (
	RPAREN    // )

	// Keywords
	RETURN // "return"
	TRUE   // "true"
	FALSE  // "false"
	NIL    // "nil"
)

// Token represents a single token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %s, Line: %d, Column: %d}",
		t.Type.String(), t.Literal, t.Line, t.Column)
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case IDENT:
		return "IDENT"
	case INT:
		return "INT"
	case STRING:
		return "STRING"
	case ASSIGN:
		return "ASSIGN"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case BANG:
		return "BANG"
	case ASTERISK:
		return "ASTERISK"
	case SLASH:
		return "SLASH"
	case PERCENT:
		return "PERCENT"
	case LT:
		return "LT"
	case GT:
		return "GT"
	case LTE:
		return "LTE"
	case GTE:
		return "GTE"
	case EQ:
		return "EQ"
	case NOT_EQ:
		return "NOT_EQ"
	case CMP:
		return "CMP"
	case LSHIFT:
		return "LSHIFT"
	case COMMA:
		return "COMMA"
	case SEMICOLON:
		return "SEMICOLON"
	case DOT:
		return "DOT"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case RETURN:
		return "RETURN"
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case NIL:
		return "NIL"
	default:
		return "UNKNOWN"
	}
}

// Keywords map for identifying language keywords
var keywords = map[string]TokenType{
	"return": RETURN,
	"true":   TRUE,
	"false":  FALSE,
	"nil":    NIL,
}

// unterminatedString is the literal carried by an ILLEGAL token when a
// string literal runs off the end of the input.
const UnterminatedString = "unterminated string"

// Lexer tokenizes Sorrel source text
type Lexer struct {
	filename     string
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination (first byte for multi-byte)
	chRune       rune // current char as a rune
	chSize       int  // byte size of current char
	line         int  // current line number (1-based)
	column       int  // current column number (1-based)
}

// New creates a new lexer instance
func New(input string) *Lexer {
	l := &Lexer{
		filename: "<input>",
		input:    input,
		line:     1,
		column:   0,
	}
	l.readChar()
	return l
}

// NewWithFilename creates a new lexer instance with a specific filename
func NewWithFilename(input string, filename string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    input,
		line:     1,
		column:   0,
	}
	l.readChar()
	return l
}

// Filename returns the name given to this input
func (l *Lexer) Filename() string { return l.filename }

// readChar reads the next character and advances position.
// Uses a hybrid approach: ASCII fast-path for single-byte characters,
// UTF-8 decoding for multi-byte characters (to support Unicode identifiers).
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL character represents EOF
		l.chRune = 0
		l.chSize = 0
		l.position = l.readPosition
		return
	}

	b := l.input[l.readPosition]

	// ASCII fast-path: single-byte characters (most common case)
	if b < utf8.RuneSelf {
		l.ch = b
		l.chRune = rune(b)
		l.chSize = 1
		l.position = l.readPosition
		l.readPosition++

		if l.ch == '\n' {
			l.line++
			l.column = 0
		} else {
			l.column++
		}
		return
	}

	// Non-ASCII: decode the full UTF-8 rune
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = b
	l.chRune = r
	l.chSize = size
	l.position = l.readPosition
	l.readPosition += size

	l.column++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// peekCharN returns the character n positions ahead without advancing position
func (l *Lexer) peekCharN(n int) byte {
	pos := l.readPosition + n - 1
	if pos >= len(l.input) {
		return 0
	}
	return l.input[pos]
}

// NextToken scans the input and returns the next token
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespaceAndComments()

	line := l.line
	column := l.column

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: EQ, Literal: "==", Line: line, Column: column}
		} else {
			tok = Token{Type: ASSIGN, Literal: "=", Line: line, Column: column}
		}
	case '+':
		tok = Token{Type: PLUS, Literal: "+", Line: line, Column: column}
	case '-':
		tok = Token{Type: MINUS, Literal: "-", Line: line, Column: column}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: NOT_EQ, Literal: "!=", Line: line, Column: column}
		} else {
			tok = Token{Type: BANG, Literal: "!", Line: line, Column: column}
		}
	case '*':
		tok = Token{Type: ASTERISK, Literal: "*", Line: line, Column: column}
	case '/':
		tok = Token{Type: SLASH, Literal: "/", Line: line, Column: column}
	case '%':
		tok = Token{Type: PERCENT, Literal: "%", Line: line, Column: column}
	case '<':
		switch {
		case l.peekChar() == '=' && l.peekCharN(2) == '>':
			l.readChar()
			l.readChar()
			tok = Token{Type: CMP, Literal: "<=>", Line: line, Column: column}
		case l.peekChar() == '=':
			l.readChar()
			tok = Token{Type: LTE, Literal: "<=", Line: line, Column: column}
		case l.peekChar() == '<':
			l.readChar()
			tok = Token{Type: LSHIFT, Literal: "<<", Line: line, Column: column}
		default:
			tok = Token{Type: LT, Literal: "<", Line: line, Column: column}
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: GTE, Literal: ">=", Line: line, Column: column}
		} else {
			tok = Token{Type: GT, Literal: ">", Line: line, Column: column}
		}
	case ',':
		tok = Token{Type: COMMA, Literal: ",", Line: line, Column: column}
	case ';':
		tok = Token{Type: SEMICOLON, Literal: ";", Line: line, Column: column}
	case '.':
		tok = Token{Type: DOT, Literal: ".", Line: line, Column: column}
	case '(':
		tok = Token{Type: LPAREN, Literal: "(", Line: line, Column: column}
	case ')':
		tok = Token{Type: RPAREN, Literal: ")", Line: line, Column: column}
	case '"':
		str, ok := l.readString('"')
		if !ok {
			return Token{Type: ILLEGAL, Literal: UnterminatedString, Line: line, Column: column}
		}
		return Token{Type: STRING, Literal: str, Line: line, Column: column}
	case '\'':
		str, ok := l.readRawString()
		if !ok {
			return Token{Type: ILLEGAL, Literal: UnterminatedString, Line: line, Column: column}
		}
		return Token{Type: STRING, Literal: str, Line: line, Column: column}
	case 0:
		tok = Token{Type: EOF, Literal: "", Line: line, Column: column}
	default:
		if isLetter(l.chRune) {
			literal := l.readIdentifier()
			tokType := IDENT
			if kw, ok := keywords[literal]; ok {
				tokType = kw
			}
			return Token{Type: tokType, Literal: literal, Line: line, Column: column}
		}
		if isDigit(l.ch) {
			return Token{Type: INT, Literal: l.readNumber(), Line: line, Column: column}
		}
		tok = Token{Type: ILLEGAL, Literal: string(l.chRune), Line: line, Column: column}
	}

	l.readChar()
	return tok
}

// skipWhitespaceAndComments advances past spaces, newlines and # comments.
// Newlines are plain statement whitespace in Sorrel's expression subset.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

// readIdentifier reads an identifier, allowing a single trailing ? or !
// (Ruby-style predicate and bang method names).
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.chRune) || isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '?' || l.ch == '!' {
		// Only when followed by something that can't continue the name,
		// so `a != b` does not lex `a!` as an identifier.
		if l.peekChar() != '=' {
			l.readChar()
		}
	}
	return l.input[position:l.position]
}

// readNumber reads an integer literal, permitting _ digit separators
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readString reads a double-quoted string with escape processing.
// Returns false if the string is unterminated.
func (l *Lexer) readString(quote byte) (string, bool) {
	var result []byte
	for {
		l.readChar()
		switch l.ch {
		case quote:
			l.readChar() // consume closing quote
			return string(result), true
		case 0:
			return "", false
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			case 'r':
				result = append(result, '\r')
			case '0':
				result = append(result, 0)
			case '\\':
				result = append(result, '\\')
			case quote:
				result = append(result, quote)
			case 0:
				return "", false
			default:
				// Unknown escape: keep the backslash, Ruby-style
				result = append(result, '\\')
				result = l.appendCurrentChar(result)
			}
		default:
			result = l.appendCurrentChar(result)
		}
	}
}

// readRawString reads a single-quoted string. Only \' and \\ are escapes;
// everything else is literal.
func (l *Lexer) readRawString() (string, bool) {
	var result []byte
	for {
		l.readChar()
		switch l.ch {
		case '\'':
			l.readChar() // consume closing quote
			return string(result), true
		case 0:
			return "", false
		case '\\':
			switch l.peekChar() {
			case '\'', '\\':
				l.readChar()
				result = append(result, l.ch)
			default:
				result = append(result, '\\')
			}
		default:
			result = l.appendCurrentChar(result)
		}
	}
}

// appendCurrentChar appends the current character (all bytes for multi-byte
// UTF-8) to the given slice.
func (l *Lexer) appendCurrentChar(result []byte) []byte {
	if l.chSize == 1 {
		return append(result, l.ch)
	}
	return append(result, l.input[l.position:l.position+l.chSize]...)
}

// isLetter reports whether r can start or continue an identifier
func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// isDigit reports whether ch is an ASCII digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

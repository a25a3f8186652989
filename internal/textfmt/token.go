package textfmt

import (
	"fmt"
	"strconv"
)

type tokenType uint8

const (
	tokenEOF tokenType = iota
	tokenError
	tokenIdent  // point, Basic
	tokenInt    // 32
	tokenString // "int"
	tokenLBrace // {
	tokenRBrace // }
	tokenLParen // (
	tokenRParen // )
	tokenEq     // =
	tokenColon  // :
	tokenComma  // ,
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenError:
		return "invalid token"
	case tokenIdent:
		return "identifier"
	case tokenInt:
		return "integer"
	case tokenString:
		return "string"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenEq:
		return "'='"
	case tokenColon:
		return "':'"
	case tokenComma:
		return "','"
	default:
		return "unknown"
	}
}

// Position is a 1-based line and column in the input.
type Position struct {
	Line   int
	Column int
}

// String returns position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type token struct {
	typ   tokenType
	value string // unquoted for strings
	pos   Position
}

func (t token) String() string {
	switch t.typ {
	case tokenIdent, tokenInt:
		return fmt.Sprintf("%s %s", t.typ, t.value)
	case tokenString:
		return fmt.Sprintf("%s %q", t.typ, t.value)
	default:
		return t.typ.String()
	}
}

var punctuation = map[byte]tokenType{
	'{': tokenLBrace,
	'}': tokenRBrace,
	'(': tokenLParen,
	')': tokenRParen,
	'=': tokenEq,
	':': tokenColon,
	',': tokenComma,
}

// lexer tokenizes layout text.
type lexer struct {
	input string
	pos   int
	line  int
	col   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input, line: 1, col: 1}
}

// tokenize returns all tokens up to and including EOF.
func (l *lexer) tokenize() ([]token, error) {
	var tokens []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.typ == tokenEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipWhitespaceAndComments()

	start := l.currentPos()
	if l.pos >= len(l.input) {
		return token{typ: tokenEOF, pos: start}, nil
	}

	ch := l.input[l.pos]
	if typ, ok := punctuation[ch]; ok {
		l.advance()
		return token{typ: typ, value: string(ch), pos: start}, nil
	}

	switch {
	case ch == '"':
		return l.scanString()
	case isDigit(ch):
		return l.scanInt(), nil
	case isIdentStart(ch):
		return l.scanIdent(), nil
	}

	return token{}, errorAt(start, "unexpected character %q", ch)
}

// scanString scans a double-quoted Go string literal and unquotes it.
func (l *lexer) scanString() (token, error) {
	start := l.currentPos()
	from := l.pos
	l.advance() // opening quote

	for {
		if l.pos >= len(l.input) || l.input[l.pos] == '\n' {
			return token{}, errorAt(start, "unterminated string")
		}
		ch := l.input[l.pos]
		l.advance()
		if ch == '"' {
			break
		}
		if ch == '\\' {
			if l.pos >= len(l.input) {
				return token{}, errorAt(start, "unterminated string")
			}
			l.advance()
		}
	}

	s, err := strconv.Unquote(l.input[from:l.pos])
	if err != nil {
		return token{}, errorAt(start, "invalid string literal %s", l.input[from:l.pos])
	}

	return token{typ: tokenString, value: s, pos: start}, nil
}

func (l *lexer) scanInt() token {
	start := l.currentPos()
	from := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.advance()
	}
	return token{typ: tokenInt, value: l.input[from:l.pos], pos: start}
}

func (l *lexer) scanIdent() token {
	start := l.currentPos()
	from := l.pos
	for l.pos < len(l.input) && isIdentContinue(l.input[l.pos]) {
		l.advance()
	}
	return token{typ: tokenIdent, value: l.input[from:l.pos], pos: start}
}

// skipWhitespaceAndComments skips whitespace and # comments.
func (l *lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		switch ch := l.input[l.pos]; {
		case ch == ' ', ch == '\t', ch == '\r', ch == '\n':
			l.advance()
		case ch == '#':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// isIdent reports whether s can be written as a bare binding name.
func isIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentContinue(s[i]) {
			return false
		}
	}
	return true
}

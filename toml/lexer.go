package toml

import (
	"strconv"
	"strings"
)

// Lexer splits TOML input into tokens
type Lexer struct {
	input []byte
	pos   int
	line  int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1}
}

// NextToken returns the next token, skipping blanks and comments
func (l *Lexer) NextToken() Token {
	l.skipBlank()
	if l.pos >= len(l.input) {
		return l.token(TokenEOF, "")
	}

	ch := l.input[l.pos]
	switch ch {
	case '\n':
		l.pos++
		tok := l.token(TokenNewline, "\n")
		l.line++
		return tok
	case '=':
		l.pos++
		return l.token(TokenEqual, "=")
	case '.':
		l.pos++
		return l.token(TokenDot, ".")
	case ',':
		l.pos++
		return l.token(TokenComma, ",")
	case '[':
		l.pos++
		return l.token(TokenLBracket, "[")
	case ']':
		l.pos++
		return l.token(TokenRBracket, "]")
	case '"':
		return l.readBasicString()
	case '\'':
		return l.readLiteralString()
	}

	if isBareChar(ch) || ch == '+' {
		return l.readBare()
	}

	l.pos++
	return l.token(TokenError, "unexpected character "+strconv.QuoteRune(rune(ch)))
}

func (l *Lexer) token(typ TokenType, lit string) Token {
	return Token{Type: typ, Literal: lit, Line: l.line}
}

// skipBlank consumes spaces, tabs, carriage returns and comments up to the newline
func (l *Lexer) skipBlank() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
		case '#':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *Lexer) readBasicString() Token {
	l.pos++ // opening quote
	start := l.pos
	escaped := false
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch == '\n':
			return l.token(TokenError, "newline in string")
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			raw := string(l.input[start:l.pos])
			l.pos++ // closing quote
			s, err := strconv.Unquote(`"` + raw + `"`)
			if err != nil {
				return l.token(TokenError, "invalid escape in string")
			}
			return l.token(TokenString, s)
		}
		l.pos++
	}
	return l.token(TokenError, "unterminated string")
}

func (l *Lexer) readLiteralString() Token {
	l.pos++
	start := l.pos
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '\n':
			return l.token(TokenError, "newline in string")
		case '\'':
			s := string(l.input[start:l.pos])
			l.pos++
			return l.token(TokenString, s)
		}
		l.pos++
	}
	return l.token(TokenError, "unterminated string")
}

// readBare reads a bare key, boolean or number.
// Numbers may carry '.', exponents and signs, which bare keys cannot.
func (l *Lexer) readBare() Token {
	start := l.pos
	numeric := isDigit(l.input[l.pos]) || l.input[l.pos] == '+' || l.input[l.pos] == '-'
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if isBareChar(ch) || (numeric && (ch == '.' || ch == '+')) {
			l.pos++
			continue
		}
		break
	}
	return l.classify(string(l.input[start:l.pos]))
}

func (l *Lexer) classify(lit string) Token {
	if lit == "true" || lit == "false" {
		return l.token(TokenBool, lit)
	}

	num := strings.ReplaceAll(lit, "_", "")
	if startsNumeric(num) {
		if _, err := strconv.ParseInt(num, 10, 64); err == nil {
			return l.token(TokenInteger, num)
		}
		if _, err := strconv.ParseFloat(num, 64); err == nil {
			return l.token(TokenFloat, num)
		}
	}

	for i := 0; i < len(lit); i++ {
		if !isBareChar(lit[i]) {
			return l.token(TokenError, "invalid value "+strconv.Quote(lit))
		}
	}
	return l.token(TokenKey, lit)
}

// startsNumeric rejects inf/nan spellings that ParseFloat accepts
func startsNumeric(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return s != "" && isDigit(s[0])
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isBareChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || isDigit(ch) || ch == '_' || ch == '-'
}

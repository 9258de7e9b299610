// Package toml decodes the TOML subset used by vencoord configuration files:
// comments, [table] headers, dotted keys, strings, integers, floats,
// booleans and arrays of those. Inline tables, arrays of tables and
// date-times are rejected.
package toml

import "fmt"

// TokenType classifies a lexical token
type TokenType int

const (
	TokenError TokenType = iota
	TokenEOF
	TokenNewline

	TokenKey     // bare key
	TokenString  // "basic" or 'literal'
	TokenInteger // 42, -7, 1_000
	TokenFloat   // 0.5, 1e3
	TokenBool    // true, false

	TokenEqual    // =
	TokenDot      // .
	TokenComma    // ,
	TokenLBracket // [
	TokenRBracket // ]
)

var tokenNames = [...]string{
	TokenError:    "error",
	TokenEOF:      "end of input",
	TokenNewline:  "newline",
	TokenKey:      "key",
	TokenString:   "string",
	TokenInteger:  "integer",
	TokenFloat:    "float",
	TokenBool:     "boolean",
	TokenEqual:    "'='",
	TokenDot:      "'.'",
	TokenComma:    "','",
	TokenLBracket: "'['",
	TokenRBracket: "']'",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexeme with its source line
type Token struct {
	Type    TokenType
	Literal string
	Line    int
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF, TokenNewline, TokenEqual, TokenDot, TokenComma, TokenLBracket, TokenRBracket:
		return t.Type.String()
	}
	lit := t.Literal
	if len(lit) > 20 {
		lit = lit[:20] + "..."
	}
	return fmt.Sprintf("%s %q", t.Type, lit)
}

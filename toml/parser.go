package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser builds a nested map[string]any from a token stream
type Parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
	root  map[string]any
	table map[string]any // target of key/value lines

	// Tables opened by a [header], so a second header with the same path is rejected
	declared map[string]bool
}

func NewParser(input []byte) *Parser {
	p := &Parser{
		lexer:    NewLexer(input),
		root:     make(map[string]any),
		declared: make(map[string]bool),
	}
	p.table = p.root
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

// Parse consumes the whole input
func (p *Parser) Parse() (map[string]any, error) {
	for p.cur.Type != TokenEOF {
		switch p.cur.Type {
		case TokenNewline:
			p.next()
			continue
		case TokenLBracket:
			if err := p.parseHeader(); err != nil {
				return nil, err
			}
		case TokenKey, TokenString, TokenInteger, TokenBool:
			if err := p.parseKeyValue(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf("unexpected %s", p.cur)
		}

		if err := p.endOfLine(); err != nil {
			return nil, err
		}
	}
	return p.root, nil
}

func (p *Parser) errorf(format string, args ...any) error {
	if p.cur.Type == TokenError {
		return fmt.Errorf("toml: line %d: %s", p.cur.Line, p.cur.Literal)
	}
	return fmt.Errorf("toml: line %d: %s", p.cur.Line, fmt.Sprintf(format, args...))
}

func (p *Parser) endOfLine() error {
	switch p.cur.Type {
	case TokenNewline:
		p.next()
		return nil
	case TokenEOF:
		return nil
	}
	return p.errorf("expected newline, got %s", p.cur)
}

// parseHeader handles [a.b] and rejects [[a]]
func (p *Parser) parseHeader() error {
	p.next() // [
	if p.cur.Type == TokenLBracket {
		return p.errorf("arrays of tables are not supported")
	}

	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenRBracket {
		return p.errorf("expected ']' after table name, got %s", p.cur)
	}
	p.next()

	path := strings.Join(keys, "\x00")
	if p.declared[path] {
		return p.errorf("table %v defined twice", keys)
	}
	p.declared[path] = true

	t, err := p.descend(p.root, keys)
	if err != nil {
		return err
	}
	p.table = t
	return nil
}

// descend walks keys from m, creating tables as needed
func (p *Parser) descend(m map[string]any, keys []string) (map[string]any, error) {
	for _, k := range keys {
		existing, ok := m[k]
		if !ok {
			child := make(map[string]any)
			m[k] = child
			m = child
			continue
		}
		child, ok := existing.(map[string]any)
		if !ok {
			return nil, p.errorf("key %q is a value, not a table", k)
		}
		m = child
	}
	return m, nil
}

func (p *Parser) parseKeyValue() error {
	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenEqual {
		return p.errorf("expected '=' after key, got %s", p.cur)
	}
	p.next()

	val, err := p.parseValue()
	if err != nil {
		return err
	}

	t, err := p.descend(p.table, keys[:len(keys)-1])
	if err != nil {
		return err
	}
	last := keys[len(keys)-1]
	if _, dup := t[last]; dup {
		return p.errorf("duplicate key %q", last)
	}
	t[last] = val
	return nil
}

// parseKey reads a possibly dotted key
func (p *Parser) parseKey() ([]string, error) {
	var keys []string
	for {
		switch p.cur.Type {
		case TokenKey, TokenString, TokenInteger, TokenBool:
			keys = append(keys, p.cur.Literal)
		default:
			return nil, p.errorf("expected key, got %s", p.cur)
		}
		p.next()
		if p.cur.Type != TokenDot {
			return keys, nil
		}
		p.next()
	}
}

func (p *Parser) parseValue() (any, error) {
	tok := p.cur
	switch tok.Type {
	case TokenString:
		p.next()
		return tok.Literal, nil
	case TokenInteger:
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer %q", tok.Literal)
		}
		p.next()
		return v, nil
	case TokenFloat:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid float %q", tok.Literal)
		}
		p.next()
		return v, nil
	case TokenBool:
		p.next()
		return tok.Literal == "true", nil
	case TokenLBracket:
		return p.parseArray()
	}
	return nil, p.errorf("expected value, got %s", tok)
}

// parseArray reads [v, v, ...]; newlines and a trailing comma are allowed
func (p *Parser) parseArray() ([]any, error) {
	p.next() // [
	arr := make([]any, 0)
	for {
		for p.cur.Type == TokenNewline {
			p.next()
		}
		if p.cur.Type == TokenRBracket {
			p.next()
			return arr, nil
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		for p.cur.Type == TokenNewline {
			p.next()
		}
		switch p.cur.Type {
		case TokenComma:
			p.next()
		case TokenRBracket:
		default:
			return nil, p.errorf("expected ',' or ']' in array, got %s", p.cur)
		}
	}
}

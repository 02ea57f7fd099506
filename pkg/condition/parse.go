package condition

import (
	"errors"
	"fmt"
	"strconv"
)

var errUnterminated = errors.New("unterminated string")

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) accept(kind tokenKind) bool {
	if p.peek().kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *parser) fail(tok token, format string, args ...any) error {
	if tok.kind == tokEOF {
		return &SyntaxError{Pos: tok.pos, Message: "unexpected end of rule"}
	}
	return &SyntaxError{Pos: tok.pos, Message: fmt.Sprintf(format, args...)}
}

// or := and ("||" and)*
func (p *parser) or() (node, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.accept(tokOr) {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = anyOf{left, right}
	}
	return left, nil
}

// and := unary ("&&" unary)*
func (p *parser) and() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.accept(tokAnd) {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = allOf{left, right}
	}
	return left, nil
}

// unary := "!" unary | primary
func (p *parser) unary() (node, error) {
	if p.accept(tokNot) {
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return not{inner}, nil
	}
	return p.primary()
}

// primary := "(" or ")" | name [op literal]
func (p *parser) primary() (node, error) {
	if p.accept(tokLParen) {
		inner, err := p.or()
		if err != nil {
			return nil, err
		}
		if tok := p.peek(); !p.accept(tokRParen) {
			return nil, p.fail(tok, "expected ')' but found %q", tok.text)
		}
		return inner, nil
	}

	tok := p.next()
	if tok.kind != tokName {
		return nil, p.fail(tok, "expected a field name but found %q", tok.text)
	}
	opTok := p.peek()
	switch opTok.kind {
	case tokEq, tokNeq, tokLt, tokLte, tokGt, tokGte:
		p.next()
	default:
		return present{name: tok.text}, nil
	}
	lit, err := p.literal()
	if err != nil {
		return nil, err
	}
	if opTok.kind != tokEq && opTok.kind != tokNeq && lit.kind != litNumber {
		return nil, p.fail(opTok, "%s needs a number", opTok.text)
	}
	return compare{name: tok.text, op: opTok.kind, lit: lit}, nil
}

func (p *parser) literal() (literal, error) {
	tok := p.next()
	switch tok.kind {
	case tokString:
		return literal{kind: litString, text: tok.text}, nil
	case tokName:
		// Bare words compare as strings: plan == pro.
		return literal{kind: litString, text: tok.text}, nil
	case tokNumber:
		n, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return literal{}, p.fail(tok, "invalid number %q", tok.text)
		}
		return literal{kind: litNumber, text: tok.text, num: n}, nil
	case tokTrue, tokFalse:
		return literal{kind: litBool, text: tok.text, flag: tok.kind == tokTrue}, nil
	case tokNull:
		return literal{kind: litNull, text: tok.text}, nil
	}
	return literal{}, p.fail(tok, "expected a value but found %q", tok.text)
}

// internal/calculator/calculator.go

// Package calculator evaluates keypad arithmetic: decimal numbers, the four
// basic operators, and a postfix percent meaning "divide by 100". The grammar
// is closed; there is no identifier, call, or grouping syntax to abuse.
package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrEmptyExpression  = errors.New("empty expression")
	ErrTrailingOperator = errors.New("expression ends with an operator")
	ErrDivisionByZero   = errors.New("division by zero")
)

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenPercent
)

type token struct {
	kind  tokenKind
	value float64
}

// Evaluate computes the expression, rounding the result to 8 decimal places.
func Evaluate(expr string) (float64, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, ErrEmptyExpression
	}

	p := &parser{tokens: tokens}
	result, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.tokens) {
		return 0, fmt.Errorf("unexpected token at position %d", p.pos)
	}

	return math.Round(result*1e8) / 1e8, nil
}

func tokenize(expr string) ([]token, error) {
	var tokens []token
	runes := []rune(expr)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '+':
			tokens = append(tokens, token{kind: tokenPlus})
			i++
		case r == '-':
			tokens = append(tokens, token{kind: tokenMinus})
			i++
		case r == '*' || r == '×':
			tokens = append(tokens, token{kind: tokenStar})
			i++
		case r == '/' || r == '÷':
			tokens = append(tokens, token{kind: tokenSlash})
			i++
		case r == '%':
			tokens = append(tokens, token{kind: tokenPercent})
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			text := string(runes[start:i])
			if strings.Count(text, ".") > 1 {
				return nil, fmt.Errorf("malformed number %q", text)
			}
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed number %q", text)
			}
			tokens = append(tokens, token{kind: tokenNumber, value: v})
		default:
			return nil, fmt.Errorf("unexpected character %q", r)
		}
	}
	return tokens, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

// expr := term (('+' | '-') term)*
func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	for {
		tok, ok := p.peek()
		if !ok || (tok.kind != tokenPlus && tok.kind != tokenMinus) {
			return left, nil
		}
		p.pos++

		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if tok.kind == tokenPlus {
			left += right
		} else {
			left -= right
		}
	}
}

// term := factor (('*' | '/') factor)*
func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}

	for {
		tok, ok := p.peek()
		if !ok || (tok.kind != tokenStar && tok.kind != tokenSlash) {
			return left, nil
		}
		p.pos++

		right, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if tok.kind == tokenStar {
			left *= right
		} else {
			if right == 0 {
				return 0, ErrDivisionByZero
			}
			left /= right
		}
	}
}

// factor := '-'? number '%'*
func (p *parser) parseFactor() (float64, error) {
	tok, ok := p.peek()
	if !ok {
		return 0, ErrTrailingOperator
	}

	negate := false
	if tok.kind == tokenMinus {
		negate = true
		p.pos++
		tok, ok = p.peek()
		if !ok {
			return 0, ErrTrailingOperator
		}
	}

	if tok.kind != tokenNumber {
		return 0, fmt.Errorf("expected a number at position %d", p.pos)
	}
	p.pos++

	value := tok.value
	for {
		next, ok := p.peek()
		if !ok || next.kind != tokenPercent {
			break
		}
		p.pos++
		value /= 100
	}

	if negate {
		value = -value
	}
	return value, nil
}

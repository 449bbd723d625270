package formula

import (
	"fmt"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// The formula language is pure arithmetic: identifiers, numeric literals,
// the four operators and parentheses. There are no function calls, no
// comparisons and no access to anything outside the resolver, so an
// expression can never execute code or touch I/O.

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenNumber
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// Resolver maps an identifier to its numeric value. Returning an error
// aborts evaluation.
type Resolver func(name string) (decimal.Decimal, error)

type node interface {
	eval(resolve Resolver) (decimal.Decimal, error)
	idents(seen map[string]bool, order *[]string)
}

type numberNode struct {
	value decimal.Decimal
}

func (n numberNode) eval(Resolver) (decimal.Decimal, error) { return n.value, nil }
func (n numberNode) idents(map[string]bool, *[]string)      {}

type identNode struct {
	name string
}

func (n identNode) eval(resolve Resolver) (decimal.Decimal, error) {
	return resolve(n.name)
}

func (n identNode) idents(seen map[string]bool, order *[]string) {
	if !seen[n.name] {
		seen[n.name] = true
		*order = append(*order, n.name)
	}
}

type unaryNode struct {
	operand node
}

func (n unaryNode) eval(resolve Resolver) (decimal.Decimal, error) {
	v, err := n.operand.eval(resolve)
	if err != nil {
		return decimal.Zero, err
	}
	return v.Neg(), nil
}

func (n unaryNode) idents(seen map[string]bool, order *[]string) {
	n.operand.idents(seen, order)
}

type binaryNode struct {
	op          tokenKind
	left, right node
}

func (n binaryNode) eval(resolve Resolver) (decimal.Decimal, error) {
	left, err := n.left.eval(resolve)
	if err != nil {
		return decimal.Zero, err
	}
	right, err := n.right.eval(resolve)
	if err != nil {
		return decimal.Zero, err
	}
	switch n.op {
	case tokenPlus:
		return left.Add(right), nil
	case tokenMinus:
		return left.Sub(right), nil
	case tokenStar:
		return left.Mul(right), nil
	case tokenSlash:
		if right.IsZero() {
			return decimal.Zero, shared.NewDomainError(shared.ErrCodeEvaluation, "Division by zero")
		}
		return left.Div(right), nil
	}
	return decimal.Zero, shared.NewDomainError(shared.ErrCodeEvaluation, "Unknown operator")
}

func (n binaryNode) idents(seen map[string]bool, order *[]string) {
	n.left.idents(seen, order)
	n.right.idents(seen, order)
}

// Expression is a parsed arithmetic formula ready for repeated evaluation
type Expression struct {
	src  string
	root node
}

// Parse compiles a formula expression. A malformed expression yields a
// VALIDATION_ERROR describing the offending position.
func Parse(src string) (*Expression, error) {
	tokens, err := scan(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, tokens: tokens}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, parseError(src, tok.pos, fmt.Sprintf("unexpected %q", tok.text))
	}
	return &Expression{src: src, root: root}, nil
}

// String returns the original expression source
func (e *Expression) String() string {
	return e.src
}

// Identifiers returns the distinct identifiers referenced by the
// expression, in order of first appearance
func (e *Expression) Identifiers() []string {
	seen := make(map[string]bool)
	var order []string
	e.root.idents(seen, &order)
	return order
}

// Evaluate computes the expression value, resolving identifiers through
// the given resolver
func (e *Expression) Evaluate(resolve Resolver) (decimal.Decimal, error) {
	return e.root.eval(resolve)
}

func scan(src string) ([]token, error) {
	var tokens []token
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '+':
			tokens = append(tokens, token{tokenPlus, "+", i})
			i++
		case r == '-':
			tokens = append(tokens, token{tokenMinus, "-", i})
			i++
		case r == '*':
			tokens = append(tokens, token{tokenStar, "*", i})
			i++
		case r == '/':
			tokens = append(tokens, token{tokenSlash, "/", i})
			i++
		case r == '(':
			tokens = append(tokens, token{tokenLParen, "(", i})
			i++
		case r == ')':
			tokens = append(tokens, token{tokenRParen, ")", i})
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			sawDot := false
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				if runes[i] == '.' {
					if sawDot {
						return nil, parseError(src, i, "malformed number")
					}
					sawDot = true
				}
				i++
			}
			text := string(runes[start:i])
			if text == "." {
				return nil, parseError(src, start, "malformed number")
			}
			tokens = append(tokens, token{tokenNumber, text, start})
		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(runes) && (runes[i] == '_' || unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			tokens = append(tokens, token{tokenIdent, string(runes[start:i]), start})
		default:
			return nil, parseError(src, i, fmt.Sprintf("unexpected character %q", string(r)))
		}
	}
	tokens = append(tokens, token{tokenEOF, "", len(runes)})
	return tokens, nil
}

// parser is a recursive-descent parser over the scanned tokens with the
// usual precedence: factors bind tighter than terms, terms tighter than
// sums.
type parser struct {
	src    string
	tokens []token
	next   int
}

func (p *parser) peek() token {
	return p.tokens[p.next]
}

func (p *parser) advance() token {
	tok := p.tokens[p.next]
	if tok.kind != tokenEOF {
		p.next++
	}
	return tok
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenPlus && tok.kind != tokenMinus {
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: tok.kind, left: left, right: right}
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenStar && tok.kind != tokenSlash {
			return left, nil
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: tok.kind, left: left, right: right}
	}
}

func (p *parser) parseFactor() (node, error) {
	tok := p.advance()
	switch tok.kind {
	case tokenMinus:
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return unaryNode{operand: operand}, nil
	case tokenNumber:
		value, err := decimal.NewFromString(tok.text)
		if err != nil {
			return nil, parseError(p.src, tok.pos, "malformed number")
		}
		return numberNode{value: value}, nil
	case tokenIdent:
		return identNode{name: tok.text}, nil
	case tokenLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.kind != tokenRParen {
			return nil, parseError(p.src, closing.pos, "missing closing parenthesis")
		}
		return inner, nil
	case tokenEOF:
		return nil, parseError(p.src, tok.pos, "unexpected end of expression")
	default:
		return nil, parseError(p.src, tok.pos, fmt.Sprintf("unexpected %q", tok.text))
	}
}

func parseError(src string, pos int, reason string) error {
	return shared.NewDomainError(shared.ErrCodeValidation,
		fmt.Sprintf("Invalid formula expression at position %d: %s", pos, reason))
}

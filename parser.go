package minimaple

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// Parser is a recursive-descent parser for the grammar
//
//	expr         := term (('+'|'-') term)*
//	term         := factor (('*'|'/') factor)*
//	factor       := primary ('^' signedNumber)?
//	primary      := NUMBER | IDENT | '(' expr ')'
//	signedNumber := ('+'|'-')? NUMBER
//
// Parsing stops at the first error.
type Parser struct {
	lexer *Lexer
	cur   Token
}

func NewParser() *Parser {
	return &Parser{lexer: NewLexer("")}
}

// Parse parses text as a single expression followed by end of input.
func Parse(text string) (Node, error) {
	return NewParser().Parse(text)
}

func (p *Parser) Parse(text string) (Node, error) {
	p.lexer.Reset(text)
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenEOF); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) advance() error {
	tok, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) check(kinds ...TokenKind) bool {
	for _, k := range kinds {
		if p.cur.Kind == k {
			return true
		}
	}
	return false
}

// eat consumes the current token if it is one of kinds.
func (p *Parser) eat(kinds ...TokenKind) (Token, error) {
	if !p.check(kinds...) {
		return Token{}, &ParseError{Expected: kinds, Found: p.cur.Kind, Offset: p.cur.Offset}
	}
	tok := p.cur
	if tok.Kind == TokenEOF {
		return tok, nil
	}
	return tok, p.advance()
}

func (p *Parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.check(TokenPlus, TokenMinus) {
		tok, err := p.eat(TokenPlus, TokenMinus)
		if err != nil {
			return nil, err
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		op := OpAdd
		if tok.Kind == TokenMinus {
			op = OpSubtract
		}
		left = Bin(left, op, right)
	}
	return left, nil
}

func (p *Parser) term() (Node, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.check(TokenStar, TokenSlash) {
		tok, err := p.eat(TokenStar, TokenSlash)
		if err != nil {
			return nil, err
		}
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		op := OpMultiply
		if tok.Kind == TokenSlash {
			op = OpDivide
		}
		left = Bin(left, op, right)
	}
	return left, nil
}

func (p *Parser) factor() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !p.check(TokenCaret) {
		return base, nil
	}
	if _, err := p.eat(TokenCaret); err != nil {
		return nil, err
	}
	exp, err := p.signedNumber()
	if err != nil {
		return nil, err
	}
	return Bin(base, OpPower, exp), nil
}

func (p *Parser) signedNumber() (*Number, error) {
	sign := 1.0
	if p.check(TokenPlus, TokenMinus) {
		tok, err := p.eat(TokenPlus, TokenMinus)
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenMinus {
			sign = -1
		}
	}
	tok, err := p.eat(TokenNumber)
	if err != nil {
		return nil, err
	}
	v, err := parseNumber(tok)
	if err != nil {
		return nil, err
	}
	return Num(sign * v), nil
}

func (p *Parser) primary() (Node, error) {
	switch p.cur.Kind {
	case TokenNumber:
		tok, err := p.eat(TokenNumber)
		if err != nil {
			return nil, err
		}
		v, err := parseNumber(tok)
		if err != nil {
			return nil, err
		}
		return Num(v), nil
	case TokenIdent:
		tok, err := p.eat(TokenIdent)
		if err != nil {
			return nil, err
		}
		return Var(tok.Literal), nil
	case TokenLParen:
		if _, err := p.eat(TokenLParen); err != nil {
			return nil, err
		}
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(TokenRParen); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, &ParseError{
		Expected: []TokenKind{TokenNumber, TokenIdent, TokenLParen},
		Found:    p.cur.Kind,
		Offset:   p.cur.Offset,
	}
}

func parseNumber(tok Token) (float64, error) {
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "number at offset %d", tok.Offset)
	}
	return v, nil
}

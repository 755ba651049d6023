package minimaple

import (
	"unicode/utf8"
)

// ============================================================
// Tokens
// ============================================================

// TokenKind identifies the class of a token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenNumber
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenCaret
	TokenLParen
	TokenRParen
)

var tokenNames = [...]string{
	TokenEOF:    "end of input",
	TokenIdent:  "identifier",
	TokenNumber: "number",
	TokenPlus:   "'+'",
	TokenMinus:  "'-'",
	TokenStar:   "'*'",
	TokenSlash:  "'/'",
	TokenCaret:  "'^'",
	TokenLParen: "'('",
	TokenRParen: "')'",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "unknown"
}

var singleCharTokens = map[byte]TokenKind{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'^': TokenCaret,
	'(': TokenLParen,
	')': TokenRParen,
}

// Token is a lexeme with its kind and 0-based byte offset in the input.
type Token struct {
	Kind    TokenKind
	Literal string
	Offset  int
}

// ============================================================
// Lexer
// ============================================================

// Lexer scans an expression into tokens. It yields a single TokenEOF at the
// end of input and ErrExhausted afterwards until Reset is called.
type Lexer struct {
	input string
	pos   int
	done  bool
}

func NewLexer(input string) *Lexer {
	l := &Lexer{}
	l.Reset(input)
	return l
}

func (l *Lexer) Reset(input string) {
	l.input = input
	l.pos = 0
	l.done = false
}

// Next returns the next token.
func (l *Lexer) Next() (Token, error) {
	if l.done {
		return Token{}, ErrExhausted
	}
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		l.done = true
		return Token{Kind: TokenEOF, Offset: len(l.input)}, nil
	}

	ch := l.input[l.pos]
	switch {
	case isDigit(ch):
		return l.number()
	case isLetter(ch):
		return l.ident(), nil
	}
	if kind, ok := singleCharTokens[ch]; ok {
		tok := Token{Kind: kind, Literal: string(ch), Offset: l.pos}
		l.pos++
		return tok, nil
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return Token{}, &LexError{Offset: l.pos, Char: r}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			l.pos++
		default:
			return
		}
	}
}

// number scans digits with at most one decimal point.
func (l *Lexer) number() (Token, error) {
	start := l.pos
	seenDot := false
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '.' {
			if seenDot {
				return Token{}, &LexError{Offset: l.pos, Char: '.'}
			}
			seenDot = true
		} else if !isDigit(ch) {
			break
		}
		l.pos++
	}
	return Token{Kind: TokenNumber, Literal: l.input[start:l.pos], Offset: start}, nil
}

func (l *Lexer) ident() Token {
	start := l.pos
	for l.pos < len(l.input) && isLetter(l.input[l.pos]) {
		l.pos++
	}
	return Token{Kind: TokenIdent, Literal: l.input[start:l.pos], Offset: start}
}

// Tokenize scans the whole input, including the trailing TokenEOF.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func isDigit(ch byte) bool  { return ch >= '0' && ch <= '9' }
func isLetter(ch byte) bool { return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' }

// validVariable reports whether name could be lexed as a single identifier.
func validVariable(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isLetter(name[i]) {
			return false
		}
	}
	return true
}

package minimaple_test

import (
	"errors"
	"testing"

	"github.com/njchilds90/minimaple"
)

// ============================================================
// Lexer tests
// ============================================================

func kinds(toks []minimaple.Token) []minimaple.TokenKind {
	out := make([]minimaple.TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexer_Tokenize(t *testing.T) {
	toks, err := minimaple.Tokenize(" x^2 +\t3.5*(yy - 1)/z ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []minimaple.TokenKind{
		minimaple.TokenIdent, minimaple.TokenCaret, minimaple.TokenNumber, minimaple.TokenPlus,
		minimaple.TokenNumber, minimaple.TokenStar, minimaple.TokenLParen, minimaple.TokenIdent,
		minimaple.TokenMinus, minimaple.TokenNumber, minimaple.TokenRParen, minimaple.TokenSlash,
		minimaple.TokenIdent, minimaple.TokenEOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("want %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: want %s, got %s", i, want[i], got[i])
		}
	}
	if toks[4].Literal != "3.5" || toks[4].Offset != 7 {
		t.Errorf("want 3.5 at 7, got %q at %d", toks[4].Literal, toks[4].Offset)
	}
	if toks[7].Literal != "yy" {
		t.Errorf("want yy, got %q", toks[7].Literal)
	}
	if eof := toks[len(toks)-1]; eof.Offset != 22 {
		t.Errorf("want EOF at 22, got %d", eof.Offset)
	}
}

func TestLexer_Empty(t *testing.T) {
	toks, err := minimaple.Tokenize("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != minimaple.TokenEOF {
		t.Errorf("want a single EOF, got %v", toks)
	}
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	for _, tc := range []struct {
		in     string
		offset int
		char   rune
	}{
		{"x^2 + @", 6, '@'},
		{"x_1", 1, '_'},
		{"1.2.3", 3, '.'},
		{"x ≠ y", 2, '≠'},
	} {
		_, err := minimaple.Tokenize(tc.in)
		var lexErr *minimaple.LexError
		if !errors.As(err, &lexErr) {
			t.Errorf("%q: want LexError, got %v", tc.in, err)
			continue
		}
		if lexErr.Offset != tc.offset || lexErr.Char != tc.char {
			t.Errorf("%q: want %q at %d, got %q at %d", tc.in, tc.char, tc.offset, lexErr.Char, lexErr.Offset)
		}
	}
}

func TestLexer_ExhaustedAndReset(t *testing.T) {
	l := minimaple.NewLexer("x")
	for _, want := range []minimaple.TokenKind{minimaple.TokenIdent, minimaple.TokenEOF} {
		tok, err := l.Next()
		if err != nil || tok.Kind != want {
			t.Fatalf("want %s, got %s (%v)", want, tok.Kind, err)
		}
	}
	if _, err := l.Next(); !errors.Is(err, minimaple.ErrExhausted) {
		t.Errorf("want ErrExhausted, got %v", err)
	}

	l.Reset("7")
	tok, err := l.Next()
	if err != nil || tok.Kind != minimaple.TokenNumber || tok.Literal != "7" {
		t.Errorf("after Reset want number 7, got %v (%v)", tok, err)
	}
}

func TestTokenKind_String(t *testing.T) {
	if got := minimaple.TokenStar.String(); got != "'*'" {
		t.Errorf("want '*', got %s", got)
	}
	if got := minimaple.TokenEOF.String(); got != "end of input" {
		t.Errorf("want end of input, got %s", got)
	}
}

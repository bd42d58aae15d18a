package token_test

import (
	"testing"

	"rfmt/internal/source"
	"rfmt/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.IntLit, token.FloatLit, token.StringLit,
		token.RawStringLit, token.CharLit, token.KwTrue, token.KwFalse,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwLet, token.Plus, token.LParen, token.Lifetime}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestKeywordsRoundTrip(t *testing.T) {
	for _, word := range []string{"fn", "use", "where", "self", "Self", "match", "while", "as"} {
		k, ok := token.LookupKeyword(word)
		if !ok {
			t.Fatalf("%q should be a keyword", word)
		}
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should report IsKeyword", k)
		}
		if k.Text() != word {
			t.Fatalf("Text() = %q, want %q", k.Text(), word)
		}
	}
	if _, ok := token.LookupKeyword("SELF"); ok {
		t.Fatalf("keywords are case-sensitive")
	}
	if _, ok := token.LookupKeyword("macro_rules"); ok {
		t.Fatalf("macro_rules is an identifier")
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.EOF:        "EOF",
		token.ColonColon: "'::'",
		token.KwImpl:     "'impl'",
		token.IntLit:     "IntLit",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestTriviaHelpers(t *testing.T) {
	tk := token.Token{
		Kind: token.KwFn,
		Leading: []token.Trivia{
			{Kind: token.TriviaNewline, Text: "\n\n"},
			{Kind: token.TriviaDocLine, Text: "/// docs"},
			{Kind: token.TriviaNewline, Text: "\n"},
			{Kind: token.TriviaBlockComment, Text: "/* x */"},
			{Kind: token.TriviaSpace, Text: " "},
		},
	}
	if !tk.HasNewlineBefore() {
		t.Fatalf("expected newline before token")
	}
	comments := tk.Comments()
	if len(comments) != 2 || !comments[0].IsLineStyle() || comments[1].IsLineStyle() {
		t.Fatalf("unexpected comments %+v", comments)
	}
	if tk.Leading[0].Newlines() != 2 || tk.Leading[1].Newlines() != 0 {
		t.Fatalf("Newlines() miscounted")
	}
}

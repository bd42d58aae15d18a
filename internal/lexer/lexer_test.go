package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"rfmt/internal/diag"
	"rfmt/internal/lexer"
	"rfmt/internal/source"
	"rfmt/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(d diag.Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

// expectTokens проверяет последовательность токенов (без EOF)
func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := lx.All()
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	if len(reporter.diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", reporter.ErrorMessages())
	}
	return tokens
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestUseStatement(t *testing.T) {
	expectTokens(t, "use ::foo::{Bar1 as B, *};",
		token.KwUse, token.ColonColon, token.Ident, token.ColonColon, token.LBrace,
		token.Ident, token.KwAs, token.Ident, token.Comma, token.Star, token.RBrace, token.Semicolon)
}

func TestIdentifiersAndKeywords(t *testing.T) {
	toks := expectTokens(t, "fn _x r#match self Self _ é",
		token.KwFn, token.Ident, token.Ident, token.KwSelfValue, token.KwSelfType, token.Underscore, token.Ident)
	if toks[2].Text != "r#match" {
		t.Fatalf("raw identifier text = %q", toks[2].Text)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"42", token.IntLit},
		{"1_000u64", token.IntLit},
		{"0xFF_u8", token.IntLit},
		{"0b1010", token.IntLit},
		{"1.5", token.FloatLit},
		{"2.", token.FloatLit},
		{"1e-3", token.FloatLit},
		{"3f32", token.FloatLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := expectTokens(t, tt.input, tt.kind)
			if toks[0].Text != tt.input {
				t.Fatalf("text = %q", toks[0].Text)
			}
		})
	}
}

func TestNumberFollowedByMethodOrRange(t *testing.T) {
	expectTokens(t, "1.max(2)", token.IntLit, token.Dot, token.Ident, token.LParen, token.IntLit, token.RParen)
	expectTokens(t, "0..10", token.IntLit, token.DotDot, token.IntLit)
	expectTokens(t, "t.0.1", token.Ident, token.Dot, token.IntLit, token.Dot, token.IntLit)
}

func TestStringsCharsLifetimes(t *testing.T) {
	toks := expectTokens(t, `"a\"b" r#"x"y"# b"raw" br"z" 'c' '\n' b'q' 'a 'static`,
		token.StringLit, token.RawStringLit, token.StringLit, token.RawStringLit,
		token.CharLit, token.CharLit, token.CharLit, token.Lifetime, token.Lifetime)
	if toks[1].Text != `r#"x"y"#` {
		t.Fatalf("raw string text = %q", toks[1].Text)
	}
	if toks[8].Text != "'static" {
		t.Fatalf("lifetime text = %q", toks[8].Text)
	}
}

func TestMultilineString(t *testing.T) {
	toks := expectTokens(t, "\"line one\n  line two\"", token.StringLit)
	if !strings.Contains(toks[0].Text, "\n") {
		t.Fatalf("string must keep its newline")
	}
}

func TestOperatorsGreedy(t *testing.T) {
	expectTokens(t, "a >>= b..=c => d -> e::f",
		token.Ident, token.ShrAssign, token.Ident, token.DotDotEq, token.Ident,
		token.FatArrow, token.Ident, token.Arrow, token.Ident, token.ColonColon, token.Ident)
	expectTokens(t, "#[derive(Debug)]",
		token.Pound, token.LBracket, token.Ident, token.LParen, token.Ident, token.RParen, token.RBracket)
}

func TestTriviaAttachment(t *testing.T) {
	src := "/// doc\n// plain\n//// not doc\nfn a() {} /* tail */\n\n/*! inner */"
	lx, _ := makeTestLexer(src)
	toks := lx.All()

	fn := toks[0]
	comments := fn.Comments()
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments before fn, got %d", len(comments))
	}
	wantKinds := []token.TriviaKind{token.TriviaDocLine, token.TriviaLineComment, token.TriviaLineComment}
	for i, c := range comments {
		if c.Kind != wantKinds[i] {
			t.Errorf("comment %d kind = %v, want %v", i, c.Kind, wantKinds[i])
		}
	}

	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF {
		t.Fatalf("last token must be EOF")
	}
	tail := eof.Comments()
	if len(tail) != 2 || tail[0].Kind != token.TriviaBlockComment || tail[1].Kind != token.TriviaDocBlock {
		t.Fatalf("trailing comments must attach to EOF, got %+v", tail)
	}
}

func TestNestedBlockComment(t *testing.T) {
	lx, rep := makeTestLexer("/* a /* b */ c */ x")
	tok := lx.Next()
	if tok.Kind != token.Ident || len(tok.Comments()) != 1 {
		t.Fatalf("unexpected token %+v", tok)
	}
	if tok.Comments()[0].Text != "/* a /* b */ c */" {
		t.Fatalf("comment text = %q", tok.Comments()[0].Text)
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", rep.ErrorMessages())
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{`'\n`, diag.LexUnterminatedChar},
		{"€", diag.LexUnknownChar},
		{"0x", diag.LexBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			lx.All()
			if len(rep.diagnostics) == 0 || rep.diagnostics[0].Code != tt.code {
				t.Fatalf("expected %v, got %v", tt.code.ID(), rep.ErrorMessages())
			}
		})
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if lx.Peek().Text != "a" || lx.Peek().Text != "a" {
		t.Fatalf("Peek must be idempotent")
	}
	if lx.Next().Text != "a" || lx.Next().Text != "b" || lx.Next().Kind != token.EOF {
		t.Fatalf("unexpected token order")
	}
}

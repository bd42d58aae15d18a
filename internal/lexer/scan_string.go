package lexer

import (
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

// scanString читает "..." (и b"...": префикс уже съеден, start указывает на него).
// Строки могут быть многострочными; escape-последовательности не валидируем.
func (lx *Lexer) scanString(start Mark) token.Token {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			return lx.emit(token.StringLit, start)
		case '\\':
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// scanRawString читает r"..", r#".."#, br"..": курсор стоит на 'r'.
func (lx *Lexer) scanRawString(start Mark) token.Token {
	lx.cursor.Bump() // 'r'
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	if !lx.cursor.Eat('"') {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnterminatedString, tok.Span, "expected '\"' in raw string literal")
		return tok
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			return lx.emit(token.RawStringLit, start)
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated raw string literal")
	return tok
}

// scanCharOrLifetime различает 'a' (символ) и 'a (лайфтайм/метка).
func (lx *Lexer) scanCharOrLifetime() token.Token {
	start := lx.cursor.Mark()
	next := lx.cursor.PeekAt(1)
	if next == '\\' {
		return lx.scanChar(start)
	}
	r, sz := lx.peekRuneAt(1)
	if sz > 0 && lx.cursor.PeekAt(uint32(1+sz)) == '\'' {
		return lx.scanChar(start)
	}
	if sz > 0 && isIdentStartRune(r) {
		lx.cursor.Bump() // '\''
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
		return lx.emit(token.Lifetime, start)
	}
	return lx.scanChar(start)
}

// scanChar читает 'x', '\n', '\u{..}' (и b'x': префикс уже съеден).
func (lx *Lexer) scanChar(start Mark) token.Token {
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\'':
			lx.cursor.Bump()
			return lx.emit(token.CharLit, start)
		case '\\':
			lx.cursor.BumpN(2)
		case '\n':
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
			return tok
		default:
			lx.bumpRune()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
	return tok
}

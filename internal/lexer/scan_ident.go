package lexer

import (
	"rfmt/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор (включая r#raw) и проверяет LookupKeyword.
// Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	raw := false
	if lx.cursor.HasPrefix("r#") {
		lx.cursor.BumpN(2)
		raw = true
	}

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		lx.cursor.Reset(start)
		return lx.scanOperatorOrPunct()
	}
	lx.bumpRune()
	for {
		if b := lx.cursor.Peek(); b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if raw {
		return tok
	}
	if tok.Text == "_" {
		tok.Kind = token.Underscore
		return tok
	}
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// atLiteralPrefix распознаёт r"..", r#"..", b"..", b'..', br"..".
func (lx *Lexer) atLiteralPrefix() bool {
	c := &lx.cursor
	switch c.Peek() {
	case 'r':
		return c.PeekAt(1) == '"' || (c.PeekAt(1) == '#' && (c.PeekAt(2) == '"' || c.PeekAt(2) == '#'))
	case 'b':
		switch c.PeekAt(1) {
		case '"', '\'':
			return true
		case 'r':
			return c.PeekAt(2) == '"' || c.PeekAt(2) == '#'
		}
	}
	return false
}

func (lx *Lexer) scanPrefixedLiteral() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Eat('b') {
		switch lx.cursor.Peek() {
		case '"':
			return lx.scanString(start)
		case '\'':
			return lx.scanChar(start)
		}
	}
	return lx.scanRawString(start)
}

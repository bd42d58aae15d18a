package lexer

import (
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

// Поддержка: 0, 1_000, 0b..., 0o..., 0x..., 1.0, 1e-3, 2.5E+10, суффиксы (u8, i64, f32, usize).
// Суффикс остаётся в Token.Text. После '.' (доступ к полю кортежа: x.0.1)
// читается только целая часть.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	c := &lx.cursor

	if c.Peek() == '0' {
		var digit func(byte) bool
		switch c.PeekAt(1) {
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x', 'X':
			digit = isHex
		}
		if digit != nil {
			c.BumpN(2)
			n := 0
			for digit(c.Peek()) || c.Peek() == '_' {
				c.Bump()
				n++
			}
			if n == 0 {
				lx.errLex(diag.LexBadNumber, c.SpanFrom(start), "expected digits after base prefix")
			}
			lx.scanSuffix()
			return lx.emit(kind, start)
		}
	}

	lx.scanDigits()
	if lx.prev == token.Dot {
		return lx.emit(kind, start)
	}

	// дробная часть: "1.5", "1." (но не "1..2" и не "1.max()")
	if c.Peek() == '.' {
		next := c.PeekAt(1)
		switch {
		case isDec(next):
			c.Bump()
			lx.scanDigits()
			kind = token.FloatLit
		case next != '.' && !isIdentStartByte(next) && next < utf8RuneSelf:
			c.Bump()
			return lx.emit(token.FloatLit, start)
		}
	}

	if b := c.Peek(); b == 'e' || b == 'E' {
		m := c.Mark()
		c.Bump()
		if c.Peek() == '+' || c.Peek() == '-' {
			c.Bump()
		}
		if isDec(c.Peek()) || c.Peek() == '_' {
			lx.scanDigits()
			kind = token.FloatLit
		} else {
			// "1else"-подобные случаи: это не экспонента, а суффикс
			c.Reset(m)
		}
	}

	lx.scanSuffix()
	tok := lx.emit(kind, start)
	if kind == token.IntLit && (hasSuffix(tok.Text, "f32") || hasSuffix(tok.Text, "f64")) {
		tok.Kind = token.FloatLit
	}
	return tok
}

func (lx *Lexer) scanDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanSuffix() {
	if !isIdentStartByte(lx.cursor.Peek()) {
		return
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func hasSuffix(s, suffix string) bool {
	return len(s) > len(suffix) && s[len(s)-len(suffix):] == suffix
}

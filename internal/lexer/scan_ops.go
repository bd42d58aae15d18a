package lexer

import (
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
var multiCharOps = []struct {
	text string
	kind token.Kind
}{
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"...", token.DotDotDot},
	{"..=", token.DotDotEq},
	{"..", token.DotDot},
	{"::", token.ColonColon},
	{"->", token.Arrow},
	{"=>", token.FatArrow},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"^=", token.CaretAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
}

var singleCharOps = [256]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'%': token.Percent, '^': token.Caret, '!': token.Bang, '&': token.Amp,
	'|': token.Pipe, '=': token.Assign, '<': token.Lt, '>': token.Gt,
	'@': token.At, '.': token.Dot, ',': token.Comma, ';': token.Semicolon,
	':': token.Colon, '#': token.Pound, '$': token.Dollar, '?': token.Question,
	'~': token.Tilde, '(': token.LParen, ')': token.RParen, '{': token.LBrace,
	'}': token.RBrace, '[': token.LBracket, ']': token.RBracket,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range multiCharOps {
		if lx.try(op.text) {
			return lx.emit(op.kind, start)
		}
	}

	if k := singleCharOps[lx.cursor.Peek()]; k != token.Invalid {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}

	// неизвестный символ: съедаем руну целиком
	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character")
	return tok
}

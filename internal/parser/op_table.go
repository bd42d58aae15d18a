package parser

import (
	"rfmt/internal/ast"
	"rfmt/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1  // = += -= ...
	precRange          = 2  // .. ..=
	precLogicalOr      = 3  // ||
	precLogicalAnd     = 4  // &&
	precComparison     = 5  // == != < <= > >=
	precBitwiseOr      = 6  // |
	precBitwiseXor     = 7  // ^
	precBitwiseAnd     = 8  // &
	precShift          = 9  // << >>
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
	precCast           = 12 // as
)

// binaryPrec возвращает приоритет бинарного оператора или -1.
// Присваивания и диапазоны разбираются отдельно.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.Shl, token.Shr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return -1
	}
}

// BinaryPrecedence exposes the binding strength of a binary operator
// (higher binds tighter), or -1 for non-binary tokens.
func BinaryPrecedence(kind token.Kind) int {
	return binaryPrec(kind)
}

func isAssignOp(kind token.Kind) bool {
	switch kind {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign,
		token.PercentAssign, token.CaretAssign, token.AmpAssign, token.PipeAssign,
		token.ShlAssign, token.ShrAssign:
		return true
	default:
		return false
	}
}

func unaryOpOf(kind token.Kind) ast.ExprUnaryOp {
	switch kind {
	case token.Minus:
		return ast.ExprUnaryNeg
	case token.Bang:
		return ast.ExprUnaryNot
	default:
		return ast.ExprUnaryDeref
	}
}

// canStartExpr: может ли токен начинать выражение.
func canStartExpr(tok token.Token) bool {
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.StringLit, token.RawStringLit, token.CharLit,
		token.KwTrue, token.KwFalse, token.ColonColon, token.LParen, token.LBracket, token.LBrace,
		token.Minus, token.Bang, token.Star, token.Amp, token.AndAnd, token.Pipe, token.OrOr,
		token.DotDot, token.DotDotEq, token.KwIf, token.KwMatch, token.KwLoop, token.KwWhile,
		token.KwFor, token.KwUnsafe, token.KwMove, token.KwAsync, token.KwReturn, token.KwBreak,
		token.KwContinue, token.Lifetime:
		return true
	default:
		return tok.IsPathSegment()
	}
}

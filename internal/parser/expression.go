package parser

import (
	"rfmt/internal/ast"
	"rfmt/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
// Возвращает ExprID и флаг успеха
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	start := p.pos
	lhs, ok := p.parseRangeExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !isAssignOp(p.peek().Kind) {
		return lhs, true
	}
	op := p.advance()
	// присваивание правоассоциативно
	rhs, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewAssign(p.spanFrom(start), op.Kind, lhs, rhs), true
}

// parseExprAllowStruct снимает запрет на struct-литералы внутри скобок.
func (p *Parser) parseExprAllowStruct() (ast.ExprID, bool) {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()
	return p.parseExpr()
}

// parseCond разбирает условие if/while/match: `x {` здесь начинает блок.
func (p *Parser) parseCond() (ast.ExprID, bool) {
	saved := p.noStruct
	p.noStruct = true
	defer func() { p.noStruct = saved }()
	return p.parseExpr()
}

func (p *Parser) canStartRangeEnd() bool {
	if p.at(token.LBrace) && p.noStruct {
		return false
	}
	return canStartExpr(p.peek())
}

func (p *Parser) parseRangeExpr() (ast.ExprID, bool) {
	start := p.pos
	lo := ast.NoExprID
	if !p.at_or(token.DotDot, token.DotDotEq) {
		var ok bool
		if lo, ok = p.parseBinaryExpr(precLogicalOr); !ok {
			return ast.NoExprID, false
		}
		if !p.at_or(token.DotDot, token.DotDotEq) {
			return lo, true
		}
	}
	op := p.advance()
	hi := ast.NoExprID
	if p.canStartRangeEnd() {
		var ok bool
		if hi, ok = p.parseBinaryExpr(precLogicalOr); !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewRange(p.spanFrom(start), op.Kind, lo, hi), true
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parseBinaryRest(left, minPrec)
}

func (p *Parser) parseBinaryRest(left ast.ExprID, minPrec int) (ast.ExprID, bool) {
	for {
		tok := p.peek()

		if tok.Kind == token.KwAs {
			if precCast < minPrec {
				break
			}
			p.advance()
			ty, ok := p.parseType()
			if !ok {
				return ast.NoExprID, false
			}
			span := p.arenas.ExprSpan(left).Cover(p.lastSpan)
			left = p.arenas.Exprs.NewCast(span, left, ty)
			continue
		}

		prec := binaryPrec(tok.Kind)
		if prec < 0 || prec < minPrec {
			break
		}
		p.advance()
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		span := p.arenas.ExprSpan(left).Cover(p.arenas.ExprSpan(right))
		left = p.arenas.Exprs.NewBinary(span, tok.Kind, left, right)
	}
	return left, true
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	start := p.pos
	switch p.peek().Kind {
	case token.Minus, token.Bang, token.Star:
		opTok := p.advance()
		x, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(p.spanFrom(start), unaryOpOf(opTok.Kind), x), true

	case token.Amp, token.AndAnd:
		if p.at(token.AndAnd) {
			p.splitFirst(token.Amp, token.Amp)
		} else {
			p.advance()
		}
		op := ast.ExprUnaryRef
		if p.eat(token.KwMut) {
			op = ast.ExprUnaryRefMut
		}
		x, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(p.spanFrom(start), op, x), true
	}

	x, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parsePostfixOps(x)
}

// parseStmtExpr: выражение в позиции инструкции или тела match-ветки:
// блочные конструкции (if, match, loop, {..}) не продолжаются бинарными операторами.
func (p *Parser) parseStmtExpr() (ast.ExprID, bool) {
	if !p.atBlockLikeStart() {
		return p.parseExpr()
	}
	x, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at_or(token.Dot, token.Question) {
		return x, true
	}
	if x, ok = p.parsePostfixOps(x); !ok {
		return ast.NoExprID, false
	}
	return p.parseBinaryRest(x, precLogicalOr)
}

func (p *Parser) atBlockLikeStart() bool {
	switch p.peek().Kind {
	case token.LBrace, token.KwIf, token.KwMatch, token.KwLoop, token.KwWhile, token.KwFor:
		return true
	case token.KwUnsafe:
		return p.peekN(1).Kind == token.LBrace
	case token.Lifetime:
		return p.peekN(1).Kind == token.Colon
	default:
		return false
	}
}

// isBlockLike: выражения, после которых ';' в блоке не обязательна.
func (p *Parser) isBlockLike(id ast.ExprID) bool {
	expr := p.arenas.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ast.ExprBlock, ast.ExprIf, ast.ExprMatch, ast.ExprWhile, ast.ExprLoop, ast.ExprFor:
		return true
	case ast.ExprMacro:
		m, _ := p.arenas.Exprs.Macro(id)
		return m.Macro.Delim == token.LBrace
	default:
		return false
	}
}

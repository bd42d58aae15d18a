package parser

import (
	"strings"

	"fortio.org/safecast"

	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/source"
	"rfmt/internal/token"
)

// parsePostfixOps обрабатывает постфиксы: вызовы, индексы, поля, методы, ? и .await
func (p *Parser) parsePostfixOps(expr ast.ExprID) (ast.ExprID, bool) {
	exprs := p.arenas.Exprs
	for {
		switch p.peek().Kind {
		case token.Question:
			p.advance()
			expr = exprs.NewWrap(ast.ExprTry, p.arenas.ExprSpan(expr).Cover(p.lastSpan), expr)

		case token.LParen:
			args, argsSpan, ok := p.parseCallArgs()
			if !ok {
				return ast.NoExprID, false
			}
			expr = exprs.NewCall(p.arenas.ExprSpan(expr).Cover(argsSpan), expr, args, argsSpan)

		case token.LBracket:
			p.advance()
			index, ok := p.parseExprAllowStruct()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok = p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after index"); !ok {
				return ast.NoExprID, false
			}
			expr = exprs.NewIndex(p.arenas.ExprSpan(expr).Cover(p.lastSpan), expr, index)

		case token.Dot:
			p.advance()
			next, ok := p.parseDotSuffix(expr)
			if !ok {
				return ast.NoExprID, false
			}
			expr = next

		default:
			return expr, true
		}
	}
}

func (p *Parser) parseDotSuffix(recv ast.ExprID) (ast.ExprID, bool) {
	exprs := p.arenas.Exprs
	recvSpan := p.arenas.ExprSpan(recv)
	tok := p.peek()
	switch tok.Kind {
	case token.KwAwait:
		p.advance()
		return exprs.NewWrap(ast.ExprAwait, recvSpan.Cover(tok.Span), recv), true

	case token.IntLit:
		p.advance()
		return exprs.NewField(recvSpan.Cover(tok.Span), recv, ast.Ident{Name: tok.Text, Span: tok.Span}), true

	case token.FloatLit:
		// x.0.1 лексер читает как x . 0.1
		first, second, found := strings.Cut(tok.Text, ".")
		if !found || !isDecimal(first) || !isDecimal(second) {
			break
		}
		p.advance()
		n, err := safecast.Conv[uint32](len(first))
		if err != nil {
			break
		}
		firstSpan := source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start + n}
		secondSpan := source.Span{File: tok.Span.File, Start: firstSpan.End + 1, End: tok.Span.End}
		inner := exprs.NewField(recvSpan.Cover(firstSpan), recv, ast.Ident{Name: first, Span: firstSpan})
		return exprs.NewField(recvSpan.Cover(tok.Span), inner, ast.Ident{Name: second, Span: secondSpan}), true

	case token.Ident:
		p.advance()
		name := ast.Ident{Name: tok.Text, Span: tok.Span}
		var generics *ast.GenericArgs
		if p.at(token.ColonColon) && (p.peekN(1).Kind == token.Lt || p.peekN(1).Kind == token.Shl) {
			p.advance()
			var ok bool
			if generics, ok = p.parseGenericArgs(true); !ok {
				return ast.NoExprID, false
			}
		}
		if !p.at(token.LParen) {
			if generics != nil {
				p.unexpected("'(' after method generics")
				return ast.NoExprID, false
			}
			return exprs.NewField(recvSpan.Cover(tok.Span), recv, name), true
		}
		args, argsSpan, ok := p.parseCallArgs()
		if !ok {
			return ast.NoExprID, false
		}
		return exprs.NewMethodCall(recvSpan.Cover(argsSpan), ast.ExprMethodCallData{
			Recv:     recv,
			Name:     name,
			Generics: generics,
			Args:     args,
			ArgsSpan: argsSpan,
		}), true
	}
	p.err(diag.SynExpectIdentifier, "expected field or method name after '.', found \""+tok.Text+"\"")
	return ast.NoExprID, false
}

func (p *Parser) parseCallArgs() ([]ast.ExprID, source.Span, bool) {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	var args []ast.ExprID
	span, ok := p.parseDelimited(token.LParen, token.RParen, "argument list", func() bool {
		arg, ok := p.parseExpr()
		if ok {
			args = append(args, arg)
		}
		return ok
	})
	return args, span, ok
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
